package serialize

import "github.com/noml-lang/noml/ast"

// Serialize returns doc's source text. Every mutation helper in this
// package (Set, Remove, Insert) works by splicing the exact byte range of
// the thing it changes and reparsing, so a Document's Source field always
// already holds the fully up to date, format-preserving text — byte
// identical to the original everywhere a mutation didn't touch.
func Serialize(doc *ast.Document) []byte {
	return doc.Source
}
