// Package noml parses, resolves, mutates and serializes NOML documents —
// a TOML-like configuration language with environment lookups, file
// includes, string interpolation and typed native constructors. This file
// is the library's top-level surface; the heavy lifting lives in the
// token, ast, parser, resolver and serialize packages.
package noml

import (
	"context"
	"path/filepath"

	"github.com/noml-lang/noml/ast"
	"github.com/noml-lang/noml/internal/loader"
	"github.com/noml-lang/noml/parser"
	"github.com/noml-lang/noml/resolver"
	"github.com/noml-lang/noml/serialize"
	"github.com/noml-lang/noml/value"
)

// Parse lexes, parses and fully resolves text using the resolver's default
// configuration rooted at the current working directory.
func Parse(text string) (*value.Value, error) {
	return ParseContext(context.Background(), text, resolver.DefaultConfig())
}

// ParseContext is Parse with an explicit context and resolver Config.
func ParseContext(ctx context.Context, text string, cfg resolver.Config) (*value.Value, error) {
	doc, err := ParseRaw(text)
	if err != nil {
		return nil, err
	}
	return resolver.ResolveContext(ctx, doc, cfg)
}

// ParseFromFile reads path, then parses and resolves it with base_path set
// to path's directory so relative includes resolve against it.
func ParseFromFile(path string) (*value.Value, error) {
	data, err := loader.NewFileLoader().Load(context.Background(), path)
	if err != nil {
		return nil, err
	}
	doc, err := ParseRaw(string(data))
	if err != nil {
		return nil, err
	}
	cfg := resolver.DefaultConfig()
	cfg.BasePath = filepath.Dir(path)
	return resolver.Resolve(doc, cfg)
}

// Validate lexes and parses text without resolving it, returning nil on
// success or the first syntax error encountered.
func Validate(text string) error {
	_, err := ParseRaw(text)
	return err
}

// ParseRaw lexes and parses text into a format-preserving Document,
// without resolving any of its dynamic constructs. Equivalent to
// ParsePreserving — both exist because the specification's abstract
// surface names them separately, but parsing already always preserves
// format metadata.
func ParseRaw(text string) (*ast.Document, error) {
	return parser.Parse([]byte(text))
}

// ParsePreserving is an alias for ParseRaw, named for callers that intend
// to mutate and reserialize the result.
func ParsePreserving(text string) (*ast.Document, error) {
	return ParseRaw(text)
}

// Modify applies fn to document, which may call the serialize package's
// Set, Remove or Insert, and returns the resulting Document. fn receives
// doc and should return the (possibly new) Document to use; Modify exists
// so callers can chain multiple mutations behind a single import.
func Modify(doc *ast.Document, fn func(*ast.Document) (*ast.Document, error)) (*ast.Document, error) {
	return fn(doc)
}

// Serialize returns document's format-preserving source text.
func Serialize(document *ast.Document) string {
	return string(serialize.Serialize(document))
}

// Resolve evaluates document under the given resolver configuration.
func Resolve(document *ast.Document, cfg resolver.Config) (*value.Value, error) {
	return resolver.Resolve(document, cfg)
}
