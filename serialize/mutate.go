package serialize

import (
	"fmt"
	"strings"

	"github.com/noml-lang/noml/ast"
	"github.com/noml-lang/noml/parser"
	"github.com/noml-lang/noml/value"
)

// pathIndex maps every KeyValueItem's absolute dotted path (scope plus its
// own key) to its item index, using the same scope-tracking a table or
// array-of-tables header performs during resolution.
func pathIndex(items []*ast.Item) map[string]int {
	out := make(map[string]int)
	scope := []string{}
	for i, it := range items {
		switch it.Kind {
		case ast.TableHeaderItem:
			scope = namesOf(it.Key)
		case ast.ArrayTableHeaderItem:
			scope = namesOf(it.Key)
		case ast.KeyValueItem:
			full := append(append([]string{}, scope...), namesOf(it.Key)...)
			out[strings.Join(full, ".")] = i
		}
	}
	return out
}

func namesOf(k ast.Key) []string {
	out := make([]string, len(k.Segments))
	for i, s := range k.Segments {
		out[i] = s.Name
	}
	return out
}

// Set replaces the value at path with newVal, preserving every other byte
// of the document: the surrounding "key = " and any trailing comment are
// untouched, and only the value's own span is rewritten. path must name an
// existing key; Set does not create new keys or tables (see Insert). newVal
// is rendered by RenderLiteral: integers in decimal and strings
// double-quoted, whatever base or quote style the replaced literal used.
func Set(doc *ast.Document, path string, newVal *value.Value) (*ast.Document, error) {
	idx := pathIndex(doc.Items)
	i, ok := idx[path]
	if !ok {
		return nil, fmt.Errorf("serialize: no existing key at path %q", path)
	}
	target := doc.Items[i]
	rendered, err := RenderLiteral(newVal)
	if err != nil {
		return nil, err
	}
	spliced := spliceBytes(doc.Source, target.Value.Span.Start, target.Value.Span.End, rendered)
	newDoc, err := parser.Parse(spliced)
	if err != nil {
		return nil, fmt.Errorf("serialize: mutated document failed to reparse: %w", err)
	}
	return newDoc, nil
}

// Remove deletes the key at path along with its contiguous block of
// directly preceding comment lines (but not a blank line separating it
// from earlier content), matching how a human would delete the entry by
// hand.
func Remove(doc *ast.Document, path string) (*ast.Document, error) {
	idx := pathIndex(doc.Items)
	i, ok := idx[path]
	if !ok {
		return nil, fmt.Errorf("serialize: no existing key at path %q", path)
	}
	start := doc.Items[i].Span.Start
	for j := i - 1; j >= 0 && doc.Items[j].Kind == ast.CommentItem; j-- {
		start = doc.Items[j].Span.Start
	}
	end := doc.Items[i].Span.End
	spliced := spliceBytes(doc.Source, start, end, nil)
	newDoc, err := parser.Parse(spliced)
	if err != nil {
		return nil, fmt.Errorf("serialize: mutated document failed to reparse: %w", err)
	}
	return newDoc, nil
}

// Insert appends a brand-new key = value line at the end of the scope
// named by scopePath ("" for the document root), using a single space
// around '=' and the document's dominant indentation.
func Insert(doc *ast.Document, scopePath, key string, newVal *value.Value) (*ast.Document, error) {
	rendered, err := RenderLiteral(newVal)
	if err != nil {
		return nil, err
	}
	indent := dominantIndent(doc.Source)

	insertAt := len(doc.Source)
	if scopePath != "" {
		found := false
		scope := []string{}
		for _, it := range doc.Items {
			switch it.Kind {
			case ast.TableHeaderItem, ast.ArrayTableHeaderItem:
				if strings.Join(scope, ".") == scopePath && found {
					insertAt = it.Span.Start
				}
				scope = namesOf(it.Key)
				if strings.Join(scope, ".") == scopePath {
					found = true
					insertAt = it.Span.End
				}
			case ast.KeyValueItem:
				if strings.Join(scope, ".") == scopePath {
					found = true
					insertAt = it.Span.End
				}
			}
		}
		if !found {
			return nil, fmt.Errorf("serialize: no existing table scope %q to insert into", scopePath)
		}
	} else {
		insertAt = 0
		for _, it := range doc.Items {
			if it.Kind == ast.TableHeaderItem || it.Kind == ast.ArrayTableHeaderItem {
				break
			}
			if it.Kind == ast.KeyValueItem {
				insertAt = it.Span.End
			}
		}
	}

	line := indent + key + " = " + string(rendered) + "\n"
	spliced := spliceBytes(doc.Source, insertAt, insertAt, []byte(line))
	newDoc, err := parser.Parse(spliced)
	if err != nil {
		return nil, fmt.Errorf("serialize: mutated document failed to reparse: %w", err)
	}
	return newDoc, nil
}

func spliceBytes(src []byte, start, end int, replacement []byte) []byte {
	out := make([]byte, 0, len(src)-(end-start)+len(replacement))
	out = append(out, src[:start]...)
	out = append(out, replacement...)
	out = append(out, src[end:]...)
	return out
}
