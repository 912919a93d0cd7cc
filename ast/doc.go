package ast

import "github.com/noml-lang/noml/token"

// Document is the root of a parsed NOML file: its source buffer, the
// position index built against that buffer, and the ordered list of
// top-level items parsed from it.
type Document struct {
	Source    []byte
	SourceMap *token.SourceMap
	Items     []*Item
}

// NewDocument wraps src and its items into a Document, building the
// SourceMap used to resolve spans to line/column.
func NewDocument(src []byte, items []*Item) *Document {
	return &Document{Source: src, SourceMap: token.NewSourceMap(src), Items: items}
}

// Find returns the first top-level KeyValueItem, TableHeaderItem or
// ArrayTableHeaderItem whose key equals path (dotted, e.g. "server.port"),
// or nil.
func (d *Document) Find(path string) *Item {
	for _, it := range d.Items {
		switch it.Kind {
		case KeyValueItem, TableHeaderItem, ArrayTableHeaderItem:
			if it.Key.String() == path {
				return it
			}
		}
	}
	return nil
}
