// Package ast defines the format-preserving syntax tree produced by the
// parser. A Document is an ordered list of top-level Items — table headers,
// array-of-tables headers, key/value pairs, includes, comments and blank
// lines — each of which retains the exact source bytes for its span so an
// unmodified Document serializes back to byte-identical source.
//
// A second, independent tree (package value) is derived from a Document by
// the resolver; Document itself never holds resolved values, only the
// syntax that produced them.
package ast

import "github.com/noml-lang/noml/token"

// Kind identifies what an Item represents at the top level of a Document,
// or inside a table body.
type Kind int

const (
	KeyValueItem Kind = iota
	TableHeaderItem
	ArrayTableHeaderItem
	IncludeItem
	CommentItem
	BlankItem
)

func (k Kind) String() string {
	switch k {
	case KeyValueItem:
		return "KeyValue"
	case TableHeaderItem:
		return "TableHeader"
	case ArrayTableHeaderItem:
		return "ArrayTableHeader"
	case IncludeItem:
		return "Include"
	case CommentItem:
		return "Comment"
	case BlankItem:
		return "Blank"
	default:
		return "<unknown item kind>"
	}
}

// KeySegment is one dotted-path component of a key, along with the exact
// source text it was written as (bare or quoted) so serialization does not
// need to re-derive quoting rules for an untouched key.
type KeySegment struct {
	Name string
	Raw  string
}

// Key is a dotted path, e.g. server.listeners.port.
type Key struct {
	Segments []KeySegment
}

// String renders the key's semantic (unquoted) dotted form, used for
// diagnostics and for value-tree paths. It is not used for serialization of
// untouched keys, which replay Raw instead.
func (k Key) String() string {
	s := ""
	for i, seg := range k.Segments {
		if i > 0 {
			s += "."
		}
		s += seg.Name
	}
	return s
}

// Item is one entry in a Document's top-level (or table body) item list.
type Item struct {
	Kind Kind
	Span token.Span

	// KeyValueItem, TableHeaderItem, ArrayTableHeaderItem.
	Key Key

	// KeyValueItem.
	Value *Value

	// IncludeItem: the string literal naming the file to include. A
	// top-level include is recognized only when a string follows the
	// include keyword.
	IncludePath *Value

	// TrailingComment is the verbatim same-line "# ..." text following this
	// item's value, not including the comment's own leading whitespace.
	TrailingComment []byte

	// Raw is the item's CommentItem/BlankItem payload, verbatim.
	Raw []byte
}

// ValueKind identifies the syntactic shape of a Value node.
type ValueKind int

const (
	NullValue ValueKind = iota
	BoolValue
	IntegerValue
	FloatValue
	StringValue
	ArrayValue
	InlineTableValue
	EnvValue
	NativeValue
	IncludeValue
)

func (k ValueKind) String() string {
	switch k {
	case NullValue:
		return "Null"
	case BoolValue:
		return "Bool"
	case IntegerValue:
		return "Integer"
	case FloatValue:
		return "Float"
	case StringValue:
		return "String"
	case ArrayValue:
		return "Array"
	case InlineTableValue:
		return "InlineTable"
	case EnvValue:
		return "Env"
	case NativeValue:
		return "Native"
	case IncludeValue:
		return "Include"
	default:
		return "<unknown value kind>"
	}
}

// TableEntry is one key/value pair inside an inline table literal.
type TableEntry struct {
	Key   Key
	Value *Value
}

// Value is a node in the format-preserving expression tree: a literal,
// array, inline table, or one of NOML's dynamic expression forms (env(), a
// native constructor, or an include expression). A ${...} interpolation has
// no node of its own: it stays in a StringValue's text until resolution.
type Value struct {
	Kind ValueKind
	Span token.Span
	Raw  []byte

	Bool       bool
	Int        int64
	IntBase    token.IntBase
	Float      float64
	Str        string
	StringKind token.StringKind

	Elements         []*Value
	ArrayMultiline   bool
	ArrayTrailingSep bool

	Entries []TableEntry

	// EnvValue: env("NAME") or env("NAME", default).
	EnvKey     string
	EnvDefault *Value

	// NativeValue: @name("literal").
	NativeName string
	NativeArg  *Value

	// IncludeValue: include "path" used on the right-hand side of a
	// key-value instead of as a top-level statement.
	IncludePath *Value
}
