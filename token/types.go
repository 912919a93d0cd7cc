// Package token defines the lexical tokens produced by the NOML lexer and
// the low-level scanners (strings, numbers, positions) shared by the lexer
// and parser.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	Invalid Kind = iota
	LBracket
	RBracket
	DoubleLBracket
	DoubleRBracket
	LBrace
	RBrace
	LParen
	RParen
	Equals
	Comma
	Dot
	At
	Newline
	Whitespace
	Comment
	String
	Integer
	Float
	Bool
	Bare
	Eof
)

var kindNames = map[Kind]string{
	Invalid:        "Invalid",
	LBracket:       "LBracket",
	RBracket:       "RBracket",
	DoubleLBracket: "DoubleLBracket",
	DoubleRBracket: "DoubleRBracket",
	LBrace:         "LBrace",
	RBrace:         "RBrace",
	LParen:         "LParen",
	RParen:         "RParen",
	Equals:         "Equals",
	Comma:          "Comma",
	Dot:            "Dot",
	At:             "At",
	Newline:        "Newline",
	Whitespace:     "Whitespace",
	Comment:        "Comment",
	String:         "String",
	Integer:        "Integer",
	Float:          "Float",
	Bool:           "Bool",
	Bare:           "Bare",
	Eof:            "Eof",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "<unknown kind>"
}

// StringKind distinguishes the four NOML string notations. Untouched strings
// keep their original quoting because serialization replays source bytes; a
// string written by serialize.Set is always double-quoted.
type StringKind int

const (
	Basic StringKind = iota
	Literal
	MultiBasic
	MultiLiteral
)

// IntBase records which textual base an integer literal was written in.
// Untouched literals such as "0x1A" keep their text because serialization
// replays source bytes; an integer written by serialize.Set is always
// rendered in decimal.
type IntBase int

const (
	Base10 IntBase = 10
	Base16 IntBase = 16
	Base8  IntBase = 8
	Base2  IntBase = 2
)

// Token is a single lexical unit. Raw is always the exact source bytes for
// the token's span; the decoded fields for the token's kind (Decoded,
// IntValue/IntBase, FloatValue, BoolValue) are filled in for every literal
// token when it is scanned.
type Token struct {
	Kind Kind
	Span Span
	Raw  []byte

	// String tokens.
	StringKind StringKind
	Decoded    string

	// Integer tokens.
	IntValue int64
	IntBase  IntBase

	// Float tokens.
	FloatValue float64

	// Bool tokens.
	BoolValue bool
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%s", t.Kind, t.Raw, t.Span)
}

// Error is returned by the lexer for malformed input. It always carries the
// span at which the problem was detected.
type Error struct {
	Span Span
	Kind string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Span, e.Msg)
}

func newError(span Span, kind, msg string) *Error {
	return &Error{Span: span, Kind: kind, Msg: msg}
}

func Errorf(span Span, kind, format string, args ...any) *Error {
	return newError(span, kind, fmt.Sprintf(format, args...))
}
