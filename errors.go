package noml

import (
	"fmt"
	"strings"

	"github.com/noml-lang/noml/parser"
	"github.com/noml-lang/noml/resolver"
	"github.com/noml-lang/noml/token"
)

// Category is the top-level error taxonomy: every failure the library
// returns falls into exactly one of these, regardless of which internal
// package detected it.
type Category string

const (
	CategoryLex     Category = "lex"
	CategoryParse   Category = "parse"
	CategoryResolve Category = "resolve"
	CategoryIo      Category = "io"
)

// Error is the library's unified error shape: a category, the resolver- or
// parser-specific kind string, the source span where the problem was
// detected, and a human-readable message.
type Error struct {
	Category Category
	Kind     string
	Span     token.Span
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at %s: %s", e.Category, e.Kind, e.Span, e.Message)
}

// AsError classifies err, returned from any of this package's functions,
// into the unified taxonomy. It returns (nil, false) for an error that
// isn't one of the library's typed errors (e.g. a raw os.ReadFile failure
// that was not wrapped).
func AsError(err error) (*Error, bool) {
	switch e := err.(type) {
	case *token.Error:
		return &Error{Category: CategoryLex, Kind: e.Kind, Span: e.Span, Message: e.Msg}, true
	case *parser.Error:
		return &Error{Category: CategoryParse, Kind: e.Kind, Span: e.Span, Message: e.Context}, true
	case *resolver.Error:
		cat := CategoryResolve
		if e.Kind == "IncludeIoFailed" {
			cat = CategoryIo
		}
		return &Error{Category: cat, Kind: e.Kind, Span: e.Span, Message: e.Context}, true
	default:
		return nil, false
	}
}

// Render formats err in the CLI's documented form:
//
//	<file>:<line>:<col>: <category>: <message>
//	    <source line>
//	    ^
//
// for any error AsError recognizes. It falls back to err.Error() for
// anything else.
func Render(file string, source []byte, err error) string {
	e, ok := AsError(err)
	if !ok {
		return err.Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: %s: %s\n", file, e.Span.Line, e.Span.Column, e.Category, e.Message)

	lineStart, lineEnd := lineBounds(source, e.Span.Start)
	b.WriteString("    ")
	b.Write(source[lineStart:lineEnd])
	b.WriteByte('\n')
	b.WriteString("    ")
	for i := 0; i < e.Span.Start-lineStart; i++ {
		b.WriteByte(' ')
	}
	b.WriteByte('^')
	return b.String()
}

func lineBounds(src []byte, offset int) (start, end int) {
	start = 0
	for i := offset - 1; i >= 0; i-- {
		if src[i] == '\n' {
			start = i + 1
			break
		}
	}
	end = len(src)
	for i := offset; i < len(src); i++ {
		if src[i] == '\n' {
			end = i
			break
		}
	}
	return start, end
}
