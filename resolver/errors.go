package resolver

import (
	"fmt"
	"strings"

	"github.com/noml-lang/noml/token"
)

// Error is a resolution failure: the AST was structurally valid but
// evaluating one of its dynamic constructs failed. Every Error carries the
// span of the AST node being evaluated when it happened.
type Error struct {
	Kind    string
	Span    token.Span
	Context string
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Span, e.Context)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Span)
}

func errf(span token.Span, kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: span, Context: fmt.Sprintf(format, args...)}
}

func errMissingEnv(span token.Span, name string) *Error {
	return errf(span, "MissingEnv", "environment variable %q is not set and no default was given", name)
}

func errIncludeCycle(span token.Span, chain []string) *Error {
	return errf(span, "IncludeCycle", "include cycle: %s", strings.Join(chain, " -> "))
}

func errIncludeIoFailed(span token.Span, path string, cause error) *Error {
	return errf(span, "IncludeIoFailed", "reading include %q: %v", path, cause)
}

func errNativeBadForm(span token.Span, name, arg string, cause error) *Error {
	return errf(span, "NativeBadForm", "@%s(%q): %v", name, arg, cause)
}

func errUnknownNative(span token.Span, name string) *Error {
	return errf(span, "UnknownNative", "unknown native constructor @%s", name)
}

func errInterpolationMissingPath(span token.Span, path string) *Error {
	return errf(span, "InterpolationMissingPath", "interpolation references undeclared or forward-referenced path %q", path)
}

func errTypeConflict(span token.Span, context string) *Error {
	return errf(span, "TypeConflict", context)
}

func errDuplicateKey(span token.Span, path string) *Error {
	return errf(span, "DuplicateKey", "duplicate key %q", path)
}

func errMaxDepthExceeded(span token.Span, max int) *Error {
	return errf(span, "MaxDepthExceeded", "include depth exceeds configured maximum of %d", max)
}
