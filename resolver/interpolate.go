package resolver

import (
	"strconv"
	"strings"

	"github.com/noml-lang/noml/debug"
	"github.com/noml-lang/noml/token"
	"github.com/noml-lang/noml/value"
)

// interpolate scans s for ${path} spans and substitutes each with the
// canonical textual form of the value already resolved at path in root.
// Paths are always root-relative: resolution proceeds in a single forward
// pass in document order, so "not yet present in root" correctly models a
// forward reference regardless of which table is currently open. A literal
// dollar sign is written as $$.
func (rs *resolveState) interpolate(s string, span token.Span, root *value.Value) (string, error) {
	if !strings.Contains(s, "$") {
		return s, nil
	}

	var out strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c != '$' {
			out.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == '$' {
			out.WriteByte('$')
			i += 2
			continue
		}
		if i+1 >= len(s) || s[i+1] != '{' {
			out.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(s[i+2:], '}')
		if end < 0 {
			out.WriteString(s[i:])
			i = len(s)
			break
		}
		path := s[i+2 : i+2+end]
		val, ok := root.Get(path)
		if !ok {
			return "", errInterpolationMissingPath(span, path)
		}
		if debug.Interpolate() {
			debug.Logf("interpolate: ${%s} = %v\n", path, val)
		}
		out.WriteString(textualForm(val))
		i = i + 2 + end + 1
	}
	return out.String(), nil
}

func textualForm(v *value.Value) string {
	switch v.Kind() {
	case value.String:
		s, _ := v.AsString()
		return s
	case value.Integer:
		n, _ := v.AsInteger()
		return strconv.FormatInt(n, 10)
	case value.Float:
		f, _ := v.AsFloat()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case value.Bool:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case value.Native:
		if inner, ok := v.NativeValue(); ok {
			return textualForm(inner)
		}
		return v.String()
	default:
		return v.String()
	}
}
