// Package serialize turns a (possibly mutated) ast.Document back into
// source text, and provides the path-addressed mutation helpers that
// produce those mutated documents.
package serialize

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/noml-lang/noml/token"
	"github.com/noml-lang/noml/value"
)

// RenderLiteral renders a resolved value as NOML source text suitable for
// splicing into a document in place of an existing value's span. Native
// values render as their underlying value — the constructor call itself is
// a parse-time form, not part of a value's canonical textual shape.
func RenderLiteral(v *value.Value) ([]byte, error) {
	var b strings.Builder
	if err := writeLiteral(&b, v); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func writeLiteral(b *strings.Builder, v *value.Value) error {
	switch v.Kind() {
	case value.Null:
		b.WriteString("null")
	case value.Bool:
		bb, _ := v.AsBool()
		b.WriteString(strconv.FormatBool(bb))
	case value.Integer:
		n, _ := v.AsInteger()
		b.WriteString(strconv.FormatInt(n, 10))
	case value.Float:
		f, _ := v.AsFloat()
		switch {
		case math.IsNaN(f):
			b.WriteString("nan")
		case math.IsInf(f, 1):
			b.WriteString("inf")
		case math.IsInf(f, -1):
			b.WriteString("-inf")
		default:
			s := strconv.FormatFloat(f, 'g', -1, 64)
			if !strings.ContainsAny(s, ".e") {
				s += ".0"
			}
			b.WriteString(s)
		}
	case value.String:
		s, _ := v.AsString()
		b.WriteString(token.QuoteBasic(s))
	case value.Array:
		elems, _ := v.AsArray()
		b.WriteByte('[')
		for i, e := range elems {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := writeLiteral(b, e); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case value.Table:
		b.WriteByte('{')
		for i, key := range v.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			entry, _ := v.Get(key)
			writeKeyName(b, key)
			b.WriteString(" = ")
			if err := writeLiteral(b, entry); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case value.Native:
		inner, _ := v.NativeValue()
		return writeLiteral(b, inner)
	case value.DateTime:
		t, _ := v.AsDateTime()
		b.WriteString(token.QuoteBasic(t.Format("2006-01-02T15:04:05Z07:00")))
	default:
		return fmt.Errorf("serialize: cannot render value of kind %s", v.Kind())
	}
	return nil
}

func writeKeyName(b *strings.Builder, name string) {
	if token.NeedsQuoting(name) {
		b.WriteString(token.QuoteBasic(name))
		return
	}
	b.WriteString(name)
}

// dominantIndent returns the whitespace run most commonly used to indent a
// non-blank line in src, falling back to the empty string (no indentation)
// when src has no indented lines (e.g. it is empty or entirely top-level).
func dominantIndent(src []byte) string {
	counts := map[string]int{}
	for _, line := range strings.Split(string(src), "\n") {
		i := 0
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i == 0 || i == len(line) {
			continue
		}
		counts[line[:i]]++
	}
	best, bestN := "", 0
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestN {
			best, bestN = k, counts[k]
		}
	}
	return best
}
