package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/noml-lang/noml/value"
)

type JSON any

// Resolved wraps a *value.Value so Logf renders it via ToJSONString (quoted
// strings, JSON-style tables) rather than through Value.String, which %v
// would otherwise use.
type Resolved struct{ *value.Value }

func (r Resolved) String() string {
	if r.Value == nil {
		return "<nil>"
	}
	buf := bytes.NewBufferString(r.Value.ToJSONString())
	return buf.String()
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *value.Value:
			args[i] = Resolved{x}.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
