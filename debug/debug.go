// Package debug holds environment-variable-gated tracing switches read once
// at process start. Each stage of the pipeline (lexer, parser, resolver)
// checks the flag relevant to it before doing any formatting work, so an
// unset variable costs nothing beyond the boolean check.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Lex         bool
	Parse       bool
	Resolve     bool
	Include     bool
	Native      bool
	Interpolate bool
}

var d *debug

func init() {
	d = &debug{}
	d.Lex = boolEnv("NOML_DEBUG_LEX")
	d.Parse = boolEnv("NOML_DEBUG_PARSE")
	d.Resolve = boolEnv("NOML_DEBUG_RESOLVE")
	d.Include = boolEnv("NOML_DEBUG_INCLUDE")
	d.Native = boolEnv("NOML_DEBUG_NATIVE")
	d.Interpolate = boolEnv("NOML_DEBUG_INTERPOLATE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Lex() bool         { return d.Lex }
func Parse() bool       { return d.Parse }
func Resolve() bool     { return d.Resolve }
func Include() bool     { return d.Include }
func Native() bool      { return d.Native }
func Interpolate() bool { return d.Interpolate }

// LogAny writes v to stderr as JSON, falling back to %v on any value that
// does not marshal (e.g. a channel or func value).
func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte("\n"))
}
