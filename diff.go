package noml

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffText returns a human-readable unified-style summary of the textual
// differences between two serialized documents — typically a document
// before and after a mutation, for logging or a CLI --diff flag.
func DiffText(before, after string) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	return dmp.DiffPrettyText(diffs)
}
