package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/noml-lang/noml"
)

// renderError formats err in the documented "<file>:<line>:<col>:
// <category>: <message>" form with a caret line, in red when stderr is a
// terminal.
func renderError(path string, src []byte, err error) string {
	rendered := noml.Render(path, src, err)
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return rendered
	}
	return color.New(color.FgRed).Sprint(rendered)
}
