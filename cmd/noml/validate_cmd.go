package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/noml-lang/noml"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Lex and parse a file without resolving it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := noml.Validate(string(src)); err != nil {
			fmt.Fprintln(os.Stderr, renderError(path, src, err))
			os.Exit(1)
		}
		fmt.Println(successColor().Sprint("ok"))
		return nil
	},
}

func successColor() *color.Color {
	return color.New(color.FgGreen)
}
