package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noml-lang/noml"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse and fully resolve a file, printing the resulting value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		val, err := noml.ParseFromFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, renderError(path, src, err))
			os.Exit(1)
		}
		fmt.Println(val.ToJSONString())
		return nil
	},
}
