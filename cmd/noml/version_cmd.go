package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noml-lang/noml"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the noml version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("noml " + noml.Version)
	},
}
