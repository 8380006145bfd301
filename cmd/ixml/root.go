package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ixml",
	Short: "Parse a document against an Invisible XML grammar",
	Long: `ixml provides three features:
- Parses a document against an ixml grammar and prints the resulting XML.
- Runs a directory of (grammar, input, expected XML) conformance cases.
- Runs one conformance case directly.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
