package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdubinko/earleybird/tester"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <case directory>",
		Short:   "Run one conformance case (grammar.ixml, input.txt, expected.xml)",
		Example: `  ixml test testdata/greeting`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	c := tester.LoadCase(args[0])
	r := tester.Run(&tester.Catalog{Cases: []*tester.CaseWithMetadata{c}})[0]
	fmt.Fprintln(os.Stdout, r)
	if r.Error != nil {
		return fmt.Errorf("test failed")
	}
	return nil
}
