package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdubinko/earleybird/tester"
)

func init() {
	cmd := &cobra.Command{
		Use:     "suite <directory of case directories>",
		Short:   "Run every conformance case under a directory",
		Example: `  ixml suite testdata`,
		Args:    cobra.ExactArgs(1),
		RunE:    runSuite,
	}
	rootCmd.AddCommand(cmd)
}

func runSuite(cmd *cobra.Command, args []string) error {
	cat := tester.LoadCatalog(args[0])
	failed := false
	for _, c := range cat.Cases {
		if c.Error != nil {
			fmt.Fprintf(os.Stderr, "failed to load case %s: %v\n", c.FilePath, c.Error)
			failed = true
		}
	}
	if failed {
		return errors.New("cannot run suite")
	}

	rs := tester.Run(cat)
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			failed = true
		}
	}
	if failed {
		return errors.New("suite failed")
	}
	return nil
}
