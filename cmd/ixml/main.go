// Command ixml is a thin CLI over the driver/tester packages (spec.md §1
// scopes the command-line surface out of the core entirely; this exists
// only so the module has a runnable entry point, matching the teacher's
// cmd/vartan packaging convention). None of the spec's semantics live
// here.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
