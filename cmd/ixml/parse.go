package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdubinko/earleybird/driver"
	"github.com/mdubinko/earleybird/earley"
	"github.com/mdubinko/earleybird/tester"
)

var parseFlags = struct {
	source   *string
	config   *string
	trace    *bool
	tracePos *int
	format   *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path>",
		Short:   "Parse a document against a grammar",
		Example: `  cat doc.txt | ixml parse grammar.ixml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "input file path (default stdin)")
	parseFlags.config = cmd.Flags().StringP("config", "c", "", "driver config TOML path (default built-in defaults)")
	parseFlags.trace = cmd.Flags().Bool("trace", false, "log recognizer trace events")
	parseFlags.tracePos = cmd.Flags().Int("trace-pos", -1, "with --trace, only log events at this input position")
	parseFlags.format = cmd.Flags().String("format", "", "output format: xml or tree (default from config, falls back to xml)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	gf, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot open grammar file %s: %w", args[0], err)
	}
	defer gf.Close()

	g, err := driver.LoadGrammar(gf)
	if err != nil {
		return fmt.Errorf("cannot load grammar: %w", err)
	}

	src := os.Stdin
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open source file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	}
	input, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("cannot read input: %w", err)
	}

	cfg := driver.DefaultConfig()
	if *parseFlags.config != "" {
		cfg, err = driver.LoadConfig(*parseFlags.config)
		if err != nil {
			return fmt.Errorf("cannot load config: %w", err)
		}
	}
	if *parseFlags.trace {
		cfg.Trace = true
	}
	if *parseFlags.format != "" {
		cfg.OutputFormat = *parseFlags.format
	}
	var sink driver.TraceSink = driver.NewCommonLogSink("ixml")
	if *parseFlags.tracePos >= 0 {
		sink = earley.PositionFilter(*parseFlags.tracePos, sink)
	}
	run := driver.NewRun(cfg, sink)

	result, err := driver.ParseString(g, string(input), run)
	if err != nil {
		if pf, ok := err.(*earley.ParseFailure); ok {
			fmt.Fprintln(os.Stderr, failureContext(pf, []rune(string(input)), cfg.FailureContextWidth))
		}
		return err
	}

	switch cfg.OutputFormat {
	case "tree":
		tree, err := tester.ConvertSyntaxTreeToTestableTree(result.XML)
		if err != nil {
			return fmt.Errorf("cannot render tree: %w", err)
		}
		fmt.Fprintln(os.Stdout, tree)
	default:
		fmt.Fprintln(os.Stdout, result.XML)
	}
	if result.Ambiguity.Count > 0 {
		fmt.Fprintf(os.Stderr, "note: %d ambiguous site(s) resolved by the default tie-break\n", result.Ambiguity.Count)
	}
	return nil
}

// failureContext quotes the input codepoints around a ParseFailure's
// furthest-reached position, bounded by width on each side, with a '│'
// marking the exact offset.
func failureContext(pf *earley.ParseFailure, input []rune, width int) string {
	lo := pf.FurthestPos - width
	if lo < 0 {
		lo = 0
	}
	hi := pf.FurthestPos + width
	if hi > len(input) {
		hi = len(input)
	}
	snippet := string(input[lo:pf.FurthestPos]) + "│" + string(input[pf.FurthestPos:hi])
	return fmt.Sprintf("near: %s", snippet)
}
