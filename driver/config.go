package driver

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the driver's own defaults. It never affects grammar or
// recognition semantics (spec.md §6 takes (GrammarIR, input) as plain
// values); it only changes how a Run reports what it did.
type Config struct {
	// OutputFormat is the default rendering a CLI front end should use
	// absent an explicit --format flag: "xml" for the serialized
	// document, "tree" for the debug element-name tree (spec.md §9's
	// supplemented pretty-printing, via tester.ConvertSyntaxTreeToTestableTree).
	OutputFormat string `toml:"output_format"`

	// Trace enables forwarding recognizer events to the Run's TraceSink.
	Trace bool `toml:"trace"`

	// FailureContextWidth bounds how many input codepoints a CLI front
	// end's failure report quotes on each side of the furthest-reached
	// position. ParseFailure.Error itself does not use it.
	FailureContextWidth int `toml:"failure_context_width"`
}

// DefaultConfig matches the zero-configuration behavior: XML output, no
// tracing, 80 codepoints of failure context on each side.
func DefaultConfig() Config {
	return Config{
		OutputFormat:        "xml",
		Trace:               false,
		FailureContextWidth: 80,
	}
}

// LoadConfig reads a TOML config file, starting from DefaultConfig so an
// omitted key keeps its default rather than zeroing out.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
