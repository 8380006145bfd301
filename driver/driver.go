// Package driver orchestrates the ixml core (spec.md §6): grammar text
// goes in, a recognized and serialized XML document comes out. It wires
// together grammar/parser, grammar.Lower/ComputeNullable, earley.Recognize,
// forest.Build, and xmlserial.Serialize exactly as the teacher's driver
// package orchestrates its own token-stream -> parser -> semantic-actions
// pipeline, plus the ambient logging, configuration, and run-identity
// concerns a production driver carries that the core's semantics never
// need.
package driver

import (
	"io"

	"github.com/mdubinko/earleybird/earley"
	"github.com/mdubinko/earleybird/forest"
	gram "github.com/mdubinko/earleybird/grammar"
	gparser "github.com/mdubinko/earleybird/grammar/parser"
	"github.com/mdubinko/earleybird/xmlserial"
)

// Grammar is the load_grammar(text) -> GrammarIR result of spec.md §6: a
// validated, lowered grammar plus its precomputed nullable set, ready for
// recognition. Constructing one is the only place Lower and
// ComputeNullable run.
type Grammar struct {
	IR       *gram.Grammar
	Nullable *gram.NullableSet
}

// LoadGrammar parses, validates, lowers, and analyzes ixml grammar source,
// returning the GrammarIR of spec.md §6 or the grammar.ValidationErrors /
// parser.SyntaxError that made it unusable (spec.md §7: "grammar errors
// are fatal at load time and never pass through recognition").
func LoadGrammar(src io.Reader) (*Grammar, error) {
	g, err := gparser.Parse(src)
	if err != nil {
		return nil, err
	}
	g.Lower()
	return &Grammar{IR: g, Nullable: gram.ComputeNullable(g)}, nil
}

// Result is the outcome of one successful parse(): the serialized XML plus
// any ambiguity the tree builder's tie-break collapsed along the way
// (spec.md §7's AmbiguityNotice, made concrete per SPEC_FULL.md §9).
type Result struct {
	XML       string
	Ambiguity earley.AmbiguityInfo
}

// Parse runs parse(GrammarIR, input) of spec.md §6 against one document: it
// recognizes input under g, extracts the single deterministic derivation
// (spec.md §4.3's tie-break), and serializes it to XML (spec.md §4.4). A
// failed recognition returns the chart's *earley.ParseFailure; a
// serialization conflict (duplicate attribute name) returns
// *xmlserial.SerializationError.
//
// run may be nil, which behaves like NewRun(DefaultConfig(), nil): no
// tracing. Parse does not read or generate a run ID.
func Parse(g *Grammar, input []rune, run *Run) (*Result, error) {
	chart := earley.Recognize(g.IR, g.Nullable, input, run.traceSink())

	deriv, err := forest.Build(chart)
	if err != nil {
		return nil, err
	}

	xml, err := xmlserial.Serialize(deriv)
	if err != nil {
		return nil, err
	}

	return &Result{
		XML:       xml,
		Ambiguity: earley.DetectAmbiguity(chart),
	}, nil
}

// ParseString is a convenience wrapper over Parse for callers holding a
// Go string rather than a pre-decoded []rune.
func ParseString(g *Grammar, input string, run *Run) (*Result, error) {
	return Parse(g, []rune(input), run)
}
