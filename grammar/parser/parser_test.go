package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gram "github.com/mdubinko/earleybird/grammar"
	"github.com/mdubinko/earleybird/grammar/parser"
)

func TestParseSimpleGrammar(t *testing.T) {
	g, err := parser.Parse(strings.NewReader(`greeting = "Hello ", name, "!". name = ["A"-"Z";"a"-"z"]+.`))
	require.NoError(t, err)
	assert.Equal(t, 2, len(g.Rules))
	assert.Equal(t, "greeting", g.Name(g.StartSymbol()))
}

func TestParseRuleMarks(t *testing.T) {
	g, err := parser.Parse(strings.NewReader(`^a: "x". @b: "y". -c: "z".`))
	require.NoError(t, err)
	require.Len(t, g.Rules, 3)
	assert.Equal(t, gram.MarkDefault, g.Rules[0].Mark)
	assert.Equal(t, gram.MarkAttribute, g.Rules[1].Mark)
	assert.Equal(t, gram.MarkHidden, g.Rules[2].Mark)
}

func TestParseHiddenNonTerminalReference(t *testing.T) {
	g, err := parser.Parse(strings.NewReader(`doc: -ws, word, -ws. ws: " "+. word: ["a"-"z"]+.`))
	require.NoError(t, err)
	doc := g.RuleByName(g.StartSymbol())
	require.Len(t, doc.Body, 1)
	require.Len(t, doc.Body[0], 3)

	assert.Equal(t, gram.FactorNonTerm, doc.Body[0][0].Kind)
	assert.Equal(t, gram.NTMarkHidden, doc.Body[0][0].NTMark)
	assert.Equal(t, "ws", g.Name(doc.Body[0][0].Name))
}

func TestParseHiddenTerminalDirectly(t *testing.T) {
	// A hidden-marked terminal, not a hidden-marked nonterminal reference:
	// the '-' here must not be misread as requiring a following identifier.
	g, err := parser.Parse(strings.NewReader(`x: -"a", "b".`))
	require.NoError(t, err)
	x := g.RuleByName(g.StartSymbol())
	require.Len(t, x.Body[0], 2)
	assert.Equal(t, gram.FactorTerminal, x.Body[0][0].Kind)
	assert.Equal(t, gram.TMarkHidden, x.Body[0][0].TMark)
}

func TestParseAttributeOnTerminalIsRejected(t *testing.T) {
	_, err := parser.Parse(strings.NewReader(`x: @"a".`))
	require.Error(t, err)
	verrs, ok := err.(gram.ValidationErrors)
	require.True(t, ok, "expected grammar.ValidationErrors, got %T", err)
	found := false
	for _, e := range verrs {
		if e.Kind == gram.ErrAttributeOnTerminal {
			found = true
		}
	}
	assert.True(t, found, "expected ErrAttributeOnTerminal among %v", verrs)
}

func TestParseMultiCodepointLiteralDesugarsToCodepoints(t *testing.T) {
	g, err := parser.Parse(strings.NewReader(`x: "abc".`))
	require.NoError(t, err)
	x := g.RuleByName(g.StartSymbol())
	require.Len(t, x.Body[0], 3)
	for i, want := range []rune{'a', 'b', 'c'} {
		f := x.Body[0][i]
		require.Equal(t, gram.FactorTerminal, f.Kind)
		assert.Equal(t, gram.CMLiteral, f.Matcher.Kind)
		assert.Equal(t, want, f.Matcher.Rune)
	}
}

func TestParseMultiCodepointLiteralWithRepeatIsGrouped(t *testing.T) {
	g, err := parser.Parse(strings.NewReader(`x: "ab"*.`))
	require.NoError(t, err)
	x := g.RuleByName(g.StartSymbol())
	require.Len(t, x.Body[0], 1)
	f := x.Body[0][0]
	require.Equal(t, gram.FactorRepeat0, f.Kind)
	require.Equal(t, gram.FactorGroup, f.Inner.Kind)
	assert.Len(t, f.Inner.Group[0], 2)
}

func TestParseInsertion(t *testing.T) {
	g, err := parser.Parse(strings.NewReader(`s: "a", +", ", "b".`))
	require.NoError(t, err)
	s := g.RuleByName(g.StartSymbol())
	require.Len(t, s.Body[0], 3)
	ins := s.Body[0][1]
	assert.Equal(t, gram.FactorInsertion, ins.Kind)
	assert.Equal(t, ", ", ins.InsertionText)
}

func TestParseSeparatedRepetitionWithDoubledOperator(t *testing.T) {
	g, err := parser.Parse(strings.NewReader(`list: item**",". item: "x".`))
	require.NoError(t, err)
	list := g.RuleByName(g.StartSymbol())
	f := list.Body[0][0]
	require.Equal(t, gram.FactorRepeat0, f.Kind)
	require.NotNil(t, f.Sep)
}

func TestParseUndefinedNonTerminalIsRejected(t *testing.T) {
	_, err := parser.Parse(strings.NewReader(`x: y.`))
	require.Error(t, err)
}

func TestParseHiddenStartIsRejected(t *testing.T) {
	_, err := parser.Parse(strings.NewReader(`-x: "a".`))
	require.Error(t, err)
}

func TestRoundTripThroughPrint(t *testing.T) {
	src := `greeting: "Hello ", name, "!".
name: ["A"-"Z";"a"-"z"]+.
`
	g1, err := parser.Parse(strings.NewReader(src))
	require.NoError(t, err)

	printed := gram.Print(g1)
	g2, err := parser.Parse(strings.NewReader(printed))
	require.NoError(t, err)

	assert.Equal(t, len(g1.Rules), len(g2.Rules))
	assert.Equal(t, g1.Name(g1.StartSymbol()), g2.Name(g2.StartSymbol()))
	assert.Equal(t, gram.Print(g2), printed, "printing g2 should reproduce the same source")
}
