package driver_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdubinko/earleybird/driver"
	"github.com/mdubinko/earleybird/earley"
)

func load(t *testing.T, src string) *driver.Grammar {
	t.Helper()
	g, err := driver.LoadGrammar(strings.NewReader(src))
	require.NoError(t, err)
	return g
}

// spec.md §8 scenario 1.
func TestParseGreeting(t *testing.T) {
	g := load(t, `greeting = "Hello ", name, "!". name = ["A"-"Z";"a"-"z"]+.`)

	r, err := driver.ParseString(g, "Hello World!", nil)
	require.NoError(t, err)
	assert.Equal(t, "<greeting>Hello <name>World</name>!</greeting>", r.XML)
}

// spec.md §8 scenario 2.
func TestParseRuleAlternatives(t *testing.T) {
	g := load(t, `rule: "a" | "b".`)

	r, err := driver.ParseString(g, "a", nil)
	require.NoError(t, err)
	assert.Equal(t, "<rule>a</rule>", r.XML)

	r, err = driver.ParseString(g, "b", nil)
	require.NoError(t, err)
	assert.Equal(t, "<rule>b</rule>", r.XML)

	_, err = driver.ParseString(g, "c", nil)
	require.Error(t, err)
	pf, ok := err.(*earley.ParseFailure)
	require.True(t, ok, "expected a *earley.ParseFailure, got %T: %v", err, err)
	assert.Equal(t, 0, pf.FurthestPos)
	assert.Equal(t, "'c'", pf.Actual)
	assert.ElementsMatch(t, []string{"'a'", "'b'"}, pf.Expected)
}

// spec.md §8 scenario 3: repetition with a separator.
func TestParseRepetitionWithSeparator(t *testing.T) {
	g := load(t, `expr: term, ("+", term)*. term: "a".`)

	r, err := driver.ParseString(g, "a+a+a", nil)
	require.NoError(t, err)
	assert.Equal(t, "<expr><term>a</term>+<term>a</term>+<term>a</term></expr>", r.XML)
}

// spec.md §8 scenario 4: attribute mark.
func TestParseAttributeMark(t *testing.T) {
	g := load(t, `x: @id, "-", y. id: ["0"-"9"]+. y: ["a"-"z"]+.`)

	r, err := driver.ParseString(g, "42-abc", nil)
	require.NoError(t, err)
	assert.Equal(t, `<x id="42">-<y>abc</y></x>`, r.XML)
}

// spec.md §8 scenario 5: hidden nonterminal mark.
func TestParseHiddenNonTerminalMark(t *testing.T) {
	g := load(t, `doc: -ws, word, -ws. ws: " "+. word: ["a"-"z"]+.`)

	r, err := driver.ParseString(g, " hi ", nil)
	require.NoError(t, err)
	assert.Equal(t, "<doc><word>hi</word></doc>", r.XML)
}

// spec.md §8 scenario 6: insertion.
func TestParseInsertion(t *testing.T) {
	g := load(t, `s: "a", +", ", "b".`)

	r, err := driver.ParseString(g, "ab", nil)
	require.NoError(t, err)
	assert.Equal(t, "<s>a, b</s>", r.XML)
}

func TestLoadGrammarRejectsHiddenStart(t *testing.T) {
	_, err := driver.LoadGrammar(strings.NewReader(`-start: "a". other: "b".`))
	require.Error(t, err)
}

func TestLoadGrammarRejectsAttributeOnTerminal(t *testing.T) {
	_, err := driver.LoadGrammar(strings.NewReader(`x: @"a".`))
	require.Error(t, err)
}

func TestParseIsDeterministicAcrossRuns(t *testing.T) {
	g := load(t, `expr: term, ("+", term)*. term: "a".`)

	r1, err := driver.ParseString(g, "a+a+a", nil)
	require.NoError(t, err)
	r2, err := driver.ParseString(g, "a+a+a", nil)
	require.NoError(t, err)
	assert.Equal(t, r1.XML, r2.XML)
}
