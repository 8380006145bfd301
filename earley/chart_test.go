package earley_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdubinko/earleybird/earley"
	gram "github.com/mdubinko/earleybird/grammar"
	"github.com/mdubinko/earleybird/grammar/parser"
)

func mustLoad(t *testing.T, src string) (*gram.Grammar, *gram.NullableSet) {
	t.Helper()
	g, err := parser.Parse(strings.NewReader(src))
	require.NoError(t, err)
	g.Lower()
	return g, gram.ComputeNullable(g)
}

func TestRecognizeAccepts(t *testing.T) {
	g, nullable := mustLoad(t, `rule: "a" | "b".`)

	chart := earley.Recognize(g, nullable, []rune("a"), nil)
	_, ok := chart.Accepted()
	assert.True(t, ok)
}

func TestRecognizeRejectsWithFurthestReach(t *testing.T) {
	g, nullable := mustLoad(t, `rule: "a" | "b".`)

	chart := earley.Recognize(g, nullable, []rune("c"), nil)
	_, ok := chart.Accepted()
	require.False(t, ok)

	f := chart.Failure()
	assert.Equal(t, 0, f.FurthestPos)
	assert.Equal(t, "'c'", f.Actual)
}

// spec.md §9: "A = (B?); B = "x"." must not miss the nullable completion.
func TestNullableCompletionIsNotMissed(t *testing.T) {
	g, nullable := mustLoad(t, `a: b?. b: "x".`)

	chart := earley.Recognize(g, nullable, []rune(""), nil)
	_, ok := chart.Accepted()
	assert.True(t, ok, "a should accept the empty string via the nullable b?")

	chart = earley.Recognize(g, nullable, []rune("x"), nil)
	_, ok = chart.Accepted()
	assert.True(t, ok, "a should also accept \"x\"")
}

// Furthest-reach monotonicity (spec.md §8): a parseable prefix must not
// decrease the reported furthest reach versus a shorter failing input.
func TestFurthestReachMonotonicity(t *testing.T) {
	g, nullable := mustLoad(t, `expr: term, ("+", term)*. term: "a".`)

	shortFail := earley.Recognize(g, nullable, []rune("a+"), nil).Failure().FurthestPos
	longerFail := earley.Recognize(g, nullable, []rune("a+a+"), nil).Failure().FurthestPos
	assert.GreaterOrEqual(t, longerFail, shortFail)
}

func TestAmbiguityDetection(t *testing.T) {
	// Classic ambiguous expression grammar: "n+n+n" can group as
	// (n+n)+n or n+(n+n), both completing the same (rule, alt, dot,
	// origin) item in the final column via different back-pointers.
	g, nullable := mustLoad(t, `e: e, "+", e | "n".`)

	chart := earley.Recognize(g, nullable, []rune("n+n+n"), nil)
	_, ok := chart.Accepted()
	require.True(t, ok)

	info := earley.DetectAmbiguity(chart)
	assert.GreaterOrEqual(t, info.Count, 1)
}
