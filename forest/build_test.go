package forest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdubinko/earleybird/earley"
	"github.com/mdubinko/earleybird/forest"
	gram "github.com/mdubinko/earleybird/grammar"
	"github.com/mdubinko/earleybird/grammar/parser"
)

func build(t *testing.T, src, input string) *forest.Derivation {
	t.Helper()
	g, err := parser.Parse(strings.NewReader(src))
	require.NoError(t, err)
	g.Lower()
	nullable := gram.ComputeNullable(g)
	chart := earley.Recognize(g, nullable, []rune(input), nil)
	d, err := forest.Build(chart)
	require.NoError(t, err)
	return d
}

func TestBuildReturnsNodeNamedForStartRule(t *testing.T) {
	d := build(t, `rule: "a" | "b".`, "a")
	assert.Equal(t, forest.KindNode, d.Kind)
	assert.Equal(t, "rule", d.Name)
	assert.Equal(t, gram.MarkDefault, d.Mark)
	require.Len(t, d.Children, 1)
	assert.Equal(t, forest.KindLeaf, d.Children[0].Kind)
	assert.Equal(t, 'a', d.Children[0].Rune)
}

// spec.md §4.3: a reference-site mark overrides the referenced rule's own
// mark.
func TestBuildAppliesReferenceMarkOverride(t *testing.T) {
	d := build(t, `x: @id, "-". id: ["0"-"9"]+.`, "9-")
	require.Len(t, d.Children, 2)
	idNode := d.Children[0]
	assert.Equal(t, gram.MarkAttribute, idNode.Mark, "the @id reference should override id's own default mark")
}

func TestBuildFailureIsParseFailure(t *testing.T) {
	g, err := parser.Parse(strings.NewReader(`rule: "a".`))
	require.NoError(t, err)
	g.Lower()
	nullable := gram.ComputeNullable(g)
	chart := earley.Recognize(g, nullable, []rune("b"), nil)

	_, err = forest.Build(chart)
	require.Error(t, err)
	_, ok := err.(*earley.ParseFailure)
	assert.True(t, ok)
}

func TestBuildIsDeterministicAcrossRuns(t *testing.T) {
	src := `e: e, "+", e | "n".`
	d1 := build(t, src, "n+n+n")
	d2 := build(t, src, "n+n+n")
	assert.Equal(t, renderShape(d1), renderShape(d2))
}

func renderShape(d *forest.Derivation) string {
	var b strings.Builder
	writeShape(&b, d)
	return b.String()
}

func writeShape(b *strings.Builder, d *forest.Derivation) {
	switch d.Kind {
	case forest.KindLeaf:
		b.WriteRune(d.Rune)
	case forest.KindInsertionLeaf:
		b.WriteString(d.Text)
	case forest.KindNode:
		b.WriteString("(")
		b.WriteString(d.Name)
		for _, c := range d.Children {
			writeShape(b, c)
		}
		b.WriteString(")")
	}
}
