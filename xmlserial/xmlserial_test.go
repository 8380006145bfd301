package xmlserial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gram "github.com/mdubinko/earleybird/grammar"
	"github.com/mdubinko/earleybird/forest"
	"github.com/mdubinko/earleybird/xmlserial"
)

func leaf(r rune) *forest.Derivation {
	return &forest.Derivation{Kind: forest.KindLeaf, Rune: r, TMark: gram.TMarkEmitLiteral}
}

func TestSerializeSimpleElement(t *testing.T) {
	root := &forest.Derivation{
		Kind: forest.KindNode,
		Name: "greeting",
		Mark: gram.MarkDefault,
		Children: []*forest.Derivation{
			leaf('h'), leaf('i'),
		},
	}
	xml, err := xmlserial.Serialize(root)
	require.NoError(t, err)
	assert.Equal(t, "<greeting>hi</greeting>", xml)
}

func TestSerializeAttributeSplicing(t *testing.T) {
	root := &forest.Derivation{
		Kind: forest.KindNode,
		Name: "x",
		Mark: gram.MarkDefault,
		Children: []*forest.Derivation{
			{
				Kind:     forest.KindNode,
				Name:     "id",
				Mark:     gram.MarkAttribute,
				Children: []*forest.Derivation{leaf('4'), leaf('2')},
			},
			leaf('-'),
			{
				Kind: forest.KindNode, Name: "y", Mark: gram.MarkDefault,
				Children: []*forest.Derivation{leaf('a')},
			},
		},
	}
	xml, err := xmlserial.Serialize(root)
	require.NoError(t, err)
	assert.Equal(t, `<x id="42">-<y>a</y></x>`, xml)
}

func TestSerializeHiddenSplicing(t *testing.T) {
	root := &forest.Derivation{
		Kind: forest.KindNode,
		Name: "doc",
		Mark: gram.MarkDefault,
		Children: []*forest.Derivation{
			{Kind: forest.KindNode, Name: "ws", Mark: gram.MarkHidden, Children: []*forest.Derivation{leaf(' ')}},
			{Kind: forest.KindNode, Name: "word", Mark: gram.MarkDefault, Children: []*forest.Derivation{leaf('h'), leaf('i')}},
			{Kind: forest.KindNode, Name: "ws", Mark: gram.MarkHidden, Children: []*forest.Derivation{leaf(' ')}},
		},
	}
	xml, err := xmlserial.Serialize(root)
	require.NoError(t, err)
	assert.Equal(t, "<doc><word>hi</word></doc>", xml)
}

func TestSerializeDuplicateAttributeIsError(t *testing.T) {
	attrNode := func() *forest.Derivation {
		return &forest.Derivation{Kind: forest.KindNode, Name: "id", Mark: gram.MarkAttribute, Children: []*forest.Derivation{leaf('1')}}
	}
	root := &forest.Derivation{
		Kind:     forest.KindNode,
		Name:     "x",
		Mark:     gram.MarkDefault,
		Children: []*forest.Derivation{attrNode(), attrNode()},
	}
	_, err := xmlserial.Serialize(root)
	require.Error(t, err)
	serr, ok := err.(*xmlserial.SerializationError)
	require.True(t, ok)
	assert.Equal(t, "id", serr.Attribute)
	assert.Equal(t, "x", serr.Element)
}

func TestSerializeEscapesTextAndAttributes(t *testing.T) {
	root := &forest.Derivation{
		Kind: forest.KindNode,
		Name: "x",
		Mark: gram.MarkDefault,
		Children: []*forest.Derivation{
			{
				Kind:     forest.KindNode,
				Name:     "a",
				Mark:     gram.MarkAttribute,
				Children: []*forest.Derivation{leaf('<'), leaf('&'), leaf('"')},
			},
			leaf('<'), leaf('&'), leaf('>'),
		},
	}
	xml, err := xmlserial.Serialize(root)
	require.NoError(t, err)
	assert.Equal(t, `<x a="&lt;&amp;&quot;">&lt;&amp;&gt;</x>`, xml)
}

func TestSerializeRejectsAttributeRoot(t *testing.T) {
	root := &forest.Derivation{Kind: forest.KindNode, Name: "x", Mark: gram.MarkAttribute}
	_, err := xmlserial.Serialize(root)
	require.Error(t, err)
}

func TestSerializeInsertionLeaf(t *testing.T) {
	root := &forest.Derivation{
		Kind: forest.KindNode,
		Name: "s",
		Mark: gram.MarkDefault,
		Children: []*forest.Derivation{
			leaf('a'),
			{Kind: forest.KindInsertionLeaf, Text: ", "},
			leaf('b'),
		},
	}
	xml, err := xmlserial.Serialize(root)
	require.NoError(t, err)
	assert.Equal(t, "<s>a, b</s>", xml)
}
