// Package xmlserial renders a forest.Derivation to XML text following
// ixml's mark-directed serialization rules (spec.md §4.4): attribute
// splicing, hidden-node splicing, and the escaping rules for text versus
// attribute-value content.
package xmlserial

import (
	"fmt"
	"strings"

	"github.com/mdubinko/earleybird/forest"
	gram "github.com/mdubinko/earleybird/grammar"
)

// SerializationError is the SerializationError kind of spec.md §7: a
// derivation tried to attach two attributes of the same name to one
// element.
type SerializationError struct {
	Element   string
	Attribute string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("duplicate attribute %q on element <%s>", e.Attribute, e.Element)
}

type attr struct {
	name, value string
}

// Serialize renders the start symbol's derivation to a single-root XML
// fragment. No XML declaration is emitted (spec.md §6); the driver may
// prepend one.
func Serialize(root *forest.Derivation) (string, error) {
	if root.Kind != forest.KindNode {
		return "", fmt.Errorf("xmlserial: root derivation is not a Node")
	}
	switch root.Mark {
	case gram.MarkAttribute:
		return "", fmt.Errorf("xmlserial: start rule cannot carry the attribute mark")
	case gram.MarkHidden:
		return "", fmt.Errorf("xmlserial: start rule cannot carry the hidden mark")
	}

	var b strings.Builder
	if err := writeElement(&b, root); err != nil {
		return "", err
	}
	return b.String(), nil
}

// writeElement renders node (which must have MarkDefault) as one XML
// element: its Attribute-marked children become attributes in traversal
// order, its Hidden-marked children splice their own children in place,
// and remaining children contribute nested elements or text.
func writeElement(b *strings.Builder, node *forest.Derivation) error {
	var attrs []attr
	seen := map[string]bool{}
	var content strings.Builder

	if err := writeChildren(node.Children, &attrs, seen, &content, node.Name); err != nil {
		return err
	}

	fmt.Fprintf(b, "<%s", node.Name)
	for _, a := range attrs {
		fmt.Fprintf(b, ` %s="%s"`, a.name, escapeAttr(a.value))
	}
	fmt.Fprint(b, ">")
	b.WriteString(content.String())
	fmt.Fprintf(b, "</%s>", node.Name)
	return nil
}

func writeChildren(children []*forest.Derivation, attrs *[]attr, seen map[string]bool, content *strings.Builder, elementName string) error {
	for _, ch := range children {
		switch ch.Kind {
		case forest.KindLeaf:
			if ch.TMark == gram.TMarkEmitLiteral {
				content.WriteString(escapeText(string(ch.Rune)))
			}
		case forest.KindInsertionLeaf:
			content.WriteString(escapeText(ch.Text))
		case forest.KindNode:
			switch ch.Mark {
			case gram.MarkAttribute:
				if seen[ch.Name] {
					return &SerializationError{Element: elementName, Attribute: ch.Name}
				}
				seen[ch.Name] = true
				*attrs = append(*attrs, attr{name: ch.Name, value: rawText(ch)})
			case gram.MarkHidden:
				if err := writeChildren(ch.Children, attrs, seen, content, elementName); err != nil {
					return err
				}
			default:
				var childBuf strings.Builder
				if err := writeElement(&childBuf, ch); err != nil {
					return err
				}
				content.WriteString(childBuf.String())
			}
		}
	}
	return nil
}

// rawText flattens a derivation to its raw (unescaped) text content only,
// ignoring element structure entirely (spec.md §4.4: "element children
// recursively flattened to text"), for use as an attribute value.
func rawText(d *forest.Derivation) string {
	var b strings.Builder
	collectText(d, &b)
	return b.String()
}

func collectText(d *forest.Derivation, b *strings.Builder) {
	switch d.Kind {
	case forest.KindLeaf:
		if d.TMark == gram.TMarkEmitLiteral {
			b.WriteRune(d.Rune)
		}
	case forest.KindInsertionLeaf:
		b.WriteString(d.Text)
	case forest.KindNode:
		for _, ch := range d.Children {
			collectText(ch, b)
		}
	}
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;")
	return r.Replace(s)
}
