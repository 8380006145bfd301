package tester

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// normalizedNode is a minimal XML tree used only to compare two documents
// under spec.md §4.4's equivalence rules. Attrs is a map because
// attribute order is not significant; Children preserves document order
// because text content order and interleaving with child elements is
// significant. A child with a non-nil Text is a run of character data;
// one with a non-empty Name is an element.
type normalizedNode struct {
	Name     string
	Attrs    map[string]string
	Children []*normalizedNode
	Text     *string
}

// parseNormalized decodes an XML document (no external library in the
// pack covers XML parsing; encoding/xml is the standard-library tool for
// it, justified in DESIGN.md) into a normalizedNode tree rooted at the
// document element.
func parseNormalized(doc string) (*normalizedNode, error) {
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return parseElement(dec, start)
		}
	}
}

func parseElement(dec *xml.Decoder, start xml.StartElement) (*normalizedNode, error) {
	n := &normalizedNode{
		Name:  start.Name.Local,
		Attrs: map[string]string{},
	}
	for _, a := range start.Attr {
		n.Attrs[a.Name.Local] = a.Value
	}

	var pendingText strings.Builder
	flushText := func() {
		if pendingText.Len() == 0 {
			return
		}
		t := pendingText.String()
		n.Children = append(n.Children, &normalizedNode{Text: &t})
		pendingText.Reset()
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("element <%s>: %w", n.Name, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			flushText()
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xml.EndElement:
			flushText()
			return n, nil
		case xml.CharData:
			pendingText.WriteString(string(t))
		}
	}
}
