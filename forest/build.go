package forest

import (
	"github.com/mdubinko/earleybird/earley"
	gram "github.com/mdubinko/earleybird/grammar"
)

// Build extracts the single derivation tree required by spec.md §4.3 from
// a recognized Chart: the completed start Item in the last column with
// origin 0. If the chart did not accept, it returns the chart's
// *earley.ParseFailure.
func Build(c *earley.Chart) (*Derivation, error) {
	start, ok := c.Accepted()
	if !ok {
		return nil, c.Failure()
	}
	return buildNode(c, start), nil
}

// buildNode reconstructs the Node for a completed Item, using the Item's
// own rule for name/mark; a caller referencing this item through a
// NonTerm factor applies any mark override itself (spec.md §3.1: a
// reference's mark overrides the referenced rule's own mark at that call
// site).
func buildNode(c *earley.Chart, it *earley.Item) *Derivation {
	return &Derivation{
		Kind:     KindNode,
		Name:     c.Grammar.Name(it.Rule.Name),
		Mark:     it.Rule.Mark,
		Children: flattenAlt(c, it),
	}
}

// flattenAlt walks an item's Predecessor chain from its completed dot back
// to dot 0, in reverse, to recover its children in left-to-right order.
func flattenAlt(c *earley.Chart, it *earley.Item) []*Derivation {
	if it.Dot == 0 {
		return nil
	}
	src, ok := chooseSource(it)
	if !ok {
		return nil
	}

	var prefix []*Derivation
	if src.Predecessor != nil {
		prefix = flattenAlt(c, src.Predecessor)
	}

	factor := it.Alt[it.Dot-1]
	var child *Derivation
	switch src.Kind {
	case earley.SourceScan:
		child = &Derivation{Kind: KindLeaf, Rune: src.Rune, TMark: factor.TMark}
	case earley.SourceInsertion:
		child = &Derivation{Kind: KindInsertionLeaf, Text: src.Insertion}
	case earley.SourceComplete:
		child = buildNode(c, src.Child)
		applyReferenceMark(child, factor.NTMark)
	case earley.SourceNullable:
		child = &Derivation{Kind: KindNode, Name: c.Grammar.Name(src.ChildRule.Name), Mark: src.ChildRule.Mark}
		applyReferenceMark(child, factor.NTMark)
	}

	return append(prefix, child)
}

// applyReferenceMark overrides a Node's mark when the factor that
// referenced it carried an explicit nonterminal mark, rather than relying
// on the referenced rule's own declared mark.
func applyReferenceMark(d *Derivation, ntMark gram.NonTerminalMark) {
	switch ntMark {
	case gram.NTMarkAttribute:
		d.Mark = gram.MarkAttribute
	case gram.NTMarkHidden:
		d.Mark = gram.MarkHidden
	}
}

// chooseSource applies the deterministic tie-break of spec.md §4.3 among
// an item's competing derivations. A SourceNullable placeholder is only
// ever a stand-in for a real completion that the recognizer could not
// guarantee would fire before this item was created (the
// Aycock-Horspool nullable-advance, see package earley); whenever a real
// completion is also present, it is always preferred, since it alone can
// carry structure (e.g. an insertion nested in an otherwise-empty
// alternative contributes output text that the placeholder cannot).
// Among remaining real sources, rule 1 (earlier alt index) discriminates
// first. Rule 2 (longest match) then discriminates sources that tie on
// alt index but whose completed child started in different columns: the
// item itself lives at one fixed column, so the child starting earliest
// (smallest Origin) spans the most input. Rule 3 (first discovered wins)
// is Go's stable append order.
func chooseSource(it *earley.Item) (earley.Source, bool) {
	if len(it.Sources) == 0 {
		return earley.Source{}, false
	}
	best := it.Sources[0]
	for _, s := range it.Sources[1:] {
		if betterSource(s, best) {
			best = s
		}
	}
	return best, true
}

func betterSource(s, best earley.Source) bool {
	sReal := s.Kind != earley.SourceNullable
	bestReal := best.Kind != earley.SourceNullable
	if sReal != bestReal {
		return sReal
	}
	if s.Kind == earley.SourceComplete && best.Kind == earley.SourceComplete {
		if s.Child.AltIdx != best.Child.AltIdx {
			return s.Child.AltIdx < best.Child.AltIdx
		}
		return s.Child.Origin < best.Child.Origin
	}
	return false
}
