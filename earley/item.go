// Package earley implements the chart-based Earley recognizer of
// spec.md §4.2: predictor/scanner/completer run to fixpoint per column
// over a lowered Grammar IR, with nullable-aware prediction so that
// completions through empty-deriving nonterminals are never missed.
package earley

import (
	"github.com/cnf/structhash"

	gram "github.com/mdubinko/earleybird/grammar"
)

// Item is a dotted production: rule Name, the Alt it is scanning (by
// index, so back-pointers can cite "alt 0 of rule X" for the tree
// builder's tie-break), a dot position into that Alt, and the column the
// item originated in.
type Item struct {
	Rule   *gram.Rule
	AltIdx int
	Alt    gram.Alt
	Dot    int
	Origin int

	// Sources accumulates every way this item (identified by the
	// Rule/AltIdx/Dot/Origin quadruple) was derived, in the order
	// discovered. More than one source means the grammar is ambiguous at
	// this item; the tree builder's tie-break (spec.md §4.3) picks among
	// them deterministically rather than the recognizer picking eagerly.
	Sources []Source
}

// SourceKind tags how one Item was advanced into another.
type SourceKind int

const (
	// SourceScan: the dot moved past a Terminal factor by matching a
	// codepoint of the input.
	SourceScan SourceKind = iota
	// SourceComplete: the dot moved past a NonTerm factor because some
	// other Item (Child) completed at this position.
	SourceComplete
	// SourceInsertion: the dot moved past an Insertion factor, which
	// consumes no input.
	SourceInsertion
	// SourceNullable: the dot moved past a NonTerm factor known to be
	// nullable, without a concrete completing Item (Aycock-Horspool
	// nullable prediction, spec.md §4.2.1/§9).
	SourceNullable
)

// Source is one back-pointer: Predecessor is the item before the dot
// advanced (always set, since every advanced item comes from one), and
// the other fields are meaningful as selected by Kind: Rune for
// SourceScan, Child and ChildRule for SourceComplete, ChildRule for
// SourceNullable, Insertion for SourceInsertion.
type Source struct {
	Kind        SourceKind
	Predecessor *Item
	Rune        rune   // SourceScan
	Child       *Item  // SourceComplete: the completed sub-item
	Insertion   string // SourceInsertion
	ChildRule   *gram.Rule // SourceComplete, SourceNullable: rule completed/skipped
}

// Complete reports whether the dot has reached the end of the Alt.
func (it *Item) Complete() bool {
	return it.Dot >= len(it.Alt)
}

// NextFactor returns the factor immediately after the dot, or nil if the
// item is complete.
func (it *Item) NextFactor() *gram.Factor {
	if it.Complete() {
		return nil
	}
	return &it.Alt[it.Dot]
}

type itemKey string

// key computes a dedup key from the quadruple that defines item identity
// in the chart (spec.md §4.2.4: "item deduplication is essential").
// Grounded on npillmayer/gorgo/lr/earley's hash(item, stateno) pattern:
// hash an anonymous struct of the identifying fields via structhash.
func key(ruleName gram.NonTerminalId, altIdx, dot, origin int) itemKey {
	h, err := structhash.Hash(struct {
		Rule   gram.NonTerminalId
		AltIdx int
		Dot    int
		Origin int
	}{ruleName, altIdx, dot, origin}, 1)
	if err != nil {
		panic(err)
	}
	return itemKey(h)
}
