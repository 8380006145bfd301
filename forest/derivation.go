// Package forest extracts one derivation tree from a completed Earley
// chart (spec.md §4.3): depth-first reconstruction following
// back-pointers, with a deterministic tie-break wherever an item carries
// more than one derivation.
package forest

import gram "github.com/mdubinko/earleybird/grammar"

// Kind tags the three derivation-node shapes of spec.md §4.3.
type Kind int

const (
	KindLeaf Kind = iota
	KindInsertionLeaf
	KindNode
)

// Derivation is the tagged union produced by Build. Only the fields
// relevant to Kind are populated.
type Derivation struct {
	Kind Kind

	// KindLeaf: a terminal scan.
	Rune  rune
	TMark gram.TerminalMark

	// KindInsertionLeaf.
	Text string

	// KindNode: a NonTerm advance.
	Name     string
	Mark     gram.RuleMark
	Children []*Derivation
}
