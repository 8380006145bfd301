package earley

import (
	"fmt"
	"sort"
	"strconv"

	gram "github.com/mdubinko/earleybird/grammar"
)

// Chart is the result of a successful or failed recognition run: every
// column built, the input it ran over, and the grammar it ran against.
// The tree builder (package forest) walks a Chart's back-pointers; it
// never re-runs recognition.
type Chart struct {
	Grammar *gram.Grammar
	Input   []rune
	Columns []*Column
}

// ParseFailure is the ParseFailure error kind of spec.md §7: input not in
// the language, reported with the furthest-reach position, the set of
// terminal descriptions that would have continued the parse there, and
// the actual codepoint (or EOF) found.
type ParseFailure struct {
	FurthestPos int
	Expected    []string
	Actual      string // "<EOF>" or a quoted rune
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parse failure at %d: expected one of %v, found %s", e.FurthestPos, e.Expected, e.Actual)
}

// Recognize runs the Earley recognizer of spec.md §4.2.1 over input under
// g (already lowered) using precomputed nullability. sink may be nil. It
// returns the built Chart regardless of success so that a caller wanting
// diagnostics (furthest reach, partial structure) can inspect it even
// after a failure; Accepted reports whether recognition actually
// succeeded.
func Recognize(g *gram.Grammar, nullable *gram.NullableSet, input []rune, sink Sink) *Chart {
	n := len(input)
	cols := make([]*Column, n+1)
	for i := range cols {
		cols[i] = newColumn(i)
	}

	start := g.Rules[0]
	for altIdx, alt := range start.Body {
		cols[0].add(start.Name, altIdx, alt, 0, 0, start)
	}

	for k := 0; k <= n; k++ {
		col := cols[k]
		for i := 0; i < len(col.Items); i++ {
			it := col.Items[i]
			nf := it.NextFactor()
			if nf == nil {
				completeItem(g, cols, k, it, sink)
				continue
			}
			switch nf.Kind {
			case gram.FactorNonTerm:
				predict(g, nullable, cols, k, it, nf, sink)
			case gram.FactorTerminal:
				if k < n {
					scan(cols, k, it, nf, input[k], sink)
				}
			case gram.FactorInsertion:
				insert(cols, k, it, nf)
			}
		}
	}

	return &Chart{Grammar: g, Input: input, Columns: cols}
}

func predict(g *gram.Grammar, nullable *gram.NullableSet, cols []*Column, k int, it *Item, nf *gram.Factor, sink Sink) {
	rule := g.RuleByName(nf.Name)
	if rule == nil {
		return // undefined nonterminal; grammar.Validate should already have rejected this
	}
	for altIdx, alt := range rule.Body {
		cols[k].add(rule.Name, altIdx, alt, 0, k, rule)
		if sink != nil {
			sink.Trace(Event{Op: OpPredictor, Pos: k, Rule: rule.Name, AltIdx: altIdx, Dot: 0, Origin: k})
		}
	}
	if nullable.IsNullable(nf.Name) {
		advanced, _ := cols[k].add(it.Rule.Name, it.AltIdx, it.Alt, it.Dot+1, it.Origin, it.Rule)
		advanced.Sources = append(advanced.Sources, Source{Kind: SourceNullable, Predecessor: it, ChildRule: rule})
	}
}

func scan(cols []*Column, k int, it *Item, nf *gram.Factor, c rune, sink Sink) {
	if sink != nil {
		sink.Trace(Event{Op: OpScanner, Pos: k, Rule: it.Rule.Name, AltIdx: it.AltIdx, Dot: it.Dot, Origin: it.Origin, Matched: c, HasRune: true})
	}
	if !Matches(nf.Matcher, c) {
		return
	}
	advanced, _ := cols[k+1].add(it.Rule.Name, it.AltIdx, it.Alt, it.Dot+1, it.Origin, it.Rule)
	advanced.Sources = append(advanced.Sources, Source{Kind: SourceScan, Predecessor: it, Rune: c})
	if sink != nil {
		sink.Trace(Event{Op: OpScannerMatch, Pos: k, Rule: it.Rule.Name, AltIdx: it.AltIdx, Dot: it.Dot, Origin: it.Origin, Matched: c, HasRune: true})
	}
}

func insert(cols []*Column, k int, it *Item, nf *gram.Factor) {
	advanced, _ := cols[k].add(it.Rule.Name, it.AltIdx, it.Alt, it.Dot+1, it.Origin, it.Rule)
	advanced.Sources = append(advanced.Sources, Source{Kind: SourceInsertion, Predecessor: it, Insertion: nf.InsertionText})
}

func completeItem(g *gram.Grammar, cols []*Column, k int, completed *Item, sink Sink) {
	origin := completed.Origin
	waiting := cols[origin].waiting[completed.Rule.Name]
	for _, w := range waiting {
		advanced, _ := cols[k].add(w.Rule.Name, w.AltIdx, w.Alt, w.Dot+1, w.Origin, w.Rule)
		advanced.Sources = append(advanced.Sources, Source{Kind: SourceComplete, Predecessor: w, Child: completed, ChildRule: completed.Rule})
		if sink != nil {
			sink.Trace(Event{Op: OpCompleter, Pos: k, Rule: w.Rule.Name, AltIdx: w.AltIdx, Dot: w.Dot + 1, Origin: w.Origin})
		}
	}
}

// Accepted reports whether some Item in the last column is a completed
// start-rule Item with origin 0 (spec.md §4.2.1).
// Accepted reports whether the start rule completed across the whole
// input, returning the completed start Item. When the start rule has
// more than one alternative completing at this column, the one with the
// smallest AltIdx is returned, matching the tree builder's own tie-break
// rule 1 (spec.md §4.3) so the root is chosen by the same rule as every
// other ambiguous item.
func (c *Chart) Accepted() (*Item, bool) {
	start := c.Grammar.Rules[0]
	last := c.Columns[len(c.Columns)-1]
	var best *Item
	for _, it := range last.Items {
		if it.Rule.Name != start.Name || it.Origin != 0 || !it.Complete() {
			continue
		}
		if best == nil || it.AltIdx < best.AltIdx {
			best = it
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// Failure builds the ParseFailure of spec.md §4.2.3 for a chart that did
// not accept: the furthest column with any items, the terminals expected
// there, and the actual input at that position.
func (c *Chart) Failure() *ParseFailure {
	furthest := 0
	for i := len(c.Columns) - 1; i >= 0; i-- {
		if len(c.Columns[i].Items) > 0 {
			furthest = i
			break
		}
	}

	expectedSet := map[string]bool{}
	for _, it := range c.Columns[furthest].Items {
		nf := it.NextFactor()
		if nf != nil && nf.Kind == gram.FactorTerminal {
			expectedSet[describeMatcher(nf.Matcher)] = true
		}
	}
	expected := make([]string, 0, len(expectedSet))
	for s := range expectedSet {
		expected = append(expected, s)
	}
	sort.Strings(expected)

	actual := "<EOF>"
	if furthest < len(c.Input) {
		actual = strconv.QuoteRune(c.Input[furthest])
	}

	return &ParseFailure{FurthestPos: furthest, Expected: expected, Actual: actual}
}

func describeMatcher(m *gram.CharMatcher) string {
	switch m.Kind {
	case gram.CMLiteral:
		return strconv.QuoteRune(m.Rune)
	case gram.CMCodepoint:
		return fmt.Sprintf("#%x", m.Rune)
	case gram.CMSet:
		return fmt.Sprintf("a character in a set of %d codepoints", rangeTableSize(ClassRangeTable(m)))
	case gram.CMSetExclude:
		return fmt.Sprintf("a character outside a set of %d codepoints", rangeTableSize(ClassRangeTable(m)))
	default:
		return "?"
	}
}
