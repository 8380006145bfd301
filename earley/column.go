package earley

import gram "github.com/mdubinko/earleybird/grammar"

// Column is one chart position C[k]: items in discovery order (so the
// fixpoint loop can keep processing items appended mid-iteration) plus a
// dedup index and a waiting-list index keyed by the NonTerm a given item
// is stalled on, so the completer need not rescan the whole column.
type Column struct {
	Pos     int
	Items   []*Item
	byKey   map[itemKey]*Item
	waiting map[gram.NonTerminalId][]*Item
}

func newColumn(pos int) *Column {
	return &Column{
		Pos:     pos,
		byKey:   make(map[itemKey]*Item),
		waiting: make(map[gram.NonTerminalId][]*Item),
	}
}

// add inserts an item identified by (ruleName, altIdx, dot, origin) if not
// already present, returning the canonical *Item (new or pre-existing)
// and whether it was newly added — callers append a Source to its Sources
// either way, since a pre-existing item can still gain a new derivation.
func (c *Column) add(ruleName gram.NonTerminalId, altIdx int, alt gram.Alt, dot, origin int, rule *gram.Rule) (*Item, bool) {
	k := key(ruleName, altIdx, dot, origin)
	if existing, ok := c.byKey[k]; ok {
		return existing, false
	}
	it := &Item{Rule: rule, AltIdx: altIdx, Alt: alt, Dot: dot, Origin: origin}
	c.byKey[k] = it
	c.Items = append(c.Items, it)
	if nf := it.NextFactor(); nf != nil && nf.Kind == gram.FactorNonTerm {
		c.waiting[nf.Name] = append(c.waiting[nf.Name], it)
	}
	return it, true
}
