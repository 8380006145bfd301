package grammar

// NullableSet records, for a lowered grammar, which nonterminals can
// derive the empty string. It is computed once at grammar load time
// (spec.md §4.2.1 "Nullability is precomputed at grammar load by fixpoint
// closure over rules") and consulted by the predictor on every prediction,
// so it must be a plain lookup, not a re-derivation.
type NullableSet struct {
	nullable map[NonTerminalId]bool
}

// IsNullable reports whether id can derive the empty string.
func (n *NullableSet) IsNullable(id NonTerminalId) bool {
	return n.nullable[id]
}

// ComputeNullable runs the fixpoint closure of spec.md §4.2.1 over a
// lowered grammar (g.Lower must already have run: every factor is
// NonTerm, Terminal, or Insertion).
func ComputeNullable(g *Grammar) *NullableSet {
	n := &NullableSet{nullable: map[NonTerminalId]bool{}}
	for {
		changed := false
		for _, r := range g.Rules {
			if n.nullable[r.Name] {
				continue
			}
			if ruleIsNullable(r, n) {
				n.nullable[r.Name] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return n
}

func ruleIsNullable(r *Rule, n *NullableSet) bool {
	for _, alt := range r.Body {
		if altIsNullable(alt, n) {
			return true
		}
	}
	return false
}

func altIsNullable(alt Alt, n *NullableSet) bool {
	for _, f := range alt {
		switch f.Kind {
		case FactorTerminal:
			return false
		case FactorInsertion:
			// Consumes no input; does not affect nullability of the rest.
			continue
		case FactorNonTerm:
			if !n.nullable[f.Name] {
				return false
			}
		default:
			panic("grammar: altIsNullable called on an un-lowered factor")
		}
	}
	return true
}
