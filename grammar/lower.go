package grammar

import "fmt"

// Lower replaces every compound factor (Group, Repeat0, Repeat1, Option)
// in the grammar with a reference to a fresh synthetic nonterminal, and
// appends the synthetic rules to g.Rules (spec.md §3.1 Normalization).
// After Lower returns, every Factor reachable from g.Rules is one of
// NonTerm, Terminal, or Insertion. Lower must run exactly once, after
// parsing and before nullability analysis or recognition.
func (g *Grammar) Lower() {
	l := &lowerer{g: g}
	for _, r := range g.Rules {
		r.Body = l.alts(r.Body)
	}
	g.Rules = append(g.Rules, l.extra...)
}

type lowerer struct {
	g       *Grammar
	extra   []*Rule
	counter int
}

func (l *lowerer) freshName() NonTerminalId {
	l.counter++
	return l.g.ids.intern(fmt.Sprintf("%%%d", l.counter))
}

func (l *lowerer) addSynthetic(id NonTerminalId, body Alts) {
	l.extra = append(l.extra, &Rule{Name: id, Mark: MarkHidden, Body: body, Synthetic: true})
}

func (l *lowerer) alts(alts Alts) Alts {
	out := make(Alts, len(alts))
	for i, alt := range alts {
		newAlt := make(Alt, len(alt))
		for j, f := range alt {
			newAlt[j] = l.factor(f)
		}
		out[i] = newAlt
	}
	return out
}

func (l *lowerer) factor(f Factor) Factor {
	switch f.Kind {
	case FactorNonTerm, FactorTerminal, FactorInsertion:
		return f

	case FactorGroup:
		// Group(A) -> fresh R = A, Hidden.
		id := l.freshName()
		l.addSynthetic(id, l.alts(f.Group))
		return nonTerm(NTMarkDefault, id)

	case FactorOption:
		// Option(F) -> fresh R_opt = F | (), Hidden.
		inner := l.factor(*f.Inner)
		id := l.freshName()
		l.addSynthetic(id, Alts{Alt{inner}, Alt{}})
		return nonTerm(NTMarkDefault, id)

	case FactorRepeat0:
		inner := l.factor(*f.Inner)
		id := l.freshName()
		if f.Sep == nil {
			// Repeat0(F, None) -> R = () | F, R, Hidden.
			l.addSynthetic(id, Alts{Alt{}, Alt{inner, nonTerm(NTMarkDefault, id)}})
		} else {
			// Repeat0(F, Some(S)) -> R = () | F, (S, F)* (recursively lowered), Hidden.
			star := l.factor(Factor{
				Kind:  FactorRepeat0,
				Inner: &Factor{Kind: FactorGroup, Group: Alts{Alt{*f.Sep, *f.Inner}}},
			})
			l.addSynthetic(id, Alts{Alt{}, Alt{inner, star}})
		}
		return nonTerm(NTMarkDefault, id)

	case FactorRepeat1:
		inner := l.factor(*f.Inner)
		id := l.freshName()
		if f.Sep == nil {
			// Repeat1(F, None) -> R = F, R?, Hidden.
			opt := l.factor(Factor{Kind: FactorOption, Inner: &Factor{Kind: FactorNonTerm, NTMark: NTMarkDefault, Name: id}})
			l.addSynthetic(id, Alts{Alt{inner, opt}})
		} else {
			// Repeat1(F, Some(S)) -> R = F, (S, F)*, Hidden.
			star := l.factor(Factor{
				Kind:  FactorRepeat0,
				Inner: &Factor{Kind: FactorGroup, Group: Alts{Alt{*f.Sep, *f.Inner}}},
			})
			l.addSynthetic(id, Alts{Alt{inner, star}})
		}
		return nonTerm(NTMarkDefault, id)

	default:
		panic(fmt.Sprintf("grammar: unknown factor kind %d during lowering", f.Kind))
	}
}
