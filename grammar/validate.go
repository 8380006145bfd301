package grammar

import (
	"fmt"
	"strings"
)

// ValidationErrorKind distinguishes the GrammarValidationError causes of
// spec.md §7: duplicate rule name, undefined nonterminal reference,
// illegal mark, and empty grammar.
type ValidationErrorKind int

const (
	ErrDuplicateRule ValidationErrorKind = iota
	ErrUndefinedNonTerminal
	ErrEmptyGrammar
	ErrHiddenStart
	ErrAttributeOnTerminal
)

// GrammarValidationError is one static defect found in a Grammar IR before
// it is handed to the recognizer (spec.md §7: "grammar errors are fatal at
// load time and never pass through recognition").
type GrammarValidationError struct {
	Kind   ValidationErrorKind
	Detail string
}

func (e *GrammarValidationError) Error() string {
	switch e.Kind {
	case ErrDuplicateRule:
		return fmt.Sprintf("duplicate rule: %s", e.Detail)
	case ErrUndefinedNonTerminal:
		return fmt.Sprintf("undefined nonterminal: %s", e.Detail)
	case ErrEmptyGrammar:
		return "grammar has no rules"
	case ErrHiddenStart:
		return fmt.Sprintf("start rule %q must not be marked hidden (-)", e.Detail)
	case ErrAttributeOnTerminal:
		return fmt.Sprintf("terminal cannot carry an attribute mark (@): %s", e.Detail)
	default:
		return "invalid grammar"
	}
}

// ValidationErrors aggregates every defect found by Validate so that a
// caller sees all of them at once rather than stopping at the first.
type ValidationErrors []*GrammarValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Validate checks the static invariants of spec.md §3.1 and §9: non-empty
// grammar, no redeclared rule names, every NonTerm reference resolves to
// exactly one Rule, and the start rule is not Hidden (ixml 1.0 forbids a
// hidden start, spec.md §4.4). It does not run lowering or nullability.
func Validate(g *Grammar) error {
	var errs ValidationErrors

	if len(g.Rules) == 0 {
		return ValidationErrors{{Kind: ErrEmptyGrammar}}
	}

	seen := map[NonTerminalId]bool{}
	declared := map[NonTerminalId]bool{}
	for _, r := range g.Rules {
		declared[r.Name] = true
	}
	for _, r := range g.Rules {
		if seen[r.Name] {
			errs = append(errs, &GrammarValidationError{Kind: ErrDuplicateRule, Detail: g.Name(r.Name)})
			continue
		}
		seen[r.Name] = true
	}

	if g.Rules[0].Mark == MarkHidden {
		errs = append(errs, &GrammarValidationError{Kind: ErrHiddenStart, Detail: g.Name(g.Rules[0].Name)})
	}

	var walkAlts func(Alts)
	var walkFactor func(Factor)
	walkFactor = func(f Factor) {
		switch f.Kind {
		case FactorNonTerm:
			if !declared[f.Name] {
				errs = append(errs, &GrammarValidationError{Kind: ErrUndefinedNonTerminal, Detail: g.Name(f.Name)})
			}
		case FactorTerminal:
			if f.IllegalAttribute {
				errs = append(errs, &GrammarValidationError{Kind: ErrAttributeOnTerminal, Detail: "@ before a terminal"})
			}
		case FactorGroup:
			walkAlts(f.Group)
		case FactorRepeat0, FactorRepeat1, FactorOption:
			if f.Inner != nil {
				walkFactor(*f.Inner)
			}
			if f.Sep != nil {
				walkFactor(*f.Sep)
			}
		}
	}
	walkAlts = func(alts Alts) {
		for _, alt := range alts {
			for _, f := range alt {
				walkFactor(f)
			}
		}
	}
	for _, r := range g.Rules {
		walkAlts(r.Body)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
