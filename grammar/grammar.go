// Package grammar is the in-memory representation of an ixml grammar: the
// IR produced by the bootstrap parser (package grammar/parser), consumed
// by the Earley recognizer and the parse-forest builder.
package grammar

import "fmt"

// RuleMark controls how a rule's Node serializes (spec.md §3.1).
type RuleMark int

const (
	MarkDefault   RuleMark = iota // ^ (or no mark): emit an element
	MarkAttribute                 // @: emit an XML attribute on the enclosing element
	MarkHidden                    // -: suppress the wrapping element; splice children
)

func (m RuleMark) String() string {
	switch m {
	case MarkAttribute:
		return "@"
	case MarkHidden:
		return "-"
	default:
		return "^"
	}
}

// NonTerminalMark is the mark carried by a reference to a nonterminal
// inside an Alt; it overrides the referenced rule's own mark for the
// purposes of serialization at that call site. ixml only allows Default,
// Attribute, and Hidden marks on nonterminal references.
type NonTerminalMark int

const (
	NTMarkDefault NonTerminalMark = iota
	NTMarkAttribute
	NTMarkHidden
)

// TerminalMark is the mark carried by a terminal factor (a string literal
// or character-set matcher). Terminals never carry an attribute mark
// (spec.md §3.1): attributes need text content, and ixml assigns that role
// only to nonterminals.
type TerminalMark int

const (
	TMarkHidden      TerminalMark = iota // -: consumed but contributes no text
	TMarkEmitLiteral                     // ^ (or no mark): contributes matched text
)

// Grammar is an ordered sequence of Rules plus the interner that maps
// nonterminal names to stable ids. The first rule is the start symbol.
type Grammar struct {
	Rules []*Rule
	ids   *interner
}

// Rule is one production: `name (mark) : body .`
type Rule struct {
	Name NonTerminalId
	Mark RuleMark
	Body Alts

	// Synthetic is true for rules introduced by lowering (spec.md §3.1);
	// such rules are always MarkHidden and never appear in grammar source.
	Synthetic bool
}

// Alts is a non-empty ordered sequence of alternatives (grammar
// disjunction: "a | b | c").
type Alts []Alt

// Alt is a (possibly empty) ordered sequence of factors (grammar
// concatenation: "a, b, c").
type Alt []Factor

// FactorKind tags the variant held by a Factor.
type FactorKind int

const (
	FactorNonTerm FactorKind = iota
	FactorTerminal
	FactorInsertion
	FactorGroup
	FactorRepeat0
	FactorRepeat1
	FactorOption
)

// Factor is a tagged union over the seven grammar-factor variants of
// spec.md §3.1. Only the fields relevant to Kind are populated.
type Factor struct {
	Kind FactorKind

	// FactorNonTerm
	NTMark NonTerminalMark
	Name   NonTerminalId

	// FactorTerminal
	TMark   TerminalMark
	Matcher *CharMatcher

	// IllegalAttribute is set by the parser when source text placed an
	// attribute mark (@) directly before a terminal; ixml has no
	// attribute-marked terminal, so Validate rejects it (spec.md §3.1,
	// §7) rather than the parser guessing a meaning for it.
	IllegalAttribute bool

	// FactorInsertion
	InsertionText string

	// FactorGroup
	Group Alts

	// FactorRepeat0, FactorRepeat1, FactorOption
	Inner *Factor
	Sep   *Factor // nil when there is no separator
}

func nonTerm(mark NonTerminalMark, name NonTerminalId) Factor {
	return Factor{Kind: FactorNonTerm, NTMark: mark, Name: name}
}

// NewGrammar wraps a rule slice and the interner that produced its names.
// Rules is a direct reference: callers should treat ownership as moving to
// the returned Grammar.
func NewGrammar(rules []*Rule, ids *interner) *Grammar {
	return &Grammar{Rules: rules, ids: ids}
}

// StartSymbol is the first rule's name, the designated start of the
// language (spec.md §3.1).
func (g *Grammar) StartSymbol() NonTerminalId {
	if len(g.Rules) == 0 {
		return NonTerminalIdNil
	}
	return g.Rules[0].Name
}

// Name returns the source-level spelling of a nonterminal id.
func (g *Grammar) Name(id NonTerminalId) string {
	return g.ids.name(id)
}

// RuleByName finds the single rule declaring name, if any.
func (g *Grammar) RuleByName(id NonTerminalId) *Rule {
	for _, r := range g.Rules {
		if r.Name == id {
			return r
		}
	}
	return nil
}

func (g *Grammar) String() string {
	return fmt.Sprintf("Grammar{%d rules, start=%s}", len(g.Rules), g.Name(g.StartSymbol()))
}
