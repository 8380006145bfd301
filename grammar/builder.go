package grammar

// Builder assembles a Grammar incrementally, interning nonterminal names
// as they are encountered. It is the handle the hand-written ixml-grammar
// parser (package grammar/parser) uses to produce a Grammar IR without
// reaching into grammar's unexported interner directly.
type Builder struct {
	ids   *interner
	rules []*Rule
}

func NewBuilder() *Builder {
	return &Builder{ids: newInterner()}
}

// Intern returns the stable id for name, allocating one on first use. A
// NonTerm factor and the Rule that declares the same name always agree on
// id because both go through Intern.
func (b *Builder) Intern(name string) NonTerminalId {
	return b.ids.intern(name)
}

// Lookup returns the id already assigned to name without allocating one.
func (b *Builder) Lookup(name string) (NonTerminalId, bool) {
	return b.ids.lookup(name)
}

func (b *Builder) AddRule(r *Rule) {
	b.rules = append(b.rules, r)
}

// NonTerm builds a NonTerm factor referencing name, interning it if new.
func (b *Builder) NonTerm(mark NonTerminalMark, name string) Factor {
	return nonTerm(mark, b.Intern(name))
}

// Build validates and returns the assembled Grammar. It does not lower
// compound factors or compute nullability: callers run grammar.Lower and
// grammar.ComputeNullable explicitly so that a caller inspecting a freshly
// parsed (but not yet lowered) Grammar — e.g. grammar.Print — sees the
// original source-shaped factors.
func (b *Builder) Build() (*Grammar, error) {
	g := &Grammar{Rules: b.rules, ids: b.ids}
	if err := Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}
