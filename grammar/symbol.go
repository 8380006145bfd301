package grammar

import "fmt"

// NonTerminalId is a stable integer id for an interned nonterminal name.
// Grammars are stored as an indirect graph via this interner: rules and
// NonTerm factors refer to ids, never to each other directly, so cyclic
// references (a rule that refers to itself, directly or through a cycle)
// need no special treatment at construction time.
type NonTerminalId int

const NonTerminalIdNil = NonTerminalId(-1)

func (id NonTerminalId) Int() int {
	return int(id)
}

// interner maps nonterminal names to stable ids and back, in first-seen
// order, so error messages and the canonical printer can report names
// instead of numbers.
type interner struct {
	nameToID map[string]NonTerminalId
	idToName []string
}

func newInterner() *interner {
	return &interner{
		nameToID: map[string]NonTerminalId{},
	}
}

// intern returns the id for name, allocating a new one if name has not
// been seen before.
func (in *interner) intern(name string) NonTerminalId {
	if id, ok := in.nameToID[name]; ok {
		return id
	}
	id := NonTerminalId(len(in.idToName))
	in.nameToID[name] = id
	in.idToName = append(in.idToName, name)
	return id
}

// lookup returns the id already assigned to name, if any.
func (in *interner) lookup(name string) (NonTerminalId, bool) {
	id, ok := in.nameToID[name]
	return id, ok
}

func (in *interner) name(id NonTerminalId) string {
	if id.Int() < 0 || id.Int() >= len(in.idToName) {
		return fmt.Sprintf("<nonterminal#%d>", id)
	}
	return in.idToName[id]
}

func (in *interner) count() int {
	return len(in.idToName)
}
