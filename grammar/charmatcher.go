package grammar

// CharMatcherKind tags the four surface forms a terminal matcher can take
// (spec.md §3.1): a literal codepoint, a `#hex` codepoint, an inclusive
// set, or the negation of an inclusive set.
type CharMatcherKind int

const (
	CMLiteral CharMatcherKind = iota
	CMCodepoint
	CMSet
	CMSetExclude
)

// CharMatcher is the terminal-matching predicate attached to a Terminal
// factor. CMLiteral and CMCodepoint match exactly one codepoint (a quoted
// multi-character string literal is desugared into a concatenation of
// single-codepoint CMLiteral terminals at grammar-build time, so that the
// Earley scanner's one-codepoint-per-terminal-factor invariant, spec.md
// §4.2.1, always holds). CMSet/CMSetExclude match against the union of
// their Members.
type CharMatcher struct {
	Kind CharMatcherKind
	Rune rune // CMLiteral, CMCodepoint

	Members []SetMember // CMSet, CMSetExclude
}

// SetMemberKind tags the four set-member forms of spec.md §3.1.
type SetMemberKind int

const (
	MemberLiteral SetMemberKind = iota
	MemberCodepoint
	MemberRange
	MemberClass
)

// SetMember is one element of a `[...]` or `~[...]` set. A MemberLiteral
// with more than one rune matches any one of its codepoints (spec.md
// §3.1: "matches any one of its codepoints"), not the sequence.
type SetMember struct {
	Kind SetMemberKind

	Runes []rune // MemberLiteral
	Rune  rune   // MemberCodepoint
	From  rune   // MemberRange
	To    rune   // MemberRange

	// Class is a Unicode general-category code: one uppercase letter
	// (e.g. "L", "N", "Z") optionally followed by one lowercase
	// subcategory letter (e.g. "Lu", "Nd", "Zs").
	Class string
}

func NewLiteralMatcher(r rune) *CharMatcher {
	return &CharMatcher{Kind: CMLiteral, Rune: r}
}

func NewCodepointMatcher(r rune) *CharMatcher {
	return &CharMatcher{Kind: CMCodepoint, Rune: r}
}

func NewSetMatcher(exclude bool, members []SetMember) *CharMatcher {
	kind := CMSet
	if exclude {
		kind = CMSetExclude
	}
	return &CharMatcher{Kind: kind, Members: members}
}
