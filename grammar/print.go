package grammar

import (
	"fmt"
	"strings"
)

// Print renders a Grammar back to ixml source syntax. It is the canonical
// printer required by spec.md §8's round-trip property: re-parsing
// Print(G) yields an IR equivalent to G for a G that has not been lowered.
// Synthetic rules introduced by Lower are omitted, and a reference to one
// prints under its generated name (e.g. %1), which the parser does not
// accept, so a lowered Grammar does not round-trip.
func Print(g *Grammar) string {
	var b strings.Builder
	for _, r := range g.Rules {
		if r.Synthetic {
			continue
		}
		printRule(&b, g, r)
	}
	return b.String()
}

func printRule(b *strings.Builder, g *Grammar, r *Rule) {
	fmt.Fprintf(b, "%s%s: ", r.Mark.String(), g.Name(r.Name))
	printAlts(b, g, r.Body)
	fmt.Fprint(b, ".\n")
}

func printAlts(b *strings.Builder, g *Grammar, alts Alts) {
	for i, alt := range alts {
		if i > 0 {
			fmt.Fprint(b, " | ")
		}
		printAlt(b, g, alt)
	}
}

func printAlt(b *strings.Builder, g *Grammar, alt Alt) {
	for i, f := range alt {
		if i > 0 {
			fmt.Fprint(b, ", ")
		}
		printFactor(b, g, f)
	}
}

func printFactor(b *strings.Builder, g *Grammar, f Factor) {
	switch f.Kind {
	case FactorNonTerm:
		switch f.NTMark {
		case NTMarkAttribute:
			fmt.Fprint(b, "@")
		case NTMarkHidden:
			fmt.Fprint(b, "-")
		}
		fmt.Fprint(b, g.Name(f.Name))
	case FactorTerminal:
		if f.TMark == TMarkHidden {
			fmt.Fprint(b, "-")
		}
		printMatcher(b, f.Matcher)
	case FactorInsertion:
		fmt.Fprintf(b, "+%s", quoteString(f.InsertionText))
	case FactorGroup:
		fmt.Fprint(b, "(")
		printAlts(b, g, f.Group)
		fmt.Fprint(b, ")")
	case FactorOption:
		printFactor(b, g, *f.Inner)
		fmt.Fprint(b, "?")
	case FactorRepeat0:
		printFactor(b, g, *f.Inner)
		if f.Sep != nil {
			fmt.Fprint(b, "**")
			printFactor(b, g, *f.Sep)
		} else {
			fmt.Fprint(b, "*")
		}
	case FactorRepeat1:
		printFactor(b, g, *f.Inner)
		if f.Sep != nil {
			fmt.Fprint(b, "++")
			printFactor(b, g, *f.Sep)
		} else {
			fmt.Fprint(b, "+")
		}
	}
}

func printMatcher(b *strings.Builder, m *CharMatcher) {
	switch m.Kind {
	case CMLiteral:
		fmt.Fprint(b, quoteString(string(m.Rune)))
	case CMCodepoint:
		fmt.Fprintf(b, "#%x", m.Rune)
	case CMSet, CMSetExclude:
		if m.Kind == CMSetExclude {
			fmt.Fprint(b, "~")
		}
		fmt.Fprint(b, "[")
		for i, mem := range m.Members {
			if i > 0 {
				fmt.Fprint(b, "; ")
			}
			printMember(b, mem)
		}
		fmt.Fprint(b, "]")
	}
}

func printMember(b *strings.Builder, m SetMember) {
	switch m.Kind {
	case MemberLiteral:
		fmt.Fprint(b, quoteString(string(m.Runes)))
	case MemberCodepoint:
		fmt.Fprintf(b, "#%x", m.Rune)
	case MemberRange:
		fmt.Fprintf(b, "%s-%s", quoteString(string(m.From)), quoteString(string(m.To)))
	case MemberClass:
		fmt.Fprint(b, m.Class)
	}
}

// quoteString picks the `"`-delimiter unless the text contains a double
// quote and no single quote, doubling any occurrence of the chosen
// delimiter, per
// spec.md §4.1's doubled-delimiter escape.
func quoteString(s string) string {
	delim := `"`
	if strings.Contains(s, `"`) && !strings.Contains(s, `'`) {
		delim = `'`
	}
	escaped := strings.ReplaceAll(s, delim, delim+delim)
	return delim + escaped + delim
}
