package earley

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	gram "github.com/mdubinko/earleybird/grammar"
)

// Matches evaluates a CharMatcher against one codepoint (spec.md §4.2.2).
// Unicode general-category predicates are drawn from the standard
// library's unicode.Categories table (maintained against the current
// Unicode database) rather than a hand-rolled subset, per spec.md §9's
// "implementations should draw from a maintained Unicode data source".
func Matches(m *gram.CharMatcher, c rune) bool {
	switch m.Kind {
	case gram.CMLiteral, gram.CMCodepoint:
		return c == m.Rune
	case gram.CMSet:
		return matchesAnyMember(m.Members, c)
	case gram.CMSetExclude:
		return !matchesAnyMember(m.Members, c)
	default:
		return false
	}
}

func matchesAnyMember(members []gram.SetMember, c rune) bool {
	for _, mem := range members {
		if matchesMember(mem, c) {
			return true
		}
	}
	return false
}

func matchesMember(mem gram.SetMember, c rune) bool {
	switch mem.Kind {
	case gram.MemberLiteral:
		for _, r := range mem.Runes {
			if r == c {
				return true
			}
		}
		return false
	case gram.MemberCodepoint:
		return c == mem.Rune
	case gram.MemberRange:
		return mem.From <= c && c <= mem.To
	case gram.MemberClass:
		rt, ok := unicode.Categories[mem.Class]
		if !ok {
			return false
		}
		return unicode.Is(rt, c)
	default:
		return false
	}
}

// ClassRangeTable composes the codepoints a matcher's members name into a
// single *unicode.RangeTable, for callers (e.g. diagnostics, or a driver
// wanting to describe an "expected" set as a range) that want a
// RangeTable rather than a per-rune predicate. For CMSetExclude the table
// holds the excluded members' codepoints, not their complement. Built with
// golang.org/x/text/unicode/rangetable's Merge, since a CharMatcher's
// members mix literals, single codepoints, ranges, and whole Unicode
// categories.
func ClassRangeTable(m *gram.CharMatcher) *unicode.RangeTable {
	var tables []*unicode.RangeTable
	var singles []rune

	collect := func(mem gram.SetMember) {
		switch mem.Kind {
		case gram.MemberLiteral:
			singles = append(singles, mem.Runes...)
		case gram.MemberCodepoint:
			singles = append(singles, mem.Rune)
		case gram.MemberRange:
			tables = append(tables, rangetable.New(rangeRunes(mem.From, mem.To)...))
		case gram.MemberClass:
			if rt, ok := unicode.Categories[mem.Class]; ok {
				tables = append(tables, rt)
			}
		}
	}

	switch m.Kind {
	case gram.CMLiteral, gram.CMCodepoint:
		singles = append(singles, m.Rune)
	case gram.CMSet, gram.CMSetExclude:
		for _, mem := range m.Members {
			collect(mem)
		}
	}

	tables = append(tables, rangetable.New(singles...))
	return rangetable.Merge(tables...)
}

// rangeTableSize counts the codepoints a RangeTable covers, for failure
// diagnostics (describeMatcher) that want to say how large an "expected"
// set was without enumerating its members.
func rangeTableSize(rt *unicode.RangeTable) int {
	n := 0
	rangetable.Visit(rt, func(rune) {
		n++
	})
	return n
}

// rangeRunes enumerates a-b inclusive; ixml character ranges in practice
// span modest subsets (e.g. "0"-"9", "a"-"z") rather than whole Unicode
// planes, so direct enumeration is adequate.
func rangeRunes(from, to rune) []rune {
	if to < from {
		return nil
	}
	rs := make([]rune, 0, to-from+1)
	for r := from; r <= to; r++ {
		rs = append(rs, r)
	}
	return rs
}
