// Package parser is the hand-written bootstrap parser for ixml grammar
// text (spec.md §4.1): recursive descent over a small hand-rolled lexer,
// producing a grammar.Grammar directly (via grammar.Builder) rather than
// an intermediate syntax tree, so that the same engine that recognizes
// ordinary ixml input could later, reflexively, recognize grammar text
// itself against the ixml meta-grammar without this package changing its
// public shape.
package parser

import (
	"io"

	gram "github.com/mdubinko/earleybird/grammar"
)

// Parse reads ixml grammar source and returns its Grammar IR, not yet
// lowered (grammar.Lower must run before recognition) or validated for
// nullability.
func Parse(src io.Reader) (*gram.Grammar, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	p := &parser{lex: lex, b: gram.NewBuilder()}
	if err := p.parseGrammar(); err != nil {
		return nil, err
	}
	return p.b.Build()
}

type parser struct {
	lex     *lexer
	peeked  *token
	b       *gram.Builder
	lastPos Position
}

func (p *parser) peek() (*token, error) {
	if p.peeked == nil {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		p.peeked = tok
	}
	return p.peeked, nil
}

func (p *parser) next() (*token, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	p.peeked = nil
	p.lastPos = tok.pos
	return tok, nil
}

func (p *parser) is(kind tokenKind) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	return tok.kind == kind, nil
}

// consume reports whether the next token has the given kind, advancing
// past it if so.
func (p *parser) consume(kind tokenKind) (bool, error) {
	ok, err := p.is(kind)
	if err != nil || !ok {
		return false, err
	}
	_, err = p.next()
	return true, err
}

func (p *parser) expect(kind tokenKind, expected string) (*token, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != kind {
		return nil, &SyntaxError{Position: tok.pos, Expected: expected, Found: describe(tok)}
	}
	return tok, nil
}

func (p *parser) parseGrammar() error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.kind == tokEOF {
			return nil
		}
		if err := p.parseRule(); err != nil {
			return err
		}
	}
}

// parseRuleMark consumes an optional rule-position mark (spec.md §3.1):
// '^' Default, '@' Attribute, '-' Hidden. Absence also means Default.
func (p *parser) parseRuleMark() (gram.RuleMark, error) {
	tok, err := p.peek()
	if err != nil {
		return gram.MarkDefault, err
	}
	switch tok.kind {
	case tokCaret:
		p.next()
		return gram.MarkDefault, nil
	case tokAt:
		p.next()
		return gram.MarkAttribute, nil
	case tokDash:
		p.next()
		return gram.MarkHidden, nil
	default:
		return gram.MarkDefault, nil
	}
}

func (p *parser) parseRule() error {
	mark, err := p.parseRuleMark()
	if err != nil {
		return err
	}

	nameTok, err := p.expect(tokID, "a rule name")
	if err != nil {
		return err
	}
	name := p.b.Intern(nameTok.text)

	sepTok, err := p.next()
	if err != nil {
		return err
	}
	if sepTok.kind != tokColon && sepTok.kind != tokEquals {
		return &SyntaxError{Position: sepTok.pos, Expected: "':' or '='", Found: describe(sepTok)}
	}

	alts, err := p.parseAlts()
	if err != nil {
		return err
	}

	if _, err := p.expect(tokDot, "'.'"); err != nil {
		return err
	}

	p.b.AddRule(&gram.Rule{Name: name, Mark: mark, Body: alts})
	return nil
}

// atAltEnd reports whether the next token legally ends an alt: another
// alt ('|'), the rule terminator ('.'), the close of an enclosing group
// (')'), or end of input.
func (p *parser) atAltEnd() (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	switch tok.kind {
	case tokPipe, tokDot, tokRParen, tokEOF:
		return true, nil
	default:
		return false, nil
	}
}

func (p *parser) parseAlts() (gram.Alts, error) {
	alt, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	alts := gram.Alts{alt}
	for {
		ok, err := p.consume(tokPipe)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		alt, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
	}
	return alts, nil
}

func (p *parser) parseAlt() (gram.Alt, error) {
	var alt gram.Alt
	for {
		end, err := p.atAltEnd()
		if err != nil {
			return nil, err
		}
		if end {
			break
		}
		f, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		alt = append(alt, f...)

		ok, err := p.consume(tokComma)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	return alt, nil
}

// parseFactor parses one source-level factor and returns it as one or
// more grammar.Factor values to splice into the enclosing Alt: a
// multi-codepoint string literal desugars into several single-codepoint
// Terminal factors unless a postfix repeat operator requires treating the
// whole literal as one repeatable unit, in which case it is wrapped in a
// FactorGroup instead.
func (p *parser) parseFactor() ([]gram.Factor, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	var f gram.Factor
	var multi []gram.Factor // set instead of f when a bare literal need not be grouped

	switch tok.kind {
	case tokPlus:
		p.next()
		insTok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch insTok.kind {
		case tokString:
			return []gram.Factor{{Kind: gram.FactorInsertion, InsertionText: insTok.text}}, nil
		case tokHash:
			return []gram.Factor{{Kind: gram.FactorInsertion, InsertionText: string(insTok.rune)}}, nil
		default:
			return nil, &SyntaxError{Position: insTok.pos, Expected: "a string literal or #hex after '+'", Found: describe(insTok)}
		}

	case tokLParen:
		p.next()
		alts, err := p.parseAlts()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		f = gram.Factor{Kind: gram.FactorGroup, Group: alts}

	case tokAt, tokDash:
		isAttr := tok.kind == tokAt
		p.next()
		following, err := p.peek()
		if err != nil {
			return nil, err
		}
		if following.kind == tokID {
			idTok, _ := p.next()
			ntMark := gram.NTMarkAttribute
			if !isAttr {
				ntMark = gram.NTMarkHidden
			}
			f = p.b.NonTerm(ntMark, idTok.text)
		} else {
			tmark := gram.TMarkEmitLiteral
			if !isAttr {
				tmark = gram.TMarkHidden
			}
			var err error
			f, multi, err = p.parseTerminalBody(tmark)
			if err != nil {
				return nil, err
			}
			if isAttr {
				if multi != nil {
					for i := range multi {
						multi[i].IllegalAttribute = true
					}
				} else {
					f.IllegalAttribute = true
				}
			}
		}

	case tokCaret:
		p.next()
		// '^' may prefix either a terminal or a nonterminal reference;
		// the following token disambiguates.
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.kind == tokID {
			idTok, _ := p.next()
			f = p.b.NonTerm(gram.NTMarkDefault, idTok.text)
		} else {
			f, multi, err = p.parseTerminal(gram.TMarkEmitLiteral)
			if err != nil {
				return nil, err
			}
		}

	case tokID:
		p.next()
		f = p.b.NonTerm(gram.NTMarkDefault, tok.text)

	case tokString, tokHash, tokLBracket, tokTilde:
		var err error
		f, multi, err = p.parseTerminal(gram.TMarkEmitLiteral)
		if err != nil {
			return nil, err
		}

	default:
		return nil, &SyntaxError{Position: tok.pos, Expected: "a factor", Found: describe(tok)}
	}

	if multi != nil {
		return p.applyRepeatToMulti(multi)
	}

	f, err = p.parsePostfix(f)
	if err != nil {
		return nil, err
	}
	return []gram.Factor{f}, nil
}

// parseTerminal handles a terminal-position factor: an optional leading
// '-' (Hidden), then a string literal, a `#hex` codepoint, or a `[...]`/
// `~[...]` set. It returns either a single Factor (hash, set, or a
// single-codepoint string) or, for a multi-codepoint string literal, nil
// plus the desugared per-codepoint Factor slice.
func (p *parser) parseTerminal(mark gram.TerminalMark) (gram.Factor, []gram.Factor, error) {
	tok, err := p.peek()
	if err != nil {
		return gram.Factor{}, nil, err
	}
	if tok.kind == tokDash {
		p.next()
		return p.parseTerminal(gram.TMarkHidden)
	}
	return p.parseTerminalBody(mark)
}

// parseTerminalBody parses the string/hash/set body of a terminal without
// checking for a leading '-': used when the caller (parseFactor) has
// already consumed a leading mark token itself, so it can tell an
// attribute-marked terminal (illegal, spec.md §3.1) apart from an
// attribute-marked nonterminal reference.
func (p *parser) parseTerminalBody(mark gram.TerminalMark) (gram.Factor, []gram.Factor, error) {
	tok, err := p.peek()
	if err != nil {
		return gram.Factor{}, nil, err
	}

	switch tok.kind {
	case tokString:
		p.next()
		runes := []rune(tok.text)
		if len(runes) == 1 {
			return gram.Factor{Kind: gram.FactorTerminal, TMark: mark, Matcher: gram.NewLiteralMatcher(runes[0])}, nil, nil
		}
		factors := make([]gram.Factor, len(runes))
		for i, r := range runes {
			factors[i] = gram.Factor{Kind: gram.FactorTerminal, TMark: mark, Matcher: gram.NewLiteralMatcher(r)}
		}
		return gram.Factor{}, factors, nil

	case tokHash:
		p.next()
		return gram.Factor{Kind: gram.FactorTerminal, TMark: mark, Matcher: gram.NewCodepointMatcher(tok.rune)}, nil, nil

	case tokTilde:
		p.next()
		if _, err := p.expect(tokLBracket, "'[' after '~'"); err != nil {
			return gram.Factor{}, nil, err
		}
		members, err := p.parseMembers()
		if err != nil {
			return gram.Factor{}, nil, err
		}
		return gram.Factor{Kind: gram.FactorTerminal, TMark: mark, Matcher: gram.NewSetMatcher(true, members)}, nil, nil

	case tokLBracket:
		p.next()
		members, err := p.parseMembers()
		if err != nil {
			return gram.Factor{}, nil, err
		}
		return gram.Factor{Kind: gram.FactorTerminal, TMark: mark, Matcher: gram.NewSetMatcher(false, members)}, nil, nil

	default:
		return gram.Factor{}, nil, &SyntaxError{Position: tok.pos, Expected: "a terminal", Found: describe(tok)}
	}
}

func (p *parser) parseMembers() ([]gram.SetMember, error) {
	var members []gram.SetMember
	for {
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
		ok, err := p.consume(tokSemicolon)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	if _, err := p.expect(tokRBracket, "']'"); err != nil {
		return nil, err
	}
	return members, nil
}

func (p *parser) parseMember() (gram.SetMember, error) {
	tok, err := p.peek()
	if err != nil {
		return gram.SetMember{}, err
	}

	switch tok.kind {
	case tokID:
		p.next()
		if !isClassCode(tok.text) {
			return gram.SetMember{}, &SyntaxError{Position: tok.pos, Expected: "a Unicode class code (e.g. L, Lu, Nd, Zs)", Found: describe(tok)}
		}
		return gram.SetMember{Kind: gram.MemberClass, Class: tok.text}, nil

	case tokString:
		p.next()
		runes := []rune(tok.text)
		if ok, err := p.consume(tokDash); err == nil && ok {
			if len(runes) != 1 {
				return gram.SetMember{}, &SyntaxError{Position: tok.pos, Expected: "a single-codepoint range endpoint", Found: describe(tok)}
			}
			to, err := p.parseRangeEndpoint()
			if err != nil {
				return gram.SetMember{}, err
			}
			return gram.SetMember{Kind: gram.MemberRange, From: runes[0], To: to}, nil
		} else if err != nil {
			return gram.SetMember{}, err
		}
		return gram.SetMember{Kind: gram.MemberLiteral, Runes: runes}, nil

	case tokHash:
		p.next()
		from := tok.rune
		if ok, err := p.consume(tokDash); err == nil && ok {
			to, err := p.parseRangeEndpoint()
			if err != nil {
				return gram.SetMember{}, err
			}
			return gram.SetMember{Kind: gram.MemberRange, From: from, To: to}, nil
		} else if err != nil {
			return gram.SetMember{}, err
		}
		return gram.SetMember{Kind: gram.MemberCodepoint, Rune: from}, nil

	default:
		return gram.SetMember{}, &SyntaxError{Position: tok.pos, Expected: "a set member", Found: describe(tok)}
	}
}

func (p *parser) parseRangeEndpoint() (rune, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	switch tok.kind {
	case tokString:
		runes := []rune(tok.text)
		if len(runes) != 1 {
			return 0, &SyntaxError{Position: tok.pos, Expected: "a single-codepoint range endpoint", Found: describe(tok)}
		}
		return runes[0], nil
	case tokHash:
		return tok.rune, nil
	default:
		return 0, &SyntaxError{Position: tok.pos, Expected: "a range endpoint", Found: describe(tok)}
	}
}

// isClassCode accepts one uppercase letter optionally followed by one
// lowercase letter (spec.md §3.1: "one uppercase letter + optional
// lowercase subcategory letter").
func isClassCode(s string) bool {
	rs := []rune(s)
	if len(rs) < 1 || len(rs) > 2 {
		return false
	}
	if rs[0] < 'A' || rs[0] > 'Z' {
		return false
	}
	if len(rs) == 2 && (rs[1] < 'a' || rs[1] > 'z') {
		return false
	}
	return true
}

// parsePostfix consumes an optional trailing repeat operator: '?', '*',
// '+', '**'<factor>, or '++'<factor>.
func (p *parser) parsePostfix(f gram.Factor) (gram.Factor, error) {
	tok, err := p.peek()
	if err != nil {
		return f, err
	}
	switch tok.kind {
	case tokQuestion:
		p.next()
		return gram.Factor{Kind: gram.FactorOption, Inner: &f}, nil
	case tokStar:
		p.next()
		sep, err := p.parseOptionalDoubledSep(tokStar)
		if err != nil {
			return f, err
		}
		return gram.Factor{Kind: gram.FactorRepeat0, Inner: &f, Sep: sep}, nil
	case tokPlus:
		p.next()
		sep, err := p.parseOptionalDoubledSep(tokPlus)
		if err != nil {
			return f, err
		}
		return gram.Factor{Kind: gram.FactorRepeat1, Inner: &f, Sep: sep}, nil
	default:
		return f, nil
	}
}

// parseOptionalDoubledSep handles the `**sep`/`++sep` separator syntax: if
// the same operator token immediately follows the one just consumed, a
// single separator factor follows, parsed by parseFactor (so it may carry
// its own postfix operator).
func (p *parser) parseOptionalDoubledSep(op tokenKind) (*gram.Factor, error) {
	ok, err := p.consume(op)
	if err != nil || !ok {
		return nil, err
	}
	parts, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return &parts[0], nil
	}
	return &gram.Factor{Kind: gram.FactorGroup, Group: gram.Alts{gram.Alt(parts)}}, nil
}

// applyRepeatToMulti handles a postfix operator following a multi-
// codepoint string literal: the whole literal becomes the repeated unit,
// wrapped as a group, instead of repeating only its last codepoint.
func (p *parser) applyRepeatToMulti(multi []gram.Factor) ([]gram.Factor, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokQuestion, tokStar, tokPlus:
		group := gram.Factor{Kind: gram.FactorGroup, Group: gram.Alts{gram.Alt(multi)}}
		f, err := p.parsePostfix(group)
		if err != nil {
			return nil, err
		}
		return []gram.Factor{f}, nil
	default:
		return multi, nil
	}
}
