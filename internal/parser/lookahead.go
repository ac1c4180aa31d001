package parser

import "lamb/internal/token"

// The predicates below decide between productions that share a prefix.
// They only peek, and they skip exactly what skipTrivia skips (whitespace,
// comments and Unknown runs), so their answer always matches what the
// production that follows will see.

func skippable(tok token.Token) bool {
	return tok.IsTrivia() || tok.Kind == token.Unknown
}

// nextSignificant returns the index of the first non-trivia token at or
// after lookahead position i.
func (p *Parser) nextSignificant(i int) (int, token.Token) {
	for {
		tok := p.lx.PeekAhead(i)
		if !skippable(tok) {
			return i, tok
		}
		i++
	}
}

// startsSingleAbs: the Name at the cursor is followed by '=>'.
func (p *Parser) startsSingleAbs() bool {
	_, tok := p.nextSignificant(1)
	return tok.Kind == token.Arrow
}

// startsAbsNames: the '(' at the cursor opens an abstraction's var list,
// i.e. a ',' comes before ')', or ')' is followed by '=>'. Only names may
// appear before that point, so "(x => x)" stays a parenthesized term.
func (p *Parser) startsAbsNames() bool {
	i := 1
	for {
		var tok token.Token
		i, tok = p.nextSignificant(i)
		switch tok.Kind {
		case token.Name, token.Alias:
			i++
		case token.Comma:
			return true
		case token.RParen:
			_, tok = p.nextSignificant(i + 1)
			return tok.Kind == token.Arrow
		default:
			return false
		}
	}
}

// startsDef: the Name or Alias at the cursor is followed by '='.
func (p *Parser) startsDef() bool {
	_, tok := p.nextSignificant(1)
	return tok.Kind == token.Equals
}
