package parser

import (
	"lamb/internal/cst"
	"lamb/internal/diag"
	"lamb/internal/token"
)

// parseTms parses one term followed by any number of juxtaposed terms.
func (p *Parser) parseTms() {
	p.b.Open(cst.Tms)
	p.parseTm()
	for {
		p.skipTrivia()
		if !p.lx.Peek().Kind.StartsTerm() {
			break
		}
		p.parseTm()
	}
	p.b.Close(cst.Tms)
}

func (p *Parser) parseTm() {
	peek := p.lx.Peek()
	switch peek.Kind {
	case token.Name:
		if p.startsSingleAbs() {
			p.parseSingleAbs()
		} else {
			p.leafNode(cst.Var)
		}
	case token.Alias:
		p.leafNode(cst.Alias)
	case token.LParen:
		if p.startsAbsNames() {
			p.parseMultiAbs()
		} else {
			p.parseParend()
		}
	case token.Comma:
		p.parseMultiAbs()
	case token.Arrow:
		p.parseAbsFromArrow()
	default:
		p.errAt(diag.SynExpectedToken, peek.Span, "expected a term before this")
	}
}

// x => body
func (p *Parser) parseSingleAbs() {
	p.b.Open(cst.Abs)
	p.b.Open(cst.AbsVars)
	p.leafNode(cst.Name)
	p.b.Close(cst.AbsVars)

	p.skipTrivia()
	p.parseAbsAfterVars()
	p.b.Close(cst.Abs)
}

// (x, y) => body; also entered on a stray ',' with the '(' missing.
func (p *Parser) parseMultiAbs() {
	p.b.Open(cst.Abs)
	p.b.Open(cst.AbsVars)
	peek := p.lx.Peek()
	if peek.Kind == token.LParen {
		p.bump()
	} else {
		p.errAt(diag.SynExpectedToken, peek.Span, "expected a '(' before this")
	}
	p.parseList(token.RParen, "')'", func(peek token.Token) {
		switch peek.Kind {
		case token.Name:
			p.leafNode(cst.Name)
		case token.Alias:
			p.errAt(diag.SynBadName, peek.Span, "expected a var here, not an alias")
			p.leafNode(cst.BadName)
		}
	})
	p.b.Close(cst.AbsVars)

	p.skipTrivia()
	p.parseAbsAfterVars()
	p.b.Close(cst.Abs)
}

// => body, with the var list missing altogether.
func (p *Parser) parseAbsFromArrow() {
	p.b.Open(cst.Abs)
	p.b.Missing()
	p.errAt(diag.SynExpectedToken, p.lx.Peek().Span, "expected abstraction var(s) enclosed in '(..)' before this")
	p.parseAbsAfterVars()
	p.b.Close(cst.Abs)
}

func (p *Parser) parseAbsAfterVars() {
	peek := p.lx.Peek()
	switch {
	case peek.Kind == token.Arrow:
		p.bump()
	case peek.Kind.StartsTerm():
		p.errAt(diag.SynExpectedToken, peek.Span, "expected an '=>' before this")
	default:
		p.errAt(diag.SynExpectedToken, peek.Span, "expected an '=>', followed by a term before this")
		p.b.Missing()
		return
	}

	p.skipTrivia()
	p.parseTms()
}

// ( term ): the parens are leaves of the enclosing Tms, the inner term is a
// nested Tms.
func (p *Parser) parseParend() {
	lparen := p.bump()

	p.skipTrivia()
	p.parseTms()

	p.skipTrivia()
	if p.at(token.RParen) {
		p.bump()
		return
	}
	p.errAt(diag.SynUnmatchedParen, lparen.Span, "unmatched '('")
}
