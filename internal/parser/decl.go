package parser

import (
	"lamb/internal/cst"
	"lamb/internal/diag"
	"lamb/internal/token"
)

// parseDef: Alias '=' term. Entered on Alias, Name or '='.
func (p *Parser) parseDef() {
	p.b.Open(cst.Def)

	peek := p.lx.Peek()
	switch peek.Kind {
	case token.Alias:
		p.leafNode(cst.Name)
	case token.Name:
		p.errAt(diag.SynBadName, peek.Span, "expected an alias, not a var")
		p.leafNode(cst.BadName)
	case token.Equals:
		p.errAt(diag.SynExpectedToken, peek.Span, "expected an alias name before this")
		p.b.Missing()
	default:
		panic("parser: parseDef entered on " + peek.Kind.String())
	}

	p.skipTrivia()
	peek = p.lx.Peek()
	switch {
	case peek.Kind == token.Equals:
		p.bump()
	case peek.Kind.StartsTerm():
		p.errAt(diag.SynExpectedToken, peek.Span, "expected an '=' before this")
	default:
		p.errAt(diag.SynExpectedToken, peek.Span, "expected an '=', followed by a term before this")
		p.b.Missing()
		p.b.Close(cst.Def)
		return
	}

	p.skipTrivia()
	p.parseTms()
	p.b.Close(cst.Def)
}

// parseUse: ('use'|'import') '{' aliases '}' 'from' String.
func (p *Parser) parseUse() {
	p.b.Open(cst.Use)

	peek := p.lx.Peek()
	if peek.StartsUse() {
		p.bump()
	} else {
		p.errAt(diag.SynExpectedToken, peek.Span, "expected 'use' before this")
	}

	p.skipTrivia()
	p.parseUseAliases()

	p.skipTrivia()
	peek = p.lx.Peek()
	switch {
	case peek.Is(token.KwFrom):
		p.bump()
	case peek.Kind == token.String || peek.Kind == token.UnterminatedString:
		p.errAt(diag.SynExpectedToken, peek.Span, "expected 'from' before this")
	default:
		p.errAt(diag.SynExpectedToken, peek.Span, "expected 'from', followed by a filepath before this")
		p.b.Missing()
		p.b.Close(cst.Use)
		return
	}

	p.skipTrivia()
	peek = p.lx.Peek()
	switch peek.Kind {
	case token.String:
		p.leafNode(cst.UseFilepath)
	case token.UnterminatedString:
		p.errAt(diag.LexUnterminatedString, peek.Span, "unterminated filepath")
		p.leafNode(cst.UseFilepath)
	default:
		p.errAt(diag.SynExpectedToken, peek.Span, "expected a filepath before this")
		p.b.Missing()
	}
	p.b.Close(cst.Use)
}

func (p *Parser) parseUseAliases() {
	peek := p.lx.Peek()
	switch peek.Kind {
	case token.LBrace:
		p.b.Open(cst.UseAliases)
		p.bump()
	case token.Alias, token.Name, token.Comma, token.RBrace:
		p.b.Open(cst.UseAliases)
		p.errAt(diag.SynExpectedToken, peek.Span, "expected a '{' before this")
	default:
		p.errAt(diag.SynExpectedToken, peek.Span, "expected a list of aliases enclosed in '{..}' before this")
		p.b.Missing()
		return
	}

	p.parseList(token.RBrace, "'}'", func(peek token.Token) {
		switch peek.Kind {
		case token.Alias:
			p.leafNode(cst.Name)
		case token.Name:
			p.errAt(diag.SynBadName, peek.Span, "expected an alias here, not a name")
			p.leafNode(cst.BadName)
		}
	})
	p.b.Close(cst.UseAliases)
}

// parseList parses comma-separated Name/Alias items up to the closing
// token. item is called with the next token when it is a Name or an Alias.
func (p *Parser) parseList(closing token.Kind, closingText string, item func(token.Token)) {
	for {
		p.skipTrivia()
		peek := p.lx.Peek()
		switch peek.Kind {
		case token.Alias, token.Name:
			item(peek)
		case closing:
			p.bump()
			return
		case token.Comma:
			p.errAt(diag.SynExtraneousSeparator, peek.Span, "extraneous ','")
		default:
			p.errAt(diag.SynExpectedToken, peek.Span, "expected a "+closingText+" before this")
			return
		}

		p.skipTrivia()
		peek = p.lx.Peek()
		switch peek.Kind {
		case token.Comma:
			p.bump()
		case closing:
			p.bump()
			return
		case token.Alias, token.Name:
			p.errAt(diag.SynExpectedToken, peek.Span, "expected a ',' before this")
		default:
			p.errAt(diag.SynExpectedToken, peek.Span, "expected a "+closingText+" before this")
			return
		}
	}
}
