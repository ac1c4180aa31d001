package parser

import (
	"slices"

	"lamb/internal/cst"
	"lamb/internal/diag"
	"lamb/internal/source"
	"lamb/internal/token"
)

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// bump — съедает следующий токен и кладёт его листом в дерево
func (p *Parser) bump() token.Token {
	tok := p.lx.Pop()
	p.b.Token(tok)
	return tok
}

// leafNode wraps the next token in an inner node of kind k.
func (p *Parser) leafNode(k cst.Kind) token.Token {
	p.b.Open(k)
	tok := p.bump()
	p.b.Close(k)
	return tok
}

// skipTrivia pushes whitespace, comments and Unknown runs into the tree.
// Every Unknown run is reported.
func (p *Parser) skipTrivia() {
	for {
		peek := p.lx.Peek()
		switch {
		case peek.IsTrivia():
			p.bump()
		case peek.Kind == token.Unknown:
			p.errAt(diag.LexUnknownToken, peek.Span, "unknown token")
			p.bump()
		default:
			return
		}
	}
}

// skipUntil pushes tokens into the tree until one of the stop kinds is next.
// It returns the span covering the skipped run and whether anything was
// skipped at all.
func (p *Parser) skipUntil(stop ...token.Kind) (source.Span, bool) {
	start := p.lx.Peek().Span
	sp := source.Span{File: start.File, Start: start.Start, End: start.Start}
	skipped := false
	for !slices.Contains(stop, p.lx.Peek().Kind) {
		tok := p.bump()
		sp = sp.Cover(tok.Span)
		skipped = true
	}
	return sp, skipped
}

// errAt репортит ошибку; сверх MaxErrors ошибки только считаются.
func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) {
	p.errors++
	p.reporter.Report(code, diag.SevError, sp, msg, nil)
}
