// Package parser builds lossless syntax trees from lamb source.
//
// Parsing never fails. At every decision point where the next significant
// token matches no expected continuation the parser reports a diagnostic and
// either pushes a cst.Missing placeholder or skips ahead to the next ';' (or
// EOF). Every token, trivia included, is pushed into the tree, so the leaves
// of the result always reproduce the input.
package parser

import (
	"lamb/internal/cst"
	"lamb/internal/diag"
	"lamb/internal/lexer"
	"lamb/internal/source"
	"lamb/internal/token"
)

type Options struct {
	// Reporter receives diagnostics; nil drops them.
	Reporter diag.Reporter
	// MaxErrors caps how many errors are reported. Parsing itself always
	// runs to the end. Zero means no cap.
	MaxErrors uint
}

type Result struct {
	Tree *cst.Inner
	// Errors counts every error found, reported or not.
	Errors uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	b        *cst.Builder
	reporter *diag.LimitReporter
	errors   uint
}

func newParser(file *source.File, opts Options) *Parser {
	var next diag.Reporter = diag.NopReporter{}
	if opts.Reporter != nil {
		next = opts.Reporter
	}
	return &Parser{
		lx:       lexer.New(file),
		b:        cst.NewBuilder(file.ID),
		reporter: &diag.LimitReporter{Next: next, Max: opts.MaxErrors},
	}
}

// ParseModule parses a whole file: declarations separated by ';'.
func ParseModule(file *source.File, opts Options) Result {
	p := newParser(file, opts)
	p.parseModule()
	return Result{Tree: p.b.Finish(), Errors: p.errors}
}

// ParseReplInput parses one definition or one term, as typed at the REPL.
func ParseReplInput(file *source.File, opts Options) Result {
	p := newParser(file, opts)
	p.parseReplInput()
	return Result{Tree: p.b.Finish(), Errors: p.errors}
}

func (p *Parser) parseReplInput() {
	p.b.Open(cst.ReplInput)
	p.skipTrivia()

	peek := p.lx.Peek()
	switch {
	case (peek.Kind == token.Alias || peek.Kind == token.Name) && p.startsDef():
		p.parseDef()
	case peek.Kind == token.Equals:
		p.parseDef()
	case peek.Kind.StartsTerm():
		p.parseTms()
	default:
		p.errAt(diag.SynExpectedDecl, peek.Span, "expected a definition or term before this")
	}

	p.skipTrivia()
	if sp, ok := p.skipUntil(token.EOF); ok {
		p.errAt(diag.SynExtraneousInput, sp, "extraneous input")
	}
	p.b.Close(cst.ReplInput)
}

func (p *Parser) parseModule() {
	p.b.Open(cst.Module)
	for {
		p.skipTrivia()
		peek := p.lx.Peek()
		if peek.Kind == token.EOF {
			break
		}
		switch {
		case peek.StartsUse():
			p.parseUse()
		case peek.Kind == token.LBrace || peek.Kind == token.RBrace ||
			peek.Kind == token.String || peek.Kind == token.UnterminatedString:
			p.parseUse()
		case (peek.Kind == token.Alias || peek.Kind == token.Name) && p.startsDef():
			p.parseDef()
		case peek.Kind == token.Equals:
			p.parseDef()
		case peek.Kind == token.Semi:
			p.errAt(diag.SynExtraneousSeparator, peek.Span, "extraneous ';'")
		default:
			sp, _ := p.skipUntil(token.Semi, token.EOF)
			p.errAt(diag.SynExpectedDecl, sp, "expected definition or use declaration here")
		}

		p.skipTrivia()
		peek = p.lx.Peek()
		switch peek.Kind {
		case token.Semi:
			p.bump()
			continue
		case token.EOF:
			p.errAt(diag.SynMissingSemicolon, peek.Span, "missing a ';'")
		default:
			sp, _ := p.skipUntil(token.Semi, token.EOF)
			p.errAt(diag.SynExtraneousInput, sp, "extraneous input")
			if p.at(token.Semi) {
				p.bump()
				continue
			}
		}
		break
	}
	p.b.Close(cst.Module)
}
