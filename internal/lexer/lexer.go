// Package lexer turns lamb source into tokens on demand.
//
// The lexer never fails: bytes that start no token are grouped into Unknown
// runs and left for the parser to report. Lookahead is unbounded; peeked
// tokens are kept in a queue and handed out again by Pop.
package lexer

import (
	"lamb/internal/source"
	"lamb/internal/token"
)

type Lexer struct {
	file     *source.File
	cursor   Cursor
	interner *source.Interner
	peeked   []token.Token // очередь уже прочитанных токенов
}

func New(file *source.File) *Lexer {
	return &Lexer{
		file:     file,
		cursor:   NewCursor(file),
		interner: source.NewInterner(),
	}
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File { return lx.file }

// Pop removes and returns the next token. After EOF it keeps returning EOF.
func (lx *Lexer) Pop() token.Token {
	if len(lx.peeked) > 0 {
		tok := lx.peeked[0]
		lx.peeked[0] = token.Token{}
		lx.peeked = lx.peeked[1:]
		return tok
	}
	return lx.readNext()
}

// Peek returns the token the next Pop will return. Repeated calls return the
// same token.
func (lx *Lexer) Peek() token.Token {
	return lx.PeekAhead(0)
}

// PeekAhead returns the n-th token to be popped (0 is the next one), reading
// as far ahead as needed.
func (lx *Lexer) PeekAhead(n int) token.Token {
	for len(lx.peeked) <= n {
		lx.peeked = append(lx.peeked, lx.readNext())
	}
	return lx.peeked[n]
}

func (lx *Lexer) readNext() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(start), Text: lx.interner.InternString("")}
	}
	if start == 0 && lx.eatBOM() {
		lx.cursor.EatWhile(isWhitespace)
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Whitespace, Span: sp, Text: lx.text(token.Whitespace, sp)}
	}

	var kind token.Kind
	switch b := lx.cursor.Bump(); {
	case b == '(':
		kind = token.LParen
	case b == ')':
		kind = token.RParen
	case b == '{':
		kind = token.LBrace
	case b == '}':
		kind = token.RBrace
	case b == ',':
		kind = token.Comma
	case b == ';':
		kind = token.Semi
	case b == '=':
		kind = token.Equals
		if lx.cursor.Eat('>') {
			kind = token.Arrow
		}
	case b == '#':
		lx.cursor.EatWhile(notLineEnd)
		kind = token.Comment
	case b == '"':
		kind = lx.scanString()
	case isNameStart(b):
		lx.cursor.EatWhile(isIdentContinue)
		kind = token.Name
	case isAliasStart(b):
		lx.cursor.EatWhile(isIdentContinue)
		kind = token.Alias
	case isWhitespace(b):
		lx.cursor.EatWhile(isWhitespace)
		kind = token.Whitespace
	default:
		lx.cursor.EatWhile(isUnknown)
		kind = token.Unknown
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(kind, sp)}
}

// eatBOM consumes a byte order mark at the start of the file. It lexes as
// whitespace so the token stream still covers every byte.
func (lx *Lexer) eatBOM() bool {
	if !source.HasBOM(lx.file.Content) {
		return false
	}
	for range len(source.BOM) {
		lx.cursor.Bump()
	}
	return true
}

// scanString reads the rest of a string literal after the opening quote.
// A backslash escapes exactly one following byte; a line end or EOF before
// the closing quote yields UnterminatedString.
func (lx *Lexer) scanString() token.Kind {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return token.String
		case '\n', '\r':
			return token.UnterminatedString
		case '\\':
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '\n' || b == '\r' {
				return token.UnterminatedString
			}
			lx.cursor.Bump()
		default:
			lx.cursor.Bump()
		}
	}
	return token.UnterminatedString
}

// text interns the token text; string quotes are not part of it.
func (lx *Lexer) text(kind token.Kind, sp source.Span) string {
	start, end := sp.Start, sp.End
	switch kind {
	case token.String:
		start, end = start+1, end-1
	case token.UnterminatedString:
		start++
	}
	return lx.interner.Intern(lx.file.Content[start:end])
}
