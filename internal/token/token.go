package token

import (
	"lamb/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsTrivia reports whether the token is whitespace or a comment.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }

// IsIdent reports whether the token is a Name or an Alias.
func (t Token) IsIdent() bool { return t.Kind == Name || t.Kind == Alias }

// Is reports whether the token is a Name spelled exactly kw.
func (t Token) Is(kw Keyword) bool {
	return t.Kind == Name && t.Text == string(kw)
}
