package token_test

import (
	"testing"

	"lamb/internal/source"
	"lamb/internal/token"
)

func tok(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}, Text: text}
}

func TestIsTrivia(t *testing.T) {
	for _, k := range []token.Kind{token.Whitespace, token.Comment} {
		if !tok(k, "").IsTrivia() {
			t.Fatalf("%v should be trivia", k)
		}
	}
	non := []token.Kind{token.Unknown, token.Name, token.Semi, token.EOF, token.UnterminatedString}
	for _, k := range non {
		if tok(k, "").IsTrivia() {
			t.Fatalf("%v must NOT be trivia", k)
		}
	}
}

func TestStartsTerm(t *testing.T) {
	starts := map[token.Kind]bool{
		token.Name: true, token.Alias: true, token.LParen: true, token.Comma: true, token.Arrow: true,
		token.RParen: false, token.Equals: false, token.Semi: false, token.String: false,
		token.LBrace: false, token.EOF: false, token.Whitespace: false,
	}
	for k, want := range starts {
		if got := k.StartsTerm(); got != want {
			t.Errorf("%v.StartsTerm() = %v, want %v", k, got, want)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := token.Arrow.String(); got != "Arrow" {
		t.Errorf("Arrow.String() = %q", got)
	}
	if got := token.Kind(200).String(); got != "Kind(?)" {
		t.Errorf("out of range kind = %q", got)
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		text  string
		kw    token.Keyword
		ok    bool
		opens bool
	}{
		{"use", token.KwUse, true, true},
		{"import", token.KwImport, true, true},
		{"from", token.KwFrom, true, false},
		{"Use", "", false, false},
		{"user", "", false, false},
	}
	for _, tt := range tests {
		kw, ok := token.LookupKeyword(tt.text)
		if kw != tt.kw || ok != tt.ok {
			t.Errorf("LookupKeyword(%q) = %q, %v", tt.text, kw, ok)
		}
		kind := token.Name
		if tt.text[0] >= 'A' && tt.text[0] <= 'Z' {
			kind = token.Alias
		}
		if got := tok(kind, tt.text).StartsUse(); got != tt.opens {
			t.Errorf("StartsUse(%q) = %v", tt.text, got)
		}
	}
}
