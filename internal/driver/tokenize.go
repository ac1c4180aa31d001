package driver

import (
	"lamb/internal/diag"
	"lamb/internal/lexer"
	"lamb/internal/source"
	"lamb/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the file at path, trivia and EOF included.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return TokenizeFile(fs, fs.Get(fileID), maxDiagnostics), nil
}

// TokenizeFile lexes an already loaded file. The lexer itself never fails;
// Unknown runs and unterminated strings are reported here so that a token
// dump shows them.
func TokenizeFile(fs *source.FileSet, file *source.File, maxDiagnostics int) *TokenizeResult {
	bag := diag.NewBag(maxDiagnostics)
	r := diag.BagReporter{Bag: bag}

	lx := lexer.New(file)
	var tokens []token.Token
	for {
		tok := lx.Pop()
		tokens = append(tokens, tok)
		switch tok.Kind {
		case token.Unknown:
			diag.ReportError(r, diag.LexUnknownToken, tok.Span, "unknown token").Emit()
		case token.UnterminatedString:
			diag.ReportError(r, diag.LexUnterminatedString, tok.Span, "unterminated string").Emit()
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens, Bag: bag}
}
