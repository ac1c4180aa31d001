// Package token defines lexical token kinds for lamb sources.
// Invariants:
//   - Consecutive tokens of one file tile its content: no gaps, no overlaps.
//   - Token.Span covers the whole lexeme, quotes of a String included.
//   - Token.Text is interned; a String's Text excludes the quotes.
//   - Trivia (Whitespace, Comment) and Unknown runs are ordinary tokens.
//   - EOF is zero-width and is returned forever once the input is exhausted.
//   - 'use', 'import' and 'from' are lexed as Name; the parser treats them
//     as contextual keywords (see LookupKeyword).
package token
