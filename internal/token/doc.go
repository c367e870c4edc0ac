// Package token defines lexical token kinds and trivia for expression files.
// Invariants:
//   - Token.Span covers the token's source bytes exactly.
//   - Token.Text is the source slice, except identifiers and string literals,
//     whose text is NFC-normalized by the lexer.
//   - Type names (int, string, Widget, ...) are identifiers; the parser
//     resolves them against the metadata table.
package token
