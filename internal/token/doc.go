// Package token defines lexical token kinds for arithmetic expressions.
// Invariants:
//   - Token.Text is an independent copy of the source bytes at Token.Span.
//   - Token.Span matches Text exactly (Start..End), except for EOF whose span
//     is the empty range at the end of input.
//   - Token.Value is set only for Number; it is zero for every other kind.
//   - Whitespace is an ordinary token kind, not trivia: every byte of the
//     input belongs to exactly one token.
package token
