package token

import (
	"arithlex/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Value int64 // только для Number
}

// IsNumber reports whether the token is an integer literal.
func (t Token) IsNumber() bool { return t.Kind == Number }

// IsOperator reports whether the token is an arithmetic operator.
func (t Token) IsOperator() bool { return t.Kind.IsOperator() }

// IsParen reports whether the token is a parenthesis.
func (t Token) IsParen() bool { return t.Kind.IsParen() }

// IsTrivia reports whether a parser would usually skip the token.
func (t Token) IsTrivia() bool { return t.Kind == Whitespace }

// IsInvalid reports whether the token is an unrecognized character.
func (t Token) IsInvalid() bool { return t.Kind == Invalid }
