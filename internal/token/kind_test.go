package token_test

import (
	"testing"

	"arithlex/internal/source"
	"arithlex/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsOperator(t *testing.T) {
	ops := []token.Kind{token.Plus, token.Minus, token.Asterisk, token.Slash}
	for _, k := range ops {
		if !tok(k).IsOperator() {
			t.Fatalf("%v should be operator", k)
		}
	}
	non := []token.Kind{token.Number, token.LeftParen, token.RightParen, token.Whitespace, token.EOF, token.Invalid}
	for _, k := range non {
		if tok(k).IsOperator() {
			t.Fatalf("%v must NOT be operator", k)
		}
	}
}

func TestIsParen(t *testing.T) {
	if !tok(token.LeftParen).IsParen() || !tok(token.RightParen).IsParen() {
		t.Fatalf("parens should be parens")
	}
	if tok(token.Plus).IsParen() {
		t.Fatalf("Plus must not be paren")
	}
}

func TestPredicates(t *testing.T) {
	if !tok(token.Number).IsNumber() || tok(token.Plus).IsNumber() {
		t.Fatalf("IsNumber mismatch")
	}
	if !tok(token.Whitespace).IsTrivia() || tok(token.Number).IsTrivia() {
		t.Fatalf("IsTrivia mismatch")
	}
	if !tok(token.Invalid).IsInvalid() || tok(token.EOF).IsInvalid() {
		t.Fatalf("IsInvalid mismatch")
	}
	if !token.EOF.IsEOF() || token.Number.IsEOF() {
		t.Fatalf("IsEOF mismatch")
	}
}

func TestKindStringOutOfRange(t *testing.T) {
	if s := token.Kind(200).String(); s != "Kind(?)" {
		t.Fatalf("out-of-range String() = %q", s)
	}
}

func TestLookupPunct(t *testing.T) {
	cases := map[byte]token.Kind{
		'+': token.Plus,
		'-': token.Minus,
		'*': token.Asterisk,
		'/': token.Slash,
		'(': token.LeftParen,
		')': token.RightParen,
	}
	for b, want := range cases {
		got, ok := token.LookupPunct(b)
		if !ok || got != want {
			t.Fatalf("LookupPunct(%q) = %v,%v; want %v", b, got, ok, want)
		}
	}
	for _, b := range []byte{'#', '%', '^', '.', ' '} {
		if _, ok := token.LookupPunct(b); ok {
			t.Fatalf("LookupPunct(%q) returned ok=true", b)
		}
	}
}
