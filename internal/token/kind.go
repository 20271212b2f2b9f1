package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an unrecognized character.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Number represents a decimal integer literal.
	Number

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Asterisk represents the multiplication operator token.
	Asterisk // *
	// Slash represents the division operator token.
	Slash // /
	// LeftParen represents the left parenthesis token.
	LeftParen // (
	// RightParen represents the right parenthesis token.
	RightParen // )

	// Whitespace represents a single whitespace character.
	Whitespace
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Number:     "Number",
	Plus:       "Plus",
	Minus:      "Minus",
	Asterisk:   "Asterisk",
	Slash:      "Slash",
	LeftParen:  "LeftParen",
	RightParen: "RightParen",
	Whitespace: "Whitespace",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether k marks the end of input.
func (k Kind) IsEOF() bool { return k == EOF }

// IsOperator reports whether k is one of the four binary arithmetic operators.
func (k Kind) IsOperator() bool {
	switch k {
	case Plus, Minus, Asterisk, Slash:
		return true
	default:
		return false
	}
}

// IsParen reports whether k is a parenthesis.
func (k Kind) IsParen() bool {
	return k == LeftParen || k == RightParen
}

var punct = map[byte]Kind{
	'+': Plus,
	'-': Minus,
	'*': Asterisk,
	'/': Slash,
	'(': LeftParen,
	')': RightParen,
}

// LookupPunct returns the kind of a single-character punctuation token.
func LookupPunct(b byte) (Kind, bool) {
	k, ok := punct[b]
	return k, ok
}
