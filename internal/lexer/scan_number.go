package lexer

import (
	"math"

	"arithlex/internal/diag"
	"arithlex/internal/token"
)

// Только десятичные целые: [0-9]+. Без знака, без '_', без суффиксов.
// Значение копится в int64; при переполнении насыщаемся на MaxInt64,
// дочитываем все цифры и репортим предупреждение.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	var value int64
	overflow := false
	for isDec(lx.cursor.Peek()) {
		d := int64(lx.cursor.Bump() - '0')
		if overflow {
			continue
		}
		if value > (math.MaxInt64-d)/10 {
			overflow = true
			value = math.MaxInt64
			continue
		}
		value = value*10 + d
	}

	tok := lx.emit(token.Number, start)
	tok.Value = value
	if overflow {
		lx.report(diag.LexNumberOverflow, diag.SevWarning, tok.Span, "integer literal overflows int64; value saturated")
	}
	return tok
}
