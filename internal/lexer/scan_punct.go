package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"arithlex/internal/diag"
	"arithlex/internal/token"
)

// Один символ пробела (любой Unicode whitespace) даёт один токен.
// Фильтровать пробелы должен потребитель.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	return lx.emit(token.Whitespace, start)
}

// Ровно один символ: + - * / ( ) или Invalid.
// Для не-ASCII съедаем всю руну (или один байт, если UTF-8 битый).
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	if r < utf8.RuneSelf {
		if kind, ok := token.LookupPunct(lx.cursor.Bump()); ok {
			return lx.emit(kind, start)
		}
	} else {
		lx.bumpRune()
	}

	// неизвестный символ
	tok := lx.emit(token.Invalid, start)
	lx.report(diag.LexUnknownChar, diag.SevError, tok.Span, fmt.Sprintf("unknown character %s", describeRune(r, tok.Text)))
	return tok
}

func describeRune(r rune, text string) string {
	if r == unicode.ReplacementChar && text != string(unicode.ReplacementChar) {
		return fmt.Sprintf("byte %q", text)
	}
	return fmt.Sprintf("%q (%U)", r, r)
}
