package lexer

import (
	"unicode"
	"unicode/utf8"
)

// ===== Работа с рунами поверх Cursor =====

// peekRune декодирует руну в позиции курсора
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.cursor.Rest())
}

// bumpRune перемещает курсор на размер текущей руны (минимум 1 байт)
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	lx.cursor.Advance(sz)
}

// ===== Классификаторы =====

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func (lx *Lexer) atSpace() bool {
	r, sz := lx.peekRune()
	if sz == 0 {
		return false
	}
	if r == utf8.RuneError && sz == 1 {
		return false
	}
	return unicode.IsSpace(r)
}
