package lexer

import (
	"iter"

	"arithlex/internal/source"
	"arithlex/internal/token"
)

// Lexer turns the content of one file into tokens, one Next call at a time.
// It is not safe for concurrent use; give every goroutine its own Lexer.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	done   bool         // EOF уже выдан
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// NewString lexes src through a throwaway virtual file.
func NewString(src string, opts Options) *Lexer {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<string>", []byte(src))
	return New(fs.Get(id), opts)
}

// Next возвращает следующий токен.
// На конце входа ровно один раз выдаётся EOF, после него ok == false навсегда.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	// 1) Если есть look, вернуть его и очистить
	if lx.look != nil {
		tok = *lx.look
		lx.look = nil
		return tok, true
	}

	// 2) EOF уже отдали, поток исчерпан
	if lx.done {
		return token.Token{}, false
	}

	// 3) Курсор дошёл до конца → единственный EOF
	if lx.cursor.EOF() {
		lx.done = true
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}, true
	}

	// 4) Посмотреть текущий байт и выбрать сканер
	switch ch := lx.cursor.Peek(); {
	case isDec(ch):
		tok = lx.scanNumber()
	case lx.atSpace():
		tok = lx.scanWhitespace()
	default:
		tok = lx.scanPunct()
	}
	return tok, true
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() (token.Token, bool) {
	if lx.look != nil {
		return *lx.look, true
	}
	t, ok := lx.Next()
	if !ok {
		return token.Token{}, false
	}
	lx.look = &t
	return t, true
}

// All yields the remaining tokens, EOF last.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok, ok := lx.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Offset reports the cursor position in bytes.
func (lx *Lexer) Offset() uint32 {
	return lx.cursor.Off
}

// Exhausted reports whether EOF has already been handed out.
func (lx *Lexer) Exhausted() bool {
	return lx.done && lx.look == nil
}

// Tokens drains a fresh lexer over file into a slice ending with EOF.
func Tokens(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/2+1)
	for tok := range lx.All() {
		tokens = append(tokens, tok)
	}
	return tokens
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.file.Slice(sp)}
}
