package lexer

import (
	"testing"

	"arithlex/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.calc", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "1\n+" → 1, \n, +, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("1\n+"))

	for _, want := range []byte{'1', '\n', '+'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if cursor.Peek() != want {
			t.Errorf("Expected peek %q, got %q", want, cursor.Peek())
		}
		if b := cursor.Bump(); b != want {
			t.Errorf("Expected bump %q, got %q", want, b)
		}
	}

	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	if cursor.Peek() != 0 {
		t.Errorf("Expected peek 0 at EOF, got %q", cursor.Peek())
	}
	if b := cursor.Bump(); b != 0 {
		t.Errorf("Expected bump 0 at EOF, got %q", b)
	}
	if cursor.Off != 3 {
		t.Errorf("Bump at EOF must not move the cursor, Off = %d", cursor.Off)
	}
}

// TestSpanFrom проверяет SpanFrom с многобайтной руной
func TestSpanFrom(t *testing.T) {
	// "α+" : α = 2 байта
	cursor := NewCursor(createFile("α+"))
	mark := cursor.Mark()
	cursor.Advance(2)

	span := cursor.SpanFrom(mark)
	if span.Start != 0 || span.End != 2 {
		t.Errorf("Expected span (0,2), got (%d,%d)", span.Start, span.End)
	}
	if string(cursor.Rest()) != "+" {
		t.Errorf("Rest() = %q, want %q", cursor.Rest(), "+")
	}
}

func TestAdvanceStopsAtEnd(t *testing.T) {
	cursor := NewCursor(createFile("12"))
	cursor.Advance(10)
	if cursor.Off != cursor.Len() || !cursor.EOF() {
		t.Fatalf("Advance past end: Off = %d, Len = %d", cursor.Off, cursor.Len())
	}
	if len(cursor.Rest()) != 0 {
		t.Fatalf("Rest() at EOF must be empty")
	}
}

func TestNewCursorEmpty(t *testing.T) {
	cursor := NewCursor(createFile(""))
	if !cursor.EOF() {
		t.Fatalf("empty file must start at EOF")
	}
}
