package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("expr.calc", []byte("1+2"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	// тот же путь с новым содержимым получает новый ID
	id2 := fs.Add("expr.calc", []byte("3*4"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	if got := string(fs.Get(id2).Content); got != "3*4" {
		t.Errorf("new version content = %q, want %q", got, "3*4")
	}
	if got := string(fs.Get(id1).Content); got != "1+2" {
		t.Errorf("old version content = %q, want %q", got, "1+2")
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("stdin", []byte("1\n2+3\n\n4"))
	f := fs.Get(id)

	want := []uint32{1, 5, 6}
	if len(f.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", f.LineIdx, want)
	}
	for i := range want {
		if f.LineIdx[i] != want[i] {
			t.Fatalf("LineIdx = %v, want %v", f.LineIdx, want)
		}
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("stdin", []byte("1\n2+3"))

	tests := []struct {
		span       Span
		start, end LineCol
	}{
		{Span{File: id, Start: 0, End: 1}, LineCol{1, 1}, LineCol{1, 2}},
		{Span{File: id, Start: 1, End: 2}, LineCol{1, 2}, LineCol{2, 1}},
		{Span{File: id, Start: 3, End: 4}, LineCol{2, 2}, LineCol{2, 3}},
		{Span{File: id, Start: 5, End: 5}, LineCol{2, 4}, LineCol{2, 4}},
	}
	for _, tt := range tests {
		start, end := fs.Resolve(tt.span)
		if start != tt.start || end != tt.end {
			t.Errorf("Resolve(%v) = %v,%v; want %v,%v", tt.span, start, end, tt.start, tt.end)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("stdin", []byte("12+3\n(4)\n")))

	cases := map[uint32]string{0: "", 1: "12+3", 2: "(4)", 3: "", 4: ""}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
	if got := f.Slice(Span{Start: 0, End: 2}); got != "12" {
		t.Errorf("Slice = %q, want %q", got, "12")
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.calc")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("1 +\r\n2")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "1 +\n2" {
		t.Fatalf("content = %q, want %q", f.Content, "1 +\n2")
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
	if f.Flags&FileVirtual != 0 {
		t.Fatalf("disk file must not be virtual")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.calc")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if fs.Len() != 0 {
		t.Fatalf("failed load must not add a file")
	}
}

func TestAddVirtualWithNFC(t *testing.T) {
	fs := NewFileSet()
	// "e" + combining acute accent -> "é"
	decomposed := []byte("e\u0301")
	id := fs.AddVirtualWith("stdin", decomposed, LoadOptions{NFC: true})
	f := fs.Get(id)
	if string(f.Content) != "\u00e9" {
		t.Fatalf("content = %q, want NFC form", f.Content)
	}
	if f.Flags&FileNormalizedNFC == 0 || f.Flags&FileVirtual == 0 {
		t.Fatalf("flags = %b, want NFC and virtual bits", f.Flags)
	}

	id = fs.AddVirtualWith("stdin", decomposed, LoadOptions{})
	if string(fs.Get(id).Content) != string(decomposed) {
		t.Fatalf("content must stay untouched without NFC")
	}
}
