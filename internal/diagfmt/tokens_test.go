package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"arithlex/internal/lexer"
	"arithlex/internal/source"
	"arithlex/internal/token"
)

func lexVirtual(t *testing.T, src string) (*source.FileSet, []token.Token) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("expr.calc", []byte(src))
	return fs, lexer.Tokens(fs.Get(id), lexer.Options{})
}

func TestFormatTokensPretty(t *testing.T) {
	fs, toks := lexVirtual(t, "12 +\n(3)")

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(toks) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(toks), len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "  1: Number") || !strings.HasSuffix(lines[0], "at 1:1-1:3 = 12") {
		t.Errorf("number line = %q", lines[0])
	}
	if !strings.Contains(lines[4], "LeftParen") || !strings.Contains(lines[4], "at 2:1-2:2") {
		t.Errorf("paren line = %q", lines[4])
	}
	last := lines[len(lines)-1]
	if !strings.Contains(last, "EOF") || !strings.HasSuffix(last, "at 2:4-2:4") {
		t.Errorf("eof line = %q", last)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	_, toks := lexVirtual(t, "7*0")

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 records, got %d", len(out))
	}
	if out[0]["kind"] != "Number" || out[0]["value"] != float64(7) {
		t.Errorf("first record = %v", out[0])
	}
	if _, ok := out[1]["value"]; ok {
		t.Errorf("operator must not carry a value: %v", out[1])
	}
	// ноль остаётся в выводе: value задан указателем
	if v, ok := out[2]["value"]; !ok || v != float64(0) {
		t.Errorf("zero literal lost its value: %v", out[2])
	}
	span := out[3]["span"].(map[string]any)
	if out[3]["kind"] != "EOF" || span["start"] != float64(3) || span["end"] != float64(3) {
		t.Errorf("eof record = %v", out[3])
	}
}

func TestFormatTokensMsgpack(t *testing.T) {
	_, toks := lexVirtual(t, "(1)")

	var buf bytes.Buffer
	if err := FormatTokensMsgpack(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := msgpack.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 records, got %d", len(out))
	}
	if out[1].Kind != "Number" || out[1].Value == nil || *out[1].Value != 1 {
		t.Errorf("number record = %+v", out[1])
	}
	if out[1].Span.Start != 1 || out[1].Span.End != 2 {
		t.Errorf("number span = %v", out[1].Span)
	}
}

func TestSkipWhitespace(t *testing.T) {
	_, toks := lexVirtual(t, " 1 + 2 ")
	filtered := SkipWhitespace(toks)

	var kinds []token.Kind
	for _, tok := range filtered {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.Number, token.Plus, token.Number, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
	if len(toks) != 8 {
		t.Fatalf("source slice modified: %d tokens", len(toks))
	}
}
