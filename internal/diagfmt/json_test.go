package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"arithlex/internal/diag"
	"arithlex/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.calc", []byte("1 +\n  2 ? 3\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 8, End: 9}, `unknown character "?"`))

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %+v", output)
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1001" {
		t.Errorf("unexpected severity/code: %s %s", d.Severity, d.Code)
	}
	loc := d.Location
	if loc.File != "test.calc" {
		t.Errorf("file = %q", loc.File)
	}
	if loc.StartByte != 8 || loc.EndByte != 9 {
		t.Errorf("bytes = %d-%d", loc.StartByte, loc.EndByte)
	}
	if loc.StartLine != 2 || loc.StartCol != 5 || loc.EndLine != 2 || loc.EndCol != 6 {
		t.Errorf("positions = %d:%d-%d:%d", loc.StartLine, loc.StartCol, loc.EndLine, loc.EndCol)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.calc", []byte("#"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "unknown"))

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeBasename})
	loc := output.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartCol != 0 {
		t.Errorf("positions must be omitted, got %+v", loc)
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.calc", []byte("####"))
	bag := diag.NewBag(3)
	for i := range uint32(4) {
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: i, End: i + 1}, "unknown"))
	}

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if output.Count != 2 {
		t.Fatalf("count = %d, want 2", output.Count)
	}
	// 1 отброшен Bag'ом, 1 обрезан Max
	if output.Dropped != 2 {
		t.Fatalf("dropped = %d, want 2", output.Dropped)
	}
}

func TestJSONNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.calc", []byte("1 # #"))
	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 2, End: 3}, "unknown").
		WithNote(source.Span{File: fileID, Start: 4, End: 5}, "again"))

	without := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if len(without.Diagnostics[0].Notes) != 0 {
		t.Errorf("notes must be skipped without IncludeNotes")
	}
	with := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeNotes: true})
	notes := with.Diagnostics[0].Notes
	if len(notes) != 1 || notes[0].Message != "again" || notes[0].Location.StartByte != 4 {
		t.Errorf("unexpected notes: %+v", notes)
	}
}

func TestJSONTimingsAlwaysCarryNotes(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings").
		WithNote(source.Span{}, `{"kind":"tokenize"}`))

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	d := output.Diagnostics[0]
	if len(d.Notes) != 1 {
		t.Fatalf("timings diagnostic must keep its payload note")
	}
	if d.Location.File != "" {
		t.Errorf("no file registered, got %q", d.Location.File)
	}
}
