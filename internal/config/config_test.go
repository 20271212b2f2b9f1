package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("Find = %q, want %q", got, want)
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[output]
format = "JSON"
color = "off"
skip_whitespace = true

[limits]
max_diagnostics = 50
jobs = 4

[source]
nfc = true
extensions = ["calc", ".EXPR", ".calc", ""]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "json" || !cfg.HasFormat {
		t.Errorf("format = %q has=%v", cfg.Format, cfg.HasFormat)
	}
	if cfg.Color != "off" || !cfg.HasColor {
		t.Errorf("color = %q has=%v", cfg.Color, cfg.HasColor)
	}
	if !cfg.SkipWhitespace || !cfg.HasSkipWhitespace {
		t.Errorf("skip_whitespace not applied")
	}
	if cfg.MaxDiagnostics != 50 || cfg.Jobs != 4 {
		t.Errorf("limits = %d/%d", cfg.MaxDiagnostics, cfg.Jobs)
	}
	if !cfg.NFC {
		t.Errorf("nfc not applied")
	}
	if want := []string{".calc", ".expr"}; !reflect.DeepEqual(cfg.Extensions, want) {
		t.Errorf("extensions = %v, want %v", cfg.Extensions, want)
	}
	if cfg.Path != path {
		t.Errorf("path = %q", cfg.Path)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[limits]\njobs = 2\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Format != def.Format || cfg.HasFormat {
		t.Errorf("format should stay default, got %q", cfg.Format)
	}
	if cfg.MaxDiagnostics != def.MaxDiagnostics || cfg.HasMaxDiagnostics {
		t.Errorf("max_diagnostics should stay default, got %d", cfg.MaxDiagnostics)
	}
	if cfg.Jobs != 2 || !cfg.HasJobs {
		t.Errorf("jobs = %d has=%v", cfg.Jobs, cfg.HasJobs)
	}
	if !reflect.DeepEqual(cfg.Extensions, DefaultExtensions) {
		t.Errorf("extensions = %v", cfg.Extensions)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"format", "[output]\nformat = \"yaml\"\n", ErrInvalidFormat},
		{"color", "[output]\ncolor = \"sometimes\"\n", ErrInvalidColor},
		{"jobs", "[limits]\njobs = -1\n", ErrInvalidLimit},
		{"max", "[limits]\nmax_diagnostics = -5\n", ErrInvalidLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[output]\nfromat = \"json\"\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadSyntaxError(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[output\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, err := Discover(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != "" || cfg.Format != "pretty" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestDiscoverExplicit(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[output]\nformat = \"msgpack\"\n")
	cfg, err := Discover(t.TempDir(), path)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Format != "msgpack" {
		t.Fatalf("format = %q", cfg.Format)
	}
}

func TestMatchExtension(t *testing.T) {
	cfg := Default()
	cases := map[string]bool{
		"a.calc":     true,
		"dir/b.EXPR": true,
		"c.txt":      false,
		"calc":       false,
	}
	for path, want := range cases {
		if got := MatchExtension(path, cfg.Extensions); got != want {
			t.Errorf("MatchExtension(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "testdata", "arithlex.example.toml"))
	if err != nil {
		t.Fatalf("example config must stay valid: %v", err)
	}
	def := Default()
	if cfg.Format != def.Format || cfg.MaxDiagnostics != def.MaxDiagnostics || cfg.Jobs != 0 {
		t.Errorf("example drifted from defaults: %+v", cfg)
	}
}
