package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the config file looked up by Find.
const FileName = "arithlex.toml"

// DefaultExtensions are the file suffixes tokenized in directory mode.
var DefaultExtensions = []string{".calc", ".expr"}

// Config is the merged view of arithlex.toml. The Has* fields report which
// keys were present in the file so callers can layer flags on top.
type Config struct {
	Path string

	Format         string
	Color          string
	SkipWhitespace bool
	MaxDiagnostics int
	Jobs           int
	NFC            bool
	Extensions     []string

	HasFormat         bool
	HasColor          bool
	HasSkipWhitespace bool
	HasMaxDiagnostics bool
	HasJobs           bool
	HasNFC            bool
}

var (
	// ErrInvalidFormat indicates an [output].format value outside pretty/json/msgpack.
	ErrInvalidFormat = errors.New("invalid [output].format")
	// ErrInvalidColor indicates an [output].color value outside auto/on/off.
	ErrInvalidColor = errors.New("invalid [output].color")
	// ErrInvalidLimit indicates a negative value in [limits].
	ErrInvalidLimit = errors.New("invalid [limits] value")
)

type fileConfig struct {
	Output struct {
		Format         string `toml:"format"`
		Color          string `toml:"color"`
		SkipWhitespace bool   `toml:"skip_whitespace"`
	} `toml:"output"`
	Limits struct {
		MaxDiagnostics int `toml:"max_diagnostics"`
		Jobs           int `toml:"jobs"`
	} `toml:"limits"`
	Source struct {
		NFC        bool     `toml:"nfc"`
		Extensions []string `toml:"extensions"`
	} `toml:"source"`
}

// Default returns the configuration used when no arithlex.toml exists.
func Default() Config {
	return Config{
		Format:         "pretty",
		Color:          "auto",
		MaxDiagnostics: 100,
		Extensions:     append([]string(nil), DefaultExtensions...),
	}
}

// Find walks up from startDir to locate arithlex.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the file at path on top of Default().
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg := Default()
	cfg.Path = path

	if meta.IsDefined("output", "format") {
		format := strings.ToLower(strings.TrimSpace(raw.Output.Format))
		switch format {
		case "pretty", "json", "msgpack":
		default:
			return Config{}, fmt.Errorf("%s: %w: %q", path, ErrInvalidFormat, raw.Output.Format)
		}
		cfg.Format, cfg.HasFormat = format, true
	}
	if meta.IsDefined("output", "color") {
		mode := strings.ToLower(strings.TrimSpace(raw.Output.Color))
		switch mode {
		case "auto", "on", "off":
		default:
			return Config{}, fmt.Errorf("%s: %w: %q", path, ErrInvalidColor, raw.Output.Color)
		}
		cfg.Color, cfg.HasColor = mode, true
	}
	if meta.IsDefined("output", "skip_whitespace") {
		cfg.SkipWhitespace, cfg.HasSkipWhitespace = raw.Output.SkipWhitespace, true
	}
	if meta.IsDefined("limits", "max_diagnostics") {
		if raw.Limits.MaxDiagnostics < 0 {
			return Config{}, fmt.Errorf("%s: %w: max_diagnostics=%d", path, ErrInvalidLimit, raw.Limits.MaxDiagnostics)
		}
		cfg.MaxDiagnostics, cfg.HasMaxDiagnostics = raw.Limits.MaxDiagnostics, true
	}
	if meta.IsDefined("limits", "jobs") {
		if raw.Limits.Jobs < 0 {
			return Config{}, fmt.Errorf("%s: %w: jobs=%d", path, ErrInvalidLimit, raw.Limits.Jobs)
		}
		cfg.Jobs, cfg.HasJobs = raw.Limits.Jobs, true
	}
	if meta.IsDefined("source", "nfc") {
		cfg.NFC, cfg.HasNFC = raw.Source.NFC, true
	}
	if meta.IsDefined("source", "extensions") {
		cfg.Extensions = normalizeExtensions(raw.Source.Extensions)
	}
	return cfg, nil
}

// Discover finds and loads arithlex.toml starting at startDir. An explicit
// path skips the lookup. Without a file it returns Default().
func Discover(startDir, explicit string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// MatchExtension reports whether path ends with one of extensions.
// Suffixes compare case-insensitively; extensions must already be lower case
// (Load and DefaultExtensions guarantee that).
func MatchExtension(path string, extensions []string) bool {
	return slices.Contains(extensions, strings.ToLower(filepath.Ext(path)))
}

func normalizeExtensions(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, ext := range in {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}
