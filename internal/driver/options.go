package driver

import (
	"log/slog"

	"arithlex/internal/config"
	"arithlex/internal/source"
)

// Options controls the tokenize entry points.
type Options struct {
	// MaxDiagnostics caps every per-file Bag.
	MaxDiagnostics int
	// NFC normalises input to Unicode NFC before lexing.
	NFC bool
	// Timings records load/lex durations and appends an OBS6001 diagnostic.
	Timings bool
	// Extensions selects files in directory mode; nil means config.DefaultExtensions.
	Extensions []string
	// Jobs caps directory workers; <= 0 means GOMAXPROCS.
	Jobs int
	// Logger receives per-file debug records; nil discards them.
	Logger *slog.Logger
	// Progress receives directory events; nil disables them.
	Progress ProgressSink
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o Options) loadOptions() source.LoadOptions {
	return source.LoadOptions{NFC: o.NFC}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions
	}
	return o.Extensions
}
