package driver

import (
	"fmt"

	"arithlex/internal/diag"
	"arithlex/internal/lexer"
	"arithlex/internal/observ"
	"arithlex/internal/source"
	"arithlex/internal/token"
)

// TokenizeResult holds one tokenized file together with its diagnostics.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Timing  *observ.Report
}

// Tokenize loads path from disk and tokenizes it.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	timer := newTimer(opts)
	fs := source.NewFileSet()

	idx := timer.Begin("load")
	fileID, err := fs.LoadWith(path, opts.loadOptions())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)
	timer.End(idx, fmt.Sprintf("%d bytes", len(file.Content)))

	return tokenizeFile(fs, file, timer, opts), nil
}

// TokenizeSource tokenizes in-memory content (stdin, --expr) under name.
func TokenizeSource(name string, content []byte, opts Options) *TokenizeResult {
	timer := newTimer(opts)
	fs := source.NewFileSet()

	idx := timer.Begin("load")
	fileID := fs.AddVirtualWith(name, content, opts.loadOptions())
	file := fs.Get(fileID)
	timer.End(idx, fmt.Sprintf("%d bytes", len(file.Content)))

	return tokenizeFile(fs, file, timer, opts)
}

func tokenizeFile(fs *source.FileSet, file *source.File, timer *observ.Timer, opts Options) *TokenizeResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	tokens := lexFile(file, bag, timer)

	res := &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
		appendTimingDiagnostic(bag, tokensSpan(file.ID, tokens), timingPayload{
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	opts.logger().Debug("tokenized",
		"file", file.Path,
		"bytes", len(file.Content),
		"tokens", len(tokens),
		"diagnostics", bag.Len(),
	)
	return res
}

func lexFile(file *source.File, bag *diag.Bag, timer *observ.Timer) []token.Token {
	var tokens []token.Token
	timer.Measure("lex", func() string {
		reporter := (&lexer.ReporterAdapter{Bag: bag}).Reporter()
		tokens = lexer.Tokens(file, lexer.Options{Reporter: reporter})
		return fmt.Sprintf("%d tokens", len(tokens))
	})
	return tokens
}

func newTimer(opts Options) *observ.Timer {
	if !opts.Timings {
		return nil
	}
	return observ.NewTimer()
}
