package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"arithlex/internal/diag"
	"arithlex/internal/source"
)

type palette struct {
	err, warn, info, code, note, caret, gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		note:   color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.note, p.caret, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		sevColor := pal.severity(d.Severity)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			location(fs, d.Primary, opts.PathMode),
			sevColor.Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message,
		)
		if opts.ShowSource && d.Code < diag.ObsInfo {
			writeSnippet(w, fs, d.Primary, pal)
		}
		if opts.ShowNotes || d.Code == diag.ObsTimings {
			for _, note := range d.Notes {
				fmt.Fprintf(w, "  %s %s: %s\n",
					pal.note.Sprint("note:"),
					location(fs, note.Span, opts.PathMode),
					note.Msg,
				)
			}
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown (limit %d)\n", dropped, bag.Cap())
	}
}

func location(fs *source.FileSet, span source.Span, mode PathMode) string {
	f := lookupFile(fs, span.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs, f, mode), start.Line, start.Col)
}

// writeSnippet печатает строку с началом span и подчёркивание под ним.
// Колонки считаются в ячейках терминала, чтобы ^ стоял под широкими рунами.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, pal palette) {
	f := lookupFile(fs, span.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)

	startCol := min(int(start.Col)-1, len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(int(end.Col)-1, len(line))
	}
	endCol = max(endCol, startCol)

	lineNo := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(lineNo))
	fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(lineNo), pal.gutter.Sprint("|"), line)

	width := max(runewidth.StringWidth(line[startCol:endCol]), 1)
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s %s%s\n", pad, pal.gutter.Sprint("|"), indent(line[:startCol]), pal.caret.Sprint(underline))
}

// indent повторяет ширину префикса строки, сохраняя табы.
func indent(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}
