package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"arithlex/internal/diag"
	"arithlex/internal/diagfmt"
	"arithlex/internal/driver"
	"arithlex/internal/source"
	"arithlex/internal/token"
)

type tokenizeOptions struct {
	format         string
	expr           string
	hasExpr        bool
	skipWhitespace bool
	jobs           int
	ui             mode
	driver         driver.Options
}

// dirTokens is one file of a directory run in json/msgpack output.
type dirTokens struct {
	Path   string                `json:"path" msgpack:"path"`
	Tokens []diagfmt.TokenOutput `json:"tokens" msgpack:"tokens"`
}

func newTokenizeCmd(st *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] [file|dir|-]",
		Short: "Tokenize arithmetic expressions",
		Long: `Tokenize breaks an arithmetic expression into tokens.
The input is a file, every *.calc/*.expr file under a directory, stdin ("-" or no argument), or --expr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, args, st)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().String("expr", "", "tokenize this expression instead of reading input")
	cmd.Flags().Bool("skip-whitespace", false, "omit Whitespace tokens from the output")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directories (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	cmd.Flags().Bool("nfc", false, "normalize input to Unicode NFC before lexing")
	return cmd
}

func readTokenizeOptions(cmd *cobra.Command, st *settings) (tokenizeOptions, error) {
	flags := cmd.Flags()
	cfg := st.cfg
	var opts tokenizeOptions
	var err error

	opts.format = cfg.Format
	if flags.Changed("format") || !cfg.HasFormat {
		if opts.format, err = flags.GetString("format"); err != nil {
			return opts, fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	opts.format = strings.ToLower(opts.format)
	switch opts.format {
	case "pretty", "json", "msgpack":
	default:
		return opts, fmt.Errorf("unknown format: %s", opts.format)
	}

	if opts.expr, err = flags.GetString("expr"); err != nil {
		return opts, fmt.Errorf("failed to get expr flag: %w", err)
	}
	opts.hasExpr = flags.Changed("expr")

	opts.skipWhitespace = cfg.SkipWhitespace
	if flags.Changed("skip-whitespace") || !cfg.HasSkipWhitespace {
		if opts.skipWhitespace, err = flags.GetBool("skip-whitespace"); err != nil {
			return opts, fmt.Errorf("failed to get skip-whitespace flag: %w", err)
		}
	}

	opts.jobs = cfg.Jobs
	if flags.Changed("jobs") || !cfg.HasJobs {
		if opts.jobs, err = flags.GetInt("jobs"); err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}

	nfc := cfg.NFC
	if flags.Changed("nfc") || !cfg.HasNFC {
		if nfc, err = flags.GetBool("nfc"); err != nil {
			return opts, fmt.Errorf("failed to get nfc flag: %w", err)
		}
	}

	uiValue, err := flags.GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.ui, err = readMode("ui", uiValue); err != nil {
		return opts, err
	}

	opts.driver = driver.Options{
		MaxDiagnostics: st.maxDiagnostics,
		NFC:            nfc,
		Timings:        st.timings,
		Extensions:     cfg.Extensions,
		Jobs:           opts.jobs,
		Logger:         st.log.Logger,
	}
	return opts, nil
}

func runTokenize(cmd *cobra.Command, args []string, st *settings) error {
	opts, err := readTokenizeOptions(cmd, st)
	if err != nil {
		return err
	}
	switch {
	case opts.hasExpr:
		if len(args) > 0 {
			return errors.New("--expr cannot be combined with a path argument")
		}
		res := driver.TokenizeSource("<expr>", []byte(opts.expr), opts.driver)
		return finishSingle(cmd, st, opts, res)

	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		res := driver.TokenizeSource("<stdin>", data, opts.driver)
		return finishSingle(cmd, st, opts, res)
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if info.IsDir() {
		return runTokenizeDir(cmd.Context(), cmd, st, opts, path)
	}

	res, err := driver.Tokenize(path, opts.driver)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	return finishSingle(cmd, st, opts, res)
}

func finishSingle(cmd *cobra.Command, st *settings, opts tokenizeOptions, res *driver.TokenizeResult) error {
	if err := reportDiagnostics(cmd.ErrOrStderr(), st, opts, res.Bag, res.FileSet); err != nil {
		return err
	}
	tokens := filterTokens(res.Tokens, opts)

	// Выводим токены в выбранном формате
	out := cmd.OutOrStdout()
	var err error
	switch opts.format {
	case "json":
		err = diagfmt.FormatTokensJSON(out, tokens)
	case "msgpack":
		err = diagfmt.FormatTokensMsgpack(out, tokens)
	default:
		err = diagfmt.FormatTokensPretty(out, tokens, res.FileSet)
	}
	if err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func runTokenizeDir(ctx context.Context, cmd *cobra.Command, st *settings, opts tokenizeOptions, dir string) error {
	var (
		fileSet *source.FileSet
		results []driver.TokenizeDirResult
		err     error
	)
	if modeEnabled(opts.ui, os.Stderr) && !st.quiet {
		fileSet, results, err = runTokenizeDirWithUI(ctx, dir, opts.driver, cmd.ErrOrStderr())
	} else {
		fileSet, results, err = driver.TokenizeDir(ctx, dir, opts.driver)
	}
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	bag := diag.NewBag(st.maxDiagnostics)
	for _, r := range results {
		bag.Merge(r.Bag)
	}
	if err := reportDiagnostics(cmd.ErrOrStderr(), st, opts, bag, fileSet); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case "json", "msgpack":
		payload := make([]dirTokens, 0, len(results))
		for _, r := range results {
			payload = append(payload, dirTokens{
				Path:   r.Path,
				Tokens: diagfmt.BuildTokenOutput(filterTokens(r.Tokens, opts)),
			})
		}
		if opts.format == "json" {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			err = enc.Encode(payload)
		} else {
			err = msgpack.NewEncoder(out).Encode(payload)
		}
	default:
		for _, r := range results {
			if r.Tokens == nil {
				continue
			}
			fmt.Fprintf(out, "==> %s <==\n", r.Path)
			if err = diagfmt.FormatTokensPretty(out, filterTokens(r.Tokens, opts), fileSet); err != nil {
				break
			}
		}
	}
	if err != nil {
		return err
	}
	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func filterTokens(tokens []token.Token, opts tokenizeOptions) []token.Token {
	if opts.skipWhitespace {
		return diagfmt.SkipWhitespace(tokens)
	}
	return tokens
}

// reportDiagnostics печатает диагностики в stderr: pretty или json под --format json.
// Под --quiet остаются только ошибки.
func reportDiagnostics(w io.Writer, st *settings, opts tokenizeOptions, bag *diag.Bag, fs *source.FileSet) error {
	if st.quiet {
		bag.Filter(func(d diag.Diagnostic) bool { return d.Severity >= diag.SevError })
	}
	st.log.Debug("diagnostics",
		"count", bag.Len(),
		"dropped", bag.Dropped(),
		"errors", bag.HasErrors(),
		"warnings", bag.HasWarnings(),
	)
	if bag.Len() == 0 && (bag.Dropped() == 0 || st.quiet) {
		return nil
	}
	bag.Dedup()
	bag.Sort()
	if opts.format == "json" {
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			IncludeNotes:     true,
		})
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:      st.color,
		PathMode:   diagfmt.PathModeAuto,
		ShowNotes:  true,
		ShowSource: true,
	})
	return nil
}
