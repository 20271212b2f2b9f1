package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"arithlex/internal/version"
)

// errDiagnostics сигнализирует об ошибках в диагностиках: они уже напечатаны,
// main только выставляет код выхода.
var errDiagnostics = errors.New("errors reported")

func newRootCmd(st *settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "arithlex",
		Short:         "Arithmetic expression tokenizer",
		Long:          `arithlex turns arithmetic expressions into classified tokens with byte spans`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.load(cmd)
		},
	}

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to arithlex.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-file", "", "append JSON logs to this file")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to this file")

	rootCmd.AddCommand(newTokenizeCmd(st))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// main builds the command tree and executes it.
// Any error, including reported error diagnostics, exits with status 1.
func main() {
	st := &settings{}
	err := newRootCmd(st).Execute()
	if closeErr := st.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
