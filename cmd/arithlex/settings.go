package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"arithlex/internal/config"
	"arithlex/internal/logging"
	"arithlex/internal/prof"
)

// settings is the merged view of arithlex.toml and the persistent flags.
type settings struct {
	cfg            config.Config
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	log            *logging.Logger
	profile        *prof.Session
}

func (s *settings) load(cmd *cobra.Command) error {
	if err := s.close(); err != nil {
		return err
	}
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.Discover(wd, configPath)
	if err != nil {
		return err
	}

	colorMode := cfg.Color
	if flags.Changed("color") || !cfg.HasColor {
		if colorMode, err = flags.GetString("color"); err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	mode, err := readMode("color", colorMode)
	if err != nil {
		return err
	}

	maxDiagnostics := cfg.MaxDiagnostics
	if flags.Changed("max-diagnostics") || !cfg.HasMaxDiagnostics {
		if maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	level, err := flags.GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	logFile, err := flags.GetString("log-file")
	if err != nil {
		return fmt.Errorf("failed to get log-file flag: %w", err)
	}

	lg, err := logging.New(logging.Options{
		Level:    level,
		Stderr:   cmd.ErrOrStderr(),
		FilePath: logFile,
		Quiet:    quiet,
	})
	if err != nil {
		return err
	}

	var profOpts prof.Options
	if profOpts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if profOpts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if profOpts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	session, err := prof.Start(profOpts)
	if err != nil {
		_ = lg.Close()
		return err
	}

	s.cfg = cfg
	s.color = modeEnabled(mode, os.Stderr)
	s.quiet = quiet
	s.timings = timings
	s.maxDiagnostics = maxDiagnostics
	s.log = lg
	s.profile = session

	color.NoColor = !modeEnabled(mode, os.Stdout)
	if cfg.Path != "" {
		lg.Debug("config loaded", "path", cfg.Path)
	}
	return nil
}

func (s *settings) close() error {
	if s == nil {
		return nil
	}
	err := errors.Join(s.profile.Stop(), s.log.Close())
	s.profile, s.log = nil, nil
	return err
}
