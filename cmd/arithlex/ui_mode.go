package main

import (
	"fmt"
	"os"
	"strings"
)

// mode is the shared auto|on|off switch of --color and --ui.
type mode string

const (
	modeAuto mode = "auto"
	modeOn   mode = "on"
	modeOff  mode = "off"
)

func readMode(flag, value string) (mode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// modeEnabled resolves auto against whether f is a terminal.
func modeEnabled(m mode, f *os.File) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return f != nil && isTerminal(f)
	}
}
