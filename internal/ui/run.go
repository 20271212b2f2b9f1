package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"arithlex/internal/driver"
)

// RunProgress renders the progress model to out until events is closed.
// cancel is called when the user interrupts the run.
func RunProgress(title string, files []string, events <-chan driver.Event, out io.Writer, cancel func()) error {
	model := NewProgressModel(title, files, events, cancel)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, err := program.Run()
	return err
}
