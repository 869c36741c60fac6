// Package tui launches the interactive task pane.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartmeet-labs/smartmeet-cli/internal/adapters/driving/tui/styles"
	"github.com/smartmeet-labs/smartmeet-cli/internal/adapters/driving/tui/views/pane"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driving"
)

// Run starts the task pane TUI and blocks until the user quits.
func Run(svc driving.TaskPaneService) error {
	view := pane.NewView(styles.DefaultStyles(), svc)
	program := tea.NewProgram(view, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
