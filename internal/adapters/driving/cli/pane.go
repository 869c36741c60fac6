package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/smartmeet-labs/smartmeet-cli/internal/adapters/driving/tui"
)

var paneCmd = &cobra.Command{
	Use:   "pane",
	Short: "Open the interactive task pane",
	Long: `Open the interactive task pane: connect a calendar, find times that
work for everyone on the draft, and schedule the meeting.`,
	RunE: runPane,
}

func init() {
	rootCmd.AddCommand(paneCmd)
}

func runPane(cmd *cobra.Command, _ []string) error {
	if taskPaneService == nil {
		return errors.New("task pane service not configured")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the task pane needs an interactive terminal; use 'smartmeet times' instead")
	}

	// Serve the sign-in callback for as long as the pane runs, so the
	// connect key can complete without a separate portal process.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := startCallbackRelay(ctx); err != nil {
		return err
	}

	return tui.Run(taskPaneService)
}
