package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
	"github.com/smartmeet-labs/smartmeet-cli/internal/logger"
	"github.com/smartmeet-labs/smartmeet-cli/internal/portal"
)

var connectTimeout time.Duration

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect your calendar",
	Long: `Connect a calendar provider so SmartMeet can read availability and
create meetings. A browser window opens for sign-in; the session is stored
locally and reused until you disconnect.`,
	RunE: runConnect,
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect your calendar and clear the local session",
	RunE:  runDisconnect,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connection status",
	RunE:  runStatus,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the smartmeet version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("smartmeet %s\n", version)
	},
}

func init() {
	connectCmd.Flags().DurationVar(
		&connectTimeout, "timeout", 5*time.Minute,
		"how long to wait for the browser sign-in to complete")
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

func runConnect(cmd *cobra.Command, _ []string) error {
	if taskPaneService == nil {
		return errors.New("task pane service not configured")
	}

	state := taskPaneService.HandleHostReady()
	if state.IsAuthenticated {
		cmd.Println("Already connected. Run 'smartmeet disconnect' first to switch accounts.")
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), connectTimeout)
	defer cancel()

	// The provider redirects the browser to the portal address, so the
	// callback page must be served here, by the process whose dialog is
	// waiting, or the sign-in result can never arrive.
	if err := startCallbackRelay(ctx); err != nil {
		return err
	}

	provider := domain.ProviderType(settings.Provider)
	cmd.Printf("Opening browser to connect %s...\n", provider.DisplayName())
	cmd.Println("Complete the sign-in there; waiting for the result.")

	state, err := taskPaneService.Connect(ctx)
	if err != nil {
		return fmt.Errorf("connect failed: %s", state.Error)
	}
	if !state.IsAuthenticated {
		cmd.Println("Sign-in window was closed before completing. Nothing was changed.")
		return nil
	}

	cmd.Printf("Connected to %s.\n", provider.DisplayName())
	return nil
}

// startCallbackRelay serves the portal on the configured listen address
// until ctx is cancelled, sharing this process's relay bus. Without it the
// add-in callback would land in a different process and its relay broadcast
// could never reach the dialog opened here.
func startCallbackRelay(ctx context.Context) error {
	if schedulerAPI == nil || relayBus == nil {
		return errors.New("callback relay not configured")
	}

	server, err := portal.NewServer(schedulerAPI, relayBus, settings.BackendURL)
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", settings.PortalListen)
	if err != nil {
		return fmt.Errorf("listen on %s for the sign-in callback (stop 'smartmeet portal' if it is running): %w",
			settings.PortalListen, err)
	}

	go func() {
		if err := server.Serve(ctx, ln); err != nil {
			logger.Errorf("callback relay: %v", err)
		}
	}()
	return nil
}

func runDisconnect(cmd *cobra.Command, _ []string) error {
	if taskPaneService == nil {
		return errors.New("task pane service not configured")
	}

	taskPaneService.Disconnect()
	cmd.Println("Disconnected. The local session was cleared.")
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if taskPaneService == nil {
		return errors.New("task pane service not configured")
	}

	state := taskPaneService.HandleHostReady()
	if state.IsAuthenticated {
		cmd.Printf("Connected (%s)\n", domain.ProviderType(settings.Provider).DisplayName())
	} else {
		cmd.Println("Not connected. Run 'smartmeet connect' to link a calendar.")
	}
	cmd.Printf("Backend: %s\n", settings.BackendURL)
	if settingsPath != "" {
		cmd.Printf("Settings: %s\n", settingsPath)
	}
	return nil
}
