package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smartmeet-labs/smartmeet-cli/internal/adapters/driven/config"
	"github.com/smartmeet-labs/smartmeet-cli/internal/logger"
	"github.com/smartmeet-labs/smartmeet-cli/internal/portal"
)

var portalListen string

var portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Run the companion web portal",
	Long: `Run the web portal that hosts the OAuth callback pages and the
shareable availability view. The connect flow needs the portal running so
sign-in results can reach the task pane.`,
	RunE: runPortal,
}

func init() {
	portalCmd.Flags().StringVar(&portalListen, "listen", "", "listen address (defaults to the configured portal_listen)")
	rootCmd.AddCommand(portalCmd)
}

func runPortal(cmd *cobra.Command, _ []string) error {
	if schedulerAPI == nil {
		return errors.New("scheduler API not configured")
	}

	addr := portalListen
	if addr == "" {
		addr = settings.PortalListen
	}

	server, err := portal.NewServer(schedulerAPI, relayBus, settings.BackendURL)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The server binds its configuration at start and cannot apply edits
	// live; watch the settings file so restart-requiring changes are at
	// least announced instead of silently ignored.
	if settingsPath != "" {
		go func() {
			current := settings
			_ = config.Watch(ctx, settingsPath, func(updated config.Settings) {
				if notice := settingsChangeNotice(current, updated); notice != "" {
					logger.Infof("%s", notice)
				}
				current = updated
			})
		}()
	}

	return server.Start(ctx, addr)
}

// settingsChangeNotice names the setting the running portal binds at start
// that was edited, or returns "" when the edit does not affect the server.
func settingsChangeNotice(current, updated config.Settings) string {
	switch {
	case updated.BackendURL != current.BackendURL:
		return "backend URL changed in settings; restart the portal to apply"
	case updated.PortalListen != current.PortalListen:
		return "listen address changed in settings; restart the portal to apply"
	default:
		return ""
	}
}
