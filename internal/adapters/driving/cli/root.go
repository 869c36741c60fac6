package cli

import (
	"github.com/spf13/cobra"

	"github.com/smartmeet-labs/smartmeet-cli/internal/adapters/driven/config"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driven"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driving"
	"github.com/smartmeet-labs/smartmeet-cli/internal/logger"
	"github.com/smartmeet-labs/smartmeet-cli/internal/relay"
)

var (
	// Version is set by goreleaser ldflags.
	version = "dev"

	// Verbose enables debug logging.
	verbose bool

	// Services holds injected service implementations for CLI commands.
	taskPaneService driving.TaskPaneService
	schedulerAPI    driven.SchedulerAPI
	sessionStore    driven.SessionStore
	relayBus        *relay.Bus
	settings        config.Settings
	settingsPath    string
)

// Services holds configuration for CLI commands.
type Services struct {
	TaskPane     driving.TaskPaneService
	Scheduler    driven.SchedulerAPI
	Session      driven.SessionStore
	Bus          *relay.Bus
	Settings     config.Settings
	SettingsPath string
}

// SetServices injects service implementations for CLI commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	taskPaneService = s.TaskPane
	schedulerAPI = s.Scheduler
	sessionStore = s.Session
	relayBus = s.Bus
	settings = s.Settings
	settingsPath = s.SettingsPath
}

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "smartmeet",
	Short: "Schedule meetings from your mail draft",
	Long: `SmartMeet finds meeting times that work for everyone on your draft's
recipient list and creates the meeting in one step.

Connect a calendar once; scheduling happens through the SmartMeet backend.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")

	// Use PersistentPreRunE to set verbose mode before any command executes
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	}
}
