package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/smartmeet-labs/smartmeet-cli/internal/adapters/driven/config"
	"github.com/smartmeet-labs/smartmeet-cli/internal/adapters/driven/host"
	"github.com/smartmeet-labs/smartmeet-cli/internal/adapters/driven/storage/sqlite"
	"github.com/smartmeet-labs/smartmeet-cli/internal/adapters/driving/cli"
	"github.com/smartmeet-labs/smartmeet-cli/internal/backend"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/services"
	"github.com/smartmeet-labs/smartmeet-cli/internal/relay"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	// Load settings, creating the file with defaults on first run
	settingsPath, err := config.DefaultPath()
	if err != nil {
		log.Printf("failed to resolve settings path: %v", err)
		return 1
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		log.Printf("failed to load settings: %v", err)
		return 1
	}

	// Open the SQLite session store beside the settings file
	sessionPath, err := sqlite.DefaultPath()
	if err != nil {
		log.Printf("failed to resolve session path: %v", err)
		return 1
	}
	sessionStore, err := sqlite.Open(sessionPath)
	if err != nil {
		log.Printf("failed to open session store: %v", err)
		return 1
	}
	defer sessionStore.Close()

	// Backend client; the add-in flow routes the Microsoft redirect to the
	// portal's callback page so the relay can pick up the result
	api := backend.New(settings.BackendURL)
	api.AddinFlow = true

	// Relay bus carries auth results from the portal callback to whichever
	// dialog is waiting on them
	bus := relay.NewBus()

	draftPath := settings.DraftPath
	if draftPath == "" {
		draftPath = filepath.Join(filepath.Dir(settingsPath), "draft.txt")
	}
	mail := host.NewDraftMail(draftPath)
	dialogs := host.NewBrowserDialogHost(bus, nil)

	taskPaneSvc := services.NewTaskPaneService(
		sessionStore, api, mail, dialogs,
		domain.ProviderType(settings.Provider),
	)

	cli.SetServices(&cli.Services{
		TaskPane:     taskPaneSvc,
		Scheduler:    api,
		Session:      sessionStore,
		Bus:          bus,
		Settings:     settings,
		SettingsPath: settingsPath,
	})

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
