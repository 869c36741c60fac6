// Package config loads and persists the client settings file.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/smartmeet-labs/smartmeet-cli/internal/backend"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
	"github.com/smartmeet-labs/smartmeet-cli/internal/logger"
)

// EnvAPIURL overrides the configured backend base URL when set.
const EnvAPIURL = "SMARTMEET_API_URL"

// Settings is the on-disk configuration shape.
type Settings struct {
	// BackendURL is the SmartMeet backend base URL. Empty selects the
	// production backend.
	BackendURL string `toml:"backend_url"`
	// Provider is the calendar provider used by connect.
	Provider string `toml:"provider"`
	// PortalListen is the portal server's listen address.
	PortalListen string `toml:"portal_listen"`
	// DraftPath is the mail draft file read for recipients.
	DraftPath string `toml:"draft_path"`

	Meeting MeetingSettings `toml:"meeting"`
}

// MeetingSettings are the defaults for a new meeting draft.
type MeetingSettings struct {
	Subject         string `toml:"subject"`
	DurationMinutes int    `toml:"duration_minutes"`
	Type            string `toml:"type"`
	TimeRangeDays   int    `toml:"time_range_days"`
}

// Default returns the settings used when no file exists yet.
func Default() Settings {
	cfg := domain.DefaultMeetingConfig()
	return Settings{
		BackendURL:   backend.DefaultBaseURL,
		Provider:     string(domain.ProviderMicrosoft),
		PortalListen: "localhost:3000",
		Meeting: MeetingSettings{
			Subject:         cfg.Subject,
			DurationMinutes: cfg.DurationMinutes,
			Type:            string(cfg.Type),
			TimeRangeDays:   cfg.TimeRangeDays,
		},
	}
}

// DefaultPath returns the settings file path under the user's home.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".smartmeet", "config.toml"), nil
}

// Load reads settings from path, creating the file with defaults on first
// run. The SMARTMEET_API_URL environment variable overrides the backend URL.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := Save(path, settings); err != nil {
			return Settings{}, err
		}
	case err != nil:
		return Settings{}, fmt.Errorf("read settings: %w", err)
	default:
		if err := toml.Unmarshal(data, &settings); err != nil {
			return Settings{}, fmt.Errorf("parse settings: %w", err)
		}
	}

	if override := os.Getenv(EnvAPIURL); override != "" {
		settings.BackendURL = override
	}
	return settings, nil
}

// Save writes settings to path. The file is created with 0600 permissions;
// it holds no secrets today but the session database lives beside it.
func Save(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// MeetingConfig converts the meeting defaults to the domain draft,
// falling back to built-in defaults for missing or invalid values.
func (s Settings) MeetingConfig() domain.MeetingConfig {
	cfg := domain.DefaultMeetingConfig()
	if s.Meeting.Subject != "" {
		cfg.Subject = s.Meeting.Subject
	}
	if s.Meeting.DurationMinutes > 0 {
		cfg.DurationMinutes = s.Meeting.DurationMinutes
	}
	switch domain.MeetingType(s.Meeting.Type) {
	case domain.MeetingTeams, domain.MeetingInPerson, domain.MeetingPhone:
		cfg.Type = domain.MeetingType(s.Meeting.Type)
	}
	if s.Meeting.TimeRangeDays > 0 {
		cfg.TimeRangeDays = s.Meeting.TimeRangeDays
	}
	return cfg
}

// Watch reloads the settings file when it changes and calls onChange with
// the new settings. It blocks until ctx is cancelled. The long-running
// portal process uses this to pick up backend URL changes without a restart.
func Watch(ctx context.Context, path string, onChange func(Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace the file on save, which would
	// invalidate a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch settings directory: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			settings, err := Load(path)
			if err != nil {
				logger.Errorf("reload settings: %v", err)
				continue
			}
			logger.Debugf("settings reloaded from %s", path)
			onChange(settings)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("settings watcher: %v", err)
		}
	}
}
