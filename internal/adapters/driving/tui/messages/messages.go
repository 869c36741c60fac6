// Package messages defines the bubbletea messages shared between TUI views
// and the commands that drive the task pane controller.
package messages

import "github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"

// ErrorOccurred reports an error to be surfaced in the active view.
type ErrorOccurred struct {
	Err error
}

// HostReady carries the restored authentication state at startup.
type HostReady struct {
	State domain.AuthState
}

// AuthCompleted carries the outcome of a connect attempt.
type AuthCompleted struct {
	State domain.AuthState
}

// TimesLoaded carries the availability result after a search.
type TimesLoaded struct {
	Result *domain.AvailabilityResult
}

// MeetingCreated carries the confirmed meeting.
type MeetingCreated struct {
	Meeting *domain.Meeting
}
