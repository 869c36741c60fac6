// Package driving defines the ports consumed by driving adapters
// (CLI commands and the TUI).
package driving

import (
	"context"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
)

// TaskPaneService drives the add-in task pane state machine: host
// readiness, calendar connection, availability lookup, and meeting
// creation. Implementations keep all error outcomes in the returned
// AuthState so the UI always returns to an interactive state.
type TaskPaneService interface {
	// HandleHostReady restores any persisted session and reports the
	// resulting authentication state.
	HandleHostReady() domain.AuthState

	// Auth returns the current authentication view.
	Auth() domain.AuthState

	// Phase returns the current UI phase.
	Phase() domain.Phase

	// Recipients returns the draft's recipient list, rebuilt from the host.
	Recipients() ([]string, error)

	// Config returns the editable meeting draft.
	Config() domain.MeetingConfig

	// SetConfig replaces the editable meeting draft.
	SetConfig(cfg domain.MeetingConfig)

	// Connect runs the authentication dialog flow to completion. It is a
	// no-op while a dialog is already open.
	Connect(ctx context.Context) (domain.AuthState, error)

	// FindMeetingTimes requests proposed times for the draft recipients.
	FindMeetingTimes(ctx context.Context) (*domain.AvailabilityResult, error)

	// Result returns the last availability result, or nil.
	Result() *domain.AvailabilityResult

	// CreateMeeting confirms the proposed time at timeIndex.
	CreateMeeting(ctx context.Context, timeIndex int) (*domain.Meeting, error)

	// Disconnect clears the session unconditionally. No backend call.
	Disconnect() domain.AuthState
}
