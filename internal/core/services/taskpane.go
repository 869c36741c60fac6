package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driven"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driving"
	"github.com/smartmeet-labs/smartmeet-cli/internal/logger"
	"github.com/smartmeet-labs/smartmeet-cli/internal/relay"
)

// Ensure TaskPaneService implements the interface.
var _ driving.TaskPaneService = (*TaskPaneService)(nil)

// TaskPaneService is the task pane controller. It owns the UI phase, the
// authentication view, and the meeting draft, and orchestrates the session
// store, the scheduling backend, the mail host, and the auth dialog.
//
// All failure paths land in the authentication view as a human-readable
// message and the loading flag is always reset, so the pane never sticks
// in a spinner state.
type TaskPaneService struct {
	mu sync.Mutex

	phase   domain.Phase
	authErr string
	loading bool

	cfg     domain.MeetingConfig
	result  *domain.AvailabilityResult
	created *domain.Meeting

	connecting bool

	session  driven.SessionStore
	api      driven.SchedulerAPI
	host     driven.MailHost
	dialogs  driven.DialogHost
	provider domain.ProviderType
}

// NewTaskPaneService creates the controller in the uninitialized phase.
func NewTaskPaneService(
	session driven.SessionStore,
	api driven.SchedulerAPI,
	host driven.MailHost,
	dialogs driven.DialogHost,
	provider domain.ProviderType,
) *TaskPaneService {
	return &TaskPaneService{
		phase:    domain.PhaseUninitialized,
		cfg:      domain.DefaultMeetingConfig(),
		session:  session,
		api:      api,
		host:     host,
		dialogs:  dialogs,
		provider: provider,
	}
}

// HandleHostReady restores a persisted session, if any, and moves the
// controller out of the uninitialized phase.
func (s *TaskPaneService) HandleHostReady() domain.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.session.Get(); err != nil {
		if !errors.Is(err, domain.ErrNoSession) {
			logger.Errorf("session restore: %v", err)
		}
		s.phase = domain.PhaseUnauthenticated
	} else {
		s.phase = domain.PhaseIdle
	}
	return s.authLocked()
}

// Auth returns the current authentication view.
func (s *TaskPaneService) Auth() domain.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authLocked()
}

// Phase returns the current UI phase.
func (s *TaskPaneService) Phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Recipients rebuilds the recipient list from the host draft.
func (s *TaskPaneService) Recipients() ([]string, error) {
	return s.host.Recipients()
}

// Config returns the editable meeting draft.
func (s *TaskPaneService) Config() domain.MeetingConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetConfig replaces the editable meeting draft.
func (s *TaskPaneService) SetConfig(cfg domain.MeetingConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// Result returns the last availability result, or nil.
func (s *TaskPaneService) Result() *domain.AvailabilityResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Connect requests an authorization URL, opens the dialog there, and waits
// for a relay message or a dialog event. While a dialog is already open the
// call is a no-op returning the current state.
//
// Outcomes:
//   - auth_success: the token is persisted and the state becomes
//     authenticated.
//   - auth_error: the message's error is surfaced.
//   - malformed relay message: a fixed communication error is surfaced.
//   - user closed the dialog (code 12006): loading clears, no error.
//
// The dialog handle is closed exactly once on every outcome.
func (s *TaskPaneService) Connect(ctx context.Context) (domain.AuthState, error) {
	s.mu.Lock()
	if s.connecting {
		st := s.authLocked()
		s.mu.Unlock()
		return st, nil
	}
	s.connecting = true
	s.loading = true
	s.authErr = ""
	s.phase = domain.PhaseAuthenticating
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.connecting = false
		s.mu.Unlock()
	}()

	authURL, err := s.api.AuthorizeURL(ctx, s.provider)
	if err != nil {
		return s.fail(fmt.Sprintf("Failed to get authorization URL: %v", err))
	}

	logger.Debugf("opening auth dialog at %s", authURL.URL)
	dialog, err := s.dialogs.Open(ctx, authURL.URL)
	if err != nil {
		return s.fail(fmt.Sprintf("Failed to open authentication dialog: %v", err))
	}

	for {
		select {
		case <-ctx.Done():
			dialog.Close()
			st, _ := s.fail("Authentication cancelled")
			return st, ctx.Err()

		case payload := <-dialog.Messages():
			msg, err := relay.Decode(payload)
			if err != nil {
				dialog.Close()
				return s.fail(domain.ErrRelayProtocol.Error())
			}
			switch msg.Type {
			case relay.TypeAuthSuccess:
				dialog.Close()
				return s.completeAuth(msg.Token)
			case relay.TypeAuthError:
				dialog.Close()
				return s.fail(msg.Error)
			}

		case ev := <-dialog.Events():
			dialog.Close()
			if ev.UserClosed() {
				// Not an error: only the loading flag clears.
				s.mu.Lock()
				s.loading = false
				s.phase = domain.PhaseUnauthenticated
				st := s.authLocked()
				s.mu.Unlock()
				return st, nil
			}
			return s.fail(fmt.Sprintf("Authentication dialog error (code %d)", ev.Code))
		}
	}
}

// FindMeetingTimes requests proposed times for the draft recipients. It
// fails fast, before any network call, when the recipient list is empty or
// no session exists.
func (s *TaskPaneService) FindMeetingTimes(ctx context.Context) (*domain.AvailabilityResult, error) {
	emails, err := s.host.Recipients()
	if err != nil {
		s.setError(fmt.Sprintf("Failed to read recipients: %v", err))
		return nil, err
	}
	if len(emails) == 0 {
		s.setError(domain.ErrNoRecipients.Error())
		return nil, domain.ErrNoRecipients
	}

	token, err := s.session.Get()
	if err != nil {
		s.setError(domain.ErrNotAuthenticated.Error())
		return nil, domain.ErrNotAuthenticated
	}

	s.mu.Lock()
	s.loading = true
	s.authErr = ""
	s.phase = domain.PhaseLoadingAvailability
	cfg := s.cfg
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		if s.phase == domain.PhaseLoadingAvailability {
			s.phase = domain.PhaseIdle
		}
		s.mu.Unlock()
	}()

	now := time.Now()
	result, err := s.api.Availability(ctx, token, driven.AvailabilityRequest{
		Emails:          emails,
		StartTime:       now,
		EndTime:         now.AddDate(0, 0, cfg.TimeRangeDays),
		DurationMinutes: cfg.DurationMinutes,
	})
	if err != nil {
		s.setError(fmt.Sprintf("Failed to find meeting times: %v", err))
		return nil, err
	}

	s.mu.Lock()
	s.result = result
	s.phase = domain.PhaseResultsShown
	s.mu.Unlock()
	return result, nil
}

// CreateMeeting confirms the proposed time at timeIndex, then makes a
// best-effort attempt to insert a summary into the draft body. Insertion
// failure never fails the creation.
func (s *TaskPaneService) CreateMeeting(ctx context.Context, timeIndex int) (*domain.Meeting, error) {
	s.mu.Lock()
	result := s.result
	cfg := s.cfg
	s.mu.Unlock()

	if result == nil || timeIndex < 0 || timeIndex >= len(result.ProposedTimes) {
		err := fmt.Errorf("no proposed time at index %d", timeIndex)
		s.setError(err.Error())
		return nil, err
	}

	token, err := s.session.Get()
	if err != nil {
		s.setError(domain.ErrNotAuthenticated.Error())
		return nil, domain.ErrNotAuthenticated
	}
	emails, err := s.host.Recipients()
	if err != nil {
		s.setError(fmt.Sprintf("Failed to read recipients: %v", err))
		return nil, err
	}

	s.mu.Lock()
	s.loading = true
	s.authErr = ""
	s.phase = domain.PhaseCreatingMeeting
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		if s.phase == domain.PhaseCreatingMeeting {
			s.phase = domain.PhaseResultsShown
		}
		s.mu.Unlock()
	}()

	meeting, err := s.api.CreateMeeting(ctx, token, timeIndex, driven.MeetingRequest{
		Emails:          emails,
		Subject:         cfg.Subject,
		DurationMinutes: cfg.DurationMinutes,
		MeetingType:     cfg.Type,
		Location:        cfg.Location,
		Body:            cfg.Body,
		TimeZone:        time.Now().Location().String(),
	})
	if err != nil {
		s.setError(fmt.Sprintf("Failed to create meeting: %v", err))
		return nil, err
	}

	s.mu.Lock()
	s.created = meeting
	s.phase = domain.PhaseMeetingCreated
	s.mu.Unlock()

	if err := s.host.InsertBody(FormatMeetingSummary(meeting)); err != nil {
		logger.Debugf("body insertion failed: %v", err)
	}
	return meeting, nil
}

// Disconnect clears the session and resets the controller. It makes no
// backend call and succeeds regardless of prior state.
func (s *TaskPaneService) Disconnect() domain.AuthState {
	if err := s.session.Clear(); err != nil {
		logger.Errorf("clear session: %v", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = domain.PhaseUnauthenticated
	s.loading = false
	s.authErr = ""
	s.result = nil
	s.created = nil
	return s.authLocked()
}

// FormatMeetingSummary renders a created meeting as text suitable for
// insertion into the draft body.
func FormatMeetingSummary(m *domain.Meeting) string {
	summary := fmt.Sprintf("Meeting scheduled: %s\n%s - %s",
		m.Subject,
		m.Start.Local().Format("Mon, Jan 2 2006 3:04 PM"),
		m.End.Local().Format("3:04 PM MST"),
	)
	if m.TeamsLink != "" {
		summary += "\nJoin: " + m.TeamsLink
	} else if m.WebLink != "" {
		summary += "\nDetails: " + m.WebLink
	}
	return summary
}

// completeAuth persists the token and marks the state authenticated.
func (s *TaskPaneService) completeAuth(token string) (domain.AuthState, error) {
	if err := s.session.Set(token); err != nil {
		return s.fail(fmt.Sprintf("Failed to store session: %v", err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.authErr = ""
	s.phase = domain.PhaseIdle
	return s.authLocked(), nil
}

// fail records a human-readable error, clears loading, and returns the
// resulting state alongside the error for programmatic callers.
func (s *TaskPaneService) fail(msg string) (domain.AuthState, error) {
	s.setError(msg)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authLocked(), errors.New(msg)
}

func (s *TaskPaneService) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authErr = msg
	s.loading = false
	if s.phase == domain.PhaseAuthenticating {
		s.phase = domain.PhaseUnauthenticated
	}
}

func (s *TaskPaneService) authLocked() domain.AuthState {
	return domain.AuthState{
		IsAuthenticated: s.phase.Authenticated(),
		IsLoading:       s.loading,
		Error:           s.authErr,
	}
}
