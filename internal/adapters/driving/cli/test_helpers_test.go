package cli

import (
	"context"
	"errors"
	"time"

	"github.com/smartmeet-labs/smartmeet-cli/internal/adapters/driven/config"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driven"
	"github.com/smartmeet-labs/smartmeet-cli/internal/relay"
)

// mockTaskPaneService implements driving.TaskPaneService for testing.
type mockTaskPaneService struct {
	auth   domain.AuthState
	phase  domain.Phase
	cfg    domain.MeetingConfig
	result *domain.AvailabilityResult

	connectErr error
	connectFn  func(ctx context.Context) (domain.AuthState, error)
	findErr    error
	createErr  error
	meeting    *domain.Meeting

	disconnectCalls int
	createdIndex    int
}

func (m *mockTaskPaneService) HandleHostReady() domain.AuthState { return m.auth }

func (m *mockTaskPaneService) Auth() domain.AuthState { return m.auth }

func (m *mockTaskPaneService) Phase() domain.Phase { return m.phase }

func (m *mockTaskPaneService) Recipients() ([]string, error) {
	return []string{"a@example.com"}, nil
}

func (m *mockTaskPaneService) Config() domain.MeetingConfig { return m.cfg }

func (m *mockTaskPaneService) SetConfig(cfg domain.MeetingConfig) { m.cfg = cfg }

func (m *mockTaskPaneService) Connect(ctx context.Context) (domain.AuthState, error) {
	if m.connectFn != nil {
		return m.connectFn(ctx)
	}
	if m.connectErr != nil {
		return domain.AuthState{Error: m.connectErr.Error()}, m.connectErr
	}
	m.auth = domain.AuthState{IsAuthenticated: true}
	return m.auth, nil
}

func (m *mockTaskPaneService) FindMeetingTimes(_ context.Context) (*domain.AvailabilityResult, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.result, nil
}

func (m *mockTaskPaneService) Result() *domain.AvailabilityResult { return m.result }

func (m *mockTaskPaneService) CreateMeeting(_ context.Context, timeIndex int) (*domain.Meeting, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.createdIndex = timeIndex
	if m.meeting != nil {
		return m.meeting, nil
	}
	return nil, errors.New("no meeting configured")
}

func (m *mockTaskPaneService) Disconnect() domain.AuthState {
	m.disconnectCalls++
	m.auth = domain.AuthState{}
	return m.auth
}

// sampleAvailability returns a three-slot availability result.
func sampleAvailability() *domain.AvailabilityResult {
	start := time.Date(2026, 9, 3, 14, 0, 0, 0, time.UTC)
	return &domain.AvailabilityResult{
		MeetingID: "m-1",
		ProposedTimes: []domain.ProposedTime{
			{Start: start, End: start.Add(30 * time.Minute), Confidence: 0.95},
			{Start: start.Add(time.Hour), End: start.Add(90 * time.Minute), Confidence: 0.8},
			{Start: start.Add(2 * time.Hour), End: start.Add(150 * time.Minute), Confidence: 0.5},
		},
		PortalURL: "https://portal.example/availability/m-1",
	}
}

// mockScheduler implements driven.SchedulerAPI for testing.
type mockScheduler struct{}

func (m *mockScheduler) AuthorizeURL(_ context.Context, _ domain.ProviderType) (driven.AuthURL, error) {
	return driven.AuthURL{URL: "https://login.example/oauth"}, nil
}

func (m *mockScheduler) ExchangeCode(_ context.Context, _ driven.ExchangeRequest) (driven.ExchangeResult, error) {
	return driven.ExchangeResult{AccessToken: "tok"}, nil
}

func (m *mockScheduler) Availability(_ context.Context, _ string, _ driven.AvailabilityRequest) (*domain.AvailabilityResult, error) {
	return sampleAvailability(), nil
}

func (m *mockScheduler) LookupAvailability(_ context.Context, _ string) (*domain.AvailabilitySnapshot, error) {
	return &domain.AvailabilitySnapshot{MeetingID: "m-1"}, nil
}

func (m *mockScheduler) CreateMeeting(_ context.Context, _ string, _ int, _ driven.MeetingRequest) (*domain.Meeting, error) {
	return &domain.Meeting{MeetingID: "m-1"}, nil
}

// setupTestServices injects mock services for testing and returns a cleanup func.
func setupTestServices(svc *mockTaskPaneService) func() {
	oldTaskPane := taskPaneService
	oldScheduler := schedulerAPI
	oldBus := relayBus
	oldSettings := settings

	taskPaneService = svc
	schedulerAPI = &mockScheduler{}
	relayBus = relay.NewBus()
	settings = config.Default()
	// An ephemeral port keeps the callback relay from binding a real one.
	settings.PortalListen = "127.0.0.1:0"

	return func() {
		taskPaneService = oldTaskPane
		schedulerAPI = oldScheduler
		relayBus = oldBus
		settings = oldSettings
	}
}
