package portal

import (
	"context"
	"errors"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driven"
)

// mockSchedulerAPI is a hand-rolled SchedulerAPI test double.
type mockSchedulerAPI struct {
	authURL   driven.AuthURL
	authErr   error
	authCalls int

	exchangeResult   driven.ExchangeResult
	exchangeErr      error
	exchangeCalls    int
	capturedExchange driven.ExchangeRequest

	snapshot  *domain.AvailabilitySnapshot
	lookupErr error
}

func (m *mockSchedulerAPI) AuthorizeURL(_ context.Context, _ domain.ProviderType) (driven.AuthURL, error) {
	m.authCalls++
	return m.authURL, m.authErr
}

func (m *mockSchedulerAPI) ExchangeCode(_ context.Context, req driven.ExchangeRequest) (driven.ExchangeResult, error) {
	m.exchangeCalls++
	m.capturedExchange = req
	return m.exchangeResult, m.exchangeErr
}

func (m *mockSchedulerAPI) Availability(_ context.Context, _ string, _ driven.AvailabilityRequest) (*domain.AvailabilityResult, error) {
	return nil, errors.New("not implemented")
}

func (m *mockSchedulerAPI) LookupAvailability(_ context.Context, _ string) (*domain.AvailabilitySnapshot, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	return m.snapshot, nil
}

func (m *mockSchedulerAPI) CreateMeeting(_ context.Context, _ string, _ int, _ driven.MeetingRequest) (*domain.Meeting, error) {
	return nil, errors.New("not implemented")
}
