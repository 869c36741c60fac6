package driven

import (
	"context"
	"time"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
)

// AuthURL is the backend's response to an authorize-url request.
type AuthURL struct {
	URL   string
	State string
}

// ExchangeRequest carries an authorization code to the backend for exchange.
type ExchangeRequest struct {
	Code        string
	State       string
	RedirectURI string
}

// ExchangeResult is the backend's response to a code exchange. Depending on
// backend version the credential arrives as AccessToken or Token.
type ExchangeResult struct {
	AccessToken string
	Token       string
	UserID      string
}

// Credential returns the usable session credential from the result,
// preferring access_token over token, or empty when neither was returned.
func (r ExchangeResult) Credential() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// AvailabilityRequest asks the backend for optimal meeting times.
type AvailabilityRequest struct {
	Emails          []string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
}

// MeetingRequest confirms a proposed time slot and creates the meeting.
type MeetingRequest struct {
	Emails          []string
	Subject         string
	DurationMinutes int
	MeetingType     domain.MeetingType
	Location        string
	Body            string
	TimeZone        string
}

// SchedulerAPI is the SmartMeet backend consumed over HTTP. All scheduling
// logic lives behind this port; the client only relays and renders.
type SchedulerAPI interface {
	// AuthorizeURL requests an OAuth authorization URL for the provider.
	AuthorizeURL(ctx context.Context, provider domain.ProviderType) (AuthURL, error)
	// ExchangeCode posts an authorization code for a session credential.
	ExchangeCode(ctx context.Context, req ExchangeRequest) (ExchangeResult, error)
	// Availability requests proposed meeting times, authenticated with token.
	Availability(ctx context.Context, token string, req AvailabilityRequest) (*domain.AvailabilityResult, error)
	// LookupAvailability fetches a stored availability record by meeting ID.
	LookupAvailability(ctx context.Context, meetingID string) (*domain.AvailabilitySnapshot, error)
	// CreateMeeting confirms the proposed time at selectedTimeIndex.
	CreateMeeting(ctx context.Context, token string, selectedTimeIndex int, req MeetingRequest) (*domain.Meeting, error)
}
