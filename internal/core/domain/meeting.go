package domain

import "time"

// MeetingType identifies how a created meeting is held.
type MeetingType string

const (
	// MeetingTeams creates an online Teams meeting.
	MeetingTeams MeetingType = "teams"
	// MeetingInPerson creates an in-person meeting at a location.
	MeetingInPerson MeetingType = "in_person"
	// MeetingPhone creates a phone call meeting.
	MeetingPhone MeetingType = "phone"
)

// ConfidenceTier buckets a backend confidence score for display.
type ConfidenceTier string

const (
	// TierHigh is a confidence of 0.9 or above.
	TierHigh ConfidenceTier = "high"
	// TierMedium is a confidence of 0.7 or above.
	TierMedium ConfidenceTier = "medium"
	// TierLow is any confidence below 0.7.
	TierLow ConfidenceTier = "low"
)

// Tier maps a confidence score in [0,1] to its display tier.
// Boundaries are inclusive on the upper tier: 0.9 is high, 0.7 is medium.
func Tier(confidence float64) ConfidenceTier {
	switch {
	case confidence >= 0.9:
		return TierHigh
	case confidence >= 0.7:
		return TierMedium
	default:
		return TierLow
	}
}

// Label returns the tier's display label.
func (t ConfidenceTier) Label() string {
	switch t {
	case TierHigh:
		return "High Confidence"
	case TierMedium:
		return "Medium Confidence"
	default:
		return "Low Confidence"
	}
}

// ProposedTime is one candidate slot returned by the backend.
type ProposedTime struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Confidence float64   `json:"confidence"`
}

// Tier returns the display tier for this slot's confidence.
func (p ProposedTime) Tier() ConfidenceTier {
	return Tier(p.Confidence)
}

// AvailabilityResult is the backend's response to an availability request.
// It is a read-only snapshot; the client never mutates it.
type AvailabilityResult struct {
	MeetingID     string         `json:"meeting_id"`
	ProposedTimes []ProposedTime `json:"proposed_times"`
	PortalURL     string         `json:"portal_url"`
}

// AvailabilitySnapshot is a stored availability record fetched by meeting ID,
// rendered by the portal's availability page.
type AvailabilitySnapshot struct {
	MeetingID     string         `json:"meeting_id"`
	Emails        []string       `json:"emails"`
	ProposedTimes []ProposedTime `json:"proposed_times"`
	CreatedAt     time.Time      `json:"created_at"`
}

// MeetingConfig is the user-editable draft sent verbatim on meeting creation.
type MeetingConfig struct {
	Subject         string
	DurationMinutes int
	Type            MeetingType
	Location        string
	Body            string
	// TimeRangeDays is the search window for availability, in days from now.
	TimeRangeDays int
}

// DefaultMeetingConfig returns the config used when the user has not
// customised the draft.
func DefaultMeetingConfig() MeetingConfig {
	return MeetingConfig{
		Subject:         "Meeting",
		DurationMinutes: 30,
		Type:            MeetingTeams,
		TimeRangeDays:   7,
	}
}

// Meeting is the backend's confirmation of a created meeting.
type Meeting struct {
	MeetingID string    `json:"meeting_id"`
	Subject   string    `json:"subject"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	WebLink   string    `json:"web_link,omitempty"`
	TeamsLink string    `json:"teams_link,omitempty"`
	Attendees []string  `json:"attendees"`
}
