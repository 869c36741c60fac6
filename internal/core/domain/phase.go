package domain

// Phase is the task pane's UI state. A single tagged value replaces the
// original boolean-flag soup so illegal combinations are unrepresentable.
type Phase int

const (
	// PhaseUninitialized means the host environment is not ready yet.
	PhaseUninitialized Phase = iota
	// PhaseUnauthenticated means the host is ready and no session exists.
	PhaseUnauthenticated
	// PhaseAuthenticating means an authentication dialog is in flight.
	PhaseAuthenticating
	// PhaseIdle means a session exists and no request is in flight.
	PhaseIdle
	// PhaseLoadingAvailability means an availability request is in flight.
	PhaseLoadingAvailability
	// PhaseResultsShown means proposed times are available for selection.
	PhaseResultsShown
	// PhaseCreatingMeeting means a meeting-creation request is in flight.
	PhaseCreatingMeeting
	// PhaseMeetingCreated means the backend confirmed a created meeting.
	PhaseMeetingCreated
)

// Authenticated reports whether the phase implies a live session.
func (p Phase) Authenticated() bool {
	switch p {
	case PhaseIdle, PhaseLoadingAvailability, PhaseResultsShown,
		PhaseCreatingMeeting, PhaseMeetingCreated:
		return true
	default:
		return false
	}
}

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseIdle:
		return "idle"
	case PhaseLoadingAvailability:
		return "loading_availability"
	case PhaseResultsShown:
		return "results_shown"
	case PhaseCreatingMeeting:
		return "creating_meeting"
	case PhaseMeetingCreated:
		return "meeting_created"
	default:
		return "unknown"
	}
}
