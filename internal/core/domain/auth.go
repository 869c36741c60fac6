package domain

// ProviderType identifies the calendar provider a user connects.
type ProviderType string

const (
	// ProviderMicrosoft is Microsoft 365 / Outlook calendar.
	ProviderMicrosoft ProviderType = "microsoft"
	// ProviderGoogle is Google Calendar.
	ProviderGoogle ProviderType = "google"
)

// DisplayName returns a human-readable provider name for UI surfaces.
func (p ProviderType) DisplayName() string {
	switch p {
	case ProviderMicrosoft:
		return "Microsoft Outlook"
	case ProviderGoogle:
		return "Google Calendar"
	default:
		return "your calendar"
	}
}

// AuthState is the authentication view of the task pane.
// It is owned by the task pane controller and mutated only by its handlers.
type AuthState struct {
	IsAuthenticated bool
	IsLoading       bool
	// Error is a human-readable message, empty when no error is pending.
	Error string
}
