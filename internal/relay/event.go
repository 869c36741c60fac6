package relay

// Host-level dialog event codes, distinct from message delivery.
const (
	// CodeUserClosed is reported when the user closes the dialog manually.
	// It is not an error: the opener only clears its loading state.
	CodeUserClosed = 12006
)

// Event is a host-level dialog lifecycle event carrying a numeric code.
type Event struct {
	Code int
}

// UserClosed reports whether the event means the user closed the dialog.
func (e Event) UserClosed() bool {
	return e.Code == CodeUserClosed
}
