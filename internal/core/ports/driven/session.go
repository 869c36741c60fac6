// Package driven defines the ports implemented by driven adapters:
// storage, the scheduling backend, and the mail host environment.
package driven

// SessionStore persists the single opaque session credential.
// At most one value exists at a time; presence implies the user is
// authenticated on next load. The backend is trusted to reject stale
// credentials, so no expiry check happens client-side.
type SessionStore interface {
	// Get returns the stored credential, or domain.ErrNoSession when absent.
	Get() (string, error)
	// Set stores the credential, replacing any existing value.
	Set(token string) error
	// Clear removes the credential. Clearing an empty store is not an error.
	Clear() error
}
