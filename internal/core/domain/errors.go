package domain

import "errors"

// Sentinel errors shared across services and adapters.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoSession indicates no credential is stored in the session store.
	ErrNoSession = errors.New("no session")

	// ErrNotAuthenticated indicates an operation that requires a connected
	// calendar was invoked before authentication completed.
	ErrNotAuthenticated = errors.New("not authenticated: connect a calendar first")

	// ErrNoRecipients indicates the draft has no recipients to schedule with.
	ErrNoRecipients = errors.New("no recipients: add at least one attendee email")

	// ErrRelayProtocol indicates a relay message was malformed or of an
	// unexpected shape.
	ErrRelayProtocol = errors.New("authentication communication error")
)
