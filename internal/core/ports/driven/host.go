package driven

import (
	"context"

	"github.com/smartmeet-labs/smartmeet-cli/internal/relay"
)

// MailHost exposes the message the user is composing. Recipients are
// rebuilt from the host item on each read, never cached or deduplicated.
type MailHost interface {
	// Recipients returns the ordered recipient email addresses of the draft.
	Recipients() ([]string, error)
	// InsertBody appends text to the draft body. Callers must not let an
	// insertion failure fail the operation that produced the text.
	InsertBody(text string) error
}

// Dialog is an open authentication dialog. The opener consumes relayed
// messages and host-level lifecycle events until one of them settles the
// flow, then closes the handle.
type Dialog interface {
	Messages() <-chan string
	Events() <-chan relay.Event
	Close()
}

// DialogHost opens a host-managed dialog at an authorization URL.
type DialogHost interface {
	Open(ctx context.Context, url string) (Dialog, error)
}
