package relay

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrDialogClosed is returned when sending to a dialog that has been closed.
var ErrDialogClosed = errors.New("relay: dialog closed")

// ErrUnknownDialog is returned when no dialog with the given ID is open.
var ErrUnknownDialog = errors.New("relay: unknown dialog")

// Dialog is one open relay conversation between an opener and a child
// context. The opener consumes Messages and Events; the child side sends.
type Dialog struct {
	id     string
	msgs   chan string
	events chan Event

	once sync.Once
	done chan struct{}
}

// ID returns the dialog's correlation identifier.
func (d *Dialog) ID() string { return d.id }

// Messages delivers raw relay payloads from the child context.
func (d *Dialog) Messages() <-chan string { return d.msgs }

// Events delivers host-level dialog events.
func (d *Dialog) Events() <-chan Event { return d.events }

// Send delivers a raw payload to the opener. It fails once the dialog has
// been closed rather than blocking forever.
func (d *Dialog) Send(payload string) error {
	select {
	case <-d.done:
		return ErrDialogClosed
	case d.msgs <- payload:
		return nil
	}
}

// NotifyEvent delivers a host-level event to the opener.
func (d *Dialog) NotifyEvent(code int) error {
	select {
	case <-d.done:
		return ErrDialogClosed
	case d.events <- Event{Code: code}:
		return nil
	}
}

// Close terminates the dialog. Safe to call more than once.
func (d *Dialog) Close() {
	d.once.Do(func() { close(d.done) })
}

// Bus is an in-process relay channel connecting dialog contexts to their
// openers when the task pane and the portal run in one process. Dialogs are
// keyed by a generated ID so concurrent connects from separate panes do not
// cross-deliver.
type Bus struct {
	mu      sync.Mutex
	dialogs map[string]*Dialog
}

// NewBus creates an empty relay bus.
func NewBus() *Bus {
	return &Bus{dialogs: make(map[string]*Dialog)}
}

// Open registers a new dialog and returns it to the opener.
func (b *Bus) Open() *Dialog {
	d := &Dialog{
		id:     uuid.NewString(),
		msgs:   make(chan string, 1),
		events: make(chan Event, 1),
		done:   make(chan struct{}),
	}
	b.mu.Lock()
	b.dialogs[d.id] = d
	b.mu.Unlock()
	return d
}

// Send delivers a payload to the dialog with the given ID.
func (b *Bus) Send(id, payload string) error {
	d, ok := b.get(id)
	if !ok {
		return ErrUnknownDialog
	}
	return d.Send(payload)
}

// NotifyEvent delivers a host-level event to the dialog with the given ID.
func (b *Bus) NotifyEvent(id string, code int) error {
	d, ok := b.get(id)
	if !ok {
		return ErrUnknownDialog
	}
	return d.NotifyEvent(code)
}

// Broadcast delivers a payload to every open dialog. The callback handler
// uses this when the redirect carries no dialog correlation: the task pane
// keeps at most one dialog open, so the open dialog is the right target.
func (b *Bus) Broadcast(payload string) int {
	b.mu.Lock()
	dialogs := make([]*Dialog, 0, len(b.dialogs))
	for _, d := range b.dialogs {
		dialogs = append(dialogs, d)
	}
	b.mu.Unlock()

	delivered := 0
	for _, d := range dialogs {
		if err := d.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// Close terminates and unregisters the dialog with the given ID.
func (b *Bus) Close(id string) {
	b.mu.Lock()
	d, ok := b.dialogs[id]
	delete(b.dialogs, id)
	b.mu.Unlock()
	if ok {
		d.Close()
	}
}

func (b *Bus) get(id string) (*Dialog, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.dialogs[id]
	return d, ok
}
