package host

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driven"
	"github.com/smartmeet-labs/smartmeet-cli/internal/logger"
	"github.com/smartmeet-labs/smartmeet-cli/internal/relay"
)

// Ensure BrowserDialogHost implements the interface.
var _ driven.DialogHost = (*BrowserDialogHost)(nil)

// OpenFunc launches a URL in the user's browser.
type OpenFunc func(ctx context.Context, url string) error

// BrowserDialogHost opens the authentication dialog in the system browser.
// The portal's callback handler relays the outcome back over the bus.
type BrowserDialogHost struct {
	bus  *relay.Bus
	open OpenFunc
}

// NewBrowserDialogHost creates a dialog host over the given relay bus.
// A nil open falls back to the platform browser launcher.
func NewBrowserDialogHost(bus *relay.Bus, open OpenFunc) *BrowserDialogHost {
	if open == nil {
		open = openBrowser
	}
	return &BrowserDialogHost{bus: bus, open: open}
}

// Open registers a relay dialog and sends the browser to url. The dialog is
// torn down again if the browser cannot be launched.
func (h *BrowserDialogHost) Open(ctx context.Context, url string) (driven.Dialog, error) {
	dialog := h.bus.Open()
	if err := h.open(ctx, url); err != nil {
		h.bus.Close(dialog.ID())
		return nil, fmt.Errorf("open browser: %w", err)
	}
	logger.Debugf("auth dialog %s opened in browser", dialog.ID())
	return &busDialog{Dialog: dialog, bus: h.bus}, nil
}

// busDialog unregisters from the bus on close so a finished dialog cannot
// receive stray callback broadcasts.
type busDialog struct {
	*relay.Dialog
	bus *relay.Bus
}

func (d *busDialog) Close() {
	d.bus.Close(d.ID())
}

// openBrowser launches url with the platform's default browser.
func openBrowser(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}
	return cmd.Start()
}
