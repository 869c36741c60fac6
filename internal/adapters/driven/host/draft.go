// Package host adapts the user's mail draft and the system browser to the
// ports the task pane controller drives.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driven"
)

// Ensure DraftMail implements the interface.
var _ driven.MailHost = (*DraftMail)(nil)

// DraftMail reads the message being composed from a local draft file. The
// format is a To: header line followed by a blank line and the body:
//
//	To: alice@example.com, bob@example.com
//
//	Looking forward to it!
type DraftMail struct {
	path string
}

// NewDraftMail creates a mail host backed by the draft file at path.
func NewDraftMail(path string) *DraftMail {
	return &DraftMail{path: path}
}

// Recipients parses the draft's To: line into a list of attendee emails.
// Entries without an @ are dropped. A missing draft file means an empty
// recipient list, not an error.
func (d *DraftMail) Recipients() ([]string, error) {
	f, err := os.Open(d.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open draft: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		if rest, ok := strings.CutPrefix(line, "To:"); ok {
			return parseAddressList(rest), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	return nil, nil
}

// InsertBody appends text to the draft body.
func (d *DraftMail) InsertBody(text string) error {
	f, err := os.OpenFile(d.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open draft for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\n" + text + "\n"); err != nil {
		return fmt.Errorf("append to draft: %w", err)
	}
	return nil
}

// parseAddressList splits a comma- or semicolon-separated address list.
func parseAddressList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})

	emails := make([]string, 0, len(fields))
	for _, field := range fields {
		addr := strings.TrimSpace(field)
		if addr == "" || !strings.Contains(addr, "@") {
			continue
		}
		emails = append(emails, addr)
	}
	return emails
}
