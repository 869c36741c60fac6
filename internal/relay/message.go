// Package relay carries an authentication outcome from a child browsing
// context (the OAuth dialog / callback page) back to the opener (the task
// pane). The wire contract is a JSON-encoded string message; its shape is
// fixed by the backend and must not change.
package relay

import (
	"encoding/json"
	"fmt"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
)

// Message types understood by the channel.
const (
	// TypeAuthSuccess carries a credential after a successful connect.
	TypeAuthSuccess = "auth_success"
	// TypeAuthError carries a human-readable failure description.
	TypeAuthError = "auth_error"
)

// FallbackToken is sent when the backend's exchange response carries no
// usable token. The session is still considered connected.
const FallbackToken = "authenticated"

// Message is the relay payload, one of auth_success or auth_error.
type Message struct {
	Type   string `json:"type"`
	Token  string `json:"token,omitempty"`
	UserID string `json:"user_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Success builds an auth_success message. An empty token is replaced by
// the fallback sentinel so the opener always receives a credential.
func Success(token, userID string) Message {
	if token == "" {
		token = FallbackToken
	}
	return Message{Type: TypeAuthSuccess, Token: token, UserID: userID}
}

// Failure builds an auth_error message.
func Failure(errMsg string) Message {
	return Message{Type: TypeAuthError, Error: errMsg}
}

// Encode serialises the message to its string wire form.
func (m Message) Encode() (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode relay message: %w", err)
	}
	return string(b), nil
}

// Decode parses a raw payload into a Message. A payload that is not JSON,
// or whose type is not one of the known message types, is a protocol error.
func Decode(payload string) (Message, error) {
	var m Message
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", domain.ErrRelayProtocol, err)
	}
	switch m.Type {
	case TypeAuthSuccess, TypeAuthError:
		return m, nil
	default:
		return Message{}, fmt.Errorf("%w: unexpected message type %q", domain.ErrRelayProtocol, m.Type)
	}
}
