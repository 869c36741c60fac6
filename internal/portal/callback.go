// Package portal is the companion web portal: the OAuth callback pages, the
// connect and success pages, and the shareable availability view. It relays
// authentication outcomes to the task pane and renders backend data; no
// scheduling decisions are made here.
package portal

import (
	"context"
	"net/url"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driven"
	"github.com/smartmeet-labs/smartmeet-cli/internal/logger"
	"github.com/smartmeet-labs/smartmeet-cli/internal/relay"
)

// CallbackOutcome is the resolved result of one callback redirect, ready to
// be relayed to the task pane and rendered to the user.
type CallbackOutcome struct {
	Message  relay.Message
	Provider string
}

// Succeeded reports whether the callback resolved to an auth_success.
func (o CallbackOutcome) Succeeded() bool {
	return o.Message.Type == relay.TypeAuthSuccess
}

// ResolveCallback resolves the provider redirect's query parameters into a
// relay message. The callback operates in two modes:
//
//   - code present: the code is posted to the backend exchange endpoint
//     together with state and the exact redirect URI, and the returned
//     credential is relayed.
//   - no code, but provider and user_id present: the backend already
//     finished the exchange server-side; user_id becomes the credential
//     and no network call is made.
//
// Provider error parameters win over both modes, and a redirect carrying
// neither code nor identity fails with a fixed message.
func ResolveCallback(ctx context.Context, api driven.SchedulerAPI, params url.Values, redirectURI string) CallbackOutcome {
	provider := params.Get("provider")

	if errParam := params.Get("error"); errParam != "" {
		desc := params.Get("error_description")
		if desc == "" {
			desc = errParam
		}
		logger.Debugf("callback: provider returned error %q", errParam)
		return CallbackOutcome{Message: relay.Failure(desc), Provider: provider}
	}

	if code := params.Get("code"); code != "" {
		result, err := api.ExchangeCode(ctx, driven.ExchangeRequest{
			Code:        code,
			State:       params.Get("state"),
			RedirectURI: redirectURI,
		})
		if err != nil {
			return CallbackOutcome{Message: relay.Failure(err.Error()), Provider: provider}
		}
		return CallbackOutcome{
			Message:  relay.Success(result.Credential(), result.UserID),
			Provider: provider,
		}
	}

	if userID := params.Get("user_id"); provider != "" && userID != "" {
		return CallbackOutcome{
			Message:  relay.Success(userID, userID),
			Provider: provider,
		}
	}

	return CallbackOutcome{
		Message:  relay.Failure("Authorization code not received"),
		Provider: provider,
	}
}
