package portal

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driven"
	"github.com/smartmeet-labs/smartmeet-cli/internal/relay"
)

func newTestServer(t *testing.T, api *mockSchedulerAPI, bus *relay.Bus) *Server {
	t.Helper()
	s, err := NewServer(api, bus, "https://backend.example")
	require.NoError(t, err)
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t, &mockSchedulerAPI{}, nil)

	rec := get(t, s, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestServer_RootRedirectsToConnect(t *testing.T) {
	s := newTestServer(t, &mockSchedulerAPI{}, nil)

	rec := get(t, s, "/")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/connect", rec.Header().Get("Location"))
}

func TestServer_ConnectListsProviders(t *testing.T) {
	s := newTestServer(t, &mockSchedulerAPI{}, nil)

	rec := get(t, s, "/connect")
	body, _ := io.ReadAll(rec.Body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), "Microsoft Outlook")
	assert.Contains(t, string(body), "Google Calendar")
	assert.Contains(t, string(body), "/connect/microsoft/start")
}

func TestServer_ConnectStartRedirectsToProvider(t *testing.T) {
	api := &mockSchedulerAPI{authURL: driven.AuthURL{URL: "https://login.example/oauth?x=1"}}
	s := newTestServer(t, api, nil)

	rec := get(t, s, "/connect/microsoft/start")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://login.example/oauth?x=1", rec.Header().Get("Location"))
	assert.Equal(t, 1, api.authCalls)
}

func TestServer_ConnectStartRejectsUnknownProvider(t *testing.T) {
	s := newTestServer(t, &mockSchedulerAPI{}, nil)

	rec := get(t, s, "/connect/dropbox/start")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_AddinCallbackRelaysSuccess(t *testing.T) {
	api := &mockSchedulerAPI{
		exchangeResult: driven.ExchangeResult{AccessToken: "tok-1", UserID: "u-1"},
	}
	bus := relay.NewBus()
	dialog := bus.Open()
	s := newTestServer(t, api, bus)

	rec := get(t, s, "/connect/microsoft/addin-callback?code=abc&state=xyz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Calendar connected")

	payload := <-dialog.Messages()
	msg, err := relay.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, relay.TypeAuthSuccess, msg.Type)
	assert.Equal(t, "tok-1", msg.Token)

	// The exchange's redirect URI is the callback page itself, query stripped.
	assert.Equal(t, "http://example.com/connect/microsoft/addin-callback", api.capturedExchange.RedirectURI)
}

func TestServer_AddinCallbackRendersError(t *testing.T) {
	bus := relay.NewBus()
	dialog := bus.Open()
	s := newTestServer(t, &mockSchedulerAPI{}, bus)

	rec := get(t, s, "/connect/microsoft/addin-callback?error=access_denied&error_description=User+declined")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication failed")
	assert.Contains(t, rec.Body.String(), "User declined")

	msg, err := relay.Decode(<-dialog.Messages())
	require.NoError(t, err)
	assert.Equal(t, relay.TypeAuthError, msg.Type)
}

func TestServer_ServeDeliversCallbackOverTheWire(t *testing.T) {
	bus := relay.NewBus()
	dialog := bus.Open()
	s := newTestServer(t, &mockSchedulerAPI{}, bus)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() +
		"/connect/microsoft/addin-callback?provider=microsoft&user_id=u-42")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	select {
	case payload := <-dialog.Messages():
		msg, err := relay.Decode(payload)
		require.NoError(t, err)
		assert.Equal(t, relay.TypeAuthSuccess, msg.Type)
		assert.Equal(t, "u-42", msg.Token)
	case <-time.After(3 * time.Second):
		t.Fatal("callback outcome never reached the dialog")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestServer_AddinCallbackWithoutBus(t *testing.T) {
	api := &mockSchedulerAPI{exchangeResult: driven.ExchangeResult{Token: "tok"}}
	s := newTestServer(t, api, nil)

	rec := get(t, s, "/connect/microsoft/addin-callback?code=abc")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_CallbackHopForwardsQuery(t *testing.T) {
	s := newTestServer(t, &mockSchedulerAPI{}, nil)

	rec := get(t, s, "/connect/microsoft/callback?code=abc&state=xyz")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t,
		"https://backend.example/connect/microsoft/callback?code=abc&state=xyz",
		rec.Header().Get("Location"))
}

func TestServer_SuccessPage(t *testing.T) {
	s := newTestServer(t, &mockSchedulerAPI{}, nil)

	rec := get(t, s, "/success?provider=microsoft&user_id=u-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "microsoft")
	assert.Contains(t, rec.Body.String(), "u-1")
}

func TestServer_AvailabilityPage(t *testing.T) {
	start := time.Date(2026, 9, 3, 14, 0, 0, 0, time.UTC)
	api := &mockSchedulerAPI{
		snapshot: &domain.AvailabilitySnapshot{
			MeetingID: "m-1",
			Emails:    []string{"a@example.com", "b@example.com"},
			ProposedTimes: []domain.ProposedTime{
				{Start: start, End: start.Add(30 * time.Minute), Confidence: 0.95},
				{Start: start.Add(time.Hour), End: start.Add(90 * time.Minute), Confidence: 0.5},
			},
			CreatedAt: start.Add(-time.Hour),
		},
	}
	s := newTestServer(t, api, nil)

	rec := get(t, s, "/availability/m-1")
	body := rec.Body.String()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "m-1")
	assert.Contains(t, body, "a@example.com")
	assert.Contains(t, body, "High Confidence")
	assert.Contains(t, body, "Low Confidence")
	assert.Contains(t, body, "95%")
}

func TestServer_AvailabilityNotFound(t *testing.T) {
	api := &mockSchedulerAPI{lookupErr: domain.ErrNotFound}
	s := newTestServer(t, api, nil)

	rec := get(t, s, "/availability/missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
