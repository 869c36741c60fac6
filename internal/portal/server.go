package portal

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driven"
	"github.com/smartmeet-labs/smartmeet-cli/internal/logger"
	"github.com/smartmeet-labs/smartmeet-cli/internal/relay"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server serves the portal pages over HTTP.
type Server struct {
	api        driven.SchedulerAPI
	bus        *relay.Bus
	backendURL string
	mux        *http.ServeMux
	tmpl       *template.Template
}

// NewServer constructs the portal server. bus may be nil when the portal
// runs standalone; callback outcomes are then rendered but not relayed.
func NewServer(api driven.SchedulerAPI, bus *relay.Bus, backendURL string) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse portal templates: %w", err)
	}

	s := &Server{
		api:        api,
		bus:        bus,
		backendURL: backendURL,
		mux:        http.NewServeMux(),
		tmpl:       tmpl,
	}
	s.registerRoutes()
	return s, nil
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start binds addr and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// The connect flow serves a short-lived instance this way so the add-in
// callback is handled by the same process whose dialog awaits the outcome.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("portal listening on http://%s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/connect", http.StatusFound)
	})
	s.mux.HandleFunc("GET /connect", s.handleConnect)
	s.mux.HandleFunc("GET /connect/{provider}/start", s.handleConnectStart)
	s.mux.HandleFunc("GET /connect/microsoft/addin-callback", s.handleAddinCallback)
	s.mux.HandleFunc("GET /connect/microsoft/callback", s.handleCallbackHop)
	s.mux.HandleFunc("GET /success", s.handleSuccess)
	s.mux.HandleFunc("GET /availability/{meetingID}", s.handleAvailability)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type providerView struct {
	Name     string
	StartURL string
}

// handleConnect lists the calendar providers a user can connect.
func (s *Server) handleConnect(w http.ResponseWriter, _ *http.Request) {
	providers := []providerView{
		{Name: domain.ProviderMicrosoft.DisplayName(), StartURL: "/connect/microsoft/start"},
		{Name: domain.ProviderGoogle.DisplayName(), StartURL: "/connect/google/start"},
	}
	s.render(w, "connect.html", map[string]any{"Providers": providers})
}

// handleConnectStart asks the backend for an authorization URL and sends
// the browser there.
func (s *Server) handleConnectStart(w http.ResponseWriter, r *http.Request) {
	provider := domain.ProviderType(r.PathValue("provider"))
	if provider != domain.ProviderMicrosoft && provider != domain.ProviderGoogle {
		http.Error(w, "unknown provider", http.StatusNotFound)
		return
	}

	authURL, err := s.api.AuthorizeURL(r.Context(), provider)
	if err != nil {
		logger.Errorf("authorize url for %s: %v", provider, err)
		http.Error(w, "Failed to get authorization URL", http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, authURL.URL, http.StatusFound)
}

// handleAddinCallback is the dual-mode add-in callback page. The resolved
// outcome is relayed to the open task-pane dialog and rendered so the user
// knows the window can be closed.
func (s *Server) handleAddinCallback(w http.ResponseWriter, r *http.Request) {
	outcome := ResolveCallback(r.Context(), s.api, r.URL.Query(), requestURI(r))

	payload, err := outcome.Message.Encode()
	if err != nil {
		logger.Errorf("encode relay message: %v", err)
	} else if s.bus != nil {
		if n := s.bus.Broadcast(payload); n == 0 {
			logger.Debugf("callback outcome had no open dialog to relay to")
		}
	}

	s.render(w, "callback.html", map[string]any{
		"Succeeded": outcome.Succeeded(),
		"Error":     outcome.Message.Error,
		"Provider":  outcome.Provider,
	})
}

// handleCallbackHop forwards the provider redirect, query intact, to the
// backend's own callback endpoint.
func (s *Server) handleCallbackHop(w http.ResponseWriter, r *http.Request) {
	target := s.backendURL + "/connect/microsoft/callback"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) handleSuccess(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.render(w, "success.html", map[string]any{
		"Provider": q.Get("provider"),
		"UserID":   q.Get("user_id"),
	})
}

type slotView struct {
	Day        string
	TimeRange  string
	TierLabel  string
	TierClass  string
	Confidence int
}

// handleAvailability renders a stored availability record: participants and
// the proposed slots with their confidence tiers.
func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	meetingID := r.PathValue("meetingID")

	snapshot, err := s.api.LookupAvailability(r.Context(), meetingID)
	if err != nil {
		logger.Errorf("lookup availability %s: %v", meetingID, err)
		http.Error(w, "Availability record not found", http.StatusNotFound)
		return
	}

	slots := make([]slotView, 0, len(snapshot.ProposedTimes))
	for _, pt := range snapshot.ProposedTimes {
		tier := pt.Tier()
		slots = append(slots, slotView{
			Day:        pt.Start.Local().Format("Monday, January 2 2006"),
			TimeRange:  pt.Start.Local().Format("3:04 PM") + " - " + pt.End.Local().Format("3:04 PM MST"),
			TierLabel:  tier.Label(),
			TierClass:  string(tier),
			Confidence: int(pt.Confidence * 100),
		})
	}

	s.render(w, "availability.html", map[string]any{
		"MeetingID": snapshot.MeetingID,
		"Emails":    snapshot.Emails,
		"CreatedAt": snapshot.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM"),
		"Slots":     slots,
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Errorf("render %s: %v", name, err)
	}
}

// requestURI reconstructs the externally visible URL of the request without
// its query, which must match the redirect URI the provider was given.
func requestURI(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + r.Host + r.URL.Path
}
