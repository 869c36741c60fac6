// Package backend is the HTTP client for the SmartMeet scheduling backend.
// Availability computation, confidence scoring, meeting creation, and token
// issuance all happen server-side; this package only shapes requests and
// decodes responses.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driven"
)

// Backend base URLs. The production URL is the default; local development
// overrides it through configuration or SMARTMEET_API_URL.
const (
	DefaultBaseURL = "https://smartmeet-production.up.railway.app"
	LocalBaseURL   = "http://localhost:8000"
)

// Ensure Client implements the scheduler port.
var _ driven.SchedulerAPI = (*Client)(nil)

// Client talks to the SmartMeet backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *RateLimiter

	// AddinFlow selects the add-in authorize endpoint for Microsoft,
	// whose redirect lands on the add-in callback page.
	AddinFlow bool
}

// New creates a client for the given base URL. An empty baseURL selects
// the production backend.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    NewRateLimiter(),
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type authURLResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// AuthorizeURL requests an OAuth authorization URL for the provider.
func (c *Client) AuthorizeURL(ctx context.Context, provider domain.ProviderType) (driven.AuthURL, error) {
	path := "/connect/" + string(provider)
	if c.AddinFlow && provider == domain.ProviderMicrosoft {
		path = "/connect/microsoft/addin"
	}

	var resp authURLResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, "", nil, &resp); err != nil {
		return driven.AuthURL{}, err
	}
	if resp.AuthURL == "" {
		return driven.AuthURL{}, fmt.Errorf("authorization URL missing from response")
	}
	return driven.AuthURL{URL: resp.AuthURL, State: resp.State}, nil
}

type exchangeRequest struct {
	Code        string `json:"code"`
	State       string `json:"state"`
	RedirectURI string `json:"redirect_uri"`
}

type exchangeResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
}

// ExchangeCode posts an authorization code to the backend's callback
// endpoint and returns the issued credential.
func (c *Client) ExchangeCode(ctx context.Context, req driven.ExchangeRequest) (driven.ExchangeResult, error) {
	body := exchangeRequest{Code: req.Code, State: req.State, RedirectURI: req.RedirectURI}

	var resp exchangeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/connect/microsoft/callback", nil, "", body, &resp); err != nil {
		return driven.ExchangeResult{}, err
	}
	return driven.ExchangeResult{
		AccessToken: resp.AccessToken,
		Token:       resp.Token,
		UserID:      resp.UserID,
	}, nil
}

type availabilityRequest struct {
	Emails          []string `json:"emails"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	DurationMinutes int      `json:"duration_minutes"`
}

// Availability requests proposed meeting times for the given recipients,
// authenticated with the stored session credential.
func (c *Client) Availability(ctx context.Context, token string, req driven.AvailabilityRequest) (*domain.AvailabilityResult, error) {
	body := availabilityRequest{
		Emails:          req.Emails,
		StartTime:       req.StartTime.Format(time.RFC3339),
		EndTime:         req.EndTime.Format(time.RFC3339),
		DurationMinutes: req.DurationMinutes,
	}

	var result domain.AvailabilityResult
	if err := c.doJSON(ctx, http.MethodPost, "/availability", nil, token, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LookupAvailability fetches a stored availability record by meeting ID.
func (c *Client) LookupAvailability(ctx context.Context, meetingID string) (*domain.AvailabilitySnapshot, error) {
	var snapshot domain.AvailabilitySnapshot
	path := "/availability/" + url.PathEscape(meetingID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, "", nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

type meetingRequest struct {
	Emails          []string `json:"emails"`
	Subject         string   `json:"subject"`
	DurationMinutes int      `json:"duration_minutes"`
	MeetingType     string   `json:"meeting_type"`
	Location        string   `json:"location"`
	Body            string   `json:"body"`
	TimeZone        string   `json:"time_zone"`
}

// CreateMeeting confirms the proposed time at selectedTimeIndex.
func (c *Client) CreateMeeting(ctx context.Context, token string, selectedTimeIndex int, req driven.MeetingRequest) (*domain.Meeting, error) {
	body := meetingRequest{
		Emails:          req.Emails,
		Subject:         req.Subject,
		DurationMinutes: req.DurationMinutes,
		MeetingType:     string(req.MeetingType),
		Location:        req.Location,
		Body:            req.Body,
		TimeZone:        req.TimeZone,
	}
	query := url.Values{"selected_time_index": {strconv.Itoa(selectedTimeIndex)}}

	var meeting domain.Meeting
	if err := c.doJSON(ctx, http.MethodPost, "/meetings/create", query, token, body, &meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}

// errorBody is the backend's error response shape; depending on version the
// description arrives as detail or message.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// doJSON performs one backend request: rate-limit wait, optional bearer
// auth, JSON request body, JSON response decode, and status-code mapping.
func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	query url.Values,
	token string,
	reqBody, respBody any,
) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader = http.NoBody
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		c.limiter.RecordRateLimitError(retryAfter)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			if eb.Detail != "" {
				statusErr.Detail = eb.Detail
			} else if eb.Message != "" {
				statusErr.Detail = eb.Message
			}
		}
		return statusErr
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
