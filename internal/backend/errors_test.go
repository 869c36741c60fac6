package backend

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   error
	}{
		{"unauthorised", http.StatusUnauthorized, ErrUnauthorised},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"internal server error", http.StatusInternalServerError, ErrServerError},
		{"bad gateway", http.StatusBadGateway, ErrServerError},
		{"ok", http.StatusOK, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapError(tt.statusCode)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestStatusError_PrefersDetail(t *testing.T) {
	err := &StatusError{StatusCode: 400, Status: "400 Bad Request", Detail: "No valid emails provided"}
	assert.Equal(t, "No valid emails provided", err.Error())
}

func TestStatusError_FallsBackToStatusText(t *testing.T) {
	err := &StatusError{StatusCode: 502, Status: "502 Bad Gateway"}
	assert.Equal(t, "HTTP 502: Bad Gateway", err.Error())
}

func TestStatusError_Unwrap(t *testing.T) {
	err := &StatusError{StatusCode: 401}
	assert.ErrorIs(t, err, ErrUnauthorised)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(http.StatusTooManyRequests))
	assert.True(t, IsRetryable(http.StatusServiceUnavailable))
	assert.True(t, IsRetryable(http.StatusGatewayTimeout))
	assert.False(t, IsRetryable(http.StatusBadRequest))
	assert.False(t, IsRetryable(http.StatusInternalServerError))
}
