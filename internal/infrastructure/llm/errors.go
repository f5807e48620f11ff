package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrQuotaExhausted reports that the provider refuses further requests for
// the rest of the day. Callers stop issuing requests when they see it.
var ErrQuotaExhausted = errors.New("daily quota exhausted")

// RateLimitError asks the caller to wait before trying again.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s: %s", e.RetryAfter, e.Message)
}

// ServerError is a provider-side failure worth retrying.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.StatusCode, e.Body)
}

// parseRetryAfter understands both "30" and "30s" style hints.
func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return 0
}

// statusError maps a non-2xx status into one of the typed failures above.
func statusError(status int, body string, retryAfter time.Duration) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: retryAfter, Message: body}
	case status >= http.StatusInternalServerError:
		return &ServerError{StatusCode: status, Body: body}
	default:
		return fmt.Errorf("provider rejected request with status %d: %s", status, body)
	}
}
