package providers

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrProviderUnavailable is returned when a decorator has no inner catalog.
var ErrProviderUnavailable = errors.New("catalog provider unavailable")

// NetworkError wraps a transport failure (DNS, connection reset, timeout).
type NetworkError struct {
	Provider string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Provider, e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UpstreamError is a non-2xx response from the catalog API.
type UpstreamError struct {
	Provider   string
	Endpoint   string
	Status     int
	RetryAfter time.Duration
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Provider, e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Provider, e.Endpoint, e.Status, e.Body)
}

// ParseError is a 2xx body that could not be decoded or failed validation.
type ParseError struct {
	Provider string
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s: invalid payload: %v", e.Provider, e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RateLimitError is returned when the local quota cannot admit a call before the context expires.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "catalog rate limited"
	}
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %s)", msg, e.RetryAfter)
	}
	return msg
}

// AsUpstreamError attempts to unwrap an error into an UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}

// AsNetworkError attempts to unwrap an error into a NetworkError.
func AsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}
	return nil, false
}

// AsParseError attempts to unwrap an error into a ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr, true
	}
	return nil, false
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// IsNotFound reports an upstream 404.
func IsNotFound(err error) bool {
	upErr, ok := AsUpstreamError(err)
	return ok && upErr.Status == http.StatusNotFound
}

// IsRateLimited reports an upstream 429 or a local quota rejection.
func IsRateLimited(err error) bool {
	if _, ok := AsRateLimitError(err); ok {
		return true
	}
	upErr, ok := AsUpstreamError(err)
	return ok && upErr.Status == http.StatusTooManyRequests
}

// RetryAfterOf returns the Retry-After hint carried by a rate limit error, if any.
func RetryAfterOf(err error) time.Duration {
	if rl, ok := AsRateLimitError(err); ok {
		return rl.RetryAfter
	}
	if upErr, ok := AsUpstreamError(err); ok {
		return upErr.RetryAfter
	}
	return 0
}
