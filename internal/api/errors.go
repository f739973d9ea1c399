package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rickgao/disclosure-data/internal/model"
)

// ErrMissingCredential is wrapped by an AuthError raised before any request
// because no key is configured.
var ErrMissingCredential = errors.New("missing credential")

// AuthError reports a missing credential or one the service rejected.
type AuthError struct {
	Service    model.Service
	StatusCode int // 0 when detected before the call
	Message    string
}

func (e *AuthError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s auth error: %s", e.Service, e.Message)
	}
	return fmt.Sprintf("%s auth error %d: %s", e.Service, e.StatusCode, e.Message)
}

func (e *AuthError) Unwrap() error {
	if e.StatusCode == 0 {
		return ErrMissingCredential
	}
	return nil
}

// UpstreamError represents a non-success response, or a success status
// carrying a payload that is not JSON.
type UpstreamError struct {
	Service    model.Service
	StatusCode int
	Message    string
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s api error %d: %s", e.Service, e.StatusCode, e.Message)
}

// IsRetryable returns true if the error should trigger a retry.
func (e *UpstreamError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// TransportError is a connection-level failure: dial, TLS, timeout, body read
// or cancellation.
type TransportError struct {
	Service model.Service
	Op      string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport error: %s: %v", e.Service, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
