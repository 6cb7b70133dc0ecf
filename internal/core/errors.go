package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of an error response ends up in the error text.
const maxErrorBody = 512

type ProviderErrorKind string

const (
	ProviderTransient     ProviderErrorKind = "transient"
	ProviderRateLimited   ProviderErrorKind = "rate_limited"
	ProviderQuotaExceeded ProviderErrorKind = "quota_exceeded"
	ProviderInvalid       ProviderErrorKind = "invalid"
)

// ProviderError is returned by every external collaborator adapter.
type ProviderError struct {
	Provider   string
	Kind       ProviderErrorKind
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (http %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Retryable reports whether the same call may succeed if repeated.
func (e *ProviderError) Retryable() bool {
	return e.Kind == ProviderTransient || e.Kind == ProviderRateLimited
}

// HTTPStatusError classifies a non-200 answer from an external service. A
// body mentioning quota or billing wins over the status code, since no
// amount of retrying fixes it.
func HTTPStatusError(provider string, status int, body []byte) *ProviderError {
	text := string(body)
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	lower := strings.ToLower(text)

	kind := ProviderInvalid
	switch {
	case status == http.StatusPaymentRequired,
		strings.Contains(lower, "quota"),
		strings.Contains(lower, "billing"):
		kind = ProviderQuotaExceeded
	case status == http.StatusTooManyRequests:
		kind = ProviderRateLimited
	case status == http.StatusRequestTimeout, status >= 500:
		kind = ProviderTransient
	}

	return &ProviderError{
		Provider:   provider,
		Kind:       kind,
		StatusCode: status,
		Err:        fmt.Errorf("http %d: %s", status, strings.TrimSpace(text)),
	}
}

func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable()
	}
	return false
}

// MalformedResponseError means AI output could not be decoded into the
// expected structure. Callers always replace it with a fallback value.
type MalformedResponseError struct {
	What string
	Raw  string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response: %v", e.What, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type OrchestratorError struct {
	UserID string
	Op     string
	Err    error
}

func (e *OrchestratorError) Error() string {
	return fmt.Sprintf("orchestrator %s for user %s: %v", e.Op, e.UserID, e.Err)
}

func (e *OrchestratorError) Unwrap() error { return e.Err }
