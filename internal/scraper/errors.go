package scraper

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure into a stable, provider-agnostic category.
type Kind string

const (
	// KindInvalidIdentifier means the input matched no known profile pattern
	KindInvalidIdentifier Kind = "invalid_identifier"
	// KindUnauthorized means the provider rejected our credentials
	KindUnauthorized Kind = "unauthorized"
	// KindQuotaExceededUpstream means the provider-side request quota is spent
	KindQuotaExceededUpstream Kind = "quota_exceeded_upstream"
	// KindForbidden means the provider refused access to the resource
	KindForbidden Kind = "forbidden"
	// KindNotFound means the profile does not exist
	KindNotFound Kind = "not_found"
	// KindRateLimited means the provider throttled us; retried with backoff
	KindRateLimited Kind = "rate_limited"
	// KindServerError means the provider failed internally; retried with backoff
	KindServerError Kind = "server_error"
	// KindNetworkError means the request never reached the provider
	KindNetworkError Kind = "network_error"
	// KindTimeout means the request exceeded its deadline
	KindTimeout Kind = "timeout"
)

// Error represents a failure while talking to an external profile provider.
type Error struct {
	Kind       Kind
	Identifier string
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scrape %s: %s (%s): %v", e.Identifier, e.Message, e.Kind, e.Cause)
	}
	return fmt.Sprintf("scrape %s: %s (%s)", e.Identifier, e.Message, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the failure is transient. Only throttling and
// provider-side server errors warrant another attempt; everything else is
// terminal.
func (e *Error) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindServerError
}

// KindOf extracts the error kind, or "" for errors outside this package.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
