// Package scraper provides the HTTP clients for the external profile
// scraping API and the supplementary skills API. It owns identifier
// validation, timeout/retry policy, and error classification; all shape
// normalization of the returned payloads happens downstream in parsing.
package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/cvera/cv-import/internal/types"
)

const (
	// DefaultTimeout bounds a single request to the scraping provider.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxAttempts is the total attempt budget for transient failures.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the first backoff delay; it doubles per attempt.
	DefaultBaseDelay = 2 * time.Second

	defaultUserAgent = "cvera-import/1.0"
)

// Options configures the profile scraping client.
type Options struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	UserAgent   string
}

// DefaultOptions returns sensible defaults; BaseURL and APIKey still need to
// be filled in from configuration.
func DefaultOptions() *Options {
	return &Options{
		Timeout:     DefaultTimeout,
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		UserAgent:   defaultUserAgent,
	}
}

// Client fetches raw profile payloads from the scraping provider. It returns
// payloads unmodified: keeping retry logic free of parsing concerns keeps
// parsing logic free of network concerns.
type Client struct {
	opts   Options
	client *http.Client
	log    zerolog.Logger
}

// NewClient builds a Client. Nil options use defaults.
func NewClient(opts *Options, log zerolog.Logger) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &Client{
		opts:   *opts,
		client: &http.Client{Timeout: opts.Timeout},
		log:    log,
	}
}

// FetchProfile retrieves the raw, provider-shaped payload for a canonical
// profile identifier. Rate-limit and server errors are retried with
// exponential backoff; all other failures surface immediately.
func (c *Client) FetchProfile(ctx context.Context, identifier string) (types.RawProfile, error) {
	var raw types.RawProfile

	err := withRetry(ctx, c.opts.MaxAttempts, c.opts.BaseDelay, c.log, func(ctx context.Context) error {
		payload, err := c.fetchOnce(ctx, identifier)
		if err != nil {
			return err
		}
		raw = payload
		return nil
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// withRetry runs fn under an exponential backoff policy: the delay doubles
// per attempt, capped at maxAttempts total tries. Only errors marked
// Retryable get another attempt; cancellation is honored between sleeps.
func withRetry(ctx context.Context, maxAttempts int, baseDelay time.Duration, log zerolog.Logger, fn func(context.Context) error) error {
	backoff := retry.WithMaxRetries(uint64(maxAttempts-1), retry.NewExponential(baseDelay))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		var se *Error
		if errors.As(err, &se) && se.Retryable() {
			log.Warn().
				Int("attempt", attempt).
				Str("kind", string(se.Kind)).
				Msg("transient provider error, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) fetchOnce(ctx context.Context, identifier string) (types.RawProfile, error) {
	endpoint, err := c.profileURL(identifier)
	if err != nil {
		return nil, &Error{Kind: KindNetworkError, Identifier: identifier, Message: "bad provider base URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetworkError, Identifier: identifier, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransport(identifier, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused across retries.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, classifyStatus(identifier, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetworkError, Identifier: identifier, Message: "failed to read response body", Cause: err}
	}

	return decodeProfilePayload(identifier, body)
}

func (c *Client) profileURL(identifier string) (string, error) {
	base, err := url.Parse(c.opts.BaseURL)
	if err != nil {
		return "", err
	}
	q := base.Query()
	q.Set("api_key", c.opts.APIKey)
	q.Set("type", "profile")
	q.Set("linkId", identifier)
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// decodeProfilePayload parses the provider response, unwrapping the
// single-element-array and "0"-key envelopes some provider versions emit.
func decodeProfilePayload(identifier string, body []byte) (types.RawProfile, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &Error{Kind: KindServerError, Identifier: identifier, Message: "provider returned malformed JSON", Cause: err}
	}

	if list, ok := payload.([]any); ok {
		if len(list) == 0 {
			return nil, &Error{Kind: KindNotFound, Identifier: identifier, Message: "provider returned an empty result set"}
		}
		payload = list[0]
	}

	record, ok := payload.(map[string]any)
	if !ok {
		return nil, &Error{Kind: KindServerError, Identifier: identifier, Message: fmt.Sprintf("unexpected payload type %T", payload)}
	}
	if inner, ok := record["0"].(map[string]any); ok {
		record = inner
	}

	// Some provider versions report errors inside a 200 response.
	if msg, ok := record["error"].(string); ok && msg != "" {
		return nil, &Error{Kind: KindServerError, Identifier: identifier, Message: "provider reported: " + msg}
	}

	return types.RawProfile(record), nil
}

func classifyStatus(identifier string, status int) *Error {
	kind := KindServerError
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusPaymentRequired:
		kind = KindQuotaExceededUpstream
	case status == http.StatusForbidden:
		kind = KindForbidden
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	case status >= 500:
		kind = KindServerError
	}
	return &Error{
		Kind:       kind,
		Identifier: identifier,
		Message:    fmt.Sprintf("provider returned HTTP %d", status),
	}
}

func classifyTransport(identifier string, err error) *Error {
	kind := KindNetworkError
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		kind = KindTimeout
	}
	return &Error{
		Kind:       kind,
		Identifier: identifier,
		Message:    "request failed",
		Cause:      err,
	}
}
