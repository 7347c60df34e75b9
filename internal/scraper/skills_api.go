package scraper

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/cvera/cv-import/internal/types"
)

// SkillsOptions configures the supplementary skills client. The provider is
// independent from the profile scraper and keyed by public profile URL.
type SkillsOptions struct {
	BaseURL     string
	APIKey      string
	APIHost     string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
}

// SkillsClient fetches supplementary skill lists. Its failures are expected
// to be non-fatal: callers substitute an empty result and proceed.
type SkillsClient struct {
	opts   SkillsOptions
	client *http.Client
	log    zerolog.Logger
}

// NewSkillsClient builds a SkillsClient, applying the same defaults as the
// profile client.
func NewSkillsClient(opts SkillsOptions, log zerolog.Logger) *SkillsClient {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	return &SkillsClient{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		log:    log,
	}
}

// FetchSkills retrieves skill names for a public profile URL. It follows the
// same retry policy as the profile client.
func (c *SkillsClient) FetchSkills(ctx context.Context, profileURL string) ([]string, error) {
	var skills []string
	err := withRetry(ctx, c.opts.MaxAttempts, c.opts.BaseDelay, c.log, func(ctx context.Context) error {
		names, err := c.fetchOnce(ctx, profileURL)
		if err != nil {
			return err
		}
		skills = names
		return nil
	})
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (c *SkillsClient) fetchOnce(ctx context.Context, profileURL string) ([]string, error) {
	base, err := url.Parse(c.opts.BaseURL)
	if err != nil {
		return nil, &Error{Kind: KindNetworkError, Identifier: profileURL, Message: "bad skills provider base URL", Cause: err}
	}
	q := base.Query()
	q.Set("url", profileURL)
	base.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, &Error{Kind: KindNetworkError, Identifier: profileURL, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("x-rapidapi-key", c.opts.APIKey)
	if c.opts.APIHost != "" {
		req.Header.Set("x-rapidapi-host", c.opts.APIHost)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransport(profileURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, classifyStatus(profileURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetworkError, Identifier: profileURL, Message: "failed to read response body", Cause: err}
	}

	return decodeSkillsPayload(profileURL, body)
}

// decodeSkillsPayload tolerates the provider's nested response shapes:
// {"data": {"skills": [{"name": ...}]}}, a top-level "skills" list, or a bare
// array of names.
func decodeSkillsPayload(profileURL string, body []byte) ([]string, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &Error{Kind: KindServerError, Identifier: profileURL, Message: "skills provider returned malformed JSON", Cause: err}
	}

	switch v := payload.(type) {
	case []any:
		return skillNames(v), nil
	case map[string]any:
		record := types.RawProfile(v)
		if data, ok := record["data"].(map[string]any); ok {
			record = types.RawProfile(data)
		}
		if list, ok := record["skills"].([]any); ok {
			return skillNames(list), nil
		}
		return nil, nil
	default:
		return nil, nil
	}
}

func skillNames(items []any) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			names = append(names, v)
		case map[string]any:
			if name, ok := v["name"].(string); ok && name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
