package scraper

import (
	"regexp"
	"strings"
)

// Profile identifiers arrive as full URLs, partial URLs, or bare handles.
var (
	urlPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)linkedin\.com/in/([a-zA-Z0-9\-_.%]+)`),
		regexp.MustCompile(`(?i)linkedin\.com/pub/([a-zA-Z0-9\-_.%]+)`),
	}
	handlePattern = regexp.MustCompile(`^[a-zA-Z0-9\-_.]+$`)
)

// ExtractIdentifier derives the canonical profile handle from free-form user
// input. It fails fast with a KindInvalidIdentifier error when no pattern
// matches, so the pipeline never spends a network call on garbage input.
func ExtractIdentifier(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", &Error{
			Kind:       KindInvalidIdentifier,
			Identifier: input,
			Message:    "empty profile identifier",
		}
	}

	for _, pattern := range urlPatterns {
		if m := pattern.FindStringSubmatch(trimmed); m != nil {
			return strings.ToLower(strings.TrimSuffix(m[1], "/")), nil
		}
	}

	// Bare handle, as long as it does not look like a failed URL.
	if !strings.ContainsAny(trimmed, "/:?") && handlePattern.MatchString(trimmed) {
		return strings.ToLower(trimmed), nil
	}

	return "", &Error{
		Kind:       KindInvalidIdentifier,
		Identifier: input,
		Message:    "input matches no known profile URL or handle pattern",
	}
}

// ProfileURL renders the canonical public URL for a profile handle. The
// supplementary skills provider is keyed by URL rather than handle.
func ProfileURL(identifier string) string {
	return "https://www.linkedin.com/in/" + identifier
}
