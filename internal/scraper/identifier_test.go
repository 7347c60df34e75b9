package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIdentifier_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full https url", "https://www.linkedin.com/in/jane-doe", "jane-doe"},
		{"trailing slash", "https://www.linkedin.com/in/jane-doe/", "jane-doe"},
		{"query string", "https://linkedin.com/in/jane-doe?trk=profile", "jane-doe"},
		{"no scheme", "linkedin.com/in/jane-doe", "jane-doe"},
		{"pub url", "https://www.linkedin.com/pub/jane-doe", "jane-doe"},
		{"mixed case host", "HTTPS://WWW.LINKEDIN.COM/IN/Jane-Doe", "jane-doe"},
		{"bare handle", "jane-doe", "jane-doe"},
		{"handle with dots", "jane.doe_99", "jane.doe_99"},
		{"surrounding whitespace", "  jane-doe  ", "jane-doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractIdentifier(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractIdentifier_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"wrong host", "https://example.com/in/jane-doe"},
		{"company page", "https://www.linkedin.com/company/acme"},
		{"slash in handle", "jane/doe"},
		{"spaces in handle", "jane doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractIdentifier(tt.input)
			require.Error(t, err)
			assert.Equal(t, KindInvalidIdentifier, KindOf(err))
		})
	}
}

func TestProfileURL(t *testing.T) {
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", ProfileURL("jane-doe"))
}
