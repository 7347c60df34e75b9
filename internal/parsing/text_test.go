package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"collapses spaces", "Software   Engineer  at   Acme", "Software Engineer at Acme"},
		{"trims ends", "  hello world  ", "hello world"},
		{"tabs and carriage returns", "a\tb\r\nc", "a b\nc"},
		{"keeps paragraph breaks", "First paragraph.\n\nSecond  paragraph.", "First paragraph.\nSecond paragraph."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestStripMarkup(t *testing.T) {
	got := StripMarkup("<p>Built <b>distributed</b> systems</p>")
	assert.Equal(t, "Built distributed systems", got)

	got = StripMarkup("<div>Summary<script>alert(1)</script></div>")
	assert.Equal(t, "Summary", got)

	// Plain text passes through untouched apart from whitespace cleanup.
	got = StripMarkup("no markup  here")
	assert.Equal(t, "no markup here", got)
}
