package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cvera/cv-import/internal/types"
)

// fixedClock pins relative-duration parsing to June 2024.
func fixedClock() time.Time {
	return time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)
}

func TestDurationParser_ExplicitRange(t *testing.T) {
	parser := NewDurationParser(fixedClock)

	tests := []struct {
		name  string
		input string
		want  types.DateRange
	}{
		{
			name:  "month year range",
			input: "Jan 2020 - Dec 2022",
			want:  types.DateRange{StartDate: "Jan 2020", EndDate: "Dec 2022"},
		},
		{
			name:  "ongoing range",
			input: "Jan 2020 - Present",
			want:  types.DateRange{StartDate: "Jan 2020", EndDate: "Present", Current: true},
		},
		{
			name:  "lowercase tokens are capitalized",
			input: "jan 2020 - present",
			want:  types.DateRange{StartDate: "Jan 2020", EndDate: "Present", Current: true},
		},
		{
			name:  "en dash separator",
			input: "Mar 2018 – Jul 2019",
			want:  types.DateRange{StartDate: "Mar 2018", EndDate: "Jul 2019"},
		},
		{
			name:  "azerbaijani present marker",
			input: "Sep 2021 - hazırda",
			want:  types.DateRange{StartDate: "Sep 2021", EndDate: "Present", Current: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.Parse(tt.input))
		})
	}
}

func TestDurationParser_RelativeDuration(t *testing.T) {
	parser := NewDurationParser(fixedClock)

	// 2 years 3 months before June 2024 is March 2022.
	got := parser.Parse("2 years 3 months")
	assert.Equal(t, types.DateRange{StartDate: "Mar 2022", EndDate: "Jun 2024"}, got)

	got = parser.Parse("7 mos")
	assert.Equal(t, types.DateRange{StartDate: "Nov 2023", EndDate: "Jun 2024"}, got)

	got = parser.Parse("1 yr")
	assert.Equal(t, types.DateRange{StartDate: "Jun 2023", EndDate: "Jun 2024"}, got)
}

func TestDurationParser_BareYear(t *testing.T) {
	parser := NewDurationParser(fixedClock)

	got := parser.Parse("2019")
	assert.Equal(t, types.DateRange{StartDate: "Jan 2019", EndDate: "Dec 2019"}, got)
}

func TestDurationParser_RecordShapes(t *testing.T) {
	parser := NewDurationParser(fixedClock)

	tests := []struct {
		name  string
		input map[string]any
		want  types.DateRange
	}{
		{
			name:  "explicit start and end fields",
			input: map[string]any{"start_date": "Jan 2020", "end_date": "Dec 2022"},
			want:  types.DateRange{StartDate: "Jan 2020", EndDate: "Dec 2022"},
		},
		{
			name:  "current flag overrides end",
			input: map[string]any{"starts_at": "Feb 2021", "is_current": true},
			want:  types.DateRange{StartDate: "Feb 2021", EndDate: "Present", Current: true},
		},
		{
			name:  "nested year month objects",
			input: map[string]any{"starts_at": map[string]any{"year": float64(2020), "month": float64(3)}},
			want:  types.DateRange{StartDate: "Mar 2020"},
		},
		{
			name:  "year month counts anchor to clock",
			input: map[string]any{"years": float64(2), "months": float64(3)},
			want:  types.DateRange{StartDate: "Mar 2022", EndDate: "Jun 2024"},
		},
		{
			name:  "text fallback under duration key",
			input: map[string]any{"duration": "Jan 2019 - Present"},
			want:  types.DateRange{StartDate: "Jan 2019", EndDate: "Present", Current: true},
		},
		{
			name:  "education duration key",
			input: map[string]any{"college_duration": "2015 - 2019"},
			want:  types.DateRange{StartDate: "2015", EndDate: "2019"},
		},
		{
			name:  "empty record",
			input: map[string]any{},
			want:  types.DateRange{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.Parse(tt.input))
		})
	}
}

func TestDurationParser_DegradedInputs(t *testing.T) {
	parser := NewDurationParser(fixedClock)

	assert.Equal(t, types.DateRange{}, parser.Parse(nil))
	assert.Equal(t, types.DateRange{}, parser.Parse("   "))

	// Unparseable text survives as the start token rather than vanishing.
	got := parser.Parse("since the dawn of time")
	assert.Equal(t, "Since The Dawn Of Time", got.StartDate)
	assert.False(t, got.Current)
}

func TestDurationParser_DefaultClock(t *testing.T) {
	parser := NewDurationParser(nil)

	// With the real clock the exact dates vary; shape still holds.
	got := parser.Parse("6 months")
	assert.NotEmpty(t, got.StartDate)
	assert.NotEmpty(t, got.EndDate)
}
