package parsing

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cvera/cv-import/internal/types"
)

// presentToken is the canonical end marker for ongoing periods.
const presentToken = "Present"

var (
	yearsPattern    = regexp.MustCompile(`(?i)(\d+)\s*(?:years?|yrs?)`)
	monthsPattern   = regexp.MustCompile(`(?i)(\d+)\s*(?:months?|mos?)`)
	bareYearPattern = regexp.MustCompile(`^\d{4}$`)
)

// startKeys and endKeys are candidate key names observed across provider
// responses for the two ends of a period.
var (
	startKeys = []string{"start_date", "starts_at", "startDate", "from", "start"}
	endKeys   = []string{"end_date", "ends_at", "endDate", "to", "end"}
)

// DurationParser converts heterogeneous provider duration representations
// into a normalized DateRange. Relative durations ("2 years 3 months") are
// anchored to the injected clock, which makes parsing of such inputs
// time-dependent: tests must inject a fixed clock.
type DurationParser struct {
	now func() time.Time
}

// NewDurationParser returns a parser anchored to the given clock. A nil clock
// defaults to time.Now.
func NewDurationParser(now func() time.Time) *DurationParser {
	if now == nil {
		now = time.Now
	}
	return &DurationParser{now: now}
}

// Parse converts a raw duration value into a DateRange. It accepts free-form
// strings ("Jan 2020 - Present", "2 years 3 months", "2019") and record
// shapes carrying explicit start/end fields or year/month counts. Absence of
// parseable structure degrades to a passthrough value; Parse never fails,
// because upstream data quality is outside its control.
func (p *DurationParser) Parse(input any) types.DateRange {
	switch v := input.(type) {
	case nil:
		return types.DateRange{}
	case string:
		return p.parseString(v)
	case map[string]any:
		return p.parseRecord(types.RawProfile(v))
	case types.RawProfile:
		return p.parseRecord(v)
	default:
		return types.DateRange{StartDate: CleanText(fmt.Sprintf("%v", v))}
	}
}

func (p *DurationParser) parseString(raw string) types.DateRange {
	text := CleanText(raw)
	if text == "" {
		return types.DateRange{}
	}

	// En dashes show up in scraped ranges alongside plain hyphens.
	text = strings.ReplaceAll(text, " – ", " - ")

	if start, end, ok := strings.Cut(text, " - "); ok {
		return p.rangeFrom(start, end)
	}

	// "2 years 3 months" style relative durations carry only elapsed time;
	// anchor them to the present day.
	if months, ok := relativeMonths(text); ok {
		return p.relativeRange(months)
	}

	if bareYearPattern.MatchString(text) {
		return types.DateRange{
			StartDate: "Jan " + text,
			EndDate:   "Dec " + text,
		}
	}

	if isPresent(text) {
		return types.DateRange{EndDate: presentToken, Current: true}
	}

	// Best effort: keep the original text as the start of the period.
	return types.DateRange{StartDate: capitalizeToken(text)}
}

func (p *DurationParser) parseRecord(record types.RawProfile) types.DateRange {
	start := dateToken(record, startKeys)
	end := dateToken(record, endKeys)
	current := ResolveBool(record, "current", "is_current")

	if start != "" || end != "" || current {
		if current || isPresent(end) {
			return types.DateRange{
				StartDate: capitalizeToken(start),
				EndDate:   presentToken,
				Current:   true,
			}
		}
		return types.DateRange{
			StartDate: capitalizeToken(start),
			EndDate:   capitalizeToken(end),
		}
	}

	// Relative year/month counts without explicit dates.
	months := 0
	found := false
	if y, ok := numericField(record, "years", "year"); ok {
		months += y * 12
		found = true
	}
	if m, ok := numericField(record, "months", "month"); ok {
		months += m
		found = true
	}
	if found {
		return p.relativeRange(months)
	}

	if text := ResolveString(record, "duration", "date_range", "college_duration", "range", "period"); text != "" {
		return p.parseString(text)
	}

	return types.DateRange{}
}

// rangeFrom builds a DateRange from two split tokens, applying present
// detection to the end token.
func (p *DurationParser) rangeFrom(start, end string) types.DateRange {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if isPresent(end) {
		return types.DateRange{
			StartDate: capitalizeToken(start),
			EndDate:   presentToken,
			Current:   true,
		}
	}
	return types.DateRange{
		StartDate: capitalizeToken(start),
		EndDate:   capitalizeToken(end),
	}
}

// relativeRange models "time elapsed up to now": the end is the current
// month and the start is the total month count before it.
func (p *DurationParser) relativeRange(months int) types.DateRange {
	now := p.now()
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := anchor.AddDate(0, -months, 0)
	return types.DateRange{
		StartDate: start.Format("Jan 2006"),
		EndDate:   anchor.Format("Jan 2006"),
	}
}

// dateToken extracts one end of a period from a record, tolerating nested
// {year, month} objects some providers emit.
func dateToken(record types.RawProfile, keys []string) string {
	value, ok := Resolve(record, keys...)
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return CleanText(v)
	case map[string]any:
		nested := types.RawProfile(v)
		year := ResolveString(nested, "year")
		if year == "" {
			return ""
		}
		month := ResolveString(nested, "month")
		if month == "" {
			return year
		}
		if t, err := time.Parse("2006-1", year+"-"+month); err == nil {
			return t.Format("Jan 2006")
		}
		return year
	case float64:
		return ResolveString(record, keys...)
	default:
		return ""
	}
}

func numericField(record types.RawProfile, keys ...string) (int, bool) {
	value, ok := Resolve(record, keys...)
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%d", &n); err == nil {
			return n, true
		}
	}
	return 0, false
}

// relativeMonths extracts a total month count from strings like
// "2 years 3 months" or "7 mos". Returns false when neither unit appears.
func relativeMonths(text string) (int, bool) {
	months := 0
	found := false
	if m := yearsPattern.FindStringSubmatch(text); m != nil {
		var y int
		if _, err := fmt.Sscanf(m[1], "%d", &y); err == nil {
			months += y * 12
			found = true
		}
	}
	if m := monthsPattern.FindStringSubmatch(text); m != nil {
		var n int
		if _, err := fmt.Sscanf(m[1], "%d", &n); err == nil {
			months += n
			found = true
		}
	}
	return months, found
}

// isPresent reports whether a token marks an ongoing period. "hazırda" is the
// Azerbaijani marker emitted by one of the providers.
func isPresent(token string) bool {
	lower := strings.ToLower(strings.TrimSpace(token))
	return lower == "present" || lower == "hazırda" || lower == "hal-hazırda"
}

// capitalizeToken uppercases the first letter of each word so split range
// halves render consistently ("jan 2020" -> "Jan 2020").
func capitalizeToken(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	words := strings.Fields(token)
	for i, word := range words {
		runes := []rune(word)
		words[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
	}
	return strings.Join(words, " ")
}
