package types

import "time"

// Tier is a subscription level determining the daily import ceiling.
type Tier string

const (
	// TierFree allows 2 imports per day
	TierFree Tier = "Free"
	// TierMedium allows 5 imports per day
	TierMedium Tier = "Medium"
	// TierPremium has no daily ceiling
	TierPremium Tier = "Premium"
)

// UnlimitedImports is the ceiling sentinel for tiers without a daily limit.
const UnlimitedImports = -1

// DailyImportLimit returns the daily import ceiling for the tier.
// Unknown tiers fall back to the Free ceiling.
func (t Tier) DailyImportLimit() int {
	switch t {
	case TierFree:
		return 2
	case TierMedium:
		return 5
	case TierPremium:
		return UnlimitedImports
	default:
		return TierFree.DailyImportLimit()
	}
}

// Unlimited reports whether the tier has no daily import ceiling.
func (t Tier) Unlimited() bool {
	return t.DailyImportLimit() == UnlimitedImports
}

// ImportQuota tracks import usage for one (user, day) pair. Created lazily on
// the first import attempt of the day; incremented only on successful imports;
// never decremented.
type ImportQuota struct {
	UserID    string    `json:"user_id"`
	Tier      Tier      `json:"tier"`
	Date      time.Time `json:"date"` // UTC day, zero time-of-day
	CountUsed int       `json:"count_used"`
}

// AttemptOutcome is the terminal state of one import attempt.
type AttemptOutcome string

const (
	// AttemptSuccess marks a fully persisted import
	AttemptSuccess AttemptOutcome = "success"
	// AttemptFailure marks an import that failed at any stage
	AttemptFailure AttemptOutcome = "failure"
)

// ImportAttempt is one row of the append-only import audit log. It is never
// mutated after creation and is used for diagnostics, not replay.
type ImportAttempt struct {
	UserID           string         `json:"user_id"`
	SourceIdentifier string         `json:"source_identifier"`
	Outcome          AttemptOutcome `json:"outcome"`
	Timestamp        time.Time      `json:"timestamp"`
	RawSummary       string         `json:"raw_summary,omitempty"`
}
