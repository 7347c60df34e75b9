// Package quota enforces per-user, per-day import ceilings tied to
// subscription tiers.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/cvera/cv-import/internal/types"
)

// Store persists daily import counters, one logical row per (user, day).
// IncrementDailyCount must be atomic: concurrent increments for the same row
// serialize so two simultaneous imports cannot both pass a "remaining=1"
// check and exceed the ceiling.
type Store interface {
	DailyCount(ctx context.Context, userID string, day time.Time) (int, error)
	IncrementDailyCount(ctx context.Context, userID string, day time.Time) (int, error)
}

// TierSource resolves a user's current subscription tier.
type TierSource interface {
	UserTier(ctx context.Context, userID string) (types.Tier, error)
}

// Status is the outcome of a quota check.
type Status struct {
	Allowed   bool       `json:"allowed"`
	Remaining int        `json:"remaining"` // -1 means unlimited, not a count
	Tier      types.Tier `json:"tier"`
	Used      int        `json:"used"`
}

// Gate answers whether a user may import today and records successful
// imports. The clock is injectable so tests can pin the day boundary.
type Gate struct {
	store Store
	tiers TierSource
	now   func() time.Time
}

// NewGate constructs a Gate. A nil clock defaults to time.Now.
func NewGate(store Store, tiers TierSource, now func() time.Time) *Gate {
	if now == nil {
		now = time.Now
	}
	return &Gate{store: store, tiers: tiers, now: now}
}

// Check reads today's count and compares it against the user's tier ceiling.
// Unlimited tiers always pass with Remaining=-1.
func (g *Gate) Check(ctx context.Context, userID string) (Status, error) {
	tier, err := g.tiers.UserTier(ctx, userID)
	if err != nil {
		return Status{}, fmt.Errorf("failed to resolve tier for user %s: %w", userID, err)
	}

	if tier.Unlimited() {
		return Status{Allowed: true, Remaining: types.UnlimitedImports, Tier: tier}, nil
	}

	used, err := g.store.DailyCount(ctx, userID, g.today())
	if err != nil {
		return Status{}, fmt.Errorf("failed to read daily count for user %s: %w", userID, err)
	}

	limit := tier.DailyImportLimit()
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		Allowed:   used < limit,
		Remaining: remaining,
		Tier:      tier,
		Used:      used,
	}, nil
}

// RecordSuccess increments today's counter and returns the new count. It must
// be called only after a fully successful import (fetch + normalize +
// persist): a failed import never consumes quota.
func (g *Gate) RecordSuccess(ctx context.Context, userID string) (int, error) {
	count, err := g.store.IncrementDailyCount(ctx, userID, g.today())
	if err != nil {
		return 0, fmt.Errorf("failed to record import for user %s: %w", userID, err)
	}
	return count, nil
}

// today truncates the clock to the UTC day boundary that keys quota rows.
func (g *Gate) today() time.Time {
	now := g.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
