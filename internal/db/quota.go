package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cvera/cv-import/internal/types"
)

// DailyCount returns the number of successful imports recorded for the user
// on the given UTC day. A missing row means zero: quota rows are created
// lazily on the first successful import of the day.
func (db *DB) DailyCount(ctx context.Context, userID string, day time.Time) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT count_used FROM import_quotas WHERE user_id = $1 AND date = $2`,
		userID, day,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read daily import count: %w", err)
	}
	return count, nil
}

// IncrementDailyCount atomically increments the user's counter for the day
// and returns the new count. The single-statement upsert serializes
// concurrent increments on the row, so two simultaneous imports cannot both
// observe the same pre-increment count.
func (db *DB) IncrementDailyCount(ctx context.Context, userID string, day time.Time) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`INSERT INTO import_quotas (user_id, date, count_used)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (user_id, date) DO UPDATE SET count_used = import_quotas.count_used + 1
		 RETURNING count_used`,
		userID, day,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to increment daily import count: %w", err)
	}
	return count, nil
}

// UserTier resolves the user's active subscription tier, falling back to Free
// when the user has no active subscription.
func (db *DB) UserTier(ctx context.Context, userID string) (types.Tier, error) {
	var tier string
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(
		   (SELECT s.tier FROM subscriptions s
		    WHERE s.user_id = u.id AND s.status = 'active'
		    ORDER BY s.started_at DESC LIMIT 1),
		   u.tier, 'Free')
		 FROM users u WHERE u.id = $1`,
		userID,
	).Scan(&tier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("user %s not found", userID)
		}
		return "", fmt.Errorf("failed to resolve user tier: %w", err)
	}
	return types.Tier(tier), nil
}
