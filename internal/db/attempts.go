package db

import (
	"context"
	"fmt"

	"github.com/cvera/cv-import/internal/types"
)

// AppendAttempt writes one row to the append-only import attempt log.
// Rows are never updated or deleted; the log exists for diagnostics.
func (db *DB) AppendAttempt(ctx context.Context, attempt types.ImportAttempt) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO import_attempts (user_id, source_identifier, outcome, attempted_at, raw_summary)
		 VALUES ($1, $2, $3, $4, $5)`,
		attempt.UserID, attempt.SourceIdentifier, string(attempt.Outcome), attempt.Timestamp, attempt.RawSummary,
	)
	if err != nil {
		return fmt.Errorf("failed to append import attempt: %w", err)
	}
	return nil
}
