package importer

import (
	"context"
	"time"
)

// DefaultBatchDelay spaces out provider calls within a batch.
const DefaultBatchDelay = 2 * time.Second

// ImportBatch imports the given inputs sequentially for one user, pausing a
// fixed delay between calls to stay inside the provider's rate limits. Each
// input yields its own Result in order; one bad profile never aborts the rest.
// The batch does stop early when the user's quota runs out or the context is
// cancelled, since every later attempt would fail the same way.
func (i *Importer) ImportBatch(ctx context.Context, userID string, inputs []string, delay time.Duration) []Result {
	if delay <= 0 {
		delay = DefaultBatchDelay
	}
	results := make([]Result, 0, len(inputs))
	for idx, input := range inputs {
		if idx > 0 {
			if err := sleepCtx(ctx, delay); err != nil {
				return results
			}
		}
		res := i.Import(ctx, userID, input)
		results = append(results, res)
		if res.ErrorKind == ErrKindQuotaExceeded {
			i.deps.Log.Info().Str("user_id", userID).Int("completed", len(results)).Int("requested", len(inputs)).
				Msg("stopping batch early, daily quota exhausted")
			break
		}
	}
	return results
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
