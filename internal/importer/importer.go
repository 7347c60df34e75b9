// Package importer orchestrates the profile import use case: quota check,
// fetch, normalization, persistence, and session bookkeeping. It is the only
// component with side effects on storage.
package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cvera/cv-import/internal/parsing"
	"github.com/cvera/cv-import/internal/quota"
	"github.com/cvera/cv-import/internal/schemas"
	"github.com/cvera/cv-import/internal/scraper"
	"github.com/cvera/cv-import/internal/types"
)

// ErrorKind is the stable, user-facing classification of an import failure.
// Provider-specific messages never cross this boundary.
type ErrorKind string

const (
	// ErrKindNone marks a successful import
	ErrKindNone ErrorKind = ""
	// ErrKindQuotaExceeded means the user's daily import ceiling is spent
	ErrKindQuotaExceeded ErrorKind = "quota_exceeded"
	// ErrKindInvalidIdentifier mirrors scraper.KindInvalidIdentifier
	ErrKindInvalidIdentifier ErrorKind = "invalid_identifier"
	// ErrKindEmptyProfile means normalization found no usable signal
	ErrKindEmptyProfile ErrorKind = "empty_profile"
	// ErrKindInternal covers storage and validation failures on our side
	ErrKindInternal ErrorKind = "internal_error"
)

// ProfileFetcher retrieves the raw payload for a canonical identifier.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, identifier string) (types.RawProfile, error)
}

// SkillsFetcher retrieves supplementary skills for a public profile URL.
type SkillsFetcher interface {
	FetchSkills(ctx context.Context, profileURL string) ([]string, error)
}

// Normalizer converts a raw payload plus supplementary skills into the
// canonical profile.
type Normalizer interface {
	Normalize(raw types.RawProfile, supplementarySkills []string) (*types.NormalizedProfile, error)
}

// QuotaGate checks and records per-user daily import usage.
type QuotaGate interface {
	Check(ctx context.Context, userID string) (quota.Status, error)
	RecordSuccess(ctx context.Context, userID string) (int, error)
}

// DocumentStore persists normalized profiles as CV documents.
type DocumentStore interface {
	CreateDocument(ctx context.Context, ownerID, title string, profile *types.NormalizedProfile) (uuid.UUID, error)
}

// AttemptLog appends to the import audit trail.
type AttemptLog interface {
	AppendAttempt(ctx context.Context, attempt types.ImportAttempt) error
}

// Result is the structured outcome returned to the caller. A failed import
// carries the unchanged remaining-quota count and an error kind, never a raw
// provider error.
type Result struct {
	Success          bool      `json:"success"`
	DocumentID       uuid.UUID `json:"document_id,omitempty"`
	RemainingImports int       `json:"remaining_imports"`
	ErrorKind        ErrorKind `json:"error_kind,omitempty"`
}

// Deps wires the orchestrator's collaborators. Skills is optional; when nil
// the supplementary fetch is skipped and primary-provider skills stand alone.
type Deps struct {
	Fetcher    ProfileFetcher
	Skills     SkillsFetcher
	Normalizer Normalizer
	Quota      QuotaGate
	Documents  DocumentStore
	Attempts   AttemptLog
	Log        zerolog.Logger
	Now        func() time.Time
}

// Importer executes the import use case.
type Importer struct {
	deps Deps
}

// New constructs an Importer. A nil clock defaults to time.Now.
func New(deps Deps) *Importer {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Importer{deps: deps}
}

// Import runs one full import for the user. Ordering is strict: the quota
// check precedes any network call, and the quota increment follows successful
// persistence, so a crash mid-pipeline never burns quota the user did not
// benefit from.
func (i *Importer) Import(ctx context.Context, userID, rawInput string) Result {
	status, err := i.deps.Quota.Check(ctx, userID)
	if err != nil {
		i.deps.Log.Error().Err(err).Str("user_id", userID).Msg("quota check failed")
		return Result{ErrorKind: ErrKindInternal}
	}
	if !status.Allowed {
		return Result{ErrorKind: ErrKindQuotaExceeded, RemainingImports: status.Remaining}
	}

	identifier, err := scraper.ExtractIdentifier(rawInput)
	if err != nil {
		i.recordFailure(ctx, userID, rawInput, "invalid identifier")
		return Result{ErrorKind: ErrKindInvalidIdentifier, RemainingImports: status.Remaining}
	}

	raw, supplementary, err := i.fetchBoth(ctx, identifier)
	if err != nil {
		i.recordFailure(ctx, userID, identifier, "fetch failed: "+string(scraper.KindOf(err)))
		return Result{ErrorKind: mapFetchError(err), RemainingImports: status.Remaining}
	}

	profile, err := i.deps.Normalizer.Normalize(raw, supplementary)
	if err != nil {
		var empty *parsing.EmptyProfileError
		kind := ErrKindInternal
		if errors.As(err, &empty) {
			kind = ErrKindEmptyProfile
		}
		i.recordFailure(ctx, userID, identifier, "normalization failed")
		return Result{ErrorKind: kind, RemainingImports: status.Remaining}
	}

	if err := schemas.ValidateCVDocument(profile); err != nil {
		i.deps.Log.Error().Err(err).Str("identifier", identifier).Msg("canonical payload failed schema validation")
		i.recordFailure(ctx, userID, identifier, "payload schema validation failed")
		return Result{ErrorKind: ErrKindInternal, RemainingImports: status.Remaining}
	}

	title := fmt.Sprintf("%s - LinkedIn Import", profile.PersonalInfo.FullName)
	docID, err := i.deps.Documents.CreateDocument(ctx, userID, title, profile)
	if err != nil {
		i.deps.Log.Error().Err(err).Str("identifier", identifier).Msg("failed to persist CV document")
		i.recordFailure(ctx, userID, identifier, "persistence failed")
		return Result{ErrorKind: ErrKindInternal, RemainingImports: status.Remaining}
	}

	newCount, err := i.deps.Quota.RecordSuccess(ctx, userID)
	if err != nil {
		// The document exists; the user should not be penalized for a
		// counter failure. Surface success with the stale remaining count.
		i.deps.Log.Error().Err(err).Str("user_id", userID).Msg("failed to record quota increment")
		newCount = status.Used + 1
	}

	i.recordOutcome(ctx, types.ImportAttempt{
		UserID:           userID,
		SourceIdentifier: identifier,
		Outcome:          types.AttemptSuccess,
		Timestamp:        i.deps.Now().UTC(),
		RawSummary: fmt.Sprintf("experience=%d volunteer=%d education=%d skills=%d",
			len(profile.Experience), len(profile.VolunteerExperience), len(profile.Education), len(profile.Skills)),
	})

	return Result{
		Success:          true,
		DocumentID:       docID,
		RemainingImports: remainingAfter(status.Tier, newCount),
	}
}

// fetchBoth runs the primary profile fetch and the optional supplementary
// skills fetch concurrently. The supplementary call is non-fatal: its failure
// substitutes an empty result rather than failing the import.
func (i *Importer) fetchBoth(ctx context.Context, identifier string) (types.RawProfile, []string, error) {
	var (
		raw           types.RawProfile
		supplementary []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		payload, err := i.deps.Fetcher.FetchProfile(gctx, identifier)
		if err != nil {
			return err
		}
		raw = payload
		return nil
	})
	if i.deps.Skills != nil {
		g.Go(func() error {
			names, err := i.deps.Skills.FetchSkills(gctx, scraper.ProfileURL(identifier))
			if err != nil {
				i.deps.Log.Warn().Err(err).Str("identifier", identifier).Msg("supplementary skills fetch failed, continuing without")
				return nil
			}
			supplementary = names
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return raw, supplementary, nil
}

func (i *Importer) recordFailure(ctx context.Context, userID, identifier, summary string) {
	i.recordOutcome(ctx, types.ImportAttempt{
		UserID:           userID,
		SourceIdentifier: identifier,
		Outcome:          types.AttemptFailure,
		Timestamp:        i.deps.Now().UTC(),
		RawSummary:       summary,
	})
}

// recordOutcome appends to the audit log. Log-write failures are swallowed:
// the trail is diagnostic and must never fail or un-fail an import.
func (i *Importer) recordOutcome(ctx context.Context, attempt types.ImportAttempt) {
	if i.deps.Attempts == nil {
		return
	}
	if err := i.deps.Attempts.AppendAttempt(ctx, attempt); err != nil {
		i.deps.Log.Warn().Err(err).Msg("failed to append import attempt record")
	}
}

func remainingAfter(tier types.Tier, used int) int {
	if tier.Unlimited() {
		return types.UnlimitedImports
	}
	remaining := tier.DailyImportLimit() - used
	if remaining < 0 {
		return 0
	}
	return remaining
}

// mapFetchError folds provider error kinds into the stable result taxonomy.
func mapFetchError(err error) ErrorKind {
	kind := scraper.KindOf(err)
	if kind == "" {
		return ErrKindInternal
	}
	return ErrorKind(kind)
}
