package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvera/cv-import/internal/types"
)

type fakeStore struct {
	counts  map[string]int
	lastDay time.Time
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{counts: map[string]int{}}
}

func (s *fakeStore) key(userID string, day time.Time) string {
	return userID + "|" + day.Format("2006-01-02")
}

func (s *fakeStore) DailyCount(_ context.Context, userID string, day time.Time) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.lastDay = day
	return s.counts[s.key(userID, day)], nil
}

func (s *fakeStore) IncrementDailyCount(_ context.Context, userID string, day time.Time) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.lastDay = day
	s.counts[s.key(userID, day)]++
	return s.counts[s.key(userID, day)], nil
}

type fakeTiers struct {
	tier types.Tier
	err  error
}

func (s *fakeTiers) UserTier(_ context.Context, _ string) (types.Tier, error) {
	return s.tier, s.err
}

func fixedNow() time.Time {
	return time.Date(2024, time.June, 15, 23, 30, 0, 0, time.UTC)
}

func TestGate_Check_FreeTier(t *testing.T) {
	store := newFakeStore()
	gate := NewGate(store, &fakeTiers{tier: types.TierFree}, fixedNow)
	ctx := context.Background()

	status, err := gate.Check(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.Equal(t, 2, status.Remaining)
	assert.Equal(t, 0, status.Used)
	assert.Equal(t, types.TierFree, status.Tier)

	_, err = gate.RecordSuccess(ctx, "user-1")
	require.NoError(t, err)
	_, err = gate.RecordSuccess(ctx, "user-1")
	require.NoError(t, err)

	// Two of two used: the third import is denied with zero remaining.
	status, err = gate.Check(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, status.Allowed)
	assert.Equal(t, 0, status.Remaining)
	assert.Equal(t, 2, status.Used)
}

func TestGate_Check_MediumTier(t *testing.T) {
	store := newFakeStore()
	store.counts[store.key("user-1", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))] = 4
	gate := NewGate(store, &fakeTiers{tier: types.TierMedium}, fixedNow)

	status, err := gate.Check(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.Equal(t, 1, status.Remaining)
	assert.Equal(t, 4, status.Used)
}

func TestGate_Check_PremiumIsUnlimited(t *testing.T) {
	store := newFakeStore()
	gate := NewGate(store, &fakeTiers{tier: types.TierPremium}, fixedNow)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		_, err := gate.RecordSuccess(ctx, "user-1")
		require.NoError(t, err)
	}

	status, err := gate.Check(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.Equal(t, types.UnlimitedImports, status.Remaining)
}

func TestGate_Check_CounterResetsAtUTCDayBoundary(t *testing.T) {
	store := newFakeStore()
	tiers := &fakeTiers{tier: types.TierFree}

	day1 := func() time.Time { return time.Date(2024, time.June, 15, 23, 59, 0, 0, time.UTC) }
	gate := NewGate(store, tiers, day1)
	ctx := context.Background()

	_, err := gate.RecordSuccess(ctx, "user-1")
	require.NoError(t, err)
	_, err = gate.RecordSuccess(ctx, "user-1")
	require.NoError(t, err)

	status, err := gate.Check(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, status.Allowed)

	// One minute later it is a new UTC day and the counter starts fresh.
	day2 := func() time.Time { return time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC) }
	gate = NewGate(store, tiers, day2)

	status, err = gate.Check(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.Equal(t, 0, status.Used)
	assert.Equal(t, 2, status.Remaining)
}

func TestGate_Check_StoreErrorsPropagate(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")
	gate := NewGate(store, &fakeTiers{tier: types.TierFree}, fixedNow)

	_, err := gate.Check(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily count")

	_, err = gate.RecordSuccess(context.Background(), "user-1")
	require.Error(t, err)
}

func TestGate_Check_TierSourceErrorsPropagate(t *testing.T) {
	gate := NewGate(newFakeStore(), &fakeTiers{err: errors.New("no such user")}, fixedNow)

	_, err := gate.Check(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tier")
}

func TestGate_UsesUTCDayKey(t *testing.T) {
	store := newFakeStore()
	// 01:30 on June 16 in UTC+4 is still June 15 in UTC.
	local := time.Date(2024, time.June, 16, 1, 30, 0, 0, time.FixedZone("UTC+4", 4*3600))
	gate := NewGate(store, &fakeTiers{tier: types.TierFree}, func() time.Time { return local })

	_, err := gate.Check(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), store.lastDay)
}
