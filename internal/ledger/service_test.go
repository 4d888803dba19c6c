package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/powderworks/skisim/internal/clock"
	"github.com/powderworks/skisim/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&GenerationRun{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParams{
		Repo: NewRepository(RepositoryParams{DB: db}),
		Config: config.Config{
			AppVersion:    "test",
			EpochDate:     time.Date(2020, 11, 1, 0, 0, 0, 0, time.UTC),
			MaxFutureDays: 2,
		},
		Node:  node,
		Clock: clock.NewFakeClock(now),
		Log:   zap.NewNop(),
	})
}

func TestPendingDatesValidation(t *testing.T) {
	now := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()

	_, _, err := svc.PendingDates(ctx, Request{From: time.Date(2020, 10, 15, 0, 0, 0, 0, time.UTC), Days: 1})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, _, err = svc.PendingDates(ctx, Request{From: time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC), Days: 1})
	assert.ErrorIs(t, err, ErrInvalidDateRange, "beyond the future horizon")

	_, _, err = svc.PendingDates(ctx, Request{From: now, Days: 0})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// Today plus the allowed future window is fine.
	pending, _, err := svc.PendingDates(ctx, Request{From: time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC), Days: 3})
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func TestCompletedDatesSkipUnlessForced(t *testing.T) {
	now := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()
	date := time.Date(2024, 12, 18, 0, 0, 0, 0, time.UTC)

	run, err := svc.Claim(ctx, date, 42, false)
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, run.RunID, map[string]int{"lift_scans": 100}))

	pending, skipped, err := svc.PendingDates(ctx, Request{From: date, Days: 2})
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date.AddDate(0, 0, 1)}, pending)
	assert.Equal(t, []time.Time{date}, skipped)

	pending, skipped, err = svc.PendingDates(ctx, Request{From: date, Days: 2, Force: true})
	require.NoError(t, err)
	assert.Len(t, pending, 2)
	assert.Empty(t, skipped)
}

func TestClaimExclusivity(t *testing.T) {
	now := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()
	date := time.Date(2024, 12, 19, 0, 0, 0, 0, time.UTC)

	run, err := svc.Claim(ctx, date, 42, false)
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, run.RunID, nil))

	_, err = svc.Claim(ctx, date, 42, false)
	assert.ErrorIs(t, err, ErrDateAlreadyGenerated)
}

func TestFailedDatesAreReclaimable(t *testing.T) {
	now := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()
	date := time.Date(2024, 12, 19, 0, 0, 0, 0, time.UTC)

	run, err := svc.Claim(ctx, date, 42, false)
	require.NoError(t, err)
	require.NoError(t, svc.Fail(ctx, run.RunID, assert.AnError))

	second, err := svc.Claim(ctx, date, 42, false)
	require.NoError(t, err)
	assert.NotEqual(t, run.RunID, second.RunID)

	got, err := svc.Get(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, second.RunID, got.RunID)
	assert.Equal(t, StatusPending, got.Status)
	assert.Empty(t, got.Error)
}

func TestForceReclaimsCompletedDate(t *testing.T) {
	now := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()
	date := time.Date(2024, 12, 17, 0, 0, 0, 0, time.UTC)

	run, err := svc.Claim(ctx, date, 42, false)
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, run.RunID, map[string]int{"pass_usage": 7}))

	reclaimed, err := svc.Claim(ctx, date, 99, true)
	require.NoError(t, err)
	assert.NotEqual(t, run.RunID, reclaimed.RunID)

	got, err := svc.Get(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
	assert.EqualValues(t, 99, got.Seed)
	assert.Nil(t, got.CompletedAt)
}

func TestCompleteRecordsRowCounts(t *testing.T) {
	now := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()
	date := time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC)

	run, err := svc.Claim(ctx, date, 42, false)
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, run.RunID, map[string]int{
		"lift_scans": 1200,
		"pass_usage": 90,
	}))

	got, err := svc.Get(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.EqualValues(t, 1200, got.RowCounts["lift_scans"])
	assert.EqualValues(t, 90, got.RowCounts["pass_usage"])
}

func TestUnknownRunID(t *testing.T) {
	svc := newTestService(t, time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC))
	err := svc.Complete(context.Background(), "01JXXXXXXXXXXXXXXXXXXXXXXX", nil)
	assert.ErrorIs(t, err, ErrRunNotFound)
}
