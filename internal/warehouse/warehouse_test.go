package warehouse

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/powderworks/skisim/internal/txn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestWarehouse(t *testing.T) *Warehouse {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	w := New(Params{DB: db, Log: zap.NewNop()})
	require.NoError(t, w.Migrate(context.Background()))
	return w
}

func scansFor(date time.Time, n int) []txn.LiftScan {
	out := make([]txn.LiftScan, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, txn.LiftScan{
			Code:       fmt.Sprintf("SCAN%s%08d", date.Format("20060102"), i+1),
			CustomerID: "CUST000001",
			LiftID:     "L001",
			Date:       date,
			ScanTime:   date.Add(10 * time.Hour),
		})
	}
	return out
}

func TestInsertBatchAndPurge(t *testing.T) {
	w := newTestWarehouse(t)
	ctx := context.Background()
	dec20 := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	dec21 := dec20.AddDate(0, 0, 1)

	err := w.Transaction(ctx, func(tx *gorm.DB) error {
		if err := w.InsertBatch(tx, txn.LiftScan{}.TableName(), scansFor(dec20, 30)); err != nil {
			return err
		}
		return w.InsertBatch(tx, txn.LiftScan{}.TableName(), scansFor(dec21, 10))
	})
	require.NoError(t, err)

	err = w.Transaction(ctx, func(tx *gorm.DB) error {
		return w.PurgeDate(tx, dec20)
	})
	require.NoError(t, err)

	var remaining int64
	require.NoError(t, w.db.Model(&txn.LiftScan{}).Count(&remaining).Error)
	assert.EqualValues(t, 10, remaining, "purge removes only the requested date")
}

func TestEmptyBatchIsNoop(t *testing.T) {
	w := newTestWarehouse(t)
	err := w.Transaction(context.Background(), func(tx *gorm.DB) error {
		return w.InsertBatch(tx, txn.LiftScan{}.TableName(), []txn.LiftScan{})
	})
	assert.NoError(t, err)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	w := newTestWarehouse(t)
	ctx := context.Background()
	date := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)

	boom := errors.New("boom")
	err := w.Transaction(ctx, func(tx *gorm.DB) error {
		if err := w.InsertBatch(tx, txn.LiftScan{}.TableName(), scansFor(date, 5)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, w.db.Model(&txn.LiftScan{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPersistenceErrorNamesTable(t *testing.T) {
	w := newTestWarehouse(t)
	ctx := context.Background()
	date := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)

	dup := scansFor(date, 1)
	err := w.Transaction(ctx, func(tx *gorm.DB) error {
		if err := w.InsertBatch(tx, txn.LiftScan{}.TableName(), dup); err != nil {
			return err
		}
		return w.InsertBatch(tx, txn.LiftScan{}.TableName(), dup)
	})
	require.Error(t, err)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "lift_scans", perr.Table)
}
