// Package warehouse is the persistence edge. Generators hand it fully built
// rows; it owns batching, per-date purges, and schema migration, and wraps
// every failure with the table it happened on.
package warehouse

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/powderworks/skisim/internal/ledger"
	"github.com/powderworks/skisim/internal/ops"
	"github.com/powderworks/skisim/internal/population"
	"github.com/powderworks/skisim/internal/refdata"
	"github.com/powderworks/skisim/internal/staffing"
	"github.com/powderworks/skisim/internal/txn"
	"github.com/powderworks/skisim/internal/weather"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const insertBatchSize = 500

// PersistenceError attributes a storage failure to a table.
type PersistenceError struct {
	Table string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure on %s: %v", e.Table, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Dated transactional tables and their date column, used for per-date
// purging. Customers and reference tables are deliberately absent: they are
// never purged by date.
var datedTables = map[string]string{
	txn.LiftScan{}.TableName():        "scan_date",
	txn.PassUsage{}.TableName():       "usage_date",
	txn.TicketSale{}.TableName():      "sale_date",
	txn.Rental{}.TableName():          "rental_date",
	txn.FoodBeverage{}.TableName():    "txn_date",
	txn.SkiLesson{}.TableName():       "lesson_date",
	staffing.Schedule{}.TableName():   "schedule_date",
	ops.Incident{}.TableName():        "incident_date",
	ops.GroomingLog{}.TableName():     "grooming_date",
	ops.ParkingRecord{}.TableName():   "record_date",
	weather.Observation{}.TableName(): "weather_date",
}

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Warehouse struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) *Warehouse {
	return &Warehouse{db: p.DB, log: p.Log.Named("warehouse")}
}

// Migrate creates or updates every table the generator writes.
func (w *Warehouse) Migrate(ctx context.Context) error {
	err := w.db.WithContext(ctx).AutoMigrate(
		&refdata.Lift{},
		&refdata.Location{},
		&refdata.Product{},
		&refdata.TicketType{},
		&refdata.Instructor{},
		&population.Customer{},
		&weather.Observation{},
		&txn.LiftScan{},
		&txn.PassUsage{},
		&txn.TicketSale{},
		&txn.Rental{},
		&txn.FoodBeverage{},
		&txn.SkiLesson{},
		&staffing.Schedule{},
		&ops.Incident{},
		&ops.GroomingLog{},
		&ops.ParkingRecord{},
		&ledger.GenerationRun{},
	)
	if err != nil {
		return fmt.Errorf("migrate warehouse schema: %w", err)
	}
	return nil
}

// Transaction runs fn atomically. A generated date is either fully on disk
// or absent.
func (w *Warehouse) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return w.db.WithContext(ctx).Transaction(fn)
}

// InsertBatch writes rows in chunks inside the caller's transaction. Empty
// slices are a no-op so callers never special-case quiet days.
func (w *Warehouse) InsertBatch(tx *gorm.DB, table string, rows interface{}) error {
	if reflect.ValueOf(rows).Len() == 0 {
		return nil
	}
	if err := tx.Table(table).CreateInBatches(rows, insertBatchSize).Error; err != nil {
		return &PersistenceError{Table: table, Err: err}
	}
	return nil
}

// PurgeDate deletes every transactional row for the date. Used under force
// so regeneration replaces instead of duplicating.
func (w *Warehouse) PurgeDate(tx *gorm.DB, date time.Time) error {
	for table, column := range datedTables {
		if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, column), date).Error; err != nil {
			return &PersistenceError{Table: table, Err: err}
		}
	}
	return nil
}

var Module = fx.Module("warehouse",
	fx.Provide(New),
)
