// Package simulator orchestrates a generation run: reference data, customer
// population, then each requested date claimed, generated, and persisted
// atomically. Dates are isolated; one bad date never stops the rest of the
// range.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/powderworks/skisim/internal/calendar"
	"github.com/powderworks/skisim/internal/clock"
	"github.com/powderworks/skisim/internal/config"
	"github.com/powderworks/skisim/internal/ledger"
	"github.com/powderworks/skisim/internal/observability/metrics"
	"github.com/powderworks/skisim/internal/ops"
	"github.com/powderworks/skisim/internal/population"
	"github.com/powderworks/skisim/internal/refdata"
	"github.com/powderworks/skisim/internal/staffing"
	"github.com/powderworks/skisim/internal/txn"
	"github.com/powderworks/skisim/internal/visit"
	"github.com/powderworks/skisim/internal/warehouse"
	"github.com/powderworks/skisim/internal/weather"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Request is one invocation of the generator.
type Request struct {
	From  time.Time
	Days  int
	Force bool
	// Seed overrides the configured default when non-zero.
	Seed int64
	// PopulationTarget overrides the configured default when non-zero.
	PopulationTarget int
}

type Failure struct {
	Date time.Time
	Err  error
}

// Summary is what one invocation did, date by date.
type Summary struct {
	InvocationID string
	Seed         int64
	Completed    []time.Time
	Skipped      []time.Time
	Failed       []Failure
	RowsWritten  int
}

func (s *Summary) HasFailures() bool { return len(s.Failed) > 0 }

type RunnerParams struct {
	fx.In

	Warehouse  *warehouse.Warehouse
	Ledger     *ledger.Service
	Seeder     *refdata.Seeder
	Population *population.Service
	Weather    *weather.Simulator
	Scheduler  *visit.Scheduler
	Txn        *txn.Generator
	Staffing   *staffing.Generator
	Ops        *ops.Generator
	Metrics    *metrics.GeneratorMetrics
	Config     config.Config
	Clock      clock.Clock
	Log        *zap.Logger
}

type Runner struct {
	warehouse  *warehouse.Warehouse
	ledger     *ledger.Service
	seeder     *refdata.Seeder
	population *population.Service
	weather    *weather.Simulator
	scheduler  *visit.Scheduler
	txn        *txn.Generator
	staffing   *staffing.Generator
	ops        *ops.Generator
	metrics    *metrics.GeneratorMetrics
	cfg        config.Config
	clock      clock.Clock
	log        *zap.Logger
}

func NewRunner(p RunnerParams) *Runner {
	return &Runner{
		warehouse:  p.Warehouse,
		ledger:     p.Ledger,
		seeder:     p.Seeder,
		population: p.Population,
		weather:    p.Weather,
		scheduler:  p.Scheduler,
		txn:        p.Txn,
		staffing:   p.Staffing,
		ops:        p.Ops,
		metrics:    p.Metrics,
		cfg:        p.Config,
		clock:      p.Clock,
		log:        p.Log.Named("simulator.runner"),
	}
}

// Run executes the request end to end and reports per-date outcomes. The
// returned error covers setup only; per-date failures land in the summary.
func (r *Runner) Run(ctx context.Context, req Request) (*Summary, error) {
	seed := req.Seed
	if seed == 0 {
		seed = r.cfg.DefaultSeed
	}
	target := req.PopulationTarget
	if target == 0 {
		target = r.cfg.PopulationTarget
	}

	summary := &Summary{
		InvocationID: uuid.NewString(),
		Seed:         seed,
	}
	log := r.log.With(zap.String("invocation_id", summary.InvocationID), zap.Int64("seed", seed))
	log.Info("generation run starting",
		zap.Time("from", req.From),
		zap.Int("days", req.Days),
		zap.Bool("force", req.Force),
	)

	if err := r.warehouse.Migrate(ctx); err != nil {
		return nil, err
	}
	if err := r.seeder.Seed(ctx); err != nil {
		return nil, fmt.Errorf("seed reference data: %w", err)
	}
	if _, err := r.population.EnsurePopulation(ctx, seed, target); err != nil {
		return nil, fmt.Errorf("ensure population: %w", err)
	}

	pending, skipped, err := r.ledger.PendingDates(ctx, ledger.Request{
		From:  req.From,
		Days:  req.Days,
		Force: req.Force,
	})
	if err != nil {
		return nil, err
	}

	m := r.metrics
	for _, d := range skipped {
		summary.Skipped = append(summary.Skipped, d)
		m.IncDate(metrics.DateResultSkipped)
	}

	customers, err := r.population.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load population: %w", err)
	}

	for _, date := range pending {
		rows, err := r.generateDate(ctx, seed, date, req.Force, customers)
		if err != nil {
			if errors.Is(err, ledger.ErrDateAlreadyGenerated) {
				// Another process finished the date between planning and
				// claiming. That is a skip, not a failure.
				summary.Skipped = append(summary.Skipped, date)
				m.IncDate(metrics.DateResultSkipped)
				continue
			}
			log.Error("date failed", zap.Time("date", date), zap.Error(err))
			summary.Failed = append(summary.Failed, Failure{Date: date, Err: err})
			m.IncDate(metrics.DateResultFailed)
			continue
		}
		summary.Completed = append(summary.Completed, date)
		summary.RowsWritten += rows
		m.IncDate(metrics.DateResultCompleted)
	}

	if len(summary.Completed) > 0 {
		if err := r.population.RefreshLifetimeMetrics(ctx); err != nil {
			log.Warn("lifetime metrics refresh failed", zap.Error(err))
		}
	}

	log.Info("generation run finished",
		zap.Int("completed", len(summary.Completed)),
		zap.Int("skipped", len(summary.Skipped)),
		zap.Int("failed", len(summary.Failed)),
		zap.Int("rows", summary.RowsWritten),
	)
	return summary, nil
}

func (r *Runner) generateDate(
	ctx context.Context,
	seed int64,
	date time.Time,
	force bool,
	customers []population.Customer,
) (int, error) {
	start := r.clock.Now()

	run, err := r.ledger.Claim(ctx, date, seed, force)
	if err != nil {
		return 0, err
	}

	day := calendar.SeasonInfo(date)
	observations := r.weather.ObservationsFor(seed, date)
	wx := weather.Summarize(day.Date, observations)

	var visits []visit.Visit
	out := &txn.DayOutput{}
	opsLog := &ops.DayLog{}
	var schedules []staffing.Schedule

	if day.Operating {
		visits, err = r.scheduler.ScheduleVisits(ctx, seed, day, wx, customers)
		if err != nil {
			return 0, r.failRun(ctx, run.RunID, err)
		}
		out, err = r.txn.GenerateDay(seed, day, wx, visits)
		if err != nil {
			return 0, r.failRun(ctx, run.RunID, err)
		}
		if err := out.Validate(day); err != nil {
			return 0, r.failRun(ctx, run.RunID, err)
		}
		schedules = r.staffing.GenerateDay(seed, day, wx, len(visits))
		opsLog = r.ops.GenerateDay(seed, day, wx, visits)
	}

	rowCounts := map[string]int{
		weather.Observation{}.TableName(): len(observations),
		txn.LiftScan{}.TableName():        len(out.Scans),
		txn.PassUsage{}.TableName():       len(out.Usage),
		txn.TicketSale{}.TableName():      len(out.Tickets),
		txn.Rental{}.TableName():          len(out.Rentals),
		txn.FoodBeverage{}.TableName():    len(out.FoodBeverage),
		txn.SkiLesson{}.TableName():       len(out.Lessons),
		staffing.Schedule{}.TableName():   len(schedules),
		ops.Incident{}.TableName():        len(opsLog.Incidents),
		ops.GroomingLog{}.TableName():     len(opsLog.Grooming),
		ops.ParkingRecord{}.TableName():   len(opsLog.Parking),
	}

	err = r.warehouse.Transaction(ctx, func(tx *gorm.DB) error {
		// Purge first so reruns replace rather than duplicate.
		if err := r.warehouse.PurgeDate(tx, day.Date); err != nil {
			return err
		}
		batches := []struct {
			table string
			rows  interface{}
		}{
			{weather.Observation{}.TableName(), observations},
			{txn.LiftScan{}.TableName(), out.Scans},
			{txn.PassUsage{}.TableName(), out.Usage},
			{txn.TicketSale{}.TableName(), out.Tickets},
			{txn.Rental{}.TableName(), out.Rentals},
			{txn.FoodBeverage{}.TableName(), out.FoodBeverage},
			{txn.SkiLesson{}.TableName(), out.Lessons},
			{staffing.Schedule{}.TableName(), schedules},
			{ops.Incident{}.TableName(), opsLog.Incidents},
			{ops.GroomingLog{}.TableName(), opsLog.Grooming},
			{ops.ParkingRecord{}.TableName(), opsLog.Parking},
		}
		for _, b := range batches {
			if err := r.warehouse.InsertBatch(tx, b.table, b.rows); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, r.failRun(ctx, run.RunID, err)
	}

	if err := r.ledger.Complete(ctx, run.RunID, rowCounts); err != nil {
		return 0, err
	}

	total := 0
	for table, n := range rowCounts {
		r.metrics.AddRows(table, n)
		total += n
	}
	r.metrics.AddVisits(len(visits))
	r.metrics.ObserveDateDuration(r.clock.Now().Sub(start))

	r.log.Info("date generated",
		zap.Time("date", day.Date),
		zap.String("run_id", run.RunID),
		zap.Bool("operating", day.Operating),
		zap.Int("visits", len(visits)),
		zap.Int("rows", total),
	)
	return total, nil
}

// failRun records the failure on the ledger and returns the original error.
func (r *Runner) failRun(ctx context.Context, runID string, cause error) error {
	if err := r.ledger.Fail(ctx, runID, cause); err != nil {
		r.log.Warn("could not record failure", zap.String("run_id", runID), zap.Error(err))
	}
	return cause
}

// NewMetrics resolves the process-wide generator metrics once, labeled from
// config, so Run never touches the registry.
func NewMetrics(cfg config.Config) *metrics.GeneratorMetrics {
	return metrics.GeneratorWithConfig(metrics.Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
	})
}

var Module = fx.Module("simulator",
	fx.Provide(NewRunner, NewMetrics),
)
