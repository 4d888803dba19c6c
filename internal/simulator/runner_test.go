package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/powderworks/skisim/internal/clock"
	"github.com/powderworks/skisim/internal/config"
	"github.com/powderworks/skisim/internal/ledger"
	"github.com/powderworks/skisim/internal/ops"
	"github.com/powderworks/skisim/internal/persona"
	"github.com/powderworks/skisim/internal/population"
	"github.com/powderworks/skisim/internal/refdata"
	"github.com/powderworks/skisim/internal/staffing"
	"github.com/powderworks/skisim/internal/txn"
	"github.com/powderworks/skisim/internal/visit"
	"github.com/powderworks/skisim/internal/warehouse"
	"github.com/powderworks/skisim/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testHarness struct {
	runner *Runner
	db     *gorm.DB
	ledger *ledger.Service
}

func newHarness(t *testing.T, now time.Time) *testHarness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	registry, err := persona.NewRegistry(nil)
	require.NoError(t, err)

	cfg := config.Config{
		AppName:          "skisim",
		AppVersion:       "test",
		Environment:      "test",
		DefaultSeed:      42,
		PopulationTarget: 250,
		EpochDate:        time.Date(2020, 11, 1, 0, 0, 0, 0, time.UTC),
		MaxFutureDays:    2,
	}

	fake := clock.NewFakeClock(now)
	log := zap.NewNop()

	wh := warehouse.New(warehouse.Params{DB: db, Log: log})
	led := ledger.NewService(ledger.ServiceParams{
		Repo:   ledger.NewRepository(ledger.RepositoryParams{DB: db}),
		Config: cfg,
		Node:   node,
		Clock:  fake,
		Log:    log,
	})

	runner := NewRunner(RunnerParams{
		Warehouse: wh,
		Ledger:    led,
		Seeder: refdata.NewSeeder(refdata.SeederParams{
			DB: db, Clock: fake, Log: log,
		}),
		Population: population.NewService(population.ServiceParams{
			Repo:     population.NewRepository(population.RepositoryParams{DB: db}),
			Registry: registry,
			Config:   cfg,
			Node:     node,
			Clock:    fake,
			Log:      log,
		}),
		Weather: weather.NewSimulator(weather.Params{Node: node, Clock: fake, Log: log}),
		Scheduler: visit.NewScheduler(visit.SchedulerParams{
			History:  visit.NewHistoryRepo(visit.HistoryParams{DB: db}),
			Registry: registry,
			Log:      log,
		}),
		Txn: txn.NewGenerator(txn.GeneratorParams{
			Catalogue: refdata.NewCatalogue(),
			Node:      node,
			Clock:     fake,
			Log:       log,
		}),
		Staffing: staffing.NewGenerator(staffing.Params{Node: node, Clock: fake, Log: log}),
		Ops: ops.NewGenerator(ops.Params{
			Catalogue: refdata.NewCatalogue(),
			Node:      node,
			Clock:     fake,
			Log:       log,
		}),
		Metrics: NewMetrics(cfg),
		Config:  cfg,
		Clock:   fake,
		Log:     log,
	})

	return &testHarness{runner: runner, db: db, ledger: led}
}

func (h *testHarness) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, h.db.Table(table).Count(&n).Error)
	return n
}

var dec20 = time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)

func TestRunGeneratesOperatingDate(t *testing.T) {
	h := newHarness(t, dec20.Add(30*time.Hour))
	ctx := context.Background()

	summary, err := h.runner.Run(ctx, Request{From: dec20, Days: 1})
	require.NoError(t, err)

	require.Len(t, summary.Completed, 1)
	assert.Empty(t, summary.Skipped)
	assert.False(t, summary.HasFailures())
	assert.Greater(t, summary.RowsWritten, 0)

	assert.EqualValues(t, 4, h.count(t, "weather_conditions"))
	assert.EqualValues(t, 250, h.count(t, "customers"))
	assert.Greater(t, h.count(t, "pass_usage"), int64(0), "a holiday powder-season Friday draws visitors")
	assert.Greater(t, h.count(t, "lift_scans"), h.count(t, "pass_usage"))
	assert.EqualValues(t, 6, h.count(t, "staffing_schedule"))
	assert.GreaterOrEqual(t, h.count(t, "grooming_logs"), int64(5))
	assert.EqualValues(t, 55, h.count(t, "parking_occupancy"), "5 lots, hourly 7:00 through 17:00")

	run, err := h.ledger.Get(ctx, dec20)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusComplete, run.Status)
	assert.NotEmpty(t, run.RowCounts)
}

func TestRerunSkipsCompletedDates(t *testing.T) {
	h := newHarness(t, dec20.Add(30*time.Hour))
	ctx := context.Background()

	first, err := h.runner.Run(ctx, Request{From: dec20, Days: 1})
	require.NoError(t, err)
	require.Len(t, first.Completed, 1)
	scans := h.count(t, "lift_scans")

	second, err := h.runner.Run(ctx, Request{From: dec20, Days: 1})
	require.NoError(t, err)
	assert.Empty(t, second.Completed)
	assert.Equal(t, []time.Time{dec20}, second.Skipped)
	assert.Equal(t, scans, h.count(t, "lift_scans"), "skipped rerun writes nothing")
}

func TestForceRegenerationReplacesInPlace(t *testing.T) {
	h := newHarness(t, dec20.Add(30*time.Hour))
	ctx := context.Background()

	first, err := h.runner.Run(ctx, Request{From: dec20, Days: 1})
	require.NoError(t, err)
	scans := h.count(t, "lift_scans")
	usage := h.count(t, "pass_usage")

	second, err := h.runner.Run(ctx, Request{From: dec20, Days: 1, Force: true})
	require.NoError(t, err)
	require.Len(t, second.Completed, 1)

	assert.Equal(t, scans, h.count(t, "lift_scans"), "same seed regenerates identical volume")
	assert.Equal(t, usage, h.count(t, "pass_usage"))
	assert.Equal(t, first.RowsWritten, second.RowsWritten)
}

func TestSameSeedIsReproducibleAcrossDatabases(t *testing.T) {
	ctx := context.Background()
	now := dec20.Add(30 * time.Hour)

	codes := func(h *testHarness) []string {
		var out []string
		require.NoError(t, h.db.Table("lift_scans").Order("scan_id ASC").Pluck("scan_id", &out).Error)
		return out
	}
	amounts := func(h *testHarness) []float64 {
		var out []float64
		require.NoError(t, h.db.Table("food_beverage").Order("transaction_id ASC").Pluck("amount", &out).Error)
		return out
	}

	a := newHarness(t, now)
	_, err := a.runner.Run(ctx, Request{From: dec20, Days: 1})
	require.NoError(t, err)

	b := newHarness(t, now)
	_, err = b.runner.Run(ctx, Request{From: dec20, Days: 1})
	require.NoError(t, err)

	assert.Equal(t, codes(a), codes(b))
	assert.Equal(t, amounts(a), amounts(b))
}

func TestDifferentSeedsDiverge(t *testing.T) {
	ctx := context.Background()
	now := dec20.Add(30 * time.Hour)

	a := newHarness(t, now)
	_, err := a.runner.Run(ctx, Request{From: dec20, Days: 1, Seed: 42})
	require.NoError(t, err)

	b := newHarness(t, now)
	_, err = b.runner.Run(ctx, Request{From: dec20, Days: 1, Seed: 1234})
	require.NoError(t, err)

	assert.NotEqual(t, a.count(t, "lift_scans"), b.count(t, "lift_scans"))
}

func TestOffSeasonDateWritesWeatherOnly(t *testing.T) {
	jul15 := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	h := newHarness(t, jul15.Add(12*time.Hour))
	ctx := context.Background()

	summary, err := h.runner.Run(ctx, Request{From: jul15, Days: 1})
	require.NoError(t, err)
	require.Len(t, summary.Completed, 1)

	assert.EqualValues(t, 4, h.count(t, "weather_conditions"))
	assert.Zero(t, h.count(t, "lift_scans"))
	assert.Zero(t, h.count(t, "pass_usage"))
	assert.Zero(t, h.count(t, "staffing_schedule"))
	assert.Zero(t, h.count(t, "incidents"))
	assert.Zero(t, h.count(t, "grooming_logs"))
	assert.Zero(t, h.count(t, "parking_occupancy"))
}

func TestFutureDatesRejected(t *testing.T) {
	h := newHarness(t, dec20.Add(30*time.Hour))

	_, err := h.runner.Run(context.Background(), Request{From: dec20.AddDate(0, 0, 5), Days: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrInvalidDateRange)
}

func TestFullSeasonCadenceMatchesPersonaBands(t *testing.T) {
	seasonStart := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	h := newHarness(t, time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	summary, err := h.runner.Run(ctx, Request{From: seasonStart, Days: 181, PopulationTarget: 600})
	require.NoError(t, err)
	require.Len(t, summary.Completed, 181, "Nov 1 through Apr 30 all generate")
	require.False(t, summary.HasFailures())

	var counted []struct {
		CustomerID string
		N          int
	}
	require.NoError(t, h.db.Raw(
		"SELECT customer_id, COUNT(*) AS n FROM pass_usage GROUP BY customer_id",
	).Scan(&counted).Error)
	visitCounts := map[string]int{}
	for _, c := range counted {
		visitCounts[c.CustomerID] = c.N
	}

	var customers []population.Customer
	require.NoError(t, h.db.Find(&customers).Error)

	perSegment := map[string][]int{}
	for _, c := range customers {
		// Customers whose history starts mid-season cannot reach a full
		// season's cadence; only count those active from opening day.
		if c.FirstVisitDate.After(seasonStart) {
			continue
		}
		perSegment[c.Segment] = append(perSegment[c.Segment], visitCounts[c.Code])
	}

	registry, err := persona.NewRegistry(nil)
	require.NoError(t, err)

	// Half a visit of sampling slack on each band edge.
	const slack = 0.5
	for _, p := range registry.All() {
		sample := perSegment[string(p.Code)]
		require.NotEmpty(t, sample, p.Code)

		total := 0
		for _, n := range sample {
			total += n
		}
		mean := float64(total) / float64(len(sample))
		assert.GreaterOrEqual(t, mean, float64(p.SeasonVisitsMin)-slack,
			"segment %s averaged %.2f visits over %d customers", p.Code, mean, len(sample))
		assert.LessOrEqual(t, mean, float64(p.SeasonVisitsMax)+slack,
			"segment %s averaged %.2f visits over %d customers", p.Code, mean, len(sample))
	}
}

func TestMultiDayRangeMixesOutcomes(t *testing.T) {
	h := newHarness(t, dec20.Add(30*time.Hour))
	ctx := context.Background()

	_, err := h.runner.Run(ctx, Request{From: dec20.AddDate(0, 0, -1), Days: 1})
	require.NoError(t, err)

	summary, err := h.runner.Run(ctx, Request{From: dec20.AddDate(0, 0, -2), Days: 3})
	require.NoError(t, err)

	assert.Len(t, summary.Completed, 2)
	assert.Equal(t, []time.Time{dec20.AddDate(0, 0, -1)}, summary.Skipped)
	assert.False(t, summary.HasFailures())
}
