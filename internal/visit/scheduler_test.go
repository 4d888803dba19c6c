package visit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/powderworks/skisim/internal/calendar"
	"github.com/powderworks/skisim/internal/persona"
	"github.com/powderworks/skisim/internal/population"
	"github.com/powderworks/skisim/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestScheduler(t *testing.T) (*Scheduler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE pass_usage (customer_id TEXT, usage_date DATETIME)`).Error)

	registry, err := persona.NewRegistry(nil)
	require.NoError(t, err)

	return NewScheduler(SchedulerParams{
		History:  NewHistoryRepo(HistoryParams{DB: db}),
		Registry: registry,
		Log:      zap.NewNop(),
	}), db
}

func testPopulation(segment persona.Code, n int) []population.Customer {
	out := make([]population.Customer, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, population.Customer{
			Code:           fmt.Sprintf("CUST%06d", i),
			Segment:        string(segment),
			FirstVisitDate: time.Date(2020, 11, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return out
}

func TestOffSeasonSchedulesNothing(t *testing.T) {
	s, _ := newTestScheduler(t)

	day := calendar.SeasonInfo(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC))
	visits, err := s.ScheduleVisits(context.Background(), 42, day,
		weather.DaySummary{}, testPopulation(persona.LocalPassHolder, 500))
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestSaturdayOutdrawsWednesday(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()
	pop := testPopulation(persona.WeekendWarrior, 3000)

	sat := calendar.SeasonInfo(time.Date(2025, 2, 8, 0, 0, 0, 0, time.UTC)) // Saturday
	wed := calendar.SeasonInfo(time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)) // Wednesday
	require.True(t, sat.IsSaturday)

	satVisits, err := s.ScheduleVisits(ctx, 42, sat, weather.DaySummary{}, pop)
	require.NoError(t, err)
	wedVisits, err := s.ScheduleVisits(ctx, 42, wed, weather.DaySummary{}, pop)
	require.NoError(t, err)

	assert.Greater(t, len(satVisits), 2*len(wedVisits),
		"weekend warriors should show up far more on Saturdays")
}

func TestPowderDayBoostsTurnout(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()
	pop := testPopulation(persona.ExpertSkier, 3000)
	day := calendar.SeasonInfo(time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC))

	calm, err := s.ScheduleVisits(ctx, 42, day, weather.DaySummary{}, pop)
	require.NoError(t, err)
	powder, err := s.ScheduleVisits(ctx, 42, day, weather.DaySummary{PowderDay: true}, pop)
	require.NoError(t, err)

	assert.Greater(t, len(powder), len(calm))
}

func TestCustomersBeforeFirstVisitNeverShow(t *testing.T) {
	s, _ := newTestScheduler(t)

	pop := testPopulation(persona.LocalPassHolder, 200)
	for i := range pop {
		pop[i].FirstVisitDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	day := calendar.SeasonInfo(time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC))
	visits, err := s.ScheduleVisits(context.Background(), 42, day, weather.DaySummary{}, pop)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestSchedulingIsDeterministic(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()
	pop := testPopulation(persona.VacationFamily, 1000)
	day := calendar.SeasonInfo(time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC))
	wx := weather.DaySummary{PowderDay: true}

	a, err := s.ScheduleVisits(ctx, 42, day, wx, pop)
	require.NoError(t, err)
	b, err := s.ScheduleVisits(ctx, 42, day, wx, pop)
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Customer.Code, b[i].Customer.Code)
	}
}

func TestHistoryFeedsCooldown(t *testing.T) {
	s, db := newTestScheduler(t)
	ctx := context.Background()

	day := calendar.SeasonInfo(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	yesterday := day.Date.AddDate(0, 0, -1)

	pop := testPopulation(persona.DayTripper, 2000)
	for _, c := range pop {
		require.NoError(t, db.Exec(
			`INSERT INTO pass_usage (customer_id, usage_date) VALUES (?, ?)`,
			c.Code, yesterday).Error)
	}

	cooled, err := s.ScheduleVisits(ctx, 42, day, weather.DaySummary{}, pop)
	require.NoError(t, err)

	fresh, _ := newTestScheduler(t)
	rested, err := fresh.ScheduleVisits(ctx, 42, day, weather.DaySummary{}, pop)
	require.NoError(t, err)

	assert.Less(t, len(cooled), len(rested),
		"a visit inside the cooldown window should suppress turnout")
}

func TestVisitProbabilityShape(t *testing.T) {
	registry, err := persona.NewRegistry(nil)
	require.NoError(t, err)
	p := registry.MustGet(persona.WeekendWarrior)

	sat := calendar.SeasonInfo(time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)) // Saturday, mid winter
	base := visitProbability(p, sat, weather.DaySummary{}, time.Time{}, false, 0)
	assert.InDelta(t, 0.15*1.5, base, 1e-9)

	powder := visitProbability(p, sat, weather.DaySummary{PowderDay: true}, time.Time{}, false, 0)
	assert.Greater(t, powder, base)

	storm := visitProbability(p, sat, weather.DaySummary{PowderDay: true, StormWarning: true}, time.Time{}, false, 0)
	assert.Less(t, storm, powder)

	cooled := visitProbability(p, sat, weather.DaySummary{}, sat.Date.AddDate(0, 0, -1), true, 0)
	assert.InDelta(t, base*cooldownDamp, cooled, 1e-9)

	spent := visitProbability(p, sat, weather.DaySummary{}, time.Time{}, false, p.SeasonVisitsMax)
	assert.InDelta(t, 0.15*budgetFloorShare, spent, 1e-9)

	// A sufficiently eager persona on a holiday powder Saturday pins at
	// the cap.
	eager := p
	eager.SaturdayProb = 0.4
	xmas := calendar.SeasonInfo(time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC))
	capped := visitProbability(eager, xmas, weather.DaySummary{PowderDay: true}, time.Time{}, false, 0)
	assert.Equal(t, maxDailyProb, capped)
}
