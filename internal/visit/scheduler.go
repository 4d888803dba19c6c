// Package visit decides who shows up on a given day. The decision is a
// Bernoulli draw per customer from a date-keyed stream, so a day's attendance
// is reproducible without reading any other day's output.
package visit

import (
	"context"
	"fmt"
	"time"

	"github.com/powderworks/skisim/internal/calendar"
	"github.com/powderworks/skisim/internal/persona"
	"github.com/powderworks/skisim/internal/population"
	"github.com/powderworks/skisim/internal/simrand"
	"github.com/powderworks/skisim/internal/weather"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// Powder scales with persona sensitivity; at sensitivity 1.0 this is the
	// classic 1.35x powder-day bump.
	powderBoostPerSensitivity = 0.35
	stormDamp                 = 0.7
	cooldownDamp              = 0.15
	budgetFloorShare          = 0.1
	maxDailyProb              = 0.9
)

// Visit pairs a scheduled customer with the resolved persona parameters the
// transaction generator needs.
type Visit struct {
	Customer population.Customer
	Persona  persona.Params
}

type SchedulerParams struct {
	fx.In

	History  HistoryRepo
	Registry *persona.Registry
	Log      *zap.Logger
}

type Scheduler struct {
	history  HistoryRepo
	registry *persona.Registry
	log      *zap.Logger
}

func NewScheduler(p SchedulerParams) *Scheduler {
	return &Scheduler{
		history:  p.History,
		registry: p.Registry,
		log:      p.Log.Named("visit.scheduler"),
	}
}

// ScheduleVisits draws the day's attendance from the ordered population.
// Customers whose history has not started yet never visit; everyone else
// rolls against their adjusted probability.
func (s *Scheduler) ScheduleVisits(
	ctx context.Context,
	seed int64,
	day calendar.SeasonDay,
	wx weather.DaySummary,
	customers []population.Customer,
) ([]Visit, error) {
	if !day.Operating {
		return nil, nil
	}

	lastVisits, err := s.history.LastVisits(ctx, day.Date)
	if err != nil {
		return nil, fmt.Errorf("load last visits: %w", err)
	}
	seasonCounts, err := s.history.SeasonVisitCounts(ctx, calendar.SeasonStart(day.Date), day.Date)
	if err != nil {
		return nil, fmt.Errorf("load season visit counts: %w", err)
	}

	rng := simrand.DateStream(seed, day.Date, "visits")

	var visits []Visit
	for _, c := range customers {
		if c.FirstVisitDate.After(day.Date) {
			continue
		}
		p, err := s.registry.Get(persona.Code(c.Segment))
		if err != nil {
			return nil, fmt.Errorf("customer %s: %w", c.Code, err)
		}

		last, hasLast := lastVisits[c.Code]
		prob := visitProbability(p, day, wx, last, hasLast, seasonCounts[c.Code])
		if rng.Float64() < prob {
			visits = append(visits, Visit{Customer: c, Persona: p})
		}
	}

	s.log.Debug("visits scheduled",
		zap.Time("date", day.Date),
		zap.Int("population", len(customers)),
		zap.Int("visits", len(visits)),
		zap.Bool("powder_day", wx.PowderDay),
	)
	return visits, nil
}

func visitProbability(
	p persona.Params,
	day calendar.SeasonDay,
	wx weather.DaySummary,
	last time.Time,
	hasLast bool,
	seasonVisits int,
) float64 {
	base := p.BaseProb(day.Date.Weekday())
	prob := base * day.SeasonMultiplier * day.HolidayMultiplier

	if wx.PowderDay {
		prob *= 1 + powderBoostPerSensitivity*p.WeatherSensitivity
	}
	if wx.StormWarning {
		prob *= stormDamp
	}

	if hasLast && p.MinGapDays > 0 {
		gap := int(day.Date.Sub(calendar.Midnight(last)).Hours() / 24)
		if gap < p.MinGapDays {
			prob *= cooldownDamp
		}
	}

	// Past the persona's season budget the customer goes nearly dormant but
	// never fully: locals still poach the odd extra day.
	if seasonVisits >= p.SeasonVisitsMax {
		floor := budgetFloorShare * base
		if prob > floor {
			prob = floor
		}
	}

	if prob > maxDailyProb {
		prob = maxDailyProb
	}
	return prob
}
