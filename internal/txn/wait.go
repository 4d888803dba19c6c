package txn

import (
	"math"
	"math/rand/v2"

	"github.com/powderworks/skisim/internal/calendar"
	"github.com/powderworks/skisim/internal/refdata"
	"github.com/powderworks/skisim/internal/weather"
)

const (
	minWaitMinutes = 1.0
	maxWaitMinutes = 45.0
)

// waitModel prices a lift line as queue length over effective throughput.
// Queue scales with the day's visitor count and the lift's share of traffic;
// throughput degrades on weekends (greener staff) and in storms.
type waitModel struct {
	totalPopularity float64
	visitors        int
	day             calendar.SeasonDay
	wx              weather.DaySummary

	weekendMult float64
	powderMult  float64
	holidayMult float64
}

func newWaitModel(rng *rand.Rand, c *refdata.Catalogue, visitors int, day calendar.SeasonDay, wx weather.DaySummary) *waitModel {
	total := 0.0
	for _, l := range c.Lifts {
		total += l.Popularity
	}

	m := &waitModel{
		totalPopularity: total,
		visitors:        visitors,
		day:             day,
		wx:              wx,
		weekendMult:     1.0,
		powderMult:      1.0,
		holidayMult:     1.0 + (day.HolidayMultiplier-1.0)*0.3,
	}
	if day.IsWeekend {
		m.weekendMult = 1.2 + rng.Float64()*0.3
	}
	if wx.PowderDay {
		m.powderMult = 1.1 + rng.Float64()*0.2
	}
	return m
}

func (m *waitModel) waitFor(rng *rand.Rand, lift refdata.Lift, hour int) float64 {
	// Peak window holds more of the mountain in line.
	queueFactor := 0.40
	if hour >= 10 && hour <= 12 {
		queueFactor = 0.60
	}
	queue := float64(m.visitors) * (lift.Popularity / m.totalPopularity) * queueFactor

	efficiency := 0.85
	if m.day.IsWeekend {
		efficiency = 0.75
	}
	if m.wx.StormWarning {
		efficiency *= 0.6
	}
	throughput := math.Max(1, float64(lift.CapacityPerHour)/60*efficiency)

	wait := queue / throughput * m.weekendMult * m.powderMult * m.holidayMult
	wait += rng.NormFloat64() * 2.0
	wait = math.Min(math.Max(wait, minWaitMinutes), maxWaitMinutes)
	return math.Round(wait*10) / 10
}
