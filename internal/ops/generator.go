// Package ops generates the mountain-operations record of a day: ski patrol
// incidents, overnight grooming, and hourly parking occupancy. These tables
// let the analytics demos join safety and capacity signals against the
// transactional volume.
package ops

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/powderworks/skisim/internal/calendar"
	"github.com/powderworks/skisim/internal/clock"
	"github.com/powderworks/skisim/internal/refdata"
	"github.com/powderworks/skisim/internal/simrand"
	"github.com/powderworks/skisim/internal/visit"
	"github.com/powderworks/skisim/internal/weather"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const baseIncidentRate = 0.002

var trailNames = []string{
	"Summit Run", "Eagle Ridge", "Blue Bird", "Powder Bowl", "Family Way",
	"Black Diamond", "Mogul Madness", "Cruiser", "North Face", "Glade Runner",
	"Sunrise", "Sunset Strip", "Timberline", "Snowflake", "Avalanche",
}

var (
	incidentTypes       = []string{"collision", "fall", "equipment_failure", "medical", "lost_skier", "lift_issue"}
	incidentTypeWeights = []float64{0.35, 0.40, 0.08, 0.10, 0.05, 0.02}

	severities      = []string{"minor", "moderate", "serious"}
	severityWeights = []float64{0.70, 0.25, 0.05}

	skillLevels = []string{"beginner", "intermediate", "advanced"}
)

var groomingTypes = []string{"full", "touch_up", "edge_work"}

var (
	conditionsBefore = []string{"good", "fair", "poor", "icy"}
	conditionsAfter  = []string{"excellent", "good", "fair"}
)

type parkingLot struct {
	id       string
	name     string
	capacity int
	paid     bool
}

var parkingLots = []parkingLot{
	{id: "PARK001", name: "Main Lot", capacity: 500, paid: true},
	{id: "PARK002", name: "Overflow Lot", capacity: 300, paid: true},
	{id: "PARK003", name: "Village Lot", capacity: 200, paid: true},
	{id: "PARK004", name: "Employee Lot", capacity: 150},
	{id: "PARK005", name: "Remote Lot", capacity: 100, paid: true},
}

// DayLog is every operations row generated for one date.
type DayLog struct {
	Incidents []Incident
	Grooming  []GroomingLog
	Parking   []ParkingRecord
}

type Params struct {
	fx.In

	Catalogue *refdata.Catalogue
	Node      *snowflake.Node
	Clock     clock.Clock
	Log       *zap.Logger
}

type Generator struct {
	catalogue *refdata.Catalogue
	node      *snowflake.Node
	clock     clock.Clock
	log       *zap.Logger
}

func NewGenerator(p Params) *Generator {
	return &Generator{
		catalogue: p.Catalogue,
		node:      p.Node,
		clock:     p.Clock,
		log:       p.Log.Named("ops.generator"),
	}
}

// GenerateDay produces the operations record for one date. Off-season dates
// produce nothing: no lifts spin, no cats run, no lots open.
func (g *Generator) GenerateDay(seed int64, day calendar.SeasonDay, wx weather.DaySummary, visits []visit.Visit) *DayLog {
	out := &DayLog{}
	if !day.Operating {
		return out
	}

	rng := simrand.DateStream(seed, day.Date, "ops")
	now := g.clock.Now()

	out.Incidents = g.incidents(rng, day, wx, visits, now)
	out.Grooming = g.grooming(rng, day, now)
	out.Parking = g.parking(rng, day, len(visits), now)

	g.log.Debug("operations day generated",
		zap.Time("date", day.Date),
		zap.Int("incidents", len(out.Incidents)),
		zap.Int("grooming", len(out.Grooming)),
		zap.Int("parking", len(out.Parking)),
	)
	return out
}

// incidents draws a Poisson count off the visitor volume. Powder days bring
// speed, storms bring visibility problems; both raise the rate.
func (g *Generator) incidents(rng *rand.Rand, day calendar.SeasonDay, wx weather.DaySummary, visits []visit.Visit, now time.Time) []Incident {
	rate := baseIncidentRate
	if wx.PowderDay {
		rate *= 1.3
	}
	if wx.StormWarning {
		rate *= 1.5
	}

	n := poisson(rng, float64(len(visits))*rate)
	out := make([]Incident, 0, n)
	for i := 1; i <= n; i++ {
		severity := severities[weightedIndex(rng, severityWeights)]
		at := day.Date.Add(time.Duration(9+rng.IntN(7))*time.Hour + time.Duration(rng.IntN(60))*time.Minute)

		liftID, trail := "", ""
		if rng.Float64() < 0.15 {
			liftID = g.catalogue.Lifts[rng.IntN(len(g.catalogue.Lifts))].ID
		} else {
			trail = trailNames[rng.IntN(len(trailNames))]
		}

		customer := ""
		if len(visits) > 0 && rng.Float64() < 0.80 {
			customer = visits[rng.IntN(len(visits))].Customer.Code
		}

		out = append(out, Incident{
			ID:                    g.node.Generate(),
			Code:                  fmt.Sprintf("INC%s%04d", day.Date.Format("20060102"), i),
			Date:                  day.Date,
			OccurredAt:            at,
			IncidentType:          incidentTypes[weightedIndex(rng, incidentTypeWeights)],
			Severity:              severity,
			LiftID:                liftID,
			TrailName:             trail,
			CustomerID:            customer,
			SkillLevel:            skillLevels[rng.IntN(len(skillLevels))],
			WeatherFactor:         wx.StormWarning,
			FirstAidRendered:      severity != "minor",
			TransportRequired:     severity == "serious",
			PatrolResponseMinutes: 3 + rng.IntN(13),
			CreatedAt:             now,
		})
	}
	return out
}

// grooming logs the overnight cat shift that prepared the date's surface.
func (g *Generator) grooming(rng *rand.Rand, day calendar.SeasonDay, now time.Time) []GroomingLog {
	n := int(math.Round(12 + rng.NormFloat64()*2))
	n = min(max(n, 5), len(trailNames))

	perm := rng.Perm(len(trailNames))
	out := make([]GroomingLog, 0, n)
	for i := 0; i < n; i++ {
		startHour := 3 + rng.IntN(3)
		start := day.Date.Add(time.Duration(startHour)*time.Hour + time.Duration(rng.IntN(60))*time.Minute)
		end := day.Date.Add(7 * time.Hour).Add(-time.Duration(rng.IntN(30)) * time.Minute)

		out = append(out, GroomingLog{
			ID:               g.node.Generate(),
			Code:             fmt.Sprintf("GROOM%s%03d", day.Date.Format("20060102"), i+1),
			Date:             day.Date,
			TrailName:        trailNames[perm[i]],
			MachineID:        fmt.Sprintf("CAT%02d", 1+rng.IntN(5)),
			StartTime:        start,
			EndTime:          end,
			DurationMinutes:  int(end.Sub(start).Minutes()),
			GroomingType:     groomingTypes[rng.IntN(len(groomingTypes))],
			SnowDepthInches:  round1(24 + rng.Float64()*24),
			ConditionsBefore: conditionsBefore[rng.IntN(len(conditionsBefore))],
			ConditionsAfter:  conditionsAfter[rng.IntN(len(conditionsAfter))],
			FuelUsedGallons:  round1(8 + rng.Float64()*17),
			CreatedAt:        now,
		})
	}
	return out
}

// parking writes one row per lot per hour from opening through close-out.
// Occupancy ramps to a late-morning peak sized off the visitor count, holds
// a plateau, then drains after the lifts stop loading.
func (g *Generator) parking(rng *rand.Rand, day calendar.SeasonDay, visitors int, now time.Time) []ParkingRecord {
	out := make([]ParkingRecord, 0, len(parkingLots)*11)
	for _, lot := range parkingLots {
		peak := min(lot.capacity, int(float64(visitors)/2.5*float64(lot.capacity)/1250))
		prev := 0
		for hour := 7; hour <= 17; hour++ {
			var pct float64
			switch {
			case hour <= 10:
				pct = float64(hour-7) / 3 * 0.9
			case hour <= 15:
				pct = 0.85 + rng.Float64()*0.2 - 0.1
			default:
				pct = 0.85 - float64(hour-15)*0.25
			}
			pct = math.Min(math.Max(pct, 0.05), 1.0)

			occupied := int(float64(peak) * pct)
			entered := max(0, occupied-prev)
			revenue := 0.0
			if lot.paid {
				revenue = float64(entered) * 20
			}

			out = append(out, ParkingRecord{
				ID:               g.node.Generate(),
				Code:             fmt.Sprintf("%s%s%02d", lot.id, day.Date.Format("20060102"), hour),
				Date:             day.Date,
				Hour:             hour,
				LotID:            lot.id,
				LotName:          lot.name,
				TotalSpaces:      lot.capacity,
				OccupiedSpaces:   occupied,
				OccupancyPercent: round1(float64(occupied) / float64(lot.capacity) * 100),
				VehiclesEntered:  entered,
				RevenueCollected: revenue,
				OverflowActive:   float64(occupied)/float64(lot.capacity) > 0.95,
				CreatedAt:        now,
			})
			prev = occupied
		}
	}
	return out
}

// poisson samples by inversion, fine for the small means incident counts use.
func poisson(rng *rand.Rand, mean float64) int {
	if mean <= 0 {
		return 0
	}
	limit := math.Exp(-mean)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	target := rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target <= 0 {
			return i
		}
	}
	return len(weights) - 1
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

var Module = fx.Module("ops",
	fx.Provide(NewGenerator),
)
