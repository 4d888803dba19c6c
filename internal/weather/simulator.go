package weather

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/powderworks/skisim/internal/calendar"
	"github.com/powderworks/skisim/internal/clock"
	"github.com/powderworks/skisim/internal/simrand"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Monthly baselines. Snowfall means are inches of new snow on a snow day,
// temps are the typical daily high at the base area.
var (
	snowfallMeans = map[time.Month]float64{
		time.November: 4,
		time.December: 7,
		time.January:  8.5,
		time.February: 7.5,
		time.March:    6,
		time.April:    3,
	}
	tempHighMeans = map[time.Month]float64{
		time.January:   25,
		time.February:  27,
		time.March:     32,
		time.April:     38,
		time.May:       55,
		time.June:      65,
		time.July:      72,
		time.August:    70,
		time.September: 60,
		time.October:   48,
		time.November:  35,
		time.December:  28,
	}
)

const (
	snowPersistence = 0.55
	tempPersistence = 0.6
	snowDayProb     = 0.35

	minBaseDepth   = 18.0
	maxBaseDepth   = 140.0
	startBaseDepth = 24.0
)

type Params struct {
	fx.In

	Node  *snowflake.Node
	Clock clock.Clock
	Log   *zap.Logger
}

// Simulator produces weather observations as a pure function of
// (seed, date, zone). It replays a mean-reverting walk from the start of the
// season containing the date, so consecutive days share storm systems and
// base depth accumulates across the season without any stored state.
type Simulator struct {
	node  *snowflake.Node
	clock clock.Clock
	log   *zap.Logger
}

func NewSimulator(p Params) *Simulator {
	return &Simulator{
		node:  p.Node,
		clock: p.Clock,
		log:   p.Log.Named("weather.simulator"),
	}
}

// ObservationsFor returns one observation per zone for the date.
func (s *Simulator) ObservationsFor(seed int64, date time.Time) []Observation {
	date = calendar.Midnight(date)
	w := newWalk(seed, calendar.SeasonStart(date))

	var day walkDay
	for cur := w.start; !cur.After(date); cur = cur.AddDate(0, 0, 1) {
		day = w.step(cur)
	}

	now := s.clock.Now()
	obs := make([]Observation, 0, len(Zones))
	for i, z := range Zones {
		zd := day.zones[i]
		obs = append(obs, Observation{
			ID:              s.node.Generate(),
			Date:            date,
			Zone:            z.Name,
			SnowCondition:   classify(zd.snowfall, zd.tempHigh, zd.storm),
			SnowfallInches:  zd.snowfall,
			BaseDepthInches: zd.baseDepth,
			TempHighF:       zd.tempHigh,
			TempLowF:        zd.tempLow,
			WindSpeedMPH:    zd.wind,
			PowderDay:       zd.snowfall >= PowderThresholdInches,
			HighWind:        zd.wind >= HighWindThresholdMPH,
			StormWarning:    zd.storm,
			CreatedAt:       now,
		})
	}
	return obs
}

// SummaryFor is ObservationsFor condensed to the mountain-wide summary.
func (s *Simulator) SummaryFor(seed int64, date time.Time) DaySummary {
	date = calendar.Midnight(date)
	return Summarize(date, s.ObservationsFor(seed, date))
}

type zoneDay struct {
	snowfall  float64
	baseDepth float64
	tempHigh  float64
	tempLow   float64
	wind      float64
	storm     bool
}

type walkDay struct {
	zones []zoneDay
}

// walk carries the sequential state of one season's weather. All randomness
// comes from a single stream keyed by (seed, season start), so replaying the
// walk reproduces every day exactly.
type walk struct {
	rng   *rand.Rand
	start time.Time

	rawSnow     float64
	tempAnomaly float64
	baseDepths  []float64
}

func newWalk(seed int64, seasonStart time.Time) *walk {
	depths := make([]float64, len(Zones))
	for i := range depths {
		depths[i] = startBaseDepth
	}
	return &walk{
		rng:        simrand.Stream(seed, "weather", seasonStart.Format("2006-01-02")),
		start:      seasonStart,
		baseDepths: depths,
	}
}

func (w *walk) step(date time.Time) walkDay {
	month := date.Month()

	// Storm systems persist: today's baseline snow carries a share of
	// yesterday's, plus an occasional fresh burst.
	burst := 0.0
	if snowMean, snowy := snowfallMeans[month]; snowy && w.rng.Float64() < snowDayProb {
		burst = snowMean * (0.5 + w.rng.Float64()*2.0)
	}
	w.rawSnow = snowPersistence*w.rawSnow + (1-snowPersistence)*burst
	baseline := w.rawSnow
	if baseline < 0.1 {
		baseline = 0
	}

	w.tempAnomaly = tempPersistence*w.tempAnomaly + w.rng.NormFloat64()*4
	baseHigh := tempHighMeans[month] + w.tempAnomaly
	spread := 12 + w.rng.Float64()*8
	baseWind := clamp(w.rng.NormFloat64()*6+12+baseline*1.2, 3, 50)

	day := walkDay{zones: make([]zoneDay, len(Zones))}
	for i, z := range Zones {
		snow := round1(baseline * z.SnowFactor)
		w.baseDepths[i] = clamp(w.baseDepths[i]*0.97+snow*0.85, minBaseDepth, maxBaseDepth)
		wind := clamp(baseWind+w.rng.Float64()*6-3, 3, 50)
		day.zones[i] = zoneDay{
			snowfall:  snow,
			baseDepth: round1(w.baseDepths[i]),
			tempHigh:  round1(baseHigh + z.TempOffsetF),
			tempLow:   round1(baseHigh + z.TempOffsetF - spread),
			wind:      round1(wind),
			storm:     snow >= StormSnowfallInches || wind >= HighWindThresholdMPH,
		}
	}
	return day
}

func classify(snowfall, tempHigh float64, storm bool) string {
	switch {
	case snowfall >= 10:
		return "Powder"
	case snowfall >= 5:
		return "Fresh Snow"
	case storm:
		return "Variable"
	case tempHigh >= 38:
		return "Spring Conditions"
	case tempHigh <= 28:
		return "Packed Powder"
	default:
		return "Machine Groomed"
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
