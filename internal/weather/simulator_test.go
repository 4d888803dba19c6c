package weather

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/powderworks/skisim/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSimulator(t *testing.T) *Simulator {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return NewSimulator(Params{
		Node:  node,
		Clock: clock.NewFakeClock(time.Date(2024, 12, 21, 6, 0, 0, 0, time.UTC)),
		Log:   zap.NewNop(),
	})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestObservationsDeterministic(t *testing.T) {
	sim := newTestSimulator(t)
	day := date(2024, 12, 20)

	a := sim.ObservationsFor(42, day)
	b := sim.ObservationsFor(42, day)
	require.Len(t, a, len(Zones))
	require.Len(t, b, len(Zones))

	for i := range a {
		assert.Equal(t, a[i].Zone, b[i].Zone)
		assert.Equal(t, a[i].SnowfallInches, b[i].SnowfallInches)
		assert.Equal(t, a[i].BaseDepthInches, b[i].BaseDepthInches)
		assert.Equal(t, a[i].TempHighF, b[i].TempHighF)
		assert.Equal(t, a[i].WindSpeedMPH, b[i].WindSpeedMPH)
		assert.Equal(t, a[i].SnowCondition, b[i].SnowCondition)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	sim := newTestSimulator(t)
	day := date(2025, 1, 15)

	a := sim.ObservationsFor(42, day)
	b := sim.ObservationsFor(43, day)

	same := true
	for i := range a {
		if a[i].SnowfallInches != b[i].SnowfallInches ||
			a[i].TempHighF != b[i].TempHighF ||
			a[i].WindSpeedMPH != b[i].WindSpeedMPH {
			same = false
		}
	}
	assert.False(t, same, "independent seeds should not reproduce the same day")
}

func TestBoundsAcrossSeason(t *testing.T) {
	sim := newTestSimulator(t)

	for d := date(2024, 11, 1); !d.After(date(2025, 4, 30)); d = d.AddDate(0, 0, 1) {
		for _, o := range sim.ObservationsFor(7, d) {
			assert.GreaterOrEqual(t, o.SnowfallInches, 0.0)
			assert.GreaterOrEqual(t, o.BaseDepthInches, minBaseDepth)
			assert.LessOrEqual(t, o.BaseDepthInches, maxBaseDepth)
			assert.GreaterOrEqual(t, o.WindSpeedMPH, 3.0)
			assert.LessOrEqual(t, o.WindSpeedMPH, 50.0)
			assert.Less(t, o.TempLowF, o.TempHighF)
		}
	}
}

func TestElevationGradient(t *testing.T) {
	sim := newTestSimulator(t)
	obs := sim.ObservationsFor(42, date(2025, 2, 1))
	require.Len(t, obs, 4)

	byZone := map[string]Observation{}
	for _, o := range obs {
		byZone[o.Zone] = o
	}
	summit, base := byZone["Summit Peak"], byZone["Village Base"]
	assert.Less(t, summit.TempHighF, base.TempHighF)
	assert.GreaterOrEqual(t, summit.SnowfallInches, base.SnowfallInches)
}

// Consecutive days must share storm systems: day-over-day snowfall changes
// should be visibly smaller than changes between randomly paired days.
func TestSnowfallAutocorrelation(t *testing.T) {
	sim := newTestSimulator(t)

	var series []float64
	for d := date(2024, 12, 15); !d.After(date(2025, 2, 28)); d = d.AddDate(0, 0, 1) {
		series = append(series, sim.SummaryFor(42, d).SnowfallInches)
	}

	consecutive := 0.0
	for i := 1; i < len(series); i++ {
		diff := series[i] - series[i-1]
		consecutive += diff * diff
	}
	consecutive /= float64(len(series) - 1)

	// Pair each day with one half a season away to break the correlation.
	shuffled := 0.0
	half := len(series) / 2
	for i := 0; i < half; i++ {
		diff := series[i] - series[i+half]
		shuffled += diff * diff
	}
	shuffled /= float64(half)

	assert.Less(t, consecutive, shuffled,
		"consecutive-day snowfall deltas should be smaller than distant-day deltas")
}

func TestFlagsFollowThresholds(t *testing.T) {
	sim := newTestSimulator(t)

	for d := date(2024, 11, 1); !d.After(date(2025, 4, 30)); d = d.AddDate(0, 0, 1) {
		for _, o := range sim.ObservationsFor(42, d) {
			assert.Equal(t, o.SnowfallInches >= PowderThresholdInches, o.PowderDay)
			assert.Equal(t, o.WindSpeedMPH >= HighWindThresholdMPH, o.HighWind)
			assert.Equal(t,
				o.SnowfallInches >= StormSnowfallInches || o.WindSpeedMPH >= HighWindThresholdMPH,
				o.StormWarning)
		}
	}
}

func TestOffSeasonHasNoSnow(t *testing.T) {
	sim := newTestSimulator(t)
	for _, o := range sim.ObservationsFor(42, date(2025, 7, 15)) {
		assert.Zero(t, o.SnowfallInches)
		assert.Greater(t, o.TempHighF, 45.0)
	}
}

func TestSummarizePicksZoneSignals(t *testing.T) {
	d := date(2025, 1, 10)
	obs := []Observation{
		{Zone: "Summit Peak", SnowfallInches: 9, WindSpeedMPH: 40, PowderDay: true, HighWind: true, StormWarning: true},
		{Zone: "Village Base", SnowfallInches: 5, WindSpeedMPH: 20, TempHighF: 30, TempLowF: 14, SnowCondition: "Fresh Snow"},
	}

	s := Summarize(d, obs)
	assert.Equal(t, 9.0, s.SnowfallInches)
	assert.Equal(t, 40.0, s.MaxWindMPH)
	assert.Equal(t, 30.0, s.TempHighF)
	assert.Equal(t, "Fresh Snow", s.Condition)
	assert.True(t, s.PowderDay)
	assert.True(t, s.StormWarning)
}
