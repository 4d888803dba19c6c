package persona

import (
	"testing"

	"github.com/powderworks/skisim/internal/config"
	"github.com/powderworks/skisim/internal/simrand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	reg, err := NewRegistry(nil)
	require.NoError(t, err)
	assert.Len(t, reg.All(), 7)
}

func TestWeightsMustSumToOne(t *testing.T) {
	boosted := 0.5
	_, err := NewRegistry(config.PersonaOverrides{
		string(Beginner): {Weight: &boosted},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWeightsSum)
}

func TestOverrideUnknownPersonaRejected(t *testing.T) {
	w := 0.1
	_, err := NewRegistry(config.PersonaOverrides{
		"powder_hound": {Weight: &w},
	})
	assert.ErrorIs(t, err, ErrUnknownPersona)
}

func TestInvalidParameterRejected(t *testing.T) {
	bad := -1
	_, err := NewRegistry(config.PersonaOverrides{
		string(DayTripper): {MinGapDays: &bad},
	})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSampleFollowsPopulationMix(t *testing.T) {
	reg, err := NewRegistry(nil)
	require.NoError(t, err)

	rng := simrand.Stream(42, "persona_mix_test")
	counts := map[Code]int{}
	const n = 50000
	for i := 0; i < n; i++ {
		counts[reg.Sample(rng).Code]++
	}

	for _, p := range reg.All() {
		got := float64(counts[p.Code]) / n
		assert.InDelta(t, p.Weight, got, 0.02, "persona %s", p.Code)
	}
}

func TestBaseProbByDayType(t *testing.T) {
	reg, err := NewRegistry(nil)
	require.NoError(t, err)

	ww := reg.MustGet(WeekendWarrior)
	assert.Equal(t, 0.15, ww.BaseProb(6)) // Saturday
	assert.Equal(t, 0.08, ww.BaseProb(0)) // Sunday
	assert.Equal(t, 0.02, ww.BaseProb(3)) // Wednesday
}

func TestGetUnknown(t *testing.T) {
	reg, err := NewRegistry(nil)
	require.NoError(t, err)
	_, err = reg.Get("snowboarder")
	assert.ErrorIs(t, err, ErrUnknownPersona)
}
