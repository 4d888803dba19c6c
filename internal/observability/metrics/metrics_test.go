package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func counterValue(mf *dto.MetricFamily, label, value string) float64 {
	for _, m := range mf.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == label && l.GetValue() == value {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestGeneratorMetricsRecordOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newGeneratorMetrics(reg, Config{ServiceName: "skisim", Environment: "test"})

	m.IncDate(DateResultCompleted)
	m.IncDate(DateResultCompleted)
	m.IncDate(DateResultSkipped)
	m.AddRows("lift_scans", 1200)
	m.AddRows("lift_scans", 800)
	m.AddRows("pass_usage", 90)
	m.AddVisits(90)
	m.ObserveDateDuration(250 * time.Millisecond)

	families := gather(t, reg)

	dates := families["skisim_dates_processed_total"]
	require.NotNil(t, dates)
	assert.Equal(t, 2.0, counterValue(dates, "result", DateResultCompleted))
	assert.Equal(t, 1.0, counterValue(dates, "result", DateResultSkipped))
	assert.Zero(t, counterValue(dates, "result", DateResultFailed))

	rows := families["skisim_rows_generated_total"]
	require.NotNil(t, rows)
	assert.Equal(t, 2000.0, counterValue(rows, "table", "lift_scans"))
	assert.Equal(t, 90.0, counterValue(rows, "table", "pass_usage"))

	visits := families["skisim_visits_scheduled_total"]
	require.NotNil(t, visits)
	require.Len(t, visits.GetMetric(), 1)
	assert.Equal(t, 90.0, visits.GetMetric()[0].GetCounter().GetValue())

	duration := families["skisim_date_generation_seconds"]
	require.NotNil(t, duration)
	require.Len(t, duration.GetMetric(), 1)
	assert.EqualValues(t, 1, duration.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestZeroAndNegativeDeltasIgnored(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newGeneratorMetrics(reg, Config{})

	m.AddRows("lift_scans", 0)
	m.AddRows("lift_scans", -5)
	m.AddVisits(0)

	families := gather(t, reg)
	rows := families["skisim_rows_generated_total"]
	if rows != nil {
		assert.Zero(t, counterValue(rows, "table", "lift_scans"))
	}
}

func TestServiceLabelsDefaulted(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newGeneratorMetrics(reg, Config{})
	m.IncDate(DateResultCompleted)

	families := gather(t, reg)
	dates := families["skisim_dates_processed_total"]
	require.NotNil(t, dates)

	labels := map[string]string{}
	for _, l := range dates.GetMetric()[0].GetLabel() {
		labels[l.GetName()] = l.GetValue()
	}
	assert.Equal(t, "skisim", labels["service"])
	assert.Equal(t, "unknown", labels["env"])
}
