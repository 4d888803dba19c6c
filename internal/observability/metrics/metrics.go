package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	ServiceName string
	Environment string
}

const (
	DateResultCompleted = "completed"
	DateResultSkipped   = "skipped"
	DateResultFailed    = "failed"
)

// GeneratorMetrics captures generation throughput and health signals.
type GeneratorMetrics struct {
	datesProcessed *prometheus.CounterVec
	rowsGenerated  *prometheus.CounterVec
	visits         prometheus.Counter
	dateDuration   prometheus.Observer
}

var (
	generatorMetricsOnce sync.Once
	generatorMetrics     *GeneratorMetrics
)

// Generator returns the singleton generator metrics registry.
func Generator() *GeneratorMetrics {
	return GeneratorWithConfig(Config{})
}

// GeneratorWithConfig returns the singleton generator metrics registry using config labels.
func GeneratorWithConfig(cfg Config) *GeneratorMetrics {
	generatorMetricsOnce.Do(func() {
		generatorMetrics = newGeneratorMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return generatorMetrics
}

// ResetGeneratorMetricsForTest resets the generator metrics singleton for tests.
func ResetGeneratorMetricsForTest() {
	generatorMetricsOnce = sync.Once{}
	generatorMetrics = nil
}

func newGeneratorMetrics(registerer prometheus.Registerer, cfg Config) *GeneratorMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "skisim"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	datesProcessed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "skisim_dates_processed_total",
		Help:        "Generation dates by outcome.",
		ConstLabels: constLabels,
	}, []string{"result"})
	rowsGenerated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "skisim_rows_generated_total",
		Help:        "Rows generated per raw table.",
		ConstLabels: constLabels,
	}, []string{"table"})
	visits := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "skisim_visits_scheduled_total",
		Help:        "Customer visits scheduled across all generated dates.",
		ConstLabels: constLabels,
	})
	dateDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "skisim_date_generation_seconds",
		Help:        "Wall time to generate and persist one date.",
		Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		ConstLabels: constLabels,
	})

	registerer.MustRegister(datesProcessed, rowsGenerated, visits, dateDuration)

	return &GeneratorMetrics{
		datesProcessed: datesProcessed,
		rowsGenerated:  rowsGenerated,
		visits:         visits,
		dateDuration:   dateDuration,
	}
}

func (m *GeneratorMetrics) IncDate(result string) {
	if m == nil {
		return
	}
	m.datesProcessed.WithLabelValues(result).Inc()
}

func (m *GeneratorMetrics) AddRows(table string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rowsGenerated.WithLabelValues(table).Add(float64(n))
}

func (m *GeneratorMetrics) AddVisits(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.visits.Add(float64(n))
}

func (m *GeneratorMetrics) ObserveDateDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.dateDuration.Observe(d.Seconds())
}
