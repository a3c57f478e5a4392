package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records calculation metrics in its own registry.
type Metrics struct {
	Registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	cacheHits    prometheus.Counter
	changes      *prometheus.HistogramVec
	duration     prometheus.Histogram
}

// NewMetrics creates and registers the calculator metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "knitcalc_calculations_total",
				Help: "Total number of calculations by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "knitcalc_cache_hits_total",
			Help: "Calculations served from the result cache",
		}),
		changes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "knitcalc_changes",
				Help:    "Requested number of increases or decreases",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"mode"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "knitcalc_calculation_duration_seconds",
			Help:    "Duration of calculations including cache lookups",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
	m.Registry.MustRegister(m.calculations, m.cacheHits, m.changes, m.duration)
	return m
}

// Hooks returns lifecycle hooks that feed the metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCalculate: m.observe,
	}
}

func (m *Metrics) observe(_ context.Context, e *domain.CalculationEvent) {
	mode := string(e.Request.Mode)
	if !e.Request.Mode.Valid() {
		mode = "unknown"
	}
	m.calculations.WithLabelValues(mode, string(e.Outcome)).Inc()
	if e.Cached {
		m.cacheHits.Inc()
	}
	if e.Outcome == domain.OutcomeOK {
		m.changes.WithLabelValues(mode).Observe(float64(e.Request.Changes))
	}
	m.duration.Observe(e.Duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
