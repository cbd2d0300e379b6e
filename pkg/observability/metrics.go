package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values for automata_runs_total.
const (
	OutcomeAccepted  = "accepted"
	OutcomeRejected  = "rejected"
	OutcomeStepLimit = "step_limit"
	OutcomeError     = "error"
)

// Metrics holds the collectors fed by registry lifecycle hooks.
type Metrics struct {
	registry *prometheus.Registry

	Created  *prometheus.CounterVec
	Invalid  *prometheus.CounterVec
	Runs     *prometheus.CounterVec
	Steps    *prometheus.HistogramVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on a private registry,
// together with the Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Created: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_created_total",
				Help: "Automata accepted by the validator and stored",
			},
			[]string{"kind"},
		),
		Invalid: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_invalid_definitions_total",
				Help: "Definitions refused at creation",
			},
			[]string{"kind"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_runs_total",
				Help: "Input strings tested, by outcome",
			},
			[]string{"kind", "outcome"},
		),
		Steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_run_steps",
				Help:    "Transitions taken by completed runs",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"kind"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_run_duration_seconds",
				Help:    "Wall time of runs",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(
		m.Created, m.Invalid, m.Runs, m.Steps, m.Duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCreate: func(_ context.Context, e *domain.CreateEvent) {
			if e.Err != nil {
				m.Invalid.WithLabelValues(string(e.Kind)).Inc()
				return
			}
			m.Created.WithLabelValues(string(e.Kind)).Inc()
		},
		OnRun: func(_ context.Context, e *domain.RunEvent) {
			kind := string(e.Kind)
			m.Duration.WithLabelValues(kind).Observe(e.Duration.Seconds())
			switch {
			case errors.Is(e.Err, domain.ErrStepLimitExceeded):
				m.Runs.WithLabelValues(kind, OutcomeStepLimit).Inc()
			case e.Err != nil:
				m.Runs.WithLabelValues(kind, OutcomeError).Inc()
			default:
				m.Runs.WithLabelValues(kind, e.Result.Verdict.String()).Inc()
				m.Steps.WithLabelValues(kind).Observe(float64(e.Result.Steps))
			}
		},
	}
}

// Gatherer exposes the private registry, e.g. for testutil.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
