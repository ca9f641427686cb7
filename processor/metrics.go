package processor

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/d-fournier/wrappy/diag"
	"github.com/d-fournier/wrappy/errors"
)

// Request outcomes recorded in wrappy_requests_total.
const (
	OutcomeGenerated = "generated"
	OutcomeInvalid   = "invalid"    // the request site failed a shape check
	OutcomeNoMatch   = "unresolved" // no strategy answers to the requested name
	OutcomeFailed    = "failed"     // rendering or emission failed
	OutcomeSkipped   = "skipped"    // an earlier failure stopped the round
)

// Metrics counts the work of every round processed with it. Each Metrics
// owns its registry so that tests and concurrent processors do not share
// collectors.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	diagnostics    *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the processor's collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wrappy_requests_total",
				Help: "Generation requests processed, by strategy and outcome",
			},
			[]string{"strategy", "outcome"},
		),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wrappy_diagnostics_total",
				Help: "Diagnostics reported, by severity",
			},
			[]string{"severity"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wrappy_render_duration_seconds",
				Help:    "Time spent rendering one wrapper",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"strategy"},
		),
	}
	m.registry.MustRegister(m.requests, m.diagnostics, m.renderDuration)
	return m
}

// Registry exposes the collectors for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values in the text exposition format,
// for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}

func (m *Metrics) observeRequest(strategy, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(strategy, outcome).Inc()
}

func (m *Metrics) observeRender(strategy string, seconds float64) {
	if m == nil {
		return
	}
	m.renderDuration.WithLabelValues(strategy).Observe(seconds)
}

// sink counts diagnostics as they reach the round reporter.
func (m *Metrics) sink() diag.Sink {
	if m == nil {
		return diag.Discard
	}
	return diag.SinkFunc(func(d diag.Diagnostic) {
		m.diagnostics.WithLabelValues(string(d.Severity)).Inc()
	})
}
