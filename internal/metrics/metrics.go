// Package metrics counts what a run did and can dump the counts in the
// Prometheus text format for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters of one run on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	reg *prometheus.Registry

	replays      *prometheus.CounterVec
	knifeRounds  prometheus.Counter
	skips        *prometheus.CounterVec
	kills        *prometheus.CounterVec
	parseSeconds prometheus.Histogram
}

// New registers a fresh set of run metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		replays: f.NewCounterVec(prometheus.CounterOpts{
			Name: "csround_replays_total",
			Help: "Replays processed, by result (parsed, failed)",
		}, []string{"result"}),
		knifeRounds: f.NewCounter(prometheus.CounterOpts{
			Name: "csround_knife_rounds_removed_total",
			Help: "Leading knife rounds removed from replays",
		}),
		skips: f.NewCounterVec(prometheus.CounterOpts{
			Name: "csround_pipeline_skips_total",
			Help: "Replays a pipeline skipped for missing data",
		}, []string{"pipeline"}),
		kills: f.NewCounterVec(prometheus.CounterOpts{
			Name: "csround_kills_processed_total",
			Help: "Kill events consumed by each pipeline",
		}, []string{"pipeline"}),
		parseSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "csround_replay_parse_seconds",
			Help:    "Time spent parsing one replay",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// ReplayParsed records a successful parse and its duration.
func (m *Metrics) ReplayParsed(d time.Duration) {
	if m == nil {
		return
	}
	m.replays.WithLabelValues("parsed").Inc()
	m.parseSeconds.Observe(d.Seconds())
}

// ReplayFailed records a replay that could not be loaded.
func (m *Metrics) ReplayFailed() {
	if m == nil {
		return
	}
	m.replays.WithLabelValues("failed").Inc()
}

// KnifeRoundRemoved records one removed knife round.
func (m *Metrics) KnifeRoundRemoved() {
	if m == nil {
		return
	}
	m.knifeRounds.Inc()
}

// PipelineSkipped records a replay skipped by pipeline.
func (m *Metrics) PipelineSkipped(pipeline string) {
	if m == nil {
		return
	}
	m.skips.WithLabelValues(pipeline).Inc()
}

// KillsProcessed adds n kills consumed by pipeline.
func (m *Metrics) KillsProcessed(pipeline string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.kills.WithLabelValues(pipeline).Add(float64(n))
}

// WriteTextfile writes every metric to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
