// Package metrics provides Prometheus metrics instrumentation for ingressd.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector provides metrics recording interface.
// This allows components to record metrics without direct prometheus dependency.
type Collector interface {
	// Watch stream metrics
	RecordWatchEvent(ctx context.Context, eventType string)
	RecordWatchError(ctx context.Context, errorType string)
	RecordDroppedEvent(ctx context.Context, reason string)
	RecordRuleSets(ctx context.Context, count int)

	// Lookup metrics
	RecordResolve(ctx context.Context, outcome string, duration time.Duration)

	// Proxy metrics
	RecordProxyRequest(ctx context.Context, status string, duration time.Duration)
}

// Outcome labels for RecordResolve.
const (
	OutcomeMatched = "matched"
	OutcomeDefault = "default"
	OutcomeNone    = "none"
)

// Drop reason labels for RecordDroppedEvent.
const (
	DropReasonNoIdentity    = "no_identity"
	DropReasonMalformedSpec = "malformed_spec"
	DropReasonBadObject     = "bad_object"
)

// prometheusCollector implements Collector using Prometheus metrics.
type prometheusCollector struct {
	watchEventsTotal  *prometheus.CounterVec
	watchErrorsTotal  *prometheus.CounterVec
	droppedEvents     *prometheus.CounterVec
	ruleSets          prometheus.Gauge
	resolveDuration   *prometheus.HistogramVec
	resolvesTotal     *prometheus.CounterVec
	proxyDuration     *prometheus.HistogramVec
	proxyRequestTotal *prometheus.CounterVec
}

// NewCollector creates a new Prometheus metrics collector and registers metrics.
func NewCollector(reg prometheus.Registerer) Collector {
	c := &prometheusCollector{}
	c.initWatchMetrics()
	c.initLookupMetrics()
	c.register(reg)

	return c
}

// RecordWatchEvent records one processed watch event by type.
func (c *prometheusCollector) RecordWatchEvent(_ context.Context, eventType string) {
	c.watchEventsTotal.WithLabelValues(eventType).Inc()
}

// RecordWatchError records a watch stream error by type.
func (c *prometheusCollector) RecordWatchError(_ context.Context, errorType string) {
	c.watchErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordDroppedEvent records an event dropped without a table mutation.
func (c *prometheusCollector) RecordDroppedEvent(_ context.Context, reason string) {
	c.droppedEvents.WithLabelValues(reason).Inc()
}

// RecordRuleSets records the number of rule sets currently in the table.
func (c *prometheusCollector) RecordRuleSets(_ context.Context, count int) {
	c.ruleSets.Set(float64(count))
}

// RecordResolve records one lookup with its outcome.
func (c *prometheusCollector) RecordResolve(_ context.Context, outcome string, duration time.Duration) {
	c.resolveDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	c.resolvesTotal.WithLabelValues(outcome).Inc()
}

// RecordProxyRequest records one proxied request by upstream status class.
func (c *prometheusCollector) RecordProxyRequest(_ context.Context, status string, duration time.Duration) {
	c.proxyDuration.WithLabelValues(status).Observe(duration.Seconds())
	c.proxyRequestTotal.WithLabelValues(status).Inc()
}

func (c *prometheusCollector) initWatchMetrics() {
	c.watchEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingressd_watch_events_total",
			Help: "Total watch events processed by type",
		},
		[]string{"type"},
	)
	c.watchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingressd_watch_errors_total",
			Help: "Total watch stream errors by type",
		},
		[]string{"error_type"},
	)
	c.droppedEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingressd_dropped_events_total",
			Help: "Watch events dropped without a table mutation",
		},
		[]string{"reason"},
	)
	c.ruleSets = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingressd_rule_sets",
			Help: "Rule sets currently held in the routing table",
		},
	)
}

func (c *prometheusCollector) initLookupMetrics() {
	c.resolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingressd_resolve_duration_seconds",
			Help:    "Duration of routing table lookups",
			Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
		[]string{"outcome"},
	)
	c.resolvesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingressd_resolves_total",
			Help: "Total routing table lookups by outcome",
		},
		[]string{"outcome"},
	)
	c.proxyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingressd_proxy_request_duration_seconds",
			Help:    "Duration of proxied requests",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
	c.proxyRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingressd_proxy_requests_total",
			Help: "Total proxied requests by upstream status class",
		},
		[]string{"status"},
	)
}

func (c *prometheusCollector) register(reg prometheus.Registerer) {
	reg.MustRegister(
		c.watchEventsTotal,
		c.watchErrorsTotal,
		c.droppedEvents,
		c.ruleSets,
		c.resolveDuration,
		c.resolvesTotal,
		c.proxyDuration,
		c.proxyRequestTotal,
	)
}

// NoopCollector is a no-op implementation of Collector for testing.
type NoopCollector struct{}

// NewNoopCollector creates a new no-op collector.
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

// RecordWatchEvent is a no-op.
func (c *NoopCollector) RecordWatchEvent(_ context.Context, _ string) {}

// RecordWatchError is a no-op.
func (c *NoopCollector) RecordWatchError(_ context.Context, _ string) {}

// RecordDroppedEvent is a no-op.
func (c *NoopCollector) RecordDroppedEvent(_ context.Context, _ string) {}

// RecordRuleSets is a no-op.
func (c *NoopCollector) RecordRuleSets(_ context.Context, _ int) {}

// RecordResolve is a no-op.
func (c *NoopCollector) RecordResolve(_ context.Context, _ string, _ time.Duration) {}

// RecordProxyRequest is a no-op.
func (c *NoopCollector) RecordProxyRequest(_ context.Context, _ string, _ time.Duration) {}
