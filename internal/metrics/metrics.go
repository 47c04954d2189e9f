// Package metrics exposes Prometheus collectors for estimates, share tokens
// and the HTTP API. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ppiankov/casevalue/internal/model"
)

const namespace = "casevalue"

// Estimate outcomes
const (
	OutcomeOK       = "ok"
	OutcomeBarred   = "barred"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics owns a private registry so tests and multiple servers never collide
type Metrics struct {
	registry *prometheus.Registry

	estimates     *prometheus.CounterVec
	estimateValue *prometheus.HistogramVec
	capsApplied   *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	shareDecodes  *prometheus.CounterVec
	narratives    *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	rateLimited   prometheus.Counter
}

// New creates and registers every collector
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_total",
			Help:      "Valuations computed, by case type and outcome.",
		}, []string{"case_type", "outcome"}),
		estimateValue: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimate_value_dollars",
			Help:      "Distribution of point estimates.",
			Buckets:   prometheus.ExponentialBuckets(1000, 4, 10),
		}, []string{"case_type"}),
		capsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "caps_applied_total",
			Help:      "Damage caps that bound a valuation, by target.",
		}, []string{"target"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Estimate cache lookups by result.",
		}, []string{"result"}),
		shareDecodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "share_decodes_total",
			Help:      "Share tokens decoded, by result.",
		}, []string{"result"}),
		narratives: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narratives_total",
			Help:      "LLM narrative attempts by provider and result.",
		}, []string{"provider", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
		m.estimates, m.estimateValue, m.capsApplied, m.cacheLookups,
		m.shareDecodes, m.narratives, m.httpRequests, m.httpDuration, m.rateLimited,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveEstimate records a completed valuation
func (m *Metrics) ObserveEstimate(ct model.CaseType, result model.ValuationResult) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if result.Barred() {
		outcome = OutcomeBarred
	}
	m.estimates.WithLabelValues(string(ct), outcome).Inc()
	m.estimateValue.WithLabelValues(string(ct)).Observe(result.Value)
	for _, c := range result.CapsApplied {
		m.capsApplied.WithLabelValues(string(c.Target)).Inc()
	}
}

// EstimateFailed records a valuation that returned an error
func (m *Metrics) EstimateFailed(ct model.CaseType, outcome string) {
	if m == nil {
		return
	}
	m.estimates.WithLabelValues(string(ct), outcome).Inc()
}

// CacheLookup records a cache hit or miss
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ShareDecoded records a token decode: live, expired or malformed
func (m *Metrics) ShareDecoded(result string) {
	if m == nil {
		return
	}
	m.shareDecodes.WithLabelValues(result).Inc()
}

// Narrative records an LLM narrative attempt
func (m *Metrics) Narrative(provider string, err error) {
	if m == nil {
		return
	}
	result := OutcomeOK
	if err != nil {
		result = OutcomeError
	}
	m.narratives.WithLabelValues(provider, result).Inc()
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RateLimited records a rejected request
func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
