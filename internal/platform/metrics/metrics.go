package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resolution outcomes recorded by IncResolution.
const (
	OutcomeOK        = "ok"
	OutcomeNetwork   = "network_error"
	OutcomeCache     = "cache_error"
	OutcomeMalformed = "malformed_document"
	OutcomeExhausted = "no_record"
	OutcomeEmpty     = "empty_endpoint"
	OutcomeInvalid   = "invalid_request"
	OutcomeOther     = "error"
)

// Metrics holds Prometheus counters for the resolver.
type Metrics struct {
	registry       *prometheus.Registry
	requestsTotal  prometheus.Counter
	errorsTotal    prometheus.Counter
	resolutions    *prometheus.CounterVec
	cacheRefreshes *prometheus.CounterVec
}

// New creates and registers Prometheus metrics for the resolver.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "radiru_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "radiru_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "radiru_resolutions_total",
		Help: "Endpoint resolutions by outcome",
	}, []string{"outcome"})
	cacheRefreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "radiru_cache_refreshes_total",
		Help: "Config document refetches by reason (missing, stale, forced)",
	}, []string{"reason"})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		resolutions,
		cacheRefreshes,
	)

	return &Metrics{
		registry:       registry,
		requestsTotal:  requestsTotal,
		errorsTotal:    errorsTotal,
		resolutions:    resolutions,
		cacheRefreshes: cacheRefreshes,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncResolution counts one resolution with the given outcome.
func (m *Metrics) IncResolution(outcome string) {
	m.resolutions.WithLabelValues(outcome).Inc()
}

// IncCacheRefresh counts one config document refetch.
func (m *Metrics) IncCacheRefresh(reason string) {
	m.cacheRefreshes.WithLabelValues(reason).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
