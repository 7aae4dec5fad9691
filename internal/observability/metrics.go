// Package observability holds the Prometheus metrics and logger construction
// shared by the server and CLI.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueryDuration measures end-to-end query execution latency per operation.
	// Labels: operation (search_entities, get_connections, ...), status
	// (success, error)
	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "offshoreleaks",
		Subsystem: "query",
		Name:      "duration_seconds",
		Help:      "Query execution latency in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
	}, []string{"operation", "status"})

	// QueriesTotal counts query executions per operation and outcome.
	// Labels: operation, status
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "offshoreleaks",
		Subsystem: "query",
		Name:      "total",
		Help:      "Total query executions by operation and status",
	}, []string{"operation", "status"})

	// RetriesTotal counts retry attempts after the first, per error kind.
	// Labels: kind (database_connection, query_timeout, ...)
	RetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "offshoreleaks",
		Subsystem: "resilience",
		Name:      "retries_total",
		Help:      "Total retry attempts by error kind",
	}, []string{"kind"})

	// BreakerState exposes circuit breaker state per breaker.
	// 0 closed, 1 half_open, 2 open.
	BreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "offshoreleaks",
		Subsystem: "resilience",
		Name:      "breaker_state",
		Help:      "Circuit breaker state (0 closed, 1 half_open, 2 open)",
	}, []string{"breaker"})

	// ErrorsTotal counts classified errors per kind.
	// Labels: kind
	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "offshoreleaks",
		Subsystem: "resilience",
		Name:      "errors_total",
		Help:      "Total classified errors by kind",
	}, []string{"kind"})

	// HTTPRequestDuration measures REST handler latency.
	// Labels: method, route, status (HTTP status code)
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "offshoreleaks",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"method", "route", "status"})
)

// ObserveQuery records one query execution outcome.
func ObserveQuery(operation string, seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	QueryDuration.WithLabelValues(operation, status).Observe(seconds)
	QueriesTotal.WithLabelValues(operation, status).Inc()
}
