// Package metrics defines the application's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Request Metrics
var (
	// HTTPRequestsTotal tracks HTTP requests by method, route template, and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todoapp_http_requests_total",
			Help: "Total HTTP requests by method, route, and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "todoapp_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)
)

// Authentication Metrics
var (
	// LoginsTotal tracks login attempts by result (success/failure/rate_limited)
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todoapp_logins_total",
			Help: "Total login attempts by result (success/failure/rate_limited)",
		},
		[]string{"result"},
	)

	// RegistrationsTotal tracks registration attempts by result (success/duplicate/invalid)
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todoapp_registrations_total",
			Help: "Total registration attempts by result (success/duplicate/invalid)",
		},
		[]string{"result"},
	)
)

// Task Metrics
var (
	// TasksCreatedTotal tracks tasks created since process start
	TasksCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "todoapp_tasks_created_total",
			Help: "Total tasks created",
		},
	)
)

// Database Metrics
var (
	// DBQueryDuration tracks database query duration by query name
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks database errors by query name
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total database errors by query",
		},
		[]string{"query"},
	)
)

// Build Information Metrics
var (
	// BuildInfo is a gauge that always returns 1, with build metadata as labels
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build information with version, commit, build_time, and go_version labels (value is always 1)",
		},
		[]string{"version", "commit", "build_time", "go_version"},
	)
)

// HTTP Error Metrics
// Note: http_errors_total{type} is provided by internal/errors package
