package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smarthomes_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smarthomes_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// Ingestion metrics
	ReadingsIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smarthomes_readings_ingested_total",
			Help: "Total number of sensor readings accepted or rejected",
		},
		[]string{"status"}, // status: accepted, rejected
	)

	// Alert pipeline metrics
	AlertsTriggeredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smarthomes_alerts_triggered_total",
			Help: "Total number of alerts materialized by the evaluation pipeline",
		},
		[]string{"severity"},
	)

	AlertCheckFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "smarthomes_alert_check_failures_total",
			Help: "Evaluation cycles that failed after the reading was committed",
		},
	)

	WeatherCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smarthomes_weather_cache_total",
			Help: "Weather lookups served from cache vs upstream",
		},
		[]string{"source"}, // source: cache, upstream, error
	)
)
