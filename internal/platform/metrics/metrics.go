// Package metrics holds the process wide Prometheus collectors
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reviewlens"

// Analysis outcomes
const (
	OutcomeOK        = "ok"
	OutcomeSchema    = "schema_error"
	OutcomeInvalid   = "invalid"
	OutcomeCancelled = "cancelled"
)

var (
	// RowsClassified counts classified reviews by label
	RowsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_classified_total",
			Help:      "Reviews classified, by sentiment and concern",
		},
		[]string{"sentiment", "concern"},
	)

	// Analyses counts pipeline runs by outcome
	Analyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Pipeline runs by outcome",
		},
		[]string{"outcome"},
	)

	// AnalysisDuration is the wall time of complete pipeline runs
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duration of complete pipeline runs",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// AnalysesStored is the number of analyses held by the API store
	AnalysesStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "analyses_stored",
			Help:      "Analyses currently held in memory",
		},
	)

	// RecommendationQueries counts recommendation lookups by ranking basis
	// basis is rating, count or none when the sentinel is returned
	RecommendationQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendation_queries_total",
			Help:      "Recommendation queries by ranking basis",
		},
		[]string{"basis"},
	)

	// HTTPRequests counts API requests by route pattern and status
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration is request latency by route pattern
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// HTTPInFlight is the number of requests being served
	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served",
		},
	)
)

// RecordRow counts one classified review
func RecordRow(sentiment, concern string) {
	RowsClassified.WithLabelValues(sentiment, concern).Inc()
}

// RecordAnalysis counts a pipeline run; duration is observed for successful runs only
func RecordAnalysis(outcome string, d time.Duration) {
	Analyses.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		AnalysisDuration.Observe(d.Seconds())
	}
}

// RecordRecommendation counts one recommendation query
func RecordRecommendation(basis string) {
	RecommendationQueries.WithLabelValues(basis).Inc()
}

// RecordHTTP counts one finished request
func RecordHTTP(method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// TrackInFlight moves the in flight gauge
func TrackInFlight(inc bool) {
	if inc {
		HTTPInFlight.Inc()
		return
	}
	HTTPInFlight.Dec()
}

// Handler serves the default registry in the Prometheus exposition format
func Handler() http.Handler { return promhttp.Handler() }
