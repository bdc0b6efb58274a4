// Package metrics exposes Prometheus instrumentation for the Twitter client and the reports.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	tweetie "github.com/anatolykoptev/go-tweetie"
)

// API call outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeRateLimited = "rate_limited"
	OutcomeError       = "error"
)

// Metrics owns a registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	// APIRequests counts Twitter API calls by operation and outcome.
	APIRequests *prometheus.CounterVec

	// ReportDuration tracks end-to-end report latency by report and status.
	ReportDuration *prometheus.HistogramVec

	// PostsScoredTotal counts posts run through the sentiment scorer.
	PostsScoredTotal prometheus.Counter
}

// New creates a registry with Go runtime and process collectors plus the application metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		APIRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tweetie_api_requests_total",
				Help: "Twitter API requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		ReportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tweetie_report_duration_seconds",
				Help:    "Report generation duration in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"report", "status"},
		),
		PostsScoredTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tweetie_posts_scored_total",
				Help: "Posts scored for sentiment",
			},
		),
	}
	reg.MustRegister(m.APIRequests, m.ReportDuration, m.PostsScoredTotal)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// APICall matches tweetie.ClientConfig.MetricsHook.
func (m *Metrics) APICall(endpoint string, success, rateLimited bool) {
	outcome := OutcomeError
	switch {
	case success:
		outcome = OutcomeSuccess
	case rateLimited:
		outcome = OutcomeRateLimited
	}
	m.APIRequests.WithLabelValues(endpoint, outcome).Inc()
}

// ObserveReport records how long a report took and how it ended.
func (m *Metrics) ObserveReport(report string, d time.Duration, err error) {
	m.ReportDuration.WithLabelValues(report, reportStatus(err)).Observe(d.Seconds())
}

// PostsScored adds n scored posts.
func (m *Metrics) PostsScored(n int) {
	m.PostsScoredTotal.Add(float64(n))
}

func reportStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, tweetie.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, tweetie.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, tweetie.ErrAuth):
		return "auth"
	default:
		return "error"
	}
}
