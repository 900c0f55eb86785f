// Package metrics exposes Prometheus instrumentation for the HTTP server,
// the assessment pipeline and catalog queries.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/assessgen/internal/catalog"
)

const namespace = "assessgen"

// Metrics holds every collector. Create one per registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	Assessments   *prometheus.CounterVec
	Selected      prometheus.Histogram
	CatalogCalls  *prometheus.CounterVec
	CatalogTiming *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry, alongside the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		Assessments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Assessments generated by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		Selected: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "selected_problems",
			Help:      "Number of problems selected per assessment.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10, 15, 20},
		}),
		CatalogCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "queries_total",
			Help:      "Catalog topic queries by outcome.",
		}, []string{"outcome"}),
		CatalogTiming: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "query_duration_seconds",
			Help:      "Catalog topic query latency.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"outcome"}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAssessment records one pipeline run.
func (m *Metrics) ObserveAssessment(strategy string, selected int, err error) {
	if err != nil {
		m.Assessments.WithLabelValues(strategy, outcome(err)).Inc()
		return
	}
	m.Assessments.WithLabelValues(strategy, "ok").Inc()
	m.Selected.Observe(float64(selected))
}

// WrapQuerier instruments every ListByTopic call on q.
func (m *Metrics) WrapQuerier(q catalog.Querier) catalog.Querier {
	return &instrumentedQuerier{inner: q, m: m}
}

type instrumentedQuerier struct {
	inner catalog.Querier
	m     *Metrics
}

func (q *instrumentedQuerier) ListByTopic(ctx context.Context, topic string, difficulty int) ([]catalog.Problem, error) {
	start := time.Now()
	problems, err := q.inner.ListByTopic(ctx, topic, difficulty)

	o := outcome(err)
	q.m.CatalogCalls.WithLabelValues(o).Inc()
	q.m.CatalogTiming.WithLabelValues(o).Observe(time.Since(start).Seconds())
	return problems, err
}

func outcome(err error) string {
	var unavailable *catalog.UnavailableError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.As(err, &unavailable):
		return "unavailable"
	}
	return "error"
}
