// Package metrics exposes Prometheus collectors for alerts, sweeps and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

const namespace = "budget"

// Recorder owns the application collectors and the registry they live in.
type Recorder struct {
	registry *prometheus.Registry

	alertsCreated   *prometheus.CounterVec
	alertsResolved  *prometheus.CounterVec
	sweepRuns       *prometheus.CounterVec
	sweepFailures   *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRecorder registers every collector on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		alertsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_created_total",
			Help:      "Alerts created, by alert type.",
		}, []string{"type"}),
		alertsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_resolved_total",
			Help:      "Unread alerts automatically marked read, by alert type.",
		}, []string{"type"}),
		sweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_runs_total",
			Help:      "Scheduled sweep executions, by sweep and outcome.",
		}, []string{"sweep", "outcome"}),
		sweepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_entity_failures_total",
			Help:      "Entities that failed evaluation during a sweep.",
		}, []string{"sweep"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.alertsCreated,
		r.alertsResolved,
		r.sweepRuns,
		r.sweepFailures,
		r.httpRequests,
		r.requestDuration,
	)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// AlertCreated counts a newly created alert.
func (r *Recorder) AlertCreated(alertType entity.AlertType) {
	r.alertsCreated.WithLabelValues(string(alertType)).Inc()
}

// AlertResolved counts an alert that was auto-resolved.
func (r *Recorder) AlertResolved(alertType entity.AlertType) {
	r.alertsResolved.WithLabelValues(string(alertType)).Inc()
}

// SweepEntityFailed counts a single entity failure inside a sweep.
func (r *Recorder) SweepEntityFailed(sweep string) {
	r.sweepFailures.WithLabelValues(sweep).Inc()
}

// SweepRun counts a finished sweep.
func (r *Recorder) SweepRun(sweep, outcome string) {
	r.sweepRuns.WithLabelValues(sweep, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Middleware records request count and latency labelled by the matched route
// template, so path parameters do not explode cardinality.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		r.httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		r.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
