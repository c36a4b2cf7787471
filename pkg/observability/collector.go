package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics exposed by the local server
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	DefinitionChanges *prometheus.CounterVec
	JobRuns           *prometheus.CounterVec
	JobDuration       *prometheus.HistogramVec
}

// NewCollector creates a collector with its own registry, so several
// collectors can coexist in one process.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		DefinitionChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "definition_changes_total",
				Help:      "Definitions created, updated and deleted",
			},
			[]string{"change"},
		),
		JobRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "job_runs_total",
				Help:      "Scheduled job executions",
			},
			[]string{"job", "status"},
		),
		JobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "job_duration_seconds",
				Help:      "Scheduled job duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"job"},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.DefinitionChanges,
		c.JobRuns,
		c.JobDuration,
	)

	return c
}

// RecordHTTPRequest records one served request
func (c *Collector) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordJobExecution records one scheduled job run
func (c *Collector) RecordJobExecution(_ context.Context, job string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	c.JobRuns.WithLabelValues(job, status).Inc()
	c.JobDuration.WithLabelValues(job).Observe(duration.Seconds())
}

// RecordDefinitionChange counts a create, update or delete
func (c *Collector) RecordDefinitionChange(_ context.Context, change string) {
	c.DefinitionChanges.WithLabelValues(change).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
