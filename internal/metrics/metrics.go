// Package metrics exports pipeline and HTTP API metrics to Prometheus.
//
// A [Metrics] value owns its own registry, so several instances (one per
// test, say) never collide on collector registration. Register it with the
// observability package at startup and mount [Metrics.Handler] at /metrics:
//
//	m := metrics.New()
//	observability.SetPipelineHooks(m.Pipeline())
//	observability.SetHTTPHooks(m.HTTP())
//	r.Handle("/metrics", m.Handler())
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/epicroadmap/pkg/observability"
)

const namespace = "epicroadmap"

var sizeBuckets = prometheus.ExponentialBuckets(1, 4, 8)

// Metrics holds the collectors and the registry they are registered with.
type Metrics struct {
	registry *prometheus.Registry

	stageRuns     *prometheus.CounterVec
	stageErrors   *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	treeNodes     *prometheus.HistogramVec
	excludedLinks prometheus.Counter
	prunedNodes   prometheus.Counter

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry, including the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stageRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_runs_total",
			Help:      "Pipeline stage executions.",
		}, []string{"stage"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_errors_total",
			Help:      "Pipeline stage failures.",
		}, []string{"stage"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"stage"}),
		treeNodes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "tree_nodes",
			Help:      "Work items in the tree produced by a stage.",
			Buckets:   sizeBuckets,
		}, []string{"stage"}),
		excludedLinks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "excluded_links_total",
			Help:      "Links dropped because an endpoint was out of scope.",
		}),
		prunedNodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "pruned_nodes_total",
			Help:      "Work items dropped by normalization.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.stageRuns, m.stageErrors, m.stageDuration, m.treeNodes,
		m.excludedLinks, m.prunedNodes,
		m.requests, m.requestDuration,
	)
	return m
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Pipeline returns m as [observability.PipelineHooks].
func (m *Metrics) Pipeline() observability.PipelineHooks { return pipelineHooks{m} }

// HTTP returns m as [observability.HTTPHooks].
func (m *Metrics) HTTP() observability.HTTPHooks { return httpHooks{m} }

// =============================================================================
// Pipeline Hooks
// =============================================================================

type pipelineHooks struct{ m *Metrics }

func (h pipelineHooks) OnBuildStart(context.Context, int) {
	h.m.stageRuns.WithLabelValues("build").Inc()
}

func (h pipelineHooks) OnBuildComplete(_ context.Context, nodes, excluded int, d time.Duration) {
	h.m.stageDuration.WithLabelValues("build").Observe(d.Seconds())
	h.m.treeNodes.WithLabelValues("build").Observe(float64(nodes))
	h.m.excludedLinks.Add(float64(excluded))
}

func (h pipelineHooks) OnNormalizeStart(context.Context, int) {
	h.m.stageRuns.WithLabelValues("normalize").Inc()
}

func (h pipelineHooks) OnNormalizeComplete(_ context.Context, nodes, pruned int, d time.Duration, err error) {
	h.m.stageDuration.WithLabelValues("normalize").Observe(d.Seconds())
	if err != nil {
		h.m.stageErrors.WithLabelValues("normalize").Inc()
		return
	}
	h.m.treeNodes.WithLabelValues("normalize").Observe(float64(nodes))
	h.m.prunedNodes.Add(float64(pruned))
}

// =============================================================================
// HTTP Hooks
// =============================================================================

type httpHooks struct{ m *Metrics }

func (httpHooks) OnRequest(context.Context, string, string) {}

func (h httpHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
