package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Input Metrics
	ArticlesLoaded     prometheus.Gauge
	InvalidValuesTotal *prometheus.CounterVec
	ArticlesSkipped    *prometheus.GaugeVec

	// Graph Metrics
	GraphAuthors        prometheus.Gauge
	GraphCollaborations prometheus.Gauge
	GraphCommunities    prometheus.Gauge
	GraphModularity     prometheus.Gauge
	GraphComponents     prometheus.Gauge
	GraphTriangles      prometheus.Gauge

	// Pipeline Metrics
	StageDuration      *prometheus.HistogramVec
	StagesTotal        *prometheus.CounterVec
	ArtifactsTotal     *prometheus.CounterVec
	ArtifactBytesTotal *prometheus.CounterVec
	LastRunTimestamp   prometheus.Gauge
	LastRunSuccess     prometheus.Gauge

	// Query Metrics
	QueriesTotal  *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	started  time.Time
	registry *prometheus.Registry
	mu       sync.Mutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		started:  time.Now(),
		registry: reg,
	}

	r.initInputMetrics()
	r.initGraphMetrics()
	r.initPipelineMetrics()
	r.initQueryMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
