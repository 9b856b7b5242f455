package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Fetch Metrics
	FetchesTotal  *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	FetchElements *prometheus.HistogramVec

	// Graph Metrics
	GraphNodes        prometheus.Gauge
	GraphLinks        prometheus.Gauge
	DroppedEdgesTotal prometheus.Counter
	ValidationIssues  prometheus.Counter
	GraphLoadsTotal   *prometheus.CounterVec

	// Simulation Metrics
	SimulationTicksTotal    prometheus.Counter
	SimulationRestartsTotal prometheus.Counter
	SimulationAlpha         prometheus.Gauge
	SimulationGeneration    prometheus.Gauge
	SimulationSettleTicks   prometheus.Histogram
	StaleFramesTotal        prometheus.Counter

	// Interaction Metrics
	InteractionCommandsTotal *prometheus.CounterVec
	PinnedNodes              prometheus.Gauge

	// Render Metrics
	FramesRenderedTotal  prometheus.Counter
	FrameRenderDuration  prometheus.Histogram
	FramesPublishedTotal *prometheus.CounterVec

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initFetchMetrics()
	r.initGraphMetrics()
	r.initSimulationMetrics()
	r.initInteractionMetrics()
	r.initRenderMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
