package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initFetchMetrics() {
	r.FetchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "convograph_fetches_total",
			Help: "Total number of graph fetches",
		},
		[]string{"source", "status"},
	)

	r.FetchDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "convograph_fetch_duration_seconds",
			Help:    "Graph fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	r.FetchElements = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "convograph_fetch_elements",
			Help:    "Nodes plus edges in fetched graph documents",
			Buckets: prometheus.ExponentialBuckets(4, 4, 8),
		},
		[]string{"source"},
	)
}

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "convograph_graph_nodes",
			Help: "Nodes in the current simulation",
		},
	)

	r.GraphLinks = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "convograph_graph_links",
			Help: "Materialized links in the current simulation",
		},
	)

	r.DroppedEdgesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "convograph_dropped_edges_total",
			Help: "Edges dropped because an endpoint was unknown",
		},
	)

	r.ValidationIssues = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "convograph_validation_issues_total",
			Help: "Advisory validation issues found in loaded graphs",
		},
	)

	r.GraphLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "convograph_graph_loads_total",
			Help: "Graph loads by outcome",
		},
		[]string{"status"},
	)
}
