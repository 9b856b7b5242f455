package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimulationMetrics() {
	r.SimulationTicksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "convograph_simulation_ticks_total",
			Help: "Simulation ticks applied",
		},
	)

	r.SimulationRestartsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "convograph_simulation_restarts_total",
			Help: "Times an interaction reheated a settled simulation",
		},
	)

	r.SimulationAlpha = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "convograph_simulation_alpha",
			Help: "Current simulation alpha",
		},
	)

	r.SimulationGeneration = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "convograph_simulation_generation",
			Help: "Generation of the live simulation",
		},
	)

	r.SimulationSettleTicks = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "convograph_simulation_settle_ticks",
			Help:    "Ticks taken by a simulation to cool below alphaMin",
			Buckets: prometheus.LinearBuckets(50, 50, 10),
		},
	)

	r.StaleFramesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "convograph_stale_frames_total",
			Help: "Frames discarded because their simulation was replaced",
		},
	)
}

func (r *Registry) initInteractionMetrics() {
	r.InteractionCommandsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "convograph_interaction_commands_total",
			Help: "Interaction commands reduced",
		},
		[]string{"command"},
	)

	r.PinnedNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "convograph_pinned_nodes",
			Help: "Nodes currently pinned",
		},
	)
}

func (r *Registry) initRenderMetrics() {
	r.FramesRenderedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "convograph_frames_rendered_total",
			Help: "Frames synced to the scene",
		},
	)

	r.FrameRenderDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "convograph_frame_render_duration_seconds",
			Help:    "Time to rasterize one frame",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		},
	)

	r.FramesPublishedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "convograph_frames_published_total",
			Help: "Frames sent on the publish socket",
		},
		[]string{"status"},
	)
}
