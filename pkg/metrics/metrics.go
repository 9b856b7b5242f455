package metrics

import (
	"runtime"
	"time"
)

// RecordFetch records one graph fetch
func (r *Registry) RecordFetch(source, status string, duration time.Duration, size int) {
	r.FetchesTotal.WithLabelValues(source, status).Inc()
	r.FetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if size > 0 {
		r.FetchElements.WithLabelValues(source).Observe(float64(size))
	}
}

// RecordGraphLoad records a successful load into a new simulation
func (r *Registry) RecordGraphLoad(nodes, links, dropped, issues int, generation uint64) {
	r.GraphLoadsTotal.WithLabelValues("success").Inc()
	r.GraphNodes.Set(float64(nodes))
	r.GraphLinks.Set(float64(links))
	r.DroppedEdgesTotal.Add(float64(dropped))
	r.ValidationIssues.Add(float64(issues))
	r.SimulationGeneration.Set(float64(generation))
}

// RecordGraphLoadError records a failed load
func (r *Registry) RecordGraphLoadError() {
	r.GraphLoadsTotal.WithLabelValues("error").Inc()
}

// RecordTicks records applied ticks and the resulting alpha
func (r *Registry) RecordTicks(n int, alpha float64) {
	r.SimulationTicksTotal.Add(float64(n))
	r.SimulationAlpha.Set(alpha)
}

// RecordSettled records the tick count at which a simulation cooled down
func (r *Registry) RecordSettled(ticks int) {
	r.SimulationSettleTicks.Observe(float64(ticks))
}

// RecordRestart records a reheat of a stopped simulation
func (r *Registry) RecordRestart() {
	r.SimulationRestartsTotal.Inc()
}

// RecordStaleFrame records a frame dropped for a superseded simulation
func (r *Registry) RecordStaleFrame() {
	r.StaleFramesTotal.Inc()
}

// RecordCommand records one reduced interaction command
func (r *Registry) RecordCommand(name string, pinned int) {
	r.InteractionCommandsTotal.WithLabelValues(name).Inc()
	r.PinnedNodes.Set(float64(pinned))
}

// RecordFrame records one rendered frame
func (r *Registry) RecordFrame(duration time.Duration) {
	r.FramesRenderedTotal.Inc()
	r.FrameRenderDuration.Observe(duration.Seconds())
}

// RecordPublish records one publish attempt
func (r *Registry) RecordPublish(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.FramesPublishedTotal.WithLabelValues(status).Inc()
}

// UpdateSystemMetrics refreshes uptime and Go runtime gauges
func (r *Registry) UpdateSystemMetrics(start time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UptimeSeconds.Set(time.Since(start).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}
