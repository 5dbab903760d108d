package kaleido

import (
	"expvar"
	"sync/atomic"
	"time"
)

// Metrics collects drawing and lifecycle counters. It can publish them
// through Go's expvar package, which serves them at /debug/vars when an
// HTTP server is running.
//
// Thread-safe for concurrent use.
type Metrics struct {
	// Counters
	starts        atomic.Int64
	stops         atomic.Int64
	configReloads atomic.Int64
	strokes       atomic.Int64
	replications  atomic.Int64
	segments      atomic.Int64
	clears        atomic.Int64
	resizes       atomic.Int64
	exports       atomic.Int64
	exportBytes   atomic.Int64
	exportErrors  atomic.Int64
	replays       atomic.Int64
	errorsTotal   atomic.Int64
	eventsEmitted atomic.Int64

	// Latency tracking (stored as nanoseconds)
	replayLatencyNs    atomic.Int64
	replayLatencyCount atomic.Int64

	// Current state gauges
	currentlyRunning atomic.Int32
	canvasWidth      atomic.Int32
	canvasHeight     atomic.Int32

	registered atomic.Bool
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RegisterExpvar registers all metrics with Go's expvar package.
// Safe to call multiple times; subsequent calls are no-ops. expvar names
// are global, so only one Metrics per process should be registered.
func (m *Metrics) RegisterExpvar() {
	if m.registered.Swap(true) {
		return
	}

	counters := map[string]*atomic.Int64{
		"kaleido_starts_total":         &m.starts,
		"kaleido_stops_total":          &m.stops,
		"kaleido_config_reloads_total": &m.configReloads,
		"kaleido_strokes_total":        &m.strokes,
		"kaleido_replications_total":   &m.replications,
		"kaleido_segments_total":       &m.segments,
		"kaleido_clears_total":         &m.clears,
		"kaleido_resizes_total":        &m.resizes,
		"kaleido_exports_total":        &m.exports,
		"kaleido_export_bytes_total":   &m.exportBytes,
		"kaleido_export_errors_total":  &m.exportErrors,
		"kaleido_replays_total":        &m.replays,
		"kaleido_errors_total":         &m.errorsTotal,
		"kaleido_events_emitted_total": &m.eventsEmitted,
	}
	for name, c := range counters {
		expvar.Publish(name, expvar.Func(func() any { return c.Load() }))
	}

	expvar.Publish("kaleido_running", expvar.Func(func() any { return m.currentlyRunning.Load() }))
	expvar.Publish("kaleido_canvas_width", expvar.Func(func() any { return m.canvasWidth.Load() }))
	expvar.Publish("kaleido_canvas_height", expvar.Func(func() any { return m.canvasHeight.Load() }))
	expvar.Publish("kaleido_replay_latency_avg_ms", expvar.Func(func() any {
		return float64(safeDivide(m.replayLatencyNs.Load(), m.replayLatencyCount.Load())) / 1e6
	}))
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Starts:        m.starts.Load(),
		Stops:         m.stops.Load(),
		ConfigReloads: m.configReloads.Load(),
		Strokes:       m.strokes.Load(),
		Replications:  m.replications.Load(),
		Segments:      m.segments.Load(),
		Clears:        m.clears.Load(),
		Resizes:       m.resizes.Load(),
		Exports:       m.exports.Load(),
		ExportBytes:   m.exportBytes.Load(),
		ExportErrors:  m.exportErrors.Load(),
		Replays:       m.replays.Load(),
		ErrorsTotal:   m.errorsTotal.Load(),
		EventsEmitted: m.eventsEmitted.Load(),

		Running:      m.currentlyRunning.Load() > 0,
		CanvasWidth:  int(m.canvasWidth.Load()),
		CanvasHeight: int(m.canvasHeight.Load()),

		ReplayLatencyAvg: safeDivide(m.replayLatencyNs.Load(), m.replayLatencyCount.Load()),
	}
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	// Counters
	Starts        int64
	Stops         int64
	ConfigReloads int64
	Strokes       int64
	Replications  int64
	Segments      int64
	Clears        int64
	Resizes       int64
	Exports       int64
	ExportBytes   int64
	ExportErrors  int64
	Replays       int64
	ErrorsTotal   int64
	EventsEmitted int64

	// Gauges
	Running      bool
	CanvasWidth  int
	CanvasHeight int

	// Latency averages
	ReplayLatencyAvg time.Duration
}

// LogArgs returns the snapshot as slog key-value pairs.
func (s MetricsSnapshot) LogArgs() []any {
	return []any{
		"strokes", s.Strokes,
		"replications", s.Replications,
		"segments", s.Segments,
		"clears", s.Clears,
		"resizes", s.Resizes,
		"exports", s.Exports,
		"export_errors", s.ExportErrors,
		"config_reloads", s.ConfigReloads,
		"replays", s.Replays,
		"errors", s.ErrorsTotal,
	}
}

// IncrementStarts records a start operation.
func (m *Metrics) IncrementStarts() { m.starts.Add(1) }

// IncrementStops records a stop operation.
func (m *Metrics) IncrementStops() { m.stops.Add(1) }

// IncrementConfigReloads records a configuration reload.
func (m *Metrics) IncrementConfigReloads() { m.configReloads.Add(1) }

// IncrementStrokes records the start of a stroke session.
func (m *Metrics) IncrementStrokes() { m.strokes.Add(1) }

// RecordReplication records one replicated draw of n segments.
func (m *Metrics) RecordReplication(n int) {
	m.replications.Add(1)
	m.segments.Add(int64(n))
}

// IncrementClears records a canvas clear.
func (m *Metrics) IncrementClears() { m.clears.Add(1) }

// RecordResize records a canvas resize and updates the size gauges.
func (m *Metrics) RecordResize(width, height int) {
	m.resizes.Add(1)
	m.canvasWidth.Store(int32(width))
	m.canvasHeight.Store(int32(height))
}

// RecordExport records a successful export of n bytes.
func (m *Metrics) RecordExport(n int64) {
	m.exports.Add(1)
	m.exportBytes.Add(n)
}

// IncrementExportErrors records a failed export.
func (m *Metrics) IncrementExportErrors() { m.exportErrors.Add(1) }

// RecordReplay records a finished replay and its duration.
func (m *Metrics) RecordReplay(d time.Duration) {
	m.replays.Add(1)
	m.replayLatencyNs.Add(d.Nanoseconds())
	m.replayLatencyCount.Add(1)
}

// IncrementErrors records an error occurrence.
func (m *Metrics) IncrementErrors() { m.errorsTotal.Add(1) }

// IncrementEventsEmitted records an event emission.
func (m *Metrics) IncrementEventsEmitted() { m.eventsEmitted.Add(1) }

// SetRunning updates the running state gauge.
func (m *Metrics) SetRunning(running bool) {
	if running {
		m.currentlyRunning.Store(1)
	} else {
		m.currentlyRunning.Store(0)
	}
}

// Reset clears all metrics. Useful for testing.
func (m *Metrics) Reset() {
	for _, c := range []*atomic.Int64{
		&m.starts, &m.stops, &m.configReloads, &m.strokes, &m.replications,
		&m.segments, &m.clears, &m.resizes, &m.exports, &m.exportBytes,
		&m.exportErrors, &m.replays, &m.errorsTotal, &m.eventsEmitted,
		&m.replayLatencyNs, &m.replayLatencyCount,
	} {
		c.Store(0)
	}
	m.currentlyRunning.Store(0)
	m.canvasWidth.Store(0)
	m.canvasHeight.Store(0)
}

// safeDivide performs safe division, returning 0 for divide by zero.
func safeDivide(total, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(total / count)
}
