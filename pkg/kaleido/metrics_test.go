package kaleido

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrementStarts()
	m.IncrementStops()
	m.IncrementConfigReloads()
	m.IncrementStrokes()
	m.IncrementStrokes()
	m.RecordReplication(12)
	m.RecordReplication(12)
	m.IncrementClears()
	m.RecordResize(640, 480)
	m.RecordExport(1024)
	m.IncrementExportErrors()
	m.IncrementErrors()
	m.IncrementEventsEmitted()

	s := m.Snapshot()
	checks := []struct {
		name      string
		got, want int64
	}{
		{"Starts", s.Starts, 1},
		{"Stops", s.Stops, 1},
		{"ConfigReloads", s.ConfigReloads, 1},
		{"Strokes", s.Strokes, 2},
		{"Replications", s.Replications, 2},
		{"Segments", s.Segments, 24},
		{"Clears", s.Clears, 1},
		{"Resizes", s.Resizes, 1},
		{"Exports", s.Exports, 1},
		{"ExportBytes", s.ExportBytes, 1024},
		{"ExportErrors", s.ExportErrors, 1},
		{"ErrorsTotal", s.ErrorsTotal, 1},
		{"EventsEmitted", s.EventsEmitted, 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
	if s.CanvasWidth != 640 || s.CanvasHeight != 480 {
		t.Errorf("canvas gauge = %dx%d, want 640x480", s.CanvasWidth, s.CanvasHeight)
	}
}

func TestMetricsReplayLatency(t *testing.T) {
	m := NewMetrics()
	if got := m.Snapshot().ReplayLatencyAvg; got != 0 {
		t.Errorf("average with no replays = %v, want 0", got)
	}

	m.RecordReplay(10 * time.Millisecond)
	m.RecordReplay(30 * time.Millisecond)

	s := m.Snapshot()
	if s.Replays != 2 {
		t.Errorf("Replays = %d, want 2", s.Replays)
	}
	if s.ReplayLatencyAvg != 20*time.Millisecond {
		t.Errorf("ReplayLatencyAvg = %v, want 20ms", s.ReplayLatencyAvg)
	}
}

func TestMetricsRunningGauge(t *testing.T) {
	m := NewMetrics()
	m.SetRunning(true)
	if !m.Snapshot().Running {
		t.Error("Running = false after SetRunning(true)")
	}
	m.SetRunning(false)
	if m.Snapshot().Running {
		t.Error("Running = true after SetRunning(false)")
	}
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.IncrementStrokes()
	m.RecordResize(10, 10)
	m.RecordReplay(time.Second)
	m.SetRunning(true)

	m.Reset()

	if s := m.Snapshot(); s != (MetricsSnapshot{}) {
		t.Errorf("snapshot after Reset = %+v, want zero", s)
	}
}

func TestMetricsConcurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.IncrementStrokes()
				m.RecordReplication(4)
				_ = m.Snapshot()
			}
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	if s.Strokes != 1000 {
		t.Errorf("Strokes = %d, want 1000", s.Strokes)
	}
	if s.Segments != 4000 {
		t.Errorf("Segments = %d, want 4000", s.Segments)
	}
}

func TestMetricsLogArgs(t *testing.T) {
	m := NewMetrics()
	m.IncrementStrokes()
	args := m.Snapshot().LogArgs()
	if len(args)%2 != 0 {
		t.Fatalf("LogArgs has odd length %d", len(args))
	}
	if args[0] != "strokes" || args[1] != int64(1) {
		t.Errorf("first pair = %v=%v, want strokes=1", args[0], args[1])
	}
}
