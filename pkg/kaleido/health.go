package kaleido

import (
	"fmt"
	"sort"
	"time"
)

// HealthStatus is the health of the instance or one of its components.
type HealthStatus string

const (
	// HealthOK indicates normal operation.
	HealthOK HealthStatus = "ok"
	// HealthDegraded indicates the instance works but something needs a look.
	HealthDegraded HealthStatus = "degraded"
	// HealthUnhealthy indicates the instance is not drawing.
	HealthUnhealthy HealthStatus = "unhealthy"
)

// HealthCheck is the result of App.Health. Components are keyed by
// "instance", "canvas" and "errors".
type HealthCheck struct {
	Status     HealthStatus
	Timestamp  time.Time
	Uptime     time.Duration // zero when not running
	Components map[string]ComponentHealth
	Message    string
}

// ComponentHealth is the health of one component.
type ComponentHealth struct {
	Status      HealthStatus
	Message     string
	LastUpdated time.Time
}

// IsHealthy returns true if the overall status is HealthOK.
func (h HealthCheck) IsHealthy() bool { return h.Status == HealthOK }

// IsDegraded returns true if the overall status is HealthDegraded.
func (h HealthCheck) IsDegraded() bool { return h.Status == HealthDegraded }

// IsUnhealthy returns true if the overall status is HealthUnhealthy.
func (h HealthCheck) IsUnhealthy() bool { return h.Status == HealthUnhealthy }

// Failing returns the sorted names of components that are not HealthOK.
func (h HealthCheck) Failing() []string {
	var names []string
	for name, c := range h.Components {
		if c.Status != HealthOK {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Health reports the instance, the canvas of the most recent window or
// replay, and the last error.
func (a *appImpl) Health() HealthCheck {
	now := time.Now()
	running := a.running.Load()
	component := func(s HealthStatus, msg string) ComponentHealth {
		return ComponentHealth{Status: s, Message: msg, LastUpdated: now}
	}

	var uptime time.Duration
	a.mu.RLock()
	if running && !a.startTime.IsZero() {
		uptime = now.Sub(a.startTime)
	}
	a.mu.RUnlock()

	components := make(map[string]ComponentHealth, 3)
	if running {
		components["instance"] = component(HealthOK, "Instance is running")
	} else {
		components["instance"] = component(HealthUnhealthy, "Instance is not running")
	}

	snap := a.metrics.Snapshot()
	switch {
	case snap.CanvasWidth > 0 && snap.CanvasHeight > 0:
		components["canvas"] = component(HealthOK,
			fmt.Sprintf("Canvas %dx%d, %d strokes", snap.CanvasWidth, snap.CanvasHeight, snap.Strokes))
	case running:
		// Headless runs and windows that are not laid out yet have no canvas.
		components["canvas"] = component(HealthDegraded, "Canvas not mounted")
	default:
		components["canvas"] = component(HealthUnhealthy, "Canvas not created")
	}

	lastErr := a.getError()
	if lastErr != nil {
		components["errors"] = component(HealthDegraded, lastErr.Error())
	} else {
		components["errors"] = component(HealthOK, "No recent errors")
	}

	check := HealthCheck{
		Status:     HealthOK,
		Timestamp:  now,
		Uptime:     uptime,
		Components: components,
		Message:    "All components healthy",
	}
	switch {
	case !running:
		check.Status = HealthUnhealthy
		check.Message = "Instance is not running"
	case lastErr != nil:
		check.Status = HealthDegraded
		check.Message = "Running with recent errors"
	}
	return check
}
