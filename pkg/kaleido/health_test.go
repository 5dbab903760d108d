package kaleido

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestHealthCheckPredicates(t *testing.T) {
	tests := []struct {
		status                      HealthStatus
		healthy, degraded, unhealthy bool
	}{
		{HealthOK, true, false, false},
		{HealthDegraded, false, true, false},
		{HealthUnhealthy, false, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			h := HealthCheck{Status: tt.status}
			if h.IsHealthy() != tt.healthy || h.IsDegraded() != tt.degraded || h.IsUnhealthy() != tt.unhealthy {
				t.Errorf("predicates for %s = %v/%v/%v", tt.status, h.IsHealthy(), h.IsDegraded(), h.IsUnhealthy())
			}
		})
	}
}

func TestHealthCheckFailing(t *testing.T) {
	h := HealthCheck{Components: map[string]ComponentHealth{
		"instance": {Status: HealthOK},
		"errors":   {Status: HealthDegraded},
		"canvas":   {Status: HealthUnhealthy},
	}}
	if got, want := h.Failing(), []string{"canvas", "errors"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Failing() = %v, want %v", got, want)
	}
	if got := (HealthCheck{}).Failing(); got != nil {
		t.Errorf("Failing() on empty check = %v, want nil", got)
	}
}

func TestHealthStopped(t *testing.T) {
	app, err := NewDefault(headlessOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	h := app.Health()
	if !h.IsUnhealthy() {
		t.Errorf("status = %s, want unhealthy", h.Status)
	}
	if h.Uptime != 0 {
		t.Errorf("Uptime = %v, want 0", h.Uptime)
	}
	if h.Components["canvas"].Status != HealthUnhealthy {
		t.Errorf("canvas = %+v", h.Components["canvas"])
	}
}

func TestHealthCanvasAfterReplay(t *testing.T) {
	app, err := NewDefault(headlessOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Replay(context.Background(), strings.NewReader("resize 30 20\n")); err != nil {
		t.Fatal(err)
	}
	c := app.Health().Components["canvas"]
	if c.Status != HealthOK || !strings.Contains(c.Message, "30x20") {
		t.Errorf("canvas = %+v", c)
	}
}

func TestHealthLastError(t *testing.T) {
	app, err := NewDefault(headlessOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	impl := app.(*appImpl)
	impl.notifyError(errors.New("disk full"))

	c := app.Health().Components["errors"]
	if c.Status != HealthDegraded || c.Message != "disk full" {
		t.Errorf("errors component = %+v", c)
	}
}
