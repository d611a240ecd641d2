package service

import (
	"context"
	"testing"
	"time"

	"irrigation_panel/internal/device"
	"irrigation_panel/internal/models"
)

func TestConnectivity_SimulationNeverTouchesNetwork(t *testing.T) {
	h := newHarness(t, true)

	if !h.conn.Check(context.Background()) {
		t.Fatalf("simulation must report connected")
	}
	if !h.state.Connected() {
		t.Fatalf("state not connected")
	}
	if calls := h.dev.Calls(); len(calls) != 0 {
		t.Fatalf("unexpected device calls: %v", calls)
	}
}

func TestConnectivity_Success(t *testing.T) {
	h := newHarness(t, false)

	if !h.conn.Check(context.Background()) {
		t.Fatalf("expected connected")
	}
	if len(h.journal.Entries()) != 0 {
		t.Fatalf("success must not log: %+v", h.journal.Entries())
	}
}

// A check that times out flips connected to disconnected with exactly one error entry.
func TestConnectivity_TimeoutDisconnects(t *testing.T) {
	h := newHarness(t, false)
	h.state.SetConnected(true)
	h.dev.blockStatus = true

	start := time.Now()
	if h.conn.Check(context.Background()) {
		t.Fatalf("expected disconnected")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("check took %v, timeout not applied", elapsed)
	}
	if h.state.Connected() {
		t.Fatalf("state still connected")
	}
	entries := h.journal.Entries()
	if len(entries) != 1 || entries[0].Type != models.SeverityError {
		t.Fatalf("want exactly one error entry, got %+v", entries)
	}
}

func TestConnectivity_EachFailedCheckLogsOnce(t *testing.T) {
	h := newHarness(t, false)
	h.dev.statusErr = device.ErrUnreachable

	h.conn.Check(context.Background())
	h.conn.Check(context.Background())
	if got := countSeverity(h.journal.Entries(), models.SeverityError); got != 2 {
		t.Fatalf("error entries=%d, want 2", got)
	}
}

func TestConnectivity_RunStopsOnCancel(t *testing.T) {
	h := newHarness(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.conn.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for !h.state.Connected() {
		select {
		case <-deadline:
			t.Fatalf("Run never checked")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop")
	}
}

func TestNewConnectivityService_DefaultTimeout(t *testing.T) {
	svc := NewConnectivityService(nil, nil, nil, nil, 0)
	if svc.timeout != DefaultCheckTimeout {
		t.Fatalf("timeout=%v", svc.timeout)
	}
}

// A device unreachable at first is mirrored as soon as a later check reaches it.
func TestConnectivity_ReconnectMirrorsDevice(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.dev.statusErr = device.ErrUnreachable
	h.dev.motorOn = true
	h.dev.duration = 45
	h.dev.schedules = []models.Schedule{{ID: 2, Time: "06:30", Days: []int{0}, Enabled: true}}

	if h.conn.Check(ctx) {
		t.Fatalf("expected disconnected")
	}
	if len(h.schedules.List()) != 0 || h.state.MotorOn() {
		t.Fatalf("mirrored while unreachable")
	}

	h.dev.statusErr = nil
	if !h.conn.Check(ctx) {
		t.Fatalf("expected connected")
	}
	if !h.state.MotorOn() || h.motor.Duration() != 45 || len(h.schedules.List()) != 1 {
		t.Fatalf("not mirrored after reconnect: on=%v duration=%d schedules=%+v",
			h.state.MotorOn(), h.motor.Duration(), h.schedules.List())
	}

	// staying connected does not refetch
	h.conn.Check(ctx)
	n := 0
	for _, c := range h.dev.Calls() {
		if c == "schedules" {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("schedules fetched %d times, want 1", n)
	}
}
