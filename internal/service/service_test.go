package service

import (
	"context"
	"testing"

	"irrigation_panel/internal/models"
	"irrigation_panel/internal/repository"
)

func newTestRepos() (*repository.Repository, *memConfigRepo, *memHistoryRepo) {
	cfg := &memConfigRepo{}
	hist := &memHistoryRepo{}
	return &repository.Repository{ConfigRepo: cfg, HistoryRepo: hist}, cfg, hist
}

func TestService_InitSimulation(t *testing.T) {
	repos, cfgRepo, _ := newTestRepos()
	cfgRepo.cfg = &models.Config{DeviceHost: "10.0.0.5", DevicePort: 8080, Simulation: true, Notifications: true}

	svc := NewService(repos, Options{})
	svc.Init(context.Background())

	snap := svc.Snapshot()
	if !snap.Connected || !snap.Simulation {
		t.Fatalf("snapshot=%+v", snap)
	}
	if snap.DeviceHost != "10.0.0.5" || snap.DevicePort != 8080 {
		t.Fatalf("endpoint=%s:%d", snap.DeviceHost, snap.DevicePort)
	}
	if snap.Duration != DefaultDuration {
		t.Fatalf("duration=%d", snap.Duration)
	}
	entries := svc.Entries()
	if len(entries) == 0 || entries[0].Message != "Application initialized" {
		t.Fatalf("entries=%+v", entries)
	}
	if snap.UnreadLogs != len(entries) {
		t.Fatalf("unread=%d, entries=%d", snap.UnreadLogs, len(entries))
	}
}

func TestService_InitSkipsSyncWhenUnreachable(t *testing.T) {
	h := newHarness(t, false)
	h.dev.statusErr = context.DeadlineExceeded
	svc := &Service{
		Connectivity: h.conn,
		Motor:        h.motor,
		Schedules:    h.schedules,
		Settings:     h.settings,
		History:      h.history,
		EventLog:     h.journal,
		Monitoring:   NewMonitoringService(h.state, h.journal),
		journal:      h.journal,
	}

	svc.Init(context.Background())

	if calls := h.dev.Calls(); len(calls) != 1 || calls[0] != "status" {
		t.Fatalf("calls=%v", calls)
	}
	if svc.Snapshot().Connected {
		t.Fatalf("connected after failed check")
	}
}

func TestService_InitSyncsDevice(t *testing.T) {
	h := newHarness(t, false)
	h.dev.motorOn = true
	h.dev.duration = 90
	h.dev.schedules = []models.Schedule{{ID: 4, Time: "05:30", Days: []int{1}, Enabled: true}}
	svc := &Service{
		Connectivity: h.conn,
		Motor:        h.motor,
		Schedules:    h.schedules,
		Settings:     h.settings,
		History:      h.history,
		EventLog:     h.journal,
		Monitoring:   NewMonitoringService(h.state, h.journal),
		journal:      h.journal,
	}

	svc.Init(context.Background())

	snap := svc.Snapshot()
	if !snap.Connected || !snap.MotorOn || snap.Duration != 90 || len(snap.Schedules) != 1 {
		t.Fatalf("snapshot=%+v", snap)
	}
}
