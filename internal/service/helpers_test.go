package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"irrigation_panel/internal/device"
	"irrigation_panel/internal/models"
	"irrigation_panel/internal/repository"
)

// ---- Test doubles ----

// fakeDevice is a programmable device.API that records every call.
type fakeDevice struct {
	mu sync.Mutex

	statusErr   error
	blockStatus bool
	motorOn     bool
	motorErr    error
	duration    int
	durationErr error
	schedules   []models.Schedule
	scheduleErr error
	nextID      int64

	calls []string
}

func (f *fakeDevice) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeDevice) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeDevice) Status(ctx context.Context) error {
	f.record("status")
	if f.blockStatus {
		<-ctx.Done()
		return fmt.Errorf("%w: %w", device.ErrUnreachable, ctx.Err())
	}
	return f.statusErr
}

func (f *fakeDevice) MotorState(ctx context.Context) (bool, error) {
	f.record("motor_state")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.motorOn, f.motorErr
}

func (f *fakeDevice) MotorOn(ctx context.Context) error  { return f.setMotor("motor_on", true) }
func (f *fakeDevice) MotorOff(ctx context.Context) error { return f.setMotor("motor_off", false) }

func (f *fakeDevice) setMotor(call string, on bool) error {
	f.record(call)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.motorErr != nil {
		return f.motorErr
	}
	f.motorOn = on
	return nil
}

func (f *fakeDevice) Duration(ctx context.Context) (int, error) {
	f.record("duration")
	return f.duration, f.durationErr
}

func (f *fakeDevice) SetDuration(ctx context.Context, seconds int) error {
	f.record("set_duration")
	if f.durationErr != nil {
		return f.durationErr
	}
	f.duration = seconds
	return nil
}

func (f *fakeDevice) Schedules(ctx context.Context) ([]models.Schedule, error) {
	f.record("schedules")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return cloneSchedules(f.schedules), nil
}

func (f *fakeDevice) CreateSchedule(ctx context.Context, in models.ScheduleInput) error {
	f.record("create_schedule")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	f.nextID++
	f.schedules = append(f.schedules, models.Schedule{ID: f.nextID, Time: in.Time, Days: in.Days, Enabled: in.Enabled})
	return nil
}

func (f *fakeDevice) UpdateSchedule(ctx context.Context, id int64, in models.ScheduleInput) error {
	f.record("update_schedule")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	for i := range f.schedules {
		if f.schedules[i].ID == id {
			f.schedules[i] = models.Schedule{ID: id, Time: in.Time, Days: in.Days, Enabled: in.Enabled}
		}
	}
	return nil
}

func (f *fakeDevice) DeleteSchedule(ctx context.Context, id int64) error {
	f.record("delete_schedule")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	out := f.schedules[:0]
	for _, sc := range f.schedules {
		if sc.ID != id {
			out = append(out, sc)
		}
	}
	f.schedules = out
	return nil
}

// memConfigRepo is an in-memory repository.ConfigRepo.
type memConfigRepo struct {
	cfg     *models.Config
	loadErr error
	saveErr error
	saves   int
}

func (m *memConfigRepo) Load(ctx context.Context) (models.Config, error) {
	if m.loadErr != nil {
		return models.Config{}, m.loadErr
	}
	if m.cfg == nil {
		return models.Config{}, repository.ErrNotFound
	}
	return m.cfg.Clone(), nil
}

func (m *memConfigRepo) Save(ctx context.Context, c models.Config) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	cp := c.Clone()
	m.cfg = &cp
	return nil
}

// memHistoryRepo is an in-memory repository.HistoryRepo.
type memHistoryRepo struct {
	entries []models.HistoryEntry
	found   bool
	loadErr error
	saveErr error
	saves   int
}

func (m *memHistoryRepo) Load(ctx context.Context) ([]models.HistoryEntry, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if !m.found {
		return nil, repository.ErrNotFound
	}
	return append([]models.HistoryEntry(nil), m.entries...), nil
}

func (m *memHistoryRepo) Save(ctx context.Context, entries []models.HistoryEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.found = true
	m.entries = append([]models.HistoryEntry(nil), entries...)
	return nil
}

// fakeTimer records an armed auto-off so tests can fire it by hand.
type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// hookedDevice wraps a gateway and lets a test act while MotorOff is in flight.
type hookedDevice struct {
	device.API
	beforeOff func()
	offErr    error
}

func (d *hookedDevice) MotorOff(ctx context.Context) error {
	if f := d.beforeOff; f != nil {
		d.beforeOff = nil
		f()
	}
	if err := d.offErr; err != nil {
		d.offErr = nil
		return err
	}
	return d.API.MotorOff(ctx)
}

// ---- Harness ----

type harness struct {
	dev       *fakeDevice
	sim       *device.Simulator
	state     *State
	journal   *Journal
	notes     *Notifications
	cfgRepo   *memConfigRepo
	histRepo  *memHistoryRepo
	history   *HistoryService
	conn      *ConnectivityService
	motor     *MotorService
	schedules *ScheduleService
	settings  *SettingsService
	timers    []*fakeTimer

	notesMu  sync.Mutex
	notified []models.Notification
}

func newHarness(t *testing.T, simulation bool) *harness {
	t.Helper()
	cfg := models.DefaultConfig()
	cfg.Simulation = simulation

	h := &harness{
		dev:      &fakeDevice{duration: 30},
		sim:      device.NewSimulator(0),
		cfgRepo:  &memConfigRepo{},
		histRepo: &memHistoryRepo{},
	}
	h.state = NewState(cfg, h.sim, func(string, int) device.API { return h.dev })
	h.journal = NewJournal(nil)
	h.notes = NewNotifications(h.state)
	h.notes.Subscribe(NotifierFunc(func(n models.Notification) {
		h.notesMu.Lock()
		h.notified = append(h.notified, n)
		h.notesMu.Unlock()
	}))
	h.history = NewHistoryService(h.histRepo, h.journal, nil, nil)
	h.conn = NewConnectivityService(h.state, h.journal, nil, nil, 50*time.Millisecond)
	h.motor = NewMotorService(h.state, h.journal, h.history, h.notes, nil, nil)
	h.motor.afterFunc = func(d time.Duration, f func()) stopper {
		ft := &fakeTimer{d: d, f: f}
		h.timers = append(h.timers, ft)
		return ft
	}
	h.schedules = NewScheduleService(h.state, h.journal, h.motor, h.notes, nil, nil)
	h.settings = NewSettingsService(h.state, h.cfgRepo, h.journal, h.notes, h.conn, nil, nil)
	wireDeviceSync(h.conn, h.settings, h.motor, h.schedules)
	return h
}

func (h *harness) notifications() []models.Notification {
	h.notesMu.Lock()
	defer h.notesMu.Unlock()
	return append([]models.Notification(nil), h.notified...)
}

func countSeverity(entries []models.LogEntry, severity string) int {
	n := 0
	for _, e := range entries {
		if e.Type == severity {
			n++
		}
	}
	return n
}
