package handlers

import (
	"context"
	"time"

	"irrigation_panel/internal/models"
	"irrigation_panel/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockConnectivity struct {
	connected bool
	checks    int
}

func (m *mockConnectivity) Check(ctx context.Context) bool {
	m.checks++
	return m.connected
}
func (m *mockConnectivity) Run(ctx context.Context, interval time.Duration) {}

type mockMotor struct {
	on          bool
	toggleErr   error
	toggleCalls int
	duration    int
	durationErr error
	lastSet     int
}

func (m *mockMotor) IsOn() bool { return m.on }
func (m *mockMotor) Toggle(ctx context.Context) (bool, error) {
	m.toggleCalls++
	if m.toggleErr != nil {
		return m.on, m.toggleErr
	}
	m.on = !m.on
	return m.on, nil
}
func (m *mockMotor) TurnOn(ctx context.Context, trigger string) error { return nil }
func (m *mockMotor) Refresh(ctx context.Context) error                { return nil }
func (m *mockMotor) Duration() int                                    { return m.duration }
func (m *mockMotor) LoadDuration(ctx context.Context) (int, error)    { return m.duration, nil }
func (m *mockMotor) SetDuration(ctx context.Context, seconds int) error {
	m.lastSet = seconds
	if m.durationErr != nil {
		return m.durationErr
	}
	m.duration = seconds
	return nil
}

type mockSchedules struct {
	list      []models.Schedule
	err       error
	lastID    int64
	lastInput models.ScheduleInput
	deleted   []int64
}

func (m *mockSchedules) List() []models.Schedule           { return m.list }
func (m *mockSchedules) Refresh(ctx context.Context) error { return nil }
func (m *mockSchedules) Save(ctx context.Context, id int64, in models.ScheduleInput) ([]models.Schedule, error) {
	m.lastID = id
	m.lastInput = in
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}
func (m *mockSchedules) Delete(ctx context.Context, id int64) ([]models.Schedule, error) {
	m.deleted = append(m.deleted, id)
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}
func (m *mockSchedules) CheckDue(ctx context.Context, now time.Time) []int64 { return nil }
func (m *mockSchedules) Run(ctx context.Context, interval time.Duration)     {}

type mockSettings struct {
	cfg        models.Config
	err        error
	lastInput  service.SettingsInput
	lastWidget string
}

func (m *mockSettings) Load(ctx context.Context) models.Config { return m.cfg }
func (m *mockSettings) Get() models.Config                     { return m.cfg }
func (m *mockSettings) Save(ctx context.Context, in service.SettingsInput) (models.Config, error) {
	m.lastInput = in
	if m.err != nil {
		return m.cfg, m.err
	}
	m.cfg.DeviceHost = in.DeviceHost
	m.cfg.DevicePort = in.DevicePort
	m.cfg.Simulation = in.Simulation
	return m.cfg, nil
}
func (m *mockSettings) ToggleTheme(ctx context.Context) (models.Config, error) {
	if m.cfg.Theme == models.ThemeDark {
		m.cfg.Theme = models.ThemeLight
	} else {
		m.cfg.Theme = models.ThemeDark
	}
	return m.cfg, m.err
}
func (m *mockSettings) SetWidgetVisibility(ctx context.Context, name string, visible bool) (models.Config, error) {
	m.lastWidget = name
	if m.cfg.WidgetVisibility == nil {
		m.cfg.WidgetVisibility = map[string]bool{}
	}
	m.cfg.WidgetVisibility[name] = visible
	return m.cfg, m.err
}

type mockHistory struct {
	entries  []models.HistoryEntry
	activity []int
}

func (m *mockHistory) Load(ctx context.Context)     {}
func (m *mockHistory) List() []models.HistoryEntry  { return m.entries }
func (m *mockHistory) Activity(now time.Time) []int { return m.activity }
func (m *mockHistory) Record(ctx context.Context, trigger string, duration int) (models.HistoryEntry, error) {
	return models.HistoryEntry{}, nil
}

type mockEventLog struct {
	entries []models.LogEntry
	unread  int
	cleared int
}

func (m *mockEventLog) Entries() []models.LogEntry {
	return append([]models.LogEntry(nil), m.entries...)
}
func (m *mockEventLog) Clear() {
	m.cleared++
	m.entries = []models.LogEntry{{ID: "c", Message: "Logs cleared", Type: models.SeverityInfo}}
	m.unread = 1
}
func (m *mockEventLog) Unread() int { return m.unread }
func (m *mockEventLog) MarkRead()   { m.unread = 0 }

type mockMonitoring struct {
	snapshot models.Snapshot
}

func (m *mockMonitoring) Snapshot() models.Snapshot { return m.snapshot }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
