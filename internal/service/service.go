package service

import (
	"context"
	"time"

	"irrigation_panel/internal/device"
	"irrigation_panel/internal/logger"
	"irrigation_panel/internal/metrics"
	"irrigation_panel/internal/models"
	"irrigation_panel/internal/repository"
)

// Connectivity keeps the connection flag in sync with the device.
type Connectivity interface {
	Check(ctx context.Context) bool
	Run(ctx context.Context, interval time.Duration)
}

// Motor exposes the pump/valve control and its run duration.
type Motor interface {
	IsOn() bool
	Toggle(ctx context.Context) (bool, error)
	TurnOn(ctx context.Context, trigger string) error
	Refresh(ctx context.Context) error
	Duration() int
	LoadDuration(ctx context.Context) (int, error)
	SetDuration(ctx context.Context, seconds int) error
}

// Schedules manages irrigation schedules and fires them on time.
type Schedules interface {
	List() []models.Schedule
	Refresh(ctx context.Context) error
	Save(ctx context.Context, id int64, in models.ScheduleInput) ([]models.Schedule, error)
	Delete(ctx context.Context, id int64) ([]models.Schedule, error)
	CheckDue(ctx context.Context, now time.Time) []int64
	Run(ctx context.Context, interval time.Duration)
}

// Settings owns the persisted user configuration.
type Settings interface {
	Load(ctx context.Context) models.Config
	Get() models.Config
	Save(ctx context.Context, in SettingsInput) (models.Config, error)
	ToggleTheme(ctx context.Context) (models.Config, error)
	SetWidgetVisibility(ctx context.Context, name string, visible bool) (models.Config, error)
}

// History is the bounded, persisted list of irrigation runs.
type History interface {
	Load(ctx context.Context)
	List() []models.HistoryEntry
	Record(ctx context.Context, trigger string, duration int) (models.HistoryEntry, error)
	Activity(now time.Time) []int
}

// EventLog is the in-session activity log.
type EventLog interface {
	Entries() []models.LogEntry
	Clear()
	Unread() int
	MarkRead()
}

// Monitoring exposes the read model pushed to clients.
type Monitoring interface {
	Snapshot() models.Snapshot
}

// Service aggregates all sub-services around one shared State.
type Service struct {
	Connectivity
	Motor
	Schedules
	Settings
	History
	EventLog
	Monitoring
	Notifications *Notifications

	journal *Journal
}

// Options tune the service; zero values fall back to defaults.
type Options struct {
	Defaults       models.Config
	CheckTimeout   time.Duration
	RequestTimeout time.Duration
	SimLatency     time.Duration
	Metrics        *metrics.Metrics
	Log            *logger.Logger
}

// NewService wires the repositories into the controller. The simulator and
// HTTP gateways are built here; which one is used follows the configuration.
func NewService(repos *repository.Repository, opts Options) *Service {
	defaults := opts.Defaults
	if defaults.DeviceHost == "" {
		defaults = models.DefaultConfig()
	}
	sim := device.NewSimulator(opts.SimLatency)
	dial := func(host string, port int) device.API {
		return device.NewClient(host, port, opts.RequestTimeout)
	}
	return newService(repos, NewState(defaults, sim, dial), opts)
}

func newService(repos *repository.Repository, state *State, opts Options) *Service {
	journal := NewJournal(opts.Log)
	notes := NewNotifications(state)
	history := NewHistoryService(repos.HistoryRepo, journal, opts.Metrics, opts.Log)
	conn := NewConnectivityService(state, journal, opts.Metrics, opts.Log, opts.CheckTimeout)
	motor := NewMotorService(state, journal, history, notes, opts.Metrics, opts.Log)
	schedules := NewScheduleService(state, journal, motor, notes, opts.Metrics, opts.Log)
	settings := NewSettingsService(state, repos.ConfigRepo, journal, notes, conn, opts.Metrics, opts.Log)
	wireDeviceSync(conn, settings, motor, schedules)

	return &Service{
		Connectivity:  conn,
		Motor:         motor,
		Schedules:     schedules,
		Settings:      settings,
		History:       history,
		EventLog:      journal,
		Monitoring:    NewMonitoringService(state, journal),
		Notifications: notes,
		journal:       journal,
	}
}

// wireDeviceSync keeps the mirror tied to the active gateway: it is dropped
// when the mode or endpoint changes and reloaded whenever the connection
// comes up, including the first successful check after startup.
func wireDeviceSync(conn *ConnectivityService, settings *SettingsService, motor *MotorService, schedules *ScheduleService) {
	conn.onConnect = func(ctx context.Context) {
		_ = motor.Refresh(ctx)
		_, _ = motor.LoadDuration(ctx)
		_ = schedules.Refresh(ctx)
	}
	settings.onDeviceChange = func(ctx context.Context, wasSimulation bool) {
		motor.Detach(ctx, wasSimulation)
		schedules.forgetFired()
	}
}

// Init performs the startup sequence: stored documents first, then one
// liveness check, which mirrors the device when it succeeds. Device failures
// are journaled, never fatal; a later successful check mirrors it then.
func (s *Service) Init(ctx context.Context) {
	s.Settings.Load(ctx)
	s.History.Load(ctx)
	s.Connectivity.Check(ctx)
	if s.journal != nil {
		s.journal.Success("Application initialized")
	}
}

// Start runs the connectivity and schedule loops until ctx is cancelled.
func (s *Service) Start(ctx context.Context, connInterval, scheduleInterval time.Duration) {
	go s.Connectivity.Run(ctx, connInterval)
	go s.Schedules.Run(ctx, scheduleInterval)
}
