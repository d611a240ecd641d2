package service

import (
	"context"
	"errors"
	"strings"

	"irrigation_panel/internal/logger"
	"irrigation_panel/internal/metrics"
	"irrigation_panel/internal/models"
	"irrigation_panel/internal/repository"
)

// connectivityChecker triggers a liveness check after endpoint changes.
type connectivityChecker interface {
	Check(ctx context.Context) bool
}

type SettingsService struct {
	state   *State
	repo    repository.ConfigRepo
	journal *Journal
	notes   *Notifications
	checker connectivityChecker
	metrics *metrics.Metrics
	log     *logger.Logger

	// onDeviceChange drops state mirrored from the gateway being left
	onDeviceChange func(ctx context.Context, wasSimulation bool)
}

func NewSettingsService(state *State, repo repository.ConfigRepo, journal *Journal, notes *Notifications, checker connectivityChecker, m *metrics.Metrics, log *logger.Logger) *SettingsService {
	return &SettingsService{state: state, repo: repo, journal: journal, notes: notes, checker: checker, metrics: m, log: log}
}

// Load reads the stored configuration once at startup. Missing documents keep
// the defaults silently; unreadable ones keep them and report an error.
func (s *SettingsService) Load(ctx context.Context) models.Config {
	cfg, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		s.journal.Error("Failed to load configuration: " + err.Error())
		if s.log != nil {
			s.log.Errorw("config_load_failed", "err", err)
		}
	default:
		defaults := s.state.Config()
		if strings.TrimSpace(cfg.DeviceHost) == "" {
			cfg.DeviceHost = defaults.DeviceHost
		}
		if cfg.DevicePort == 0 {
			cfg.DevicePort = defaults.DevicePort
		}
		if cfg.Theme == "" {
			cfg.Theme = defaults.Theme
		}
		s.state.SetConfig(cfg)
		s.journal.Info("Configuration loaded")
	}
	current := s.state.Config()
	s.metrics.SimulationMode(current.Simulation)
	return current
}

func (s *SettingsService) Get() models.Config { return s.state.Config() }

// Save applies the device endpoint and mode, persists the document and checks
// the (possibly new) endpoint. Changing the mode or endpoint discards the
// mirrored device state; the check then mirrors the new gateway.
func (s *SettingsService) Save(ctx context.Context, in SettingsInput) (models.Config, error) {
	host := strings.TrimSpace(in.DeviceHost)
	if host == "" {
		err := validationError("enter a valid device address")
		s.notes.Error(err.Error())
		return s.state.Config(), err
	}
	port := in.DevicePort
	if port == 0 {
		port = models.DefaultDevicePort
	}
	if port < 0 || port > 65535 {
		err := validationError("port %d out of range", port)
		s.notes.Error(err.Error())
		return s.state.Config(), err
	}

	prev := s.state.Config()
	cfg := prev.Clone()
	cfg.DeviceHost = host
	cfg.DevicePort = port
	cfg.Simulation = in.Simulation
	if in.Notifications != nil {
		cfg.Notifications = *in.Notifications
	}
	if err := s.persist(ctx, cfg); err != nil {
		s.notes.Error("Failed to save the configuration")
		return s.state.Config(), err
	}
	s.metrics.SimulationMode(cfg.Simulation)
	s.journal.Success("Configuration saved")
	s.notes.Success("Configuration saved")

	if prev.Simulation != cfg.Simulation || prev.DeviceHost != cfg.DeviceHost || prev.DevicePort != cfg.DevicePort {
		if s.onDeviceChange != nil {
			s.onDeviceChange(ctx, prev.Simulation)
		}
		s.state.ForgetDevice()
	}
	s.checker.Check(ctx)
	return cfg, nil
}

// ToggleTheme switches between the dark and light themes.
func (s *SettingsService) ToggleTheme(ctx context.Context) (models.Config, error) {
	cfg := s.state.Config()
	if cfg.Theme == models.ThemeLight {
		cfg.Theme = models.ThemeDark
	} else {
		cfg.Theme = models.ThemeLight
	}
	if err := s.persist(ctx, cfg); err != nil {
		return s.state.Config(), err
	}
	s.journal.Info("Theme changed to " + cfg.Theme)
	return cfg, nil
}

// SetWidgetVisibility shows or hides a dashboard widget.
func (s *SettingsService) SetWidgetVisibility(ctx context.Context, name string, visible bool) (models.Config, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.state.Config(), validationError("widget name is required")
	}
	cfg := s.state.Config()
	if cfg.WidgetVisibility == nil {
		cfg.WidgetVisibility = map[string]bool{}
	}
	cfg.WidgetVisibility[name] = visible
	if err := s.persist(ctx, cfg); err != nil {
		return s.state.Config(), err
	}
	return cfg, nil
}

// persist stores cfg and only then makes it current.
func (s *SettingsService) persist(ctx context.Context, cfg models.Config) error {
	if err := s.repo.Save(ctx, cfg); err != nil {
		s.journal.Error("Failed to save configuration: " + err.Error())
		if s.log != nil {
			s.log.Errorw("config_save_failed", "err", err)
		}
		return err
	}
	s.state.SetConfig(cfg)
	return nil
}
