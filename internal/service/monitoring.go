package service

import "irrigation_panel/internal/models"

type MonitoringService struct {
	state   *State
	journal *Journal
}

func NewMonitoringService(state *State, journal *Journal) *MonitoringService {
	return &MonitoringService{state: state, journal: journal}
}

// Snapshot returns what a panel client needs to render the dashboard.
func (s *MonitoringService) Snapshot() models.Snapshot {
	cfg := s.state.Config()
	return models.Snapshot{
		Connected:  s.state.Connected(),
		Simulation: cfg.Simulation,
		MotorOn:    s.state.MotorOn(),
		Duration:   s.state.Duration(),
		Schedules:  s.state.Schedules(),
		UnreadLogs: s.journal.Unread(),
		Theme:      cfg.Theme,
		DeviceHost: cfg.DeviceHost,
		DevicePort: cfg.DevicePort,
	}
}
