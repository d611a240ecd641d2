package service

import (
	"sync"

	"irrigation_panel/internal/device"
	"irrigation_panel/internal/models"

	"golang.org/x/exp/slices"
)

// DefaultDuration is the run duration in seconds until the device reports one.
const DefaultDuration = 30

// Dialer builds a gateway for a device at host:port.
type Dialer func(host string, port int) device.API

// State is the single owner of everything the panel mirrors from the device
// plus the user configuration. All accessors are safe for concurrent use.
type State struct {
	mu        sync.RWMutex
	cfg       models.Config
	connected bool
	motorOn   bool
	duration  int
	schedules []models.Schedule

	sim    device.API
	dial   Dialer
	client device.API
	// endpoint the cached client was built for
	clientHost string
	clientPort int
}

func NewState(cfg models.Config, sim device.API, dial Dialer) *State {
	return &State{
		cfg:      cfg.Clone(),
		duration: DefaultDuration,
		sim:      sim,
		dial:     dial,
	}
}

func (s *State) Config() models.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

func (s *State) SetConfig(c models.Config) {
	s.mu.Lock()
	s.cfg = c.Clone()
	s.mu.Unlock()
}

func (s *State) Simulation() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Simulation
}

func (s *State) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// SetConnected stores the liveness result and returns the previous value.
func (s *State) SetConnected(v bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.connected
	s.connected = v
	return prev
}

// Ready reports whether device actions are allowed right now.
func (s *State) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Simulation || s.connected
}

func (s *State) MotorOn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.motorOn
}

func (s *State) SetMotorOn(v bool) {
	s.mu.Lock()
	s.motorOn = v
	s.mu.Unlock()
}

func (s *State) Duration() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.duration
}

func (s *State) SetDuration(v int) {
	s.mu.Lock()
	s.duration = v
	s.mu.Unlock()
}

// Schedules returns a deep copy of the mirrored schedule list.
func (s *State) Schedules() []models.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSchedules(s.schedules)
}

func (s *State) SetSchedules(list []models.Schedule) {
	s.mu.Lock()
	s.schedules = cloneSchedules(list)
	s.mu.Unlock()
}

// ForgetDevice drops everything mirrored from the previous gateway so nothing
// of it is acted on before the next synchronisation.
func (s *State) ForgetDevice() {
	s.mu.Lock()
	s.connected = false
	s.motorOn = false
	s.duration = DefaultDuration
	s.schedules = nil
	s.mu.Unlock()
}

// Simulator returns the local stand-in device.
func (s *State) Simulator() device.API { return s.sim }

// Device returns the gateway matching the current mode: the simulator in
// simulation, otherwise an HTTP client for the configured endpoint.
func (s *State) Device() device.API {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Simulation {
		return s.sim
	}
	if s.client == nil || s.clientHost != s.cfg.DeviceHost || s.clientPort != s.cfg.DevicePort {
		s.client = s.dial(s.cfg.DeviceHost, s.cfg.DevicePort)
		s.clientHost, s.clientPort = s.cfg.DeviceHost, s.cfg.DevicePort
	}
	return s.client
}

func cloneSchedules(in []models.Schedule) []models.Schedule {
	out := make([]models.Schedule, 0, len(in))
	for _, sc := range in {
		sc.Days = slices.Clone(sc.Days)
		out = append(out, sc)
	}
	return out
}
