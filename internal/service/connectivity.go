package service

import (
	"context"
	"time"

	"irrigation_panel/internal/logger"
	"irrigation_panel/internal/metrics"
)

// DefaultCheckTimeout bounds a single liveness check.
const DefaultCheckTimeout = 3 * time.Second

type ConnectivityService struct {
	state   *State
	journal *Journal
	metrics *metrics.Metrics
	log     *logger.Logger
	timeout time.Duration

	// onConnect mirrors the device after the connection comes up
	onConnect func(ctx context.Context)
}

func NewConnectivityService(state *State, journal *Journal, m *metrics.Metrics, log *logger.Logger, timeout time.Duration) *ConnectivityService {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &ConnectivityService{state: state, journal: journal, metrics: m, log: log, timeout: timeout}
}

// Check runs one liveness check and returns the resulting connection state.
// In simulation it reports connected without any network call. Every failed
// check adds exactly one error entry to the journal. A transition to connected
// resynchronises the mirrored device state.
func (s *ConnectivityService) Check(ctx context.Context) bool {
	if s.state.Simulation() {
		prev := s.state.SetConnected(true)
		s.metrics.ConnectivityChecked(true)
		if !prev {
			s.connected(ctx)
		}
		return true
	}

	statusCtx, cancel := context.WithTimeout(ctx, s.timeout)
	err := s.state.Device().Status(statusCtx)
	cancel()
	connected := err == nil
	prev := s.state.SetConnected(connected)
	s.metrics.ConnectivityChecked(connected)

	if err != nil {
		s.journal.Error("Connection error: " + err.Error())
		if s.log != nil {
			s.log.Errorw("connectivity_check_failed", "err", err, "was_connected", prev)
		}
		return false
	}
	if !prev {
		if s.log != nil {
			s.log.Infow("device_connected")
		}
		s.connected(ctx)
	}
	return true
}

func (s *ConnectivityService) connected(ctx context.Context) {
	if s.onConnect != nil {
		s.onConnect(ctx)
	}
}

// Run checks connectivity every interval until ctx is cancelled. Failures are
// only reported; the next attempt is the next tick.
func (s *ConnectivityService) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Check(ctx)
		}
	}
}
