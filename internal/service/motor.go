package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"irrigation_panel/internal/logger"
	"irrigation_panel/internal/metrics"
	"irrigation_panel/internal/models"
)

// Valid run duration range, in seconds.
const (
	MinDuration = 1
	MaxDuration = 3600
)

const simulatedSuffix = " (simulated)"

// stopper is the part of *time.Timer the auto-off logic needs.
type stopper interface {
	Stop() bool
}

func timeAfterFunc(d time.Duration, f func()) stopper { return time.AfterFunc(d, f) }

// historyRecorder is what the motor needs from the history.
type historyRecorder interface {
	Record(ctx context.Context, trigger string, duration int) (models.HistoryEntry, error)
}

type MotorService struct {
	state   *State
	journal *Journal
	history historyRecorder
	notes   *Notifications
	metrics *metrics.Metrics
	log     *logger.Logger

	// one in-flight request per control
	toggling       atomic.Bool
	savingDuration atomic.Bool

	afterFunc func(d time.Duration, f func()) stopper
	now       func() time.Time

	mu         sync.Mutex
	autoOff    stopper
	autoOffAt  time.Time
	autoOffGen uint64
}

func NewMotorService(state *State, journal *Journal, history historyRecorder, notes *Notifications, m *metrics.Metrics, log *logger.Logger) *MotorService {
	return &MotorService{
		state:     state,
		journal:   journal,
		history:   history,
		notes:     notes,
		metrics:   m,
		log:       log,
		afterFunc: timeAfterFunc,
		now:       time.Now,
	}
}

func (s *MotorService) IsOn() bool { return s.state.MotorOn() }

// Toggle flips the motor as a manual action and returns the new state.
func (s *MotorService) Toggle(ctx context.Context) (bool, error) {
	on := !s.state.MotorOn()
	if err := s.switchMotor(ctx, on, models.TriggerManual); err != nil {
		return s.state.MotorOn(), err
	}
	return on, nil
}

// TurnOn starts a run attributed to trigger.
func (s *MotorService) TurnOn(ctx context.Context, trigger string) error {
	return s.switchMotor(ctx, true, trigger)
}

func (s *MotorService) switchMotor(ctx context.Context, on bool, trigger string) error {
	if !s.state.Ready() {
		s.journal.Error("Motor command rejected: device not connected")
		s.notes.Error("No connection with the device. Enable simulation mode in the settings.")
		return ErrDisconnected
	}
	if !s.toggling.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.toggling.Store(false)

	sim := s.state.Simulation()
	dev := s.state.Device()
	duration := s.state.Duration()

	var err error
	if on {
		err = dev.MotorOn(ctx)
	} else {
		// the pending auto-off is withdrawn before the command goes out and
		// restored only if the device refuses it
		remaining, pending := s.cancelAutoOff()
		err = dev.MotorOff(ctx)
		if err != nil && pending && sim {
			s.armAutoOff(remaining)
		}
	}
	s.metrics.MotorCommand(on, trigger, err)
	if err != nil {
		s.journal.Error("Failed to change motor state: " + err.Error())
		s.notes.Error("Failed to change the motor state. Check the connection.")
		if s.log != nil {
			s.log.Errorw("motor_toggle_failed", "err", err, "on", on, "trigger", trigger)
		}
		return fmt.Errorf("switch motor: %w", err)
	}

	s.state.SetMotorOn(on)
	s.metrics.MotorState(on)

	suffix := ""
	if sim {
		suffix = simulatedSuffix
	}
	if !on {
		s.journal.Info("Motor turned off" + suffix)
		return nil
	}

	msg := fmt.Sprintf("Motor turned on%s - duration: %ds", suffix, duration)
	if sim {
		s.journal.Info(msg)
	} else {
		s.journal.Success(msg)
	}
	if _, err := s.history.Record(ctx, trigger, duration); err != nil && s.log != nil {
		s.log.Errorw("history_record_failed", "err", err, "trigger", trigger)
	}
	if sim {
		s.armAutoOff(time.Duration(duration) * time.Second)
	}
	return nil
}

// armAutoOff replaces any pending auto-off with one firing after d.
func (s *MotorService) armAutoOff(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.autoOff != nil {
		s.autoOff.Stop()
	}
	s.autoOffGen++
	gen := s.autoOffGen
	s.autoOffAt = s.now().Add(d)
	s.autoOff = s.afterFunc(d, func() { s.fireAutoOff(gen) })
}

// cancelAutoOff withdraws the pending auto-off and reports how much of it was
// left. A timer that already fired must not act either.
func (s *MotorService) cancelAutoOff() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoOffGen++
	if s.autoOff == nil {
		return 0, false
	}
	s.autoOff.Stop()
	s.autoOff = nil
	return max(s.autoOffAt.Sub(s.now()), 0), true
}

// fireAutoOff ends a simulated run unless it was cancelled or superseded.
func (s *MotorService) fireAutoOff(gen uint64) {
	s.mu.Lock()
	if gen != s.autoOffGen {
		s.mu.Unlock()
		return
	}
	s.autoOff = nil
	s.mu.Unlock()

	// a command in flight decides the motor state
	if !s.toggling.CompareAndSwap(false, true) {
		return
	}
	defer s.toggling.Store(false)

	if !s.state.MotorOn() {
		return
	}
	if err := s.state.Simulator().MotorOff(context.Background()); err != nil && s.log != nil {
		s.log.Errorw("simulated_auto_off_failed", "err", err)
	}
	s.state.SetMotorOn(false)
	s.metrics.MotorState(false)
	s.journal.Info("Motor turned off automatically" + simulatedSuffix)
}

// Detach forgets the mirrored run when the gateway changes. A run still going
// on the simulator is stopped so it cannot resurface on the next switch back.
func (s *MotorService) Detach(ctx context.Context, wasSimulation bool) {
	s.cancelAutoOff()
	if wasSimulation {
		if err := s.state.Simulator().MotorOff(ctx); err != nil && s.log != nil {
			s.log.Errorw("simulated_motor_stop_failed", "err", err)
		}
	}
	s.state.SetMotorOn(false)
	s.metrics.MotorState(false)
}

// Refresh mirrors the device's motor state.
func (s *MotorService) Refresh(ctx context.Context) error {
	on, err := s.state.Device().MotorState(ctx)
	if err != nil {
		s.journal.Error("Failed to load motor state: " + err.Error())
		return err
	}
	s.state.SetMotorOn(on)
	s.metrics.MotorState(on)
	return nil
}

// Duration returns the mirrored run duration in seconds.
func (s *MotorService) Duration() int { return s.state.Duration() }

// LoadDuration mirrors the run duration configured on the device.
func (s *MotorService) LoadDuration(ctx context.Context) (int, error) {
	d, err := s.state.Device().Duration(ctx)
	if err != nil {
		s.journal.Error("Failed to load duration: " + err.Error())
		return s.state.Duration(), err
	}
	if d >= MinDuration && d <= MaxDuration {
		s.state.SetDuration(d)
	}
	return s.state.Duration(), nil
}

// SetDuration validates and stores a new run duration on the device.
func (s *MotorService) SetDuration(ctx context.Context, seconds int) error {
	if seconds < MinDuration || seconds > MaxDuration {
		err := validationError("duration must be between %d and %d seconds", MinDuration, MaxDuration)
		s.notes.Error(err.Error())
		return err
	}
	if !s.state.Ready() {
		s.journal.Error("Duration change rejected: device not connected")
		s.notes.Error("No connection with the device")
		return ErrDisconnected
	}
	if !s.savingDuration.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.savingDuration.Store(false)

	if err := s.state.Device().SetDuration(ctx, seconds); err != nil {
		s.journal.Error("Failed to save duration: " + err.Error())
		s.notes.Error("Failed to save the duration. Check the connection.")
		if s.log != nil {
			s.log.Errorw("duration_save_failed", "err", err, "duration", seconds)
		}
		return fmt.Errorf("set duration: %w", err)
	}
	s.state.SetDuration(seconds)
	s.journal.Success(fmt.Sprintf("Irrigation duration set to %d seconds", seconds))
	s.notes.Success("Duration saved")
	return nil
}
