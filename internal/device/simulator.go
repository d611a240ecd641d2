package device

import (
	"context"
	"fmt"
	"sync"
	"time"

	"irrigation_panel/internal/models"

	"golang.org/x/exp/slices"
)

// DefaultSimLatency is how long simulated mutations take to "reach" the device.
const DefaultSimLatency = 500 * time.Millisecond

const defaultSimDuration = 30

// Simulator is an in-memory stand-in for the controller. It never touches the network.
type Simulator struct {
	latency time.Duration
	now     func() time.Time

	mu        sync.Mutex
	motorOn   bool
	duration  int
	schedules []models.Schedule
	lastID    int64
}

// NewSimulator returns a simulator whose mutations wait latency before applying.
func NewSimulator(latency time.Duration) *Simulator {
	if latency < 0 {
		latency = 0
	}
	return &Simulator{
		latency:  latency,
		now:      time.Now,
		duration: defaultSimDuration,
	}
}

func (s *Simulator) Status(ctx context.Context) error { return ctx.Err() }

func (s *Simulator) MotorState(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.motorOn, nil
}

func (s *Simulator) MotorOn(ctx context.Context) error  { return s.setMotor(ctx, true) }
func (s *Simulator) MotorOff(ctx context.Context) error { return s.setMotor(ctx, false) }

func (s *Simulator) setMotor(ctx context.Context, on bool) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.motorOn = on
	s.mu.Unlock()
	return nil
}

func (s *Simulator) Duration(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration, nil
}

// SetDuration stores the run duration locally; it does not wait.
func (s *Simulator) SetDuration(ctx context.Context, seconds int) error {
	s.mu.Lock()
	s.duration = seconds
	s.mu.Unlock()
	return nil
}

// Schedules returns a copy of the local schedule list.
func (s *Simulator) Schedules(ctx context.Context) ([]models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Schedule, 0, len(s.schedules))
	for _, sc := range s.schedules {
		sc.Days = slices.Clone(sc.Days)
		out = append(out, sc)
	}
	return out, nil
}

func (s *Simulator) CreateSchedule(ctx context.Context, in models.ScheduleInput) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules = append(s.schedules, models.Schedule{
		ID:      s.nextID(),
		Time:    in.Time,
		Days:    slices.Clone(in.Days),
		Enabled: in.Enabled,
	})
	return nil
}

func (s *Simulator) UpdateSchedule(ctx context.Context, id int64, in models.ScheduleInput) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.schedules, func(sc models.Schedule) bool { return sc.ID == id })
	if idx == -1 {
		return fmt.Errorf("%w: schedule %d not found", ErrUnexpectedStatus, id)
	}
	s.schedules[idx] = models.Schedule{ID: id, Time: in.Time, Days: slices.Clone(in.Days), Enabled: in.Enabled}
	return nil
}

// DeleteSchedule removes id; deleting an unknown id is a no-op.
func (s *Simulator) DeleteSchedule(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules = slices.DeleteFunc(s.schedules, func(sc models.Schedule) bool { return sc.ID == id })
	return nil
}

// nextID derives an id from the wall clock, bumped when two creations share a millisecond.
// Caller holds s.mu.
func (s *Simulator) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Simulator) wait(ctx context.Context) error {
	if s.latency == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
