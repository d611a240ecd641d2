package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"irrigation_panel/internal/logger"
	"irrigation_panel/internal/metrics"
	"irrigation_panel/internal/models"

	"golang.org/x/exp/slices"
)

const scheduleTimeLayout = "15:04"

// motorSwitch is what the schedule checker needs from motor control.
type motorSwitch interface {
	IsOn() bool
	TurnOn(ctx context.Context, trigger string) error
}

type ScheduleService struct {
	state   *State
	journal *Journal
	motor   motorSwitch
	notes   *Notifications
	metrics *metrics.Metrics
	log     *logger.Logger

	saving atomic.Bool

	mu sync.Mutex
	// minute each schedule last fired in, so it fires at most once per minute
	fired map[int64]string
}

func NewScheduleService(state *State, journal *Journal, motor motorSwitch, notes *Notifications, m *metrics.Metrics, log *logger.Logger) *ScheduleService {
	return &ScheduleService{
		state:   state,
		journal: journal,
		motor:   motor,
		notes:   notes,
		metrics: m,
		log:     log,
		fired:   map[int64]string{},
	}
}

// List returns the mirrored schedules.
func (s *ScheduleService) List() []models.Schedule { return s.state.Schedules() }

// Refresh replaces the mirrored list with the device's.
func (s *ScheduleService) Refresh(ctx context.Context) error {
	list, err := s.state.Device().Schedules(ctx)
	if err != nil {
		s.journal.Error("Failed to load schedules: " + err.Error())
		return err
	}
	s.state.SetSchedules(list)
	return nil
}

// Save creates a schedule when id is zero and updates it otherwise, then
// refetches the full list.
func (s *ScheduleService) Save(ctx context.Context, id int64, in models.ScheduleInput) ([]models.Schedule, error) {
	in, err := normalizeSchedule(in)
	if err != nil {
		s.notes.Error(err.Error())
		return nil, err
	}
	if !s.state.Ready() {
		s.journal.Error("Schedule change rejected: device not connected")
		s.notes.Error("No connection with the device")
		return nil, ErrDisconnected
	}
	if !s.saving.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.saving.Store(false)

	dev := s.state.Device()
	if id == 0 {
		err = dev.CreateSchedule(ctx, in)
	} else {
		err = dev.UpdateSchedule(ctx, id, in)
	}
	if err == nil {
		err = s.Refresh(ctx)
	}
	if err != nil {
		s.journal.Error("Failed to save schedule: " + err.Error())
		s.notes.Error("Failed to save the schedule. Check the connection.")
		if s.log != nil {
			s.log.Errorw("schedule_save_failed", "err", err, "id", id, "time", in.Time)
		}
		return nil, fmt.Errorf("save schedule: %w", err)
	}

	s.journal.Success("Schedule saved" + s.suffix())
	s.notes.Success("Schedule saved")
	return s.state.Schedules(), nil
}

// Delete removes a schedule and refetches the list.
func (s *ScheduleService) Delete(ctx context.Context, id int64) ([]models.Schedule, error) {
	if !s.state.Ready() {
		s.journal.Error("Schedule change rejected: device not connected")
		s.notes.Error("No connection with the device")
		return nil, ErrDisconnected
	}

	err := s.state.Device().DeleteSchedule(ctx, id)
	if err == nil {
		err = s.Refresh(ctx)
	}
	if err != nil {
		s.journal.Error("Failed to delete schedule: " + err.Error())
		s.notes.Error("Failed to delete the schedule. Check the connection.")
		if s.log != nil {
			s.log.Errorw("schedule_delete_failed", "err", err, "id", id)
		}
		return nil, fmt.Errorf("delete schedule: %w", err)
	}

	s.mu.Lock()
	delete(s.fired, id)
	s.mu.Unlock()

	s.journal.Success("Schedule deleted" + s.suffix())
	s.notes.Success("Schedule deleted")
	return s.state.Schedules(), nil
}

// CheckDue starts the motor for every enabled schedule matching now's minute
// and weekday while the motor is off. It returns the ids that fired.
func (s *ScheduleService) CheckDue(ctx context.Context, now time.Time) []int64 {
	schedules := s.state.Schedules()
	if !s.state.Ready() || len(schedules) == 0 {
		return nil
	}

	hhmm := now.Format(scheduleTimeLayout)
	minute := now.Format("2006-01-02T15:04")
	day := weekdayIndex(now.Weekday())

	var fired []int64
	for _, sc := range schedules {
		if !sc.Enabled || sc.Time != hhmm || !slices.Contains(sc.Days, day) {
			continue
		}
		if s.motor.IsOn() {
			continue
		}
		s.mu.Lock()
		done := s.fired[sc.ID] == minute
		s.mu.Unlock()
		if done {
			continue
		}

		err := s.motor.TurnOn(ctx, models.TriggerScheduled)
		// a command already in flight leaves the minute open for the next check
		if errors.Is(err, ErrBusy) {
			continue
		}
		s.mu.Lock()
		s.fired[sc.ID] = minute
		s.mu.Unlock()
		if err != nil {
			if s.log != nil {
				s.log.Errorw("schedule_trigger_failed", "err", err, "id", sc.ID, "time", sc.Time)
			}
			continue
		}
		s.journal.Info("Schedule triggered: " + sc.Time)
		s.metrics.ScheduleTriggered()
		fired = append(fired, sc.ID)
	}
	return fired
}

func (s *ScheduleService) forgetFired() {
	s.mu.Lock()
	clear(s.fired)
	s.mu.Unlock()
}

// Run evaluates schedules every interval until ctx is cancelled.
func (s *ScheduleService) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.CheckDue(ctx, now)
		}
	}
}

func (s *ScheduleService) suffix() string {
	if s.state.Simulation() {
		return simulatedSuffix
	}
	return ""
}

// normalizeSchedule validates in and returns it with a zero padded time and
// sorted, de-duplicated days.
func normalizeSchedule(in models.ScheduleInput) (models.ScheduleInput, error) {
	raw := strings.TrimSpace(in.Time)
	if raw == "" {
		return in, validationError("select a time")
	}
	t, err := time.Parse(scheduleTimeLayout, raw)
	if err != nil {
		return in, validationError("time %q must be HH:MM", raw)
	}
	if len(in.Days) == 0 {
		return in, validationError("select at least one day")
	}
	days := slices.Clone(in.Days)
	for _, d := range days {
		if d < 0 || d > 6 {
			return in, validationError("day %d out of range 0-6", d)
		}
	}
	slices.Sort(days)
	return models.ScheduleInput{
		Time:    t.Format(scheduleTimeLayout),
		Days:    slices.Compact(days),
		Enabled: in.Enabled,
	}, nil
}

// weekdayIndex maps time.Weekday to the schedule convention (Monday = 0).
func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
