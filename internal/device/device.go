// Package device talks to the irrigation controller, either over its HTTP API
// or through an in-memory simulator.
package device

import (
	"context"
	"errors"

	"irrigation_panel/internal/models"
)

// Errors returned by API implementations. All of them mean the device could
// not be reached or did not answer as expected.
var (
	ErrUnreachable      = errors.New("device unreachable")
	ErrUnexpectedStatus = errors.New("unexpected device response")
	ErrDecode           = errors.New("malformed device response")
)

// API is the set of operations exposed by the irrigation controller.
type API interface {
	Status(ctx context.Context) error

	MotorState(ctx context.Context) (bool, error)
	MotorOn(ctx context.Context) error
	MotorOff(ctx context.Context) error

	Duration(ctx context.Context) (int, error)
	SetDuration(ctx context.Context, seconds int) error

	Schedules(ctx context.Context) ([]models.Schedule, error)
	CreateSchedule(ctx context.Context, in models.ScheduleInput) error
	UpdateSchedule(ctx context.Context, id int64, in models.ScheduleInput) error
	DeleteSchedule(ctx context.Context, id int64) error
}

// IsNetworkFailure reports whether err came from the device transport.
func IsNetworkFailure(err error) bool {
	return errors.Is(err, ErrUnreachable) ||
		errors.Is(err, ErrUnexpectedStatus) ||
		errors.Is(err, ErrDecode) ||
		errors.Is(err, context.DeadlineExceeded)
}
