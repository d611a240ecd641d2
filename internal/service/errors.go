package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected before anything was sent or stored.
	ErrValidation = errors.New("validation failed")
	// ErrDisconnected is returned when a device action is attempted while the
	// device is unreachable and simulation is off.
	ErrDisconnected = errors.New("device not connected")
	// ErrBusy is returned while the same control still has a request in flight.
	ErrBusy = errors.New("previous request still in progress")
)

// validationErr carries a user-facing message and matches ErrValidation.
type validationErr struct {
	msg string
}

func (e validationErr) Error() string        { return e.msg }
func (e validationErr) Is(target error) bool { return target == ErrValidation }

func validationError(format string, args ...any) error {
	return validationErr{msg: fmt.Sprintf(format, args...)}
}
