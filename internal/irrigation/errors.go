package irrigation

import "errors"

var (
	// ErrInvalidSchedule is returned when a schedule draft fails local
	// validation before any request is made.
	ErrInvalidSchedule = errors.New("irrigation: invalid schedule")

	// ErrNoDevice is returned when an operation needs a device and none
	// is selected or configured.
	ErrNoDevice = errors.New("irrigation: no device selected")
)
