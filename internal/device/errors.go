package device

import "errors"

var (
	// ErrNotFound is returned when a device ID is not in the local snapshot.
	ErrNotFound = errors.New("device: not found")

	// ErrNoPendingAction is returned when the gate is asked to confirm or
	// cancel with nothing pending.
	ErrNoPendingAction = errors.New("device: no pending action")

	// ErrInvalidDraft is returned when a device draft fails local
	// validation before any request is made.
	ErrInvalidDraft = errors.New("device: invalid draft")

	// ErrNoDescriptor is returned when a device has no usable broker
	// descriptor for a live connection.
	ErrNoDescriptor = errors.New("device: no broker descriptor")
)
