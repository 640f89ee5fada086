package telemetry

import "errors"

var (
	// ErrPollerRunning is returned when Run is called on a poller that
	// is already active.
	ErrPollerRunning = errors.New("telemetry: poller already running")

	// ErrInvalidInterval is returned for non-positive poll intervals.
	ErrInvalidInterval = errors.New("telemetry: poll interval must be positive")

	// ErrNilCallback is returned when a poller is created without a
	// snapshot callback.
	ErrNilCallback = errors.New("telemetry: snapshot callback is required")

	// ErrDecodeReading is returned when a live message cannot be decoded
	// as a sensor reading.
	ErrDecodeReading = errors.New("telemetry: cannot decode reading")
)
