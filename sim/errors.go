package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeDelay is returned when an event is scheduled into the past.
	ErrNegativeDelay = errors.New("delay must be a non-negative number")

	// ErrNotGranted is returned when releasing a handle that never held a slot.
	ErrNotGranted = errors.New("release of a handle that was never granted")
)

// ConfigError reports a malformed scenario. It is always raised before the
// first run starts.
type ConfigError struct {
	Scenario string
	Entity   string
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("scenario %q: %s: %s", e.Scenario, e.Entity, e.Reason)
}

// SamplingError reports a degenerate draw, e.g. a negative walking speed.
// Such values are never clamped.
type SamplingError struct {
	Entity string
	Reason string
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
}

// RunError wraps a failure that aborted a scenario execution mid-run.
type RunError struct {
	Scenario string
	Run      int
	Err      error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("scenario %q: run %d: %v", e.Scenario, e.Run, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }
