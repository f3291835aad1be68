package sim

import "errors"

// Precondition errors. They indicate a misconfigured simulation and are not
// meant to be recovered from.
var (
	ErrInvalidSpeed     = errors.New("launch speed must be positive")
	ErrInvalidDuration  = errors.New("simulation duration must be positive")
	ErrInvalidStepCount = errors.New("simulation step count must be greater than 2")
	ErrInvalidRadius    = errors.New("capture radius must be a non-negative number")
	ErrInvalidGravity   = errors.New("gravity must be a finite number")
)
