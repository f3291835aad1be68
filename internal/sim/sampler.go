package sim

import (
	"fmt"
	"math"
)

// TimeSteps splits [0, seconds] into steps evenly spaced instants.
// The first value is exactly 0 and the last exactly seconds; the intermediate
// ones are i*seconds/(steps-1).
func TimeSteps(seconds float64, steps int) ([]float64, error) {
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidDuration, seconds)
	}
	if steps <= 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStepCount, steps)
	}

	delta := seconds / float64(steps-1)
	times := make([]float64, steps)
	for i := 1; i < steps-1; i++ {
		times[i] = delta * float64(i)
	}
	times[steps-1] = seconds
	return times, nil
}
