// pkg/core/shot.go
package core

import (
	"fmt"
	"math"
	"strings"
)

// DefaultCaptureRadius is the distance in meters from the basket centre within
// which the ball counts as entered.
const DefaultCaptureRadius = 0.1

// AngleUnit tells the kinematics how to read LaunchParameters.Teta0.
type AngleUnit string

const (
	// AngleRadians feeds the angle to the trig functions untouched.
	AngleRadians AngleUnit = "radians"
	// AngleDegrees converts the angle to radians first.
	AngleDegrees AngleUnit = "degrees"
)

// ParseAngleUnit accepts "radians"/"rad" and "degrees"/"deg", case-insensitive.
// An empty string yields AngleRadians.
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "radians", "rad":
		return AngleRadians, nil
	case "degrees", "deg":
		return AngleDegrees, nil
	default:
		return "", fmt.Errorf("unknown angle unit %q", s)
	}
}

// LaunchParameters are the initial conditions of one throw.
type LaunchParameters struct {
	Position  Position3D `json:"position"` // Z is report-only
	Speed     float64    `json:"speed"`    // m/s
	Teta0     float64    `json:"teta0"`    // angle from the XX axis towards YY
	Phi0      float64    `json:"phi0"`     // angle from ZZ towards XX, report-only
	AngleUnit AngleUnit  `json:"angleUnit"`
}

// TetaRadians returns the launch angle as consumed by the trig functions.
func (p LaunchParameters) TetaRadians() float64 {
	if p.AngleUnit == AngleDegrees {
		return p.Teta0 * math.Pi / 180
	}
	return p.Teta0
}

// SpeedKmH converts the launch speed from m/s to km/h.
func (p LaunchParameters) SpeedKmH() float64 {
	return MetersPerSecondToKmH(p.Speed)
}

// MetersPerSecondToKmH converts a speed from m/s to km/h.
func MetersPerSecondToKmH(v float64) float64 {
	return (v * 3_600.0) / 1_000.0
}

// Target is the basket.
type Target struct {
	Position      Position3D `json:"position"` // Z is report-only
	CaptureRadius float64    `json:"captureRadius"`
}

// SimulationWindow defines how long the throw is simulated and how finely.
type SimulationWindow struct {
	Seconds float64 `json:"seconds"`
	Steps   int     `json:"steps"`
}

// Sample is one instant of the simulated flight.
type Sample struct {
	T        float64    `json:"t"`
	Position Position2D `json:"position"`
	Entered  bool       `json:"entered"`
}

// Trajectory is the ordered list of retained samples of one run.
// Entered is true iff at least one sample has Entered set.
type Trajectory struct {
	Samples []Sample `json:"samples"`
	Entered bool     `json:"entered"`
}

// Extent returns the largest X and Y over the samples.
// ok is false for an empty trajectory.
func (t Trajectory) Extent() (maxX, maxY float64, ok bool) {
	if len(t.Samples) == 0 {
		return 0, 0, false
	}
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, s := range t.Samples {
		maxX = math.Max(maxX, s.Position.X)
		maxY = math.Max(maxY, s.Position.Y)
	}
	return maxX, maxY, true
}

// EnteredSamples returns the indexes of the samples flagged as entered.
func (t Trajectory) EnteredSamples() []int {
	var idx []int
	for i, s := range t.Samples {
		if s.Entered {
			idx = append(idx, i)
		}
	}
	return idx
}
