// Package v1 contains the v1 export format for run data.
package v1

// FormatVersion is written into every export.
const FormatVersion = "1"

// Export is the root JSON structure for v1 format
type Export struct {
	Version   string `json:"version"`
	RunID     string `json:"runId"`
	StartTime string `json:"startTime"` // RFC3339, UTC
	Venue     Venue  `json:"venue"`

	Launch  Launch  `json:"launch"`
	Target  Target  `json:"target"`
	Seconds float64 `json:"seconds"`
	Steps   int     `json:"steps"`
	Gravity float64 `json:"gravity"`

	Entered        bool    `json:"entered"`
	EnteredSamples []int   `json:"enteredSamples"`
	PathLength     float64 `json:"pathLength"`
	// Samples holds one [t, x, y, entered] row per retained sample,
	// entered being 0 or 1.
	Samples [][]any `json:"samples"`
	SVGPath string  `json:"svgPath,omitempty"`
}

// Venue is where the throw happened
type Venue struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Launch holds the initial conditions
type Launch struct {
	Position  []float64 `json:"position"` // [x, y, z]
	Speed     float64   `json:"speed"`    // m/s
	SpeedKmH  float64   `json:"speedKmh"`
	Teta0     float64   `json:"teta0"`
	Phi0      float64   `json:"phi0"`
	AngleUnit string    `json:"angleUnit"`
}

// Target is the basket
type Target struct {
	Position      []float64 `json:"position"` // [x, y, z]
	CaptureRadius float64   `json:"captureRadius"`
}
