// pkg/core/run.go
package core

import "time"

// Venue is the court the throw is attributed to.
type Venue struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`  // WGS84
	Longitude float64 `json:"longitude"` // WGS84
}

// Run is the record of one simulation invocation.
type Run struct {
	ID         string           `json:"id"`
	StartTime  time.Time        `json:"startTime"`
	Venue      Venue            `json:"venue"`
	Launch     LaunchParameters `json:"launch"`
	Target     Target           `json:"target"`
	Window     SimulationWindow `json:"window"`
	Gravity    float64          `json:"gravity"`
	Trajectory Trajectory       `json:"trajectory"`
	SVGPath    string           `json:"svgPath,omitempty"` // empty when the SVG could not be written
}

// Inputs returns the parameters the trajectory was computed from.
func (r Run) Inputs() RunInputs {
	return RunInputs{
		Venue:   r.Venue,
		Launch:  r.Launch,
		Target:  r.Target,
		Window:  r.Window,
		Gravity: r.Gravity,
	}
}

// RunInputs is the input half of a Run.
type RunInputs struct {
	Venue   Venue            `json:"venue"`
	Launch  LaunchParameters `json:"launch"`
	Target  Target           `json:"target"`
	Window  SimulationWindow `json:"window"`
	Gravity float64          `json:"gravity"`
}

// UploadMetadata holds the fields sent with an uploaded run export.
type UploadMetadata struct {
	RunID      string
	VenueName  string
	Entered    bool
	Duration   float64
	NumSamples int
}
