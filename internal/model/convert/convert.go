package convert

import (
	"github.com/OCAP2/hoopshot/internal/model"
	"github.com/OCAP2/hoopshot/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// pointToPosition3D converts a geom.Point to a core.Position3D
func pointToPosition3D(p geom.Point) core.Position3D {
	coord, ok := p.Coordinates()
	if !ok {
		return core.Position3D{}
	}
	return core.Position3D{X: coord.XY.X, Y: coord.XY.Y, Z: coord.Z}
}

// SampleToCore converts a GORM Sample to a core.Sample.
func SampleToCore(s model.Sample) core.Sample {
	return core.Sample{
		T:        s.T,
		Position: pointToPosition3D(s.Position).XY(),
		Entered:  s.Entered,
	}
}

// RunToCore converts a GORM Run to a core.Run. Samples are taken in the order
// they are loaded, so callers preload them ordered by seq. The venue
// coordinates are not recovered from the projected point.
func RunToCore(r *model.Run) core.Run {
	samples := make([]core.Sample, len(r.Samples))
	for i, s := range r.Samples {
		samples[i] = SampleToCore(s)
	}

	return core.Run{
		ID:        r.UUID,
		StartTime: r.StartTime,
		Venue:     core.Venue{Name: r.VenueName},
		Launch: core.LaunchParameters{
			Position:  pointToPosition3D(r.LaunchPosition),
			Speed:     r.Speed,
			Teta0:     r.Teta0,
			Phi0:      r.Phi0,
			AngleUnit: core.AngleUnit(r.AngleUnit),
		},
		Target: core.Target{
			Position:      pointToPosition3D(r.TargetPosition),
			CaptureRadius: r.CaptureRadius,
		},
		Window: core.SimulationWindow{
			Seconds: r.Seconds,
			Steps:   r.Steps,
		},
		Gravity: r.Gravity,
		Trajectory: core.Trajectory{
			Samples: samples,
			Entered: r.Entered,
		},
		SVGPath: r.SVGPath,
	}
}
