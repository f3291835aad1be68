// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"encoding/json"
	"fmt"

	"github.com/OCAP2/hoopshot/internal/geo"
	"github.com/OCAP2/hoopshot/internal/model"
	"github.com/OCAP2/hoopshot/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// position3DToPoint converts a core.Position3D to an XYZ geom.Point
func position3DToPoint(p core.Position3D) geom.Point {
	coords := geom.Coordinates{XY: geom.XY{X: p.X, Y: p.Y}, Z: p.Z, Type: geom.DimXYZ}
	return geom.NewPoint(coords)
}

// position2DToPoint converts a core.Position2D to an XY geom.Point
func position2DToPoint(p core.Position2D) geom.Point {
	return geom.NewPoint(geom.Coordinates{XY: geom.XY{X: p.X, Y: p.Y}})
}

// CoreToSample converts the i-th sample of a trajectory to a GORM model.Sample.
func CoreToSample(i int, s core.Sample) model.Sample {
	return model.Sample{
		Seq:      i,
		T:        s.T,
		Position: position2DToPoint(s.Position),
		Entered:  s.Entered,
	}
}

// CoreToRun converts a core.Run, samples included, to a GORM model.Run.
// Runs with fewer than two samples get an empty motion path. A venue outside
// the WGS84 range is stored as an empty point.
func CoreToRun(r core.Run) (model.Run, error) {
	inputs, err := json.Marshal(r.Inputs())
	if err != nil {
		return model.Run{}, fmt.Errorf("failed to marshal run inputs: %w", err)
	}

	venueLocation, err := geo.Coords3857From4326(r.Venue.Longitude, r.Venue.Latitude)
	if err != nil {
		venueLocation = geom.NewEmptyPoint(geom.DimXY)
	}

	path, err := geo.PathFromSamples(r.Trajectory.Samples)
	if err != nil {
		path = geom.LineString{}
	}

	samples := make([]model.Sample, len(r.Trajectory.Samples))
	for i, s := range r.Trajectory.Samples {
		samples[i] = CoreToSample(i, s)
	}

	return model.Run{
		UUID:           r.ID,
		StartTime:      r.StartTime,
		VenueName:      r.Venue.Name,
		VenueLocation:  venueLocation,
		LaunchPosition: position3DToPoint(r.Launch.Position),
		Speed:          r.Launch.Speed,
		Teta0:          r.Launch.Teta0,
		Phi0:           r.Launch.Phi0,
		AngleUnit:      string(r.Launch.AngleUnit),
		TargetPosition: position3DToPoint(r.Target.Position),
		CaptureRadius:  r.Target.CaptureRadius,
		Seconds:        r.Window.Seconds,
		Steps:          r.Window.Steps,
		Gravity:        r.Gravity,
		Entered:        r.Trajectory.Entered,
		NumSamples:     len(r.Trajectory.Samples),
		PathLength:     path.Length(),
		MotionPath:     path,
		Inputs:         datatypes.JSON(inputs),
		SVGPath:        r.SVGPath,
		Samples:        samples,
	}, nil
}
