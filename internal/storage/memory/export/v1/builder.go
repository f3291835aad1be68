package v1

import (
	"time"

	"github.com/OCAP2/hoopshot/internal/geo"
	"github.com/OCAP2/hoopshot/pkg/core"
)

// Build creates an Export from a recorded run
func Build(run *core.Run) Export {
	angleUnit := run.Launch.AngleUnit
	if angleUnit == "" {
		angleUnit = core.AngleRadians
	}

	export := Export{
		Version:   FormatVersion,
		RunID:     run.ID,
		StartTime: run.StartTime.UTC().Format(time.RFC3339),
		Venue: Venue{
			Name:      run.Venue.Name,
			Latitude:  run.Venue.Latitude,
			Longitude: run.Venue.Longitude,
		},
		Launch: Launch{
			Position:  position(run.Launch.Position),
			Speed:     run.Launch.Speed,
			SpeedKmH:  run.Launch.SpeedKmH(),
			Teta0:     run.Launch.Teta0,
			Phi0:      run.Launch.Phi0,
			AngleUnit: string(angleUnit),
		},
		Target: Target{
			Position:      position(run.Target.Position),
			CaptureRadius: run.Target.CaptureRadius,
		},
		Seconds:        run.Window.Seconds,
		Steps:          run.Window.Steps,
		Gravity:        run.Gravity,
		Entered:        run.Trajectory.Entered,
		EnteredSamples: make([]int, 0),
		PathLength:     geo.PathLength(run.Trajectory.Samples),
		Samples:        make([][]any, 0, len(run.Trajectory.Samples)),
		SVGPath:        run.SVGPath,
	}

	export.EnteredSamples = append(export.EnteredSamples, run.Trajectory.EnteredSamples()...)

	for _, s := range run.Trajectory.Samples {
		export.Samples = append(export.Samples, []any{
			s.T,
			s.Position.X,
			s.Position.Y,
			boolToInt(s.Entered),
		})
	}

	return export
}

func position(p core.Position3D) []float64 {
	return []float64{p.X, p.Y, p.Z}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
