package grid

import (
	"fmt"

	"github.com/OCAP2/hoopshot/pkg/core"
)

// PlotTrajectory draws every sample of the trajectory. It stops at the first
// sample that does not fit the surface.
func PlotTrajectory(g *Grid, traj core.Trajectory) error {
	for i, s := range traj.Samples {
		if err := g.PlotMeters(s.Position.X, s.Position.Y, s.Entered); err != nil {
			return fmt.Errorf("sample %d at t=%.2f s: %w", i, s.T, err)
		}
	}
	return nil
}
