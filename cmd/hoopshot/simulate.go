package main

import (
	"fmt"
	"io"

	"github.com/OCAP2/hoopshot/internal/config"
	"github.com/OCAP2/hoopshot/internal/geo"
	"github.com/OCAP2/hoopshot/internal/logging"
	"github.com/OCAP2/hoopshot/internal/render/grid"
	"github.com/OCAP2/hoopshot/internal/render/svg"
	"github.com/OCAP2/hoopshot/internal/report"
	"github.com/OCAP2/hoopshot/internal/sim"
	"github.com/OCAP2/hoopshot/pkg/core"
)

// inputs are the simulation parameters read from configuration.
type inputs struct {
	launch core.LaunchParameters
	target core.Target
	window core.SimulationWindow
}

// loadInputs builds the launch, target and window from configuration. A
// non-empty basket replaces the configured target position.
func loadInputs(basket string) (inputs, error) {
	lc := config.GetLaunchConfig()
	unit, err := core.ParseAngleUnit(lc.AngleUnit)
	if err != nil {
		return inputs{}, fmt.Errorf("launch.angleUnit: %w", err)
	}
	tc := config.GetTargetConfig()
	sc := config.GetSimulationConfig()

	targetPos := core.Position3D{X: tc.X, Y: tc.Y, Z: tc.Z}
	if basket != "" {
		targetPos, err = geo.Position3DFromString(basket)
		if err != nil {
			return inputs{}, fmt.Errorf("basket %q: %w", basket, err)
		}
	}

	return inputs{
		launch: core.LaunchParameters{
			Position:  core.Position3D{X: lc.X, Y: lc.Y, Z: lc.Z},
			Speed:     lc.Speed,
			Teta0:     lc.Teta,
			Phi0:      lc.Phi,
			AngleUnit: unit,
		},
		target: core.Target{
			Position:      targetPos,
			CaptureRadius: tc.CaptureRadius,
		},
		window: core.SimulationWindow{
			Seconds: sc.Seconds,
			Steps:   sc.Steps,
		},
	}, nil
}

// newEngine configures the engine with gravity, logging and metrics.
func newEngine(s *session) (*sim.Engine, error) {
	opts := []sim.Option{
		sim.WithGravity(config.GetSimulationConfig().Gravity),
		sim.WithLogger(logging.NewZerologAdapter(s.zerolog("sim"))),
	}
	if s.otel != nil {
		opts = append(opts, sim.WithMeter(s.otel.Meter("github.com/OCAP2/hoopshot/internal/sim")))
	}
	return sim.NewEngine(opts...)
}

// simulate runs the throw, prints the report and grid, then writes the SVG
// and hands the run to the configured sinks.
func simulate(s *session, basket string, stdout io.Writer) int {
	in, err := loadInputs(basket)
	if err != nil {
		s.logger.Error("Invalid configuration", "error", err)
		return exitError
	}

	engine, err := newEngine(s)
	if err != nil {
		s.logger.Error("Failed to create engine", "error", err)
		return exitError
	}

	svgCfg := config.GetSVGConfig()
	if err := report.PrintInitialData(stdout, report.Parameters{
		Launch:      in.launch,
		Target:      in.target,
		Window:      in.window,
		SVGFilename: svgCfg.Filename,
	}); err != nil {
		s.logger.Error("Failed to print parameters", "error", err)
		return exitError
	}

	traj, err := engine.Simulate(in.launch, in.target, in.window)
	if err != nil {
		s.logger.Error("Simulation failed", "error", err)
		return exitError
	}

	if err := report.PrintTrajectory(stdout, traj); err != nil {
		s.logger.Error("Failed to print trajectory", "error", err)
		return exitError
	}
	if rc := config.GetReportConfig(); rc.HeightProfile {
		if err := report.PrintHeightProfile(stdout, traj, rc.ProfileHeight); err != nil {
			s.logger.Error("Failed to print height profile", "error", err)
			return exitError
		}
	}

	gc := config.GetGridConfig()
	g, err := grid.New(gc.Rows, gc.Cols, gc.RowsMeters, gc.ColsMeters)
	if err != nil {
		s.logger.Error("Invalid grid", "error", err)
		return exitError
	}
	if err := grid.PlotTrajectory(g, traj); err != nil {
		s.logger.Error("Trajectory does not fit the grid", "error", err)
		return exitError
	}
	if _, err := g.WriteTo(stdout); err != nil {
		s.logger.Error("Failed to print grid", "error", err)
		return exitError
	}

	doc, err := svg.Plot(traj, in.target, svg.PlotConfig{
		Width:      svgCfg.Width,
		Height:     svgCfg.Height,
		Background: svgCfg.Background,
	})
	if err != nil {
		s.logger.Error("Failed to plot SVG", "error", err)
		return exitError
	}
	svgPath, err := doc.WriteFile(svgCfg.Dir, svgCfg.Filename)
	if err != nil {
		s.logger.Error("Failed to write SVG, skipping remaining sinks", "error", err)
		return exitError
	}
	s.logger.Info("SVG written", "path", svgPath)

	venue := config.GetVenueConfig()
	r := &core.Run{
		ID:        s.runID,
		StartTime: s.start.UTC(),
		Venue: core.Venue{
			Name:      venue.Name,
			Latitude:  venue.Latitude,
			Longitude: venue.Longitude,
		},
		Launch:     in.launch,
		Target:     in.target,
		Window:     in.window,
		Gravity:    engine.Gravity(),
		Trajectory: traj,
		SVGPath:    svgPath,
	}

	if err := recordRun(s, r); err != nil {
		s.logger.Error("Failed to record run", "error", err)
		return exitError
	}

	s.logger.Info("Run complete", "entered", traj.Entered, "samples", len(traj.Samples))
	return exitOK
}
