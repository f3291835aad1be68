// Package report prints the human readable summary of a throw.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/OCAP2/hoopshot/pkg/core"
	"github.com/guptarohit/asciigraph"
)

const enteredNote = "ball entered the basket"

// Parameters are the inputs echoed before the trajectory.
type Parameters struct {
	Launch      core.LaunchParameters
	Target      core.Target
	Window      core.SimulationWindow
	SVGFilename string
}

func banner(b *strings.Builder, title string) {
	line := strings.Repeat("*", len(title)+6)
	fmt.Fprintf(b, "%s\n** %s **\n%s\n", line, title, line)
}

// PrintInitialData writes the banner and the input parameters.
func PrintInitialData(w io.Writer, p Parameters) error {
	var b strings.Builder
	banner(&b, "Did the basketball go into the basket?")

	unit := p.Launch.AngleUnit
	if unit == "" {
		unit = core.AngleRadians
	}

	b.WriteString("Data:\n")
	b.WriteString("\n  Player throw position:\n")
	fmt.Fprintf(&b, "    pos_0_x: %.2f m\n", p.Launch.Position.X)
	fmt.Fprintf(&b, "    pos_0_y: %.2f m\n", p.Launch.Position.Y)
	fmt.Fprintf(&b, "    pos_0_z: %.2f m\n", p.Launch.Position.Z)

	b.WriteString("\n  Initial velocity vector:\n")
	fmt.Fprintf(&b, "    v_0: %.2f m/s\n", p.Launch.Speed)
	fmt.Fprintf(&b, "    v_0: %.2f km/h\n", p.Launch.SpeedKmH())
	fmt.Fprintf(&b, "    teta_0: %.2f %s (XX axis to YY axis)\n", p.Launch.Teta0, unit)
	fmt.Fprintf(&b, "    phi_0: %.2f %s (ZZ axis to XX axis)\n", p.Launch.Phi0, unit)

	b.WriteString("\n  Basket position:\n")
	fmt.Fprintf(&b, "    basket_pos_x: %.2f m\n", p.Target.Position.X)
	fmt.Fprintf(&b, "    basket_pos_y: %.2f m\n", p.Target.Position.Y)
	fmt.Fprintf(&b, "    basket_pos_z: %.2f m\n", p.Target.Position.Z)
	fmt.Fprintf(&b, "    capture_radius: %.2f m\n", p.Target.CaptureRadius)

	b.WriteString("\n  Simulation window:\n")
	fmt.Fprintf(&b, "    simulation_sec: %.2f s\n", p.Window.Seconds)
	fmt.Fprintf(&b, "    num_steps: %d\n", p.Window.Steps)

	b.WriteString("\n  Output SVG:\n")
	fmt.Fprintf(&b, "    svg_trajectory_filename: %s\n", p.SVGFilename)

	_, err := io.WriteString(w, b.String())
	return err
}

// SampleLine formats one trajectory sample.
func SampleLine(s core.Sample) string {
	line := fmt.Sprintf("  t: %.2f s, x: %.2f m, y: %.2f m,", s.T, s.Position.X, s.Position.Y)
	if s.Entered {
		line += " " + enteredNote
	}
	return line
}

// PrintTrajectory writes the aggregate result followed by one line per
// retained sample.
func PrintTrajectory(w io.Writer, traj core.Trajectory) error {
	var b strings.Builder
	b.WriteString("\n")
	banner(&b, "Trajectory")
	fmt.Fprintf(&b, "  Entered the basket: %t\n\n", traj.Entered)
	for _, s := range traj.Samples {
		b.WriteString(SampleLine(s))
		b.WriteByte('\n')
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// PrintHeightProfile plots the height of every retained sample as an ASCII
// chart. Nothing is written for an empty trajectory.
func PrintHeightProfile(w io.Writer, traj core.Trajectory, height int) error {
	if len(traj.Samples) == 0 {
		return nil
	}
	if height <= 0 {
		height = 10
	}

	ys := make([]float64, len(traj.Samples))
	for i, s := range traj.Samples {
		ys[i] = s.Position.Y
	}

	chart := asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.Caption("height (m) per sample"),
	)
	_, err := fmt.Fprintf(w, "%s\n\n", chart)
	return err
}
