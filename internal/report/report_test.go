package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/OCAP2/hoopshot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func referenceParameters() Parameters {
	return Parameters{
		Launch: core.LaunchParameters{
			Position: core.Position3D{X: 0, Y: 1.5, Z: 0},
			Speed:    10,
			Teta0:    45,
			Phi0:     0,
		},
		Target: core.Target{
			Position:      core.Position3D{X: 8, Y: 3.05, Z: 5},
			CaptureRadius: core.DefaultCaptureRadius,
		},
		Window:      core.SimulationWindow{Seconds: 3, Steps: 60},
		SVGFilename: "basketball_trajectory.svg",
	}
}

func TestPrintInitialData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintInitialData(&buf, referenceParameters()))

	out := buf.String()
	assert.Contains(t, out, "** Did the basketball go into the basket? **")
	assert.Contains(t, out, "    pos_0_y: 1.50 m\n")
	assert.Contains(t, out, "    v_0: 10.00 m/s\n")
	assert.Contains(t, out, "    v_0: 36.00 km/h\n")
	assert.Contains(t, out, "    teta_0: 45.00 radians")
	assert.Contains(t, out, "    basket_pos_y: 3.05 m\n")
	assert.Contains(t, out, "    basket_pos_z: 5.00 m\n")
	assert.Contains(t, out, "    simulation_sec: 3.00 s\n")
	assert.Contains(t, out, "    num_steps: 60\n")
	assert.Contains(t, out, "    svg_trajectory_filename: basketball_trajectory.svg\n")
}

func TestPrintInitialData_Degrees(t *testing.T) {
	p := referenceParameters()
	p.Launch.AngleUnit = core.AngleDegrees

	var buf bytes.Buffer
	require.NoError(t, PrintInitialData(&buf, p))
	assert.Contains(t, buf.String(), "teta_0: 45.00 degrees")
}

func TestSampleLine(t *testing.T) {
	s := core.Sample{T: 1.5254237288135595, Position: core.Position2D{X: 8.013386270100963, Y: 3.069844054226282}}
	assert.Equal(t, "  t: 1.53 s, x: 8.01 m, y: 3.07 m,", SampleLine(s))

	s.Entered = true
	assert.Equal(t, "  t: 1.53 s, x: 8.01 m, y: 3.07 m, ball entered the basket", SampleLine(s))
}

func TestPrintTrajectory(t *testing.T) {
	traj := core.Trajectory{
		Samples: []core.Sample{
			{T: 0, Position: core.Position2D{X: 0, Y: 1.5}},
			{T: 0.5, Position: core.Position2D{X: 8, Y: 3.05}, Entered: true},
		},
		Entered: true,
	}

	var buf bytes.Buffer
	require.NoError(t, PrintTrajectory(&buf, traj))

	out := buf.String()
	assert.Contains(t, out, "** Trajectory **")
	assert.Contains(t, out, "  Entered the basket: true\n")

	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, "  t: ") {
			lines = append(lines, l)
		}
	}
	assert.Equal(t, []string{
		"  t: 0.00 s, x: 0.00 m, y: 1.50 m,",
		"  t: 0.50 s, x: 8.00 m, y: 3.05 m, ball entered the basket",
	}, lines)
}

func TestPrintHeightProfile(t *testing.T) {
	traj := core.Trajectory{Samples: []core.Sample{
		{Position: core.Position2D{Y: 1.5}},
		{Position: core.Position2D{Y: 4}},
		{Position: core.Position2D{Y: 2}},
	}}

	var buf bytes.Buffer
	require.NoError(t, PrintHeightProfile(&buf, traj, 5))
	assert.Contains(t, buf.String(), "height (m) per sample")
	assert.Contains(t, buf.String(), "4.00")

	buf.Reset()
	require.NoError(t, PrintHeightProfile(&buf, core.Trajectory{}, 5))
	assert.Empty(t, buf.String())
}

func TestPrint_WriterError(t *testing.T) {
	assert.Error(t, PrintInitialData(failingWriter{}, referenceParameters()))
	assert.Error(t, PrintTrajectory(failingWriter{}, core.Trajectory{}))
}
