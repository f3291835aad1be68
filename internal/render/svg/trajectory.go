package svg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/OCAP2/hoopshot/pkg/core"
)

// Animation and marker settings of the trajectory drawing.
const (
	MotionPathID    = "motionPath"
	AnimatedTokenID = "circle"

	AnimationDuration = "3s"

	sampleRadius = 2.0
	tokenRadius  = 3.0
	basketWidth  = 20.0
	basketHeight = 4.0
	basketStroke = 1.0
	sampleColor  = "blue"
	enteredColor = "green"
	basketColor  = "green"
	tokenColor   = "yellow"
)

var (
	// ErrEmptyTrajectory is returned when there is nothing to scale.
	ErrEmptyTrajectory = errors.New("trajectory has no samples")
	// ErrDegenerateExtent is returned when the trajectory extent is not positive.
	ErrDegenerateExtent = errors.New("trajectory extent must be positive")
)

// PlotConfig holds the canvas settings.
type PlotConfig struct {
	Width      float64
	Height     float64
	Background string
}

// Scale maps physical lengths onto the canvas. The larger of the
// trajectory's X and Y extents lands exactly on Width.
type Scale struct {
	Width  float64
	Extent float64
}

// NewScale fits the trajectory's larger extent onto width.
func NewScale(traj core.Trajectory, width float64) (Scale, error) {
	maxX, maxY, ok := traj.Extent()
	if !ok {
		return Scale{}, ErrEmptyTrajectory
	}
	maxXY := max(maxX, maxY)
	if !(maxXY > 0) {
		return Scale{}, fmt.Errorf("%w: got %v", ErrDegenerateExtent, maxXY)
	}
	return Scale{Width: width, Extent: maxXY}, nil
}

// Factor returns the canvas units per meter.
func (s Scale) Factor() float64 {
	return s.Width / s.Extent
}

// Apply scales a physical length. The ratio is taken first so that
// Apply(Extent) is Width with no rounding.
func (s Scale) Apply(v float64) float64 {
	return v / s.Extent * s.Width
}

// Project maps a physical position to canvas coordinates. SVG y grows
// downwards, so y is flipped against height.
func Project(p core.Position2D, scale Scale, height float64) (x, y float64) {
	return scale.Apply(p.X), height - scale.Apply(p.Y)
}

// Plot draws the trajectory: one dot per sample, the basket, the motion path
// and a token animated along it.
func Plot(traj core.Trajectory, target core.Target, cfg PlotConfig) (*Document, error) {
	scale, err := NewScale(traj, cfg.Width)
	if err != nil {
		return nil, err
	}

	doc := New(cfg.Width, cfg.Height, cfg.Background)

	for _, s := range traj.Samples {
		x, y := Project(s.Position, scale, cfg.Height)
		fill := sampleColor
		if s.Entered {
			fill = enteredColor
		}
		doc.Add(Circle{CX: Number(x), CY: Number(y), R: sampleRadius, Fill: fill})
	}

	doc.Add(basketRect(target, scale, cfg.Height))

	doc.Add(Path{
		ID:   MotionPathID,
		Fill: "none",
		D:    motionPath(traj, scale, cfg.Height),
	})

	doc.Add(
		Circle{ID: AnimatedTokenID, R: tokenRadius, Fill: tokenColor},
		AnimateMotion{
			Href:        "#" + AnimatedTokenID,
			Dur:         AnimationDuration,
			Begin:       "0s",
			Fill:        "freeze",
			RepeatCount: "indefinite",
			MPath:       MPath{Href: "#" + MotionPathID},
		},
	)

	return doc, nil
}

func basketRect(target core.Target, scale Scale, height float64) Rect {
	cx, cy := Project(target.Position.XY(), scale, height)
	x := Number(cx - basketWidth/2)
	y := Number(cy - basketHeight/2)
	return Rect{
		X:      &x,
		Y:      &y,
		Width:  formatNumber(basketWidth),
		Height: formatNumber(basketHeight),
		Style: fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%s",
			basketColor, basketColor, formatNumber(basketStroke)),
	}
}

// motionPath moves to the first sample and draws a line through every sample,
// the first one included.
func motionPath(traj core.Trajectory, scale Scale, height float64) string {
	var b strings.Builder
	for i, s := range traj.Samples {
		x, y := Project(s.Position, scale, height)
		if i == 0 {
			b.WriteString("M")
			b.WriteString(formatNumber(x))
			b.WriteByte(',')
			b.WriteString(formatNumber(y))
		}
		b.WriteString(" L")
		b.WriteString(formatNumber(x))
		b.WriteByte(',')
		b.WriteString(formatNumber(y))
	}
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
