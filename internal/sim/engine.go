package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/OCAP2/hoopshot/internal/geo"
	"github.com/OCAP2/hoopshot/pkg/core"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Option configures an Engine.
type Option func(*Engine)

// WithGravity overrides StandardGravity.
func WithGravity(g float64) Option {
	return func(e *Engine) {
		e.gravity = g
	}
}

// WithLogger sets the logger used for per-run diagnostics.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMeter sets the meter used for run metrics instead of the global one.
func WithMeter(m metric.Meter) Option {
	return func(e *Engine) {
		e.meter = m
	}
}

// Engine simulates throws. It holds no per-run state, so Simulate is a pure
// function of its arguments and the engine's gravity.
type Engine struct {
	gravity float64
	logger  Logger
	meter   metric.Meter

	// OTEL metrics
	runs     metric.Int64Counter
	entries  metric.Int64Counter
	retained metric.Int64Histogram
}

// NewEngine creates an Engine. Metrics go to the global OTel meter unless
// WithMeter is given (no-op if not configured).
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		gravity: StandardGravity,
		logger:  nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if math.IsNaN(e.gravity) || math.IsInf(e.gravity, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidGravity, e.gravity)
	}
	if e.meter == nil {
		e.meter = meter()
	}

	var err error

	e.runs, err = e.meter.Int64Counter(
		"sim.runs",
		metric.WithDescription("Total simulated throws"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating runs counter: %w", err)
	}

	e.entries, err = e.meter.Int64Counter(
		"sim.entries",
		metric.WithDescription("Total throws that entered the basket"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating entries counter: %w", err)
	}

	e.retained, err = e.meter.Int64Histogram(
		"sim.samples.retained",
		metric.WithDescription("Samples kept above the floor per throw"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating retained histogram: %w", err)
	}

	return e, nil
}

// Gravity returns the gravitational acceleration used by the engine.
func (e *Engine) Gravity() float64 {
	return e.gravity
}

// Simulate samples the flight of the ball over the window and flags the
// instants where it is within the capture radius of the target.
//
// Samples below the floor (y < 0) are dropped but the following instants are
// still evaluated: there is no landing model, so a trajectory may end early or
// have gaps.
func (e *Engine) Simulate(launch core.LaunchParameters, target core.Target, window core.SimulationWindow) (core.Trajectory, error) {
	if !(launch.Speed > 0) || math.IsInf(launch.Speed, 0) {
		return core.Trajectory{}, fmt.Errorf("%w: got %v", ErrInvalidSpeed, launch.Speed)
	}
	if !(target.CaptureRadius >= 0) {
		return core.Trajectory{}, fmt.Errorf("%w: got %v", ErrInvalidRadius, target.CaptureRadius)
	}

	times, err := TimeSteps(window.Seconds, window.Steps)
	if err != nil {
		return core.Trajectory{}, err
	}

	vx, vy := InitialVelocity(launch)
	basket := target.Position.XY().To3D()

	traj := core.Trajectory{
		Samples: make([]core.Sample, 0, len(times)),
	}
	for _, t := range times {
		pos := positionAt(launch.Position.X, launch.Position.Y, vx, vy, e.gravity, t)
		if pos.Y < 0 {
			continue
		}
		entered := geo.Distance3D(pos.To3D(), basket) <= target.CaptureRadius
		if entered {
			traj.Entered = true
		}
		traj.Samples = append(traj.Samples, core.Sample{
			T:        t,
			Position: pos,
			Entered:  entered,
		})
	}

	e.record(launch, traj)
	return traj, nil
}

func (e *Engine) record(launch core.LaunchParameters, traj core.Trajectory) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("angle_unit", string(launch.AngleUnit)))

	e.runs.Add(ctx, 1, attrs)
	if traj.Entered {
		e.entries.Add(ctx, 1, attrs)
	}
	e.retained.Record(ctx, int64(len(traj.Samples)), attrs)

	e.logger.Debug("Simulated throw",
		"samples", len(traj.Samples),
		"entered", traj.Entered,
		"gravity", e.gravity,
	)
}
