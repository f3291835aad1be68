package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/OCAP2/hoopshot/pkg/core"
)

func TestDistance3D(t *testing.T) {
	tests := []struct {
		name string
		p, q core.Position3D
		want float64
	}{
		{"same point", core.Position3D{X: 1, Y: 2, Z: 3}, core.Position3D{X: 1, Y: 2, Z: 3}, 0},
		{"planar 3-4-5", core.Position3D{}, core.Position3D{X: 3, Y: 4}, 5},
		{"with depth", core.Position3D{}, core.Position3D{X: 1, Y: 2, Z: 2}, 3},
		{"symmetric", core.Position3D{X: 3, Y: 4}, core.Position3D{}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance3D(tt.p, tt.q)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestPosition3DFromString_XY(t *testing.T) {
	pos, err := Position3DFromString("8,3.05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.X != 8 || pos.Y != 3.05 || pos.Z != 0 {
		t.Errorf("unexpected position %+v", pos)
	}
}

func TestPosition3DFromString_XYZ(t *testing.T) {
	pos, err := Position3DFromString("8, 3.05, 5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Z != 5 {
		t.Errorf("expected Z=5, got %f", pos.Z)
	}
}

func TestPosition3DFromString_Invalid(t *testing.T) {
	for _, in := range []string{"", "8", "a,b", "1,2,3,4", "1,NaN"} {
		_, err := Position3DFromString(in)
		if !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("%q: expected ErrInvalidCoordinates, got %v", in, err)
		}
	}
}

func TestCoords3857From4326_Origin(t *testing.T) {
	point, err := Coords3857From4326(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	coords, ok := point.Coordinates()
	if !ok {
		t.Fatal("expected valid coordinates")
	}
	if math.Abs(coords.X) > 1e-6 || math.Abs(coords.Y) > 1e-6 {
		t.Errorf("expected origin, got %f,%f", coords.X, coords.Y)
	}
}

func TestCoords3857From4326_OutOfRange(t *testing.T) {
	_, err := Coords3857From4326(0, 91)
	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestPathFromSamples(t *testing.T) {
	samples := []core.Sample{
		{T: 0, Position: core.Position2D{X: 0, Y: 0}},
		{T: 1, Position: core.Position2D{X: 3, Y: 4}},
		{T: 2, Position: core.Position2D{X: 6, Y: 0}},
	}
	ls, err := PathFromSamples(samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := ls.Coordinates().Length(); n != 3 {
		t.Errorf("expected 3 vertices, got %d", n)
	}
	if got := PathLength(samples); math.Abs(got-10) > 1e-12 {
		t.Errorf("expected length 10, got %f", got)
	}
}

func TestPathFromSamples_TooShort(t *testing.T) {
	_, err := PathFromSamples([]core.Sample{{}})
	if err == nil {
		t.Fatal("expected error for single sample")
	}
	if PathLength(nil) != 0 {
		t.Error("expected zero length for empty path")
	}
}
