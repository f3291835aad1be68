package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/OCAP2/hoopshot/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Distance3D returns the Euclidean distance between p and q.
func Distance3D(p, q core.Position3D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Position3DFromString parses "x,y" or "x,y,z" (meters) into a core.Position3D.
func Position3DFromString(coords string) (core.Position3D, error) {
	coordsSplit := strings.Split(coords, ",")
	if len(coordsSplit) < 2 || len(coordsSplit) > 3 {
		return core.Position3D{}, ErrInvalidCoordinates
	}
	var vals [3]float64
	for i, s := range coordsSplit {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return core.Position3D{}, ErrInvalidCoordinates
		}
		vals[i] = v
	}
	return core.Position3D{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// Coords3857From4326 creates a web-mercator point from a longitude and latitude
func Coords3857From4326(
	longitude float64,
	latitude float64,
) (
	point geom.Point,
	err error,
) {
	if math.Abs(latitude) > 90 || math.Abs(longitude) > 180 {
		return geom.NewEmptyPoint(geom.DimXY), ErrInvalidCoordinates
	}
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(longitude, latitude, 0)
	point = geom.NewPoint(
		geom.Coordinates{
			XY: geom.XY{X: x, Y: y},
		},
	)
	return point, nil
}
