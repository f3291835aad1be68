package geo

import (
	"fmt"

	"github.com/OCAP2/hoopshot/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// PathFromSamples builds the motion path of a trajectory as a LineString,
// one vertex per sample in time order.
func PathFromSamples(samples []core.Sample) (geom.LineString, error) {
	if len(samples) < 2 {
		return geom.LineString{}, fmt.Errorf("path must have at least 2 points, got %d", len(samples))
	}

	flatCoords := make([]float64, 0, len(samples)*2)
	for _, s := range samples {
		flatCoords = append(flatCoords, s.Position.X, s.Position.Y)
	}

	seq := geom.NewSequence(flatCoords, geom.DimXY)
	return geom.NewLineString(seq), nil
}

// PathLength returns the length in meters of the sampled flight path.
// Trajectories with fewer than two samples have zero length.
func PathLength(samples []core.Sample) float64 {
	ls, err := PathFromSamples(samples)
	if err != nil {
		return 0
	}
	return ls.Length()
}
