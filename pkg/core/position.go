// pkg/core/position.go
package core

// Position2D is a point in the vertical launch plane, in meters.
// X grows away from the shooter, Y grows upwards from the floor.
type Position2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Position3D is a point in meters. The simulation is planar, so Z is only
// carried for reporting and for the generic 3D distance.
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// To3D lifts a planar position into 3D with Z = 0.
func (p Position2D) To3D() Position3D {
	return Position3D{X: p.X, Y: p.Y}
}

// XY drops the Z component.
func (p Position3D) XY() Position2D {
	return Position2D{X: p.X, Y: p.Y}
}
