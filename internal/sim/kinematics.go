package sim

import (
	"math"

	"github.com/OCAP2/hoopshot/pkg/core"
)

// StandardGravity is the default gravitational acceleration in m/s^2.
const StandardGravity = 9.807

// InitialVelocity decomposes the launch speed into its XX and YY components.
func InitialVelocity(p core.LaunchParameters) (vx, vy float64) {
	teta := p.TetaRadians()
	return p.Speed * math.Cos(teta), p.Speed * math.Sin(teta)
}

// Position returns the ball position t seconds after the throw under a
// uniform gravity field of magnitude gravity.
//
//	x(t) = x0 + v0x*t
//	y(t) = y0 + v0y*t - g*t^2/2
func Position(p core.LaunchParameters, gravity, t float64) core.Position2D {
	vx, vy := InitialVelocity(p)
	return positionAt(p.Position.X, p.Position.Y, vx, vy, gravity, t)
}

func positionAt(x0, y0, vx, vy, gravity, t float64) core.Position2D {
	return core.Position2D{
		X: x0 + vx*t,
		Y: y0 + vy*t - (1.0/2.0)*gravity*t*t,
	}
}
