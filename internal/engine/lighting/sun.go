// Package lighting provides the directional light used to shade tubes.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/tubular/pkg/math"
)

// SunDirection converts sun angles in degrees to the direction light travels.
// Longitude rotates around the Y axis from +Z, latitude is elevation above
// the horizon.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := float64(longitude) * gomath.Pi / 180.0
	latRad := float64(latitude) * gomath.Pi / 180.0

	// Spherical to Cartesian, pointing towards the sun
	toSun := math.Vec3{
		X: float32(gomath.Cos(latRad) * gomath.Sin(lonRad)),
		Y: float32(gomath.Sin(latRad)),
		Z: float32(gomath.Cos(latRad) * gomath.Cos(lonRad)),
	}
	return toSun.Neg()
}
