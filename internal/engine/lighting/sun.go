// Package lighting describes the viewer's directional light.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/voxelmesh/pkg/math"
)

// Sun is a directional light placed by angles in degrees.
// Azimuth turns around +Y starting at +Z; Elevation is above the horizon.
type Sun struct {
	Azimuth   float32
	Elevation float32
}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	az := float64(s.Azimuth) * gomath.Pi / 180
	el := float64(s.Elevation) * gomath.Pi / 180
	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}

// LightDir returns the direction the light travels, as shaders expect it.
func (s Sun) LightDir() math.Vec3 {
	return s.Direction().Scale(-1)
}

// FromLightDir places a sun so that its light travels along d.
func FromLightDir(d math.Vec3) Sun {
	to := d.Scale(-1).Normalize()
	if to.Length() == 0 {
		return Sun{Elevation: 90}
	}
	el := gomath.Asin(gomath.Max(-1, gomath.Min(1, float64(to.Y))))
	az := gomath.Atan2(float64(to.X), float64(to.Z))
	return Sun{
		Azimuth:   float32(az * 180 / gomath.Pi),
		Elevation: float32(el * 180 / gomath.Pi),
	}
}

// Rotate turns the sun around the vertical axis, keeping Azimuth in [0, 360).
func (s *Sun) Rotate(degrees float32) {
	a := gomath.Mod(float64(s.Azimuth+degrees), 360)
	if a < 0 {
		a += 360
	}
	s.Azimuth = float32(a)
}
