// Package debug provides viewer overlays and capture helpers.
package debug

import "github.com/Faultbox/voxelmesh/pkg/math"

// BoundsVertexCount is the number of line vertices in a box wireframe
// (12 edges, 2 endpoints each).
const BoundsVertexCount = 24

// BoundsWireframe returns line-list vertices, x,y,z each, outlining the box
// between min and max grown by padding on every side.
func BoundsWireframe(min, max math.Vec3, padding float32) []float32 {
	pad := math.V3(padding, padding, padding)
	lo := min.Min(max).Sub(pad)
	hi := max.Max(min).Add(pad)

	corner := func(i int) [3]float32 {
		c := [3]float32{lo.X, lo.Y, lo.Z}
		if i&1 != 0 {
			c[0] = hi.X
		}
		if i&2 != 0 {
			c[1] = hi.Y
		}
		if i&4 != 0 {
			c[2] = hi.Z
		}
		return c
	}

	out := make([]float32, 0, BoundsVertexCount*3)
	// Each edge joins two corners that differ in exactly one bit.
	for i := range 8 {
		for _, bit := range [3]int{1, 2, 4} {
			if i&bit != 0 {
				continue
			}
			a, b := corner(i), corner(i|bit)
			out = append(out, a[0], a[1], a[2], b[0], b[1], b[2])
		}
	}
	return out
}
