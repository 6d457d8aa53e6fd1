package voxel

import (
	"fmt"

	"github.com/Faultbox/voxelmesh/pkg/math"
)

// DefaultNormal is assigned to triangles with no area.
var DefaultNormal = math.Vec3{X: 0, Y: 1, Z: 0}

const degenerateEpsilon = 1e-12

// FlatShade expands raw so that every triangle owns its three vertices and
// gives each vertex the normalized (b-a)×(c-a) of its triangle. The returned
// index list is 0, 1, 2, ... in vertex order.
func FlatShade(raw *RawSurface) (*Mesh, error) {
	if len(raw.Indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a whole number of triangles",
			ErrMalformedSurface, len(raw.Indices))
	}

	n := len(raw.Indices)
	m := &Mesh{
		Positions: make([]math.Vec3, n),
		Normals:   make([]math.Vec3, n),
		Indices:   make([]uint32, n),
	}

	for t := 0; t < n; t += 3 {
		var tri [3]math.Vec3
		for k := range 3 {
			idx := raw.Indices[t+k]
			if int(idx) >= len(raw.Positions) {
				return nil, fmt.Errorf("%w: index %d at %d, only %d positions",
					ErrMalformedSurface, idx, t+k, len(raw.Positions))
			}
			tri[k] = raw.Positions[idx]
		}

		normal := FaceNormal(tri[0], tri[1], tri[2])
		for k := range 3 {
			m.Positions[t+k] = tri[k]
			m.Normals[t+k] = normal
			m.Indices[t+k] = uint32(t + k)
		}
	}

	m.Bounds = computeBounds(m.Positions)
	return m, nil
}

// FaceNormal returns the unit normal of triangle (a, b, c) with
// counter-clockwise winding, or DefaultNormal if the triangle has no area.
func FaceNormal(a, b, c math.Vec3) math.Vec3 {
	cross := b.Sub(a).Cross(c.Sub(a))
	l := cross.Length()
	if l*l < degenerateEpsilon || cross.IsNaN() {
		return DefaultNormal
	}
	return cross.Scale(1 / l)
}

func computeBounds(positions []math.Vec3) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}
