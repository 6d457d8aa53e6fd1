package voxel

import (
	"github.com/Faultbox/voxelmesh/pkg/math"
)

const half = 0.5

// Unit cube corners around a cell centre.
//
//	0 (-,+,-)  1 (-,+,+)  2 (+,+,+)  3 (+,+,-)   top
//	4 (-,-,-)  5 (-,-,+)  6 (+,-,+)  7 (+,-,-)   bottom
var cubeCorners = [8]math.Vec3{
	{X: -half, Y: half, Z: -half},
	{X: -half, Y: half, Z: half},
	{X: half, Y: half, Z: half},
	{X: half, Y: half, Z: -half},
	{X: -half, Y: -half, Z: -half},
	{X: -half, Y: -half, Z: half},
	{X: half, Y: -half, Z: half},
	{X: half, Y: -half, Z: -half},
}

// Corners of each face, wound so (v1-v0)×(v2-v0) points out of the cube.
var faceCorners = [6][4]int{
	FacePosX: {3, 2, 6, 7},
	FaceNegX: {1, 0, 4, 5},
	FacePosY: {0, 1, 2, 3},
	FaceNegY: {7, 6, 5, 4},
	FacePosZ: {2, 1, 5, 6},
	FaceNegZ: {0, 3, 7, 4},
}

// MeshGrid emits one quad for every face of an occupied cell whose neighbour
// is empty or outside the grid. Faces between two occupied cells are skipped.
// A panic in a slab worker is re-raised on the calling goroutine.
func MeshGrid(g *Grid, opts ...Option) *RawSurface {
	o := applyOptions(opts)
	slabs := splitSlabs(g.dims.Width, o.workers)

	parts := make([]*RawSurface, len(slabs))
	err := forEachSlab(slabs, o.workers, func(i int, s slab) {
		raw := &RawSurface{}
		meshSlab(g, s, raw)
		parts[i] = raw
	})
	if err != nil {
		panic(err)
	}

	if len(parts) == 1 {
		return parts[0]
	}
	return mergeSurfaces(parts)
}

func meshSlab(g *Grid, s slab, raw *RawSurface) {
	d := g.dims
	for x := s.x0; x < s.x1; x++ {
		for y := range d.Height {
			for z := range d.Depth {
				if !g.Occupied(x, y, z) {
					continue
				}
				center := g.Center(x, y, z)
				for _, f := range Faces {
					dx, dy, dz := f.Offset()
					if g.Occupied(x+dx, y+dy, z+dz) {
						continue
					}
					raw.addQuad(center, f)
				}
			}
		}
	}
}

// addQuad appends the four corners of face f around center and the two
// triangles (v0,v1,v2) and (v0,v2,v3).
func (r *RawSurface) addQuad(center math.Vec3, f Face) {
	base := uint32(len(r.Positions))
	for _, c := range faceCorners[f] {
		r.Positions = append(r.Positions, center.Add(cubeCorners[c]))
	}
	r.Indices = append(r.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
	r.Faces = append(r.Faces, f)
}

// mergeSurfaces concatenates slab buffers in order, rebasing indices.
func mergeSurfaces(parts []*RawSurface) *RawSurface {
	var nPos, nIdx, nFaces int
	for _, p := range parts {
		nPos += len(p.Positions)
		nIdx += len(p.Indices)
		nFaces += len(p.Faces)
	}

	out := &RawSurface{
		Positions: make([]math.Vec3, 0, nPos),
		Indices:   make([]uint32, 0, nIdx),
		Faces:     make([]Face, 0, nFaces),
	}
	for _, p := range parts {
		base := uint32(len(out.Positions))
		out.Positions = append(out.Positions, p.Positions...)
		for _, idx := range p.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
		out.Faces = append(out.Faces, p.Faces...)
	}
	return out
}
