// Package picking casts rays from the screen into the voxel grid.
package picking

import (
	gomath "math"

	"github.com/Faultbox/voxelmesh/pkg/math"
	"github.com/Faultbox/voxelmesh/pkg/voxel"
)

// Ray is a half-line with a unit Direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay unprojects a pixel into a world-space ray. invViewProj is the
// inverse of projection*view.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // screen Y grows downwards

	near := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectBox clips the ray against an axis-aligned box. enter and exit are
// ray distances (enter is negative when the origin is inside) and axis is
// the axis whose slab was crossed on entry.
func (r Ray) IntersectBox(min, max math.Vec3) (enter, exit float32, axis int, hit bool) {
	o, d := r.Origin.Array(), r.Direction.Array()
	lo, hi := min.Array(), max.Array()

	enter = float32(-gomath.MaxFloat32)
	exit = float32(gomath.MaxFloat32)
	for a := range 3 {
		if d[a] == 0 {
			if o[a] < lo[a] || o[a] > hi[a] {
				return 0, 0, 0, false
			}
			continue
		}
		t1 := (lo[a] - o[a]) / d[a]
		t2 := (hi[a] - o[a]) / d[a]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > enter {
			enter, axis = t1, a
		}
		if t2 < exit {
			exit = t2
		}
	}
	if exit < enter || exit < 0 {
		return 0, 0, 0, false
	}
	return enter, exit, axis, true
}

// Hit is the first occupied cell a ray meets.
type Hit struct {
	X, Y, Z  int
	Face     voxel.Face // face of the cell the ray crossed
	Distance float32
}

var (
	posFaces = [3]voxel.Face{voxel.FacePosX, voxel.FacePosY, voxel.FacePosZ}
	negFaces = [3]voxel.Face{voxel.FaceNegX, voxel.FaceNegY, voxel.FaceNegZ}
)

// entryFace is the face crossed when moving along axis in direction d.
func entryFace(axis int, d float32) voxel.Face {
	if d > 0 {
		return negFaces[axis]
	}
	return posFaces[axis]
}

// PickCell walks the grid cell by cell along the ray (Amanatides-Woo) and
// returns the first occupied cell.
func PickCell(g *voxel.Grid, r Ray) (Hit, bool) {
	dims := g.Dims()
	half := math.V3(0.5, 0.5, 0.5)
	lo := g.Origin.Sub(half)
	hi := lo.Add(math.V3(float32(dims.Width), float32(dims.Height), float32(dims.Depth)))

	enter, exit, axis, ok := r.IntersectBox(lo, hi)
	if !ok {
		return Hit{}, false
	}
	t := max(enter, 0)

	size := [3]int{dims.Width, dims.Height, dims.Depth}
	d := r.Direction.Array()
	p := r.At(t).Sub(lo).Array()

	var cell, step [3]int
	var tMax, tDelta [3]float32
	for a := range 3 {
		cell[a] = min(max(int(gomath.Floor(float64(p[a]))), 0), size[a]-1)
		switch {
		case d[a] > 0:
			step[a] = 1
			tMax[a] = t + (float32(cell[a]+1)-p[a])/d[a]
			tDelta[a] = 1 / d[a]
		case d[a] < 0:
			step[a] = -1
			tMax[a] = t + (float32(cell[a])-p[a])/d[a]
			tDelta[a] = -1 / d[a]
		default:
			tMax[a] = float32(gomath.MaxFloat32)
			tDelta[a] = float32(gomath.MaxFloat32)
		}
	}

	// Starting inside the grid there is no crossed face; report the one
	// facing back towards the ray.
	if enter < 0 {
		axis = dominantAxis(d)
	}
	face := entryFace(axis, d[axis])

	for {
		if g.Occupied(cell[0], cell[1], cell[2]) {
			return Hit{X: cell[0], Y: cell[1], Z: cell[2], Face: face, Distance: t}, true
		}

		a := 0
		if tMax[1] < tMax[a] {
			a = 1
		}
		if tMax[2] < tMax[a] {
			a = 2
		}
		if tMax[a] > exit {
			return Hit{}, false
		}
		t = tMax[a]
		tMax[a] += tDelta[a]
		cell[a] += step[a]
		if cell[a] < 0 || cell[a] >= size[a] {
			return Hit{}, false
		}
		face = entryFace(a, d[a])
	}
}

func dominantAxis(d [3]float32) int {
	a := 0
	for i := 1; i < 3; i++ {
		if gomath.Abs(float64(d[i])) > gomath.Abs(float64(d[a])) {
			a = i
		}
	}
	return a
}
