// Package voxel turns a procedurally generated occupancy field into a
// flat-shaded triangle mesh.
//
// The pipeline has three stages, each owning its output until it hands it on:
//
//	Generate   dims + sampler -> *Grid        (occupied iff sample > 0)
//	MeshGrid   *Grid          -> *RawSurface  (one quad per exposed face)
//	FlatShade  *RawSurface    -> *Mesh        (unshared vertices, flat normals)
//
// Build runs all three from a Params value.
//
// Meshing is deliberately naive: every exposed unit face becomes its own quad
// and coplanar neighbours are never merged, so triangle count follows exposed
// surface area. A 10x10 slab has 100 quads on its top face, not one.
package voxel

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/voxelmesh/pkg/math"
)

// Pipeline errors.
var (
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrGridTooLarge      = errors.New("grid too large")
	ErrInvalidScale      = errors.New("invalid noise scale")
	ErrInvalidOctaves    = errors.New("invalid octave settings")
	ErrMalformedSurface  = errors.New("malformed surface buffer")
	ErrWorkerPanic       = errors.New("slab worker panicked")
)

// Dims is the size of a grid in cells along each axis.
type Dims struct {
	Width  int // X
	Height int // Y
	Depth  int // Z
}

// Cube returns Dims with the same size on every axis.
func Cube(n int) Dims {
	return Dims{Width: n, Height: n, Depth: n}
}

// MaxCells is the largest grid whose worst case mesh still fits uint32
// indices: every cell exposing all 6 faces, each shaded into 6 vertices.
const MaxCells = gomath.MaxUint32 / maxVerticesPerCell

const maxVerticesPerCell = 6 * 6

// Validate rejects non-positive sizes and grids above MaxCells. The bound is
// checked axis by axis so the product is never formed before it is known to
// fit.
func (d Dims) Validate() error {
	if d.Width <= 0 || d.Height <= 0 || d.Depth <= 0 {
		return fmt.Errorf("%w: %s (all sizes must be positive)", ErrInvalidDimensions, d)
	}
	if d.Width > MaxCells/d.Height/d.Depth {
		return fmt.Errorf("%w: %s exceeds %d cells", ErrGridTooLarge, d, MaxCells)
	}
	return nil
}

// Cells returns Width*Height*Depth. Only meaningful for dims that pass
// Validate.
func (d Dims) Cells() int {
	return d.Width * d.Height * d.Depth
}

// String returns the size as "WxHxD".
func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.Width, d.Height, d.Depth)
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Face is one of the six axis-aligned directions a cube face can point.
type Face uint8

// Faces in the order the mesher tests them.
const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// Faces lists every direction.
var Faces = [6]Face{FacePosX, FaceNegX, FacePosY, FaceNegY, FacePosZ, FaceNegZ}

var faceOffsets = [6][3]int{
	FacePosX: {1, 0, 0},
	FaceNegX: {-1, 0, 0},
	FacePosY: {0, 1, 0},
	FaceNegY: {0, -1, 0},
	FacePosZ: {0, 0, 1},
	FaceNegZ: {0, 0, -1},
}

var faceNames = [6]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

// Offset returns the neighbour step across this face.
func (f Face) Offset() (dx, dy, dz int) {
	o := faceOffsets[f]
	return o[0], o[1], o[2]
}

// Normal returns the outward unit normal of this face.
func (f Face) Normal() math.Vec3 {
	o := faceOffsets[f]
	return math.Vec3{X: float32(o[0]), Y: float32(o[1]), Z: float32(o[2])}
}

// String returns "+X", "-Y", etc.
func (f Face) String() string {
	if int(f) < len(faceNames) {
		return faceNames[f]
	}
	return fmt.Sprintf("Face(%d)", uint8(f))
}

// RawSurface is the mesher output: four positions and six indices per quad,
// nothing shared between quads even where corners coincide.
type RawSurface struct {
	Positions []math.Vec3
	Indices   []uint32
	Faces     []Face // direction of each quad, in emission order
}

// QuadCount returns the number of emitted quads.
func (r *RawSurface) QuadCount() int {
	return len(r.Faces)
}

// TriangleCount returns the number of triangles in the index list.
func (r *RawSurface) TriangleCount() int {
	return len(r.Indices) / 3
}

// Mesh is the final flat-shaded mesh. Every triangle owns three consecutive
// vertices that all carry the triangle's normal, and Indices is 0..n-1.
type Mesh struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Indices   []uint32
	Bounds    Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the normal and corners of triangle i.
func (m *Mesh) Triangle(i int) (n, a, b, c math.Vec3) {
	ia, ib, ic := m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
	return m.Normals[ia], m.Positions[ia], m.Positions[ib], m.Positions[ic]
}
