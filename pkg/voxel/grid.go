package voxel

import (
	"github.com/Faultbox/voxelmesh/pkg/math"
)

// Grid is a dense occupancy field. Cell (x, y, z) lives at flat offset
// ((x*Height)+y)*Depth+z, so each X slab is one contiguous run.
type Grid struct {
	dims   Dims
	cells  []bool
	Origin math.Vec3 // world position of the centre of cell (0, 0, 0)
}

// NewGrid allocates an empty grid.
func NewGrid(dims Dims, origin math.Vec3) (*Grid, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	return &Grid{
		dims:   dims,
		cells:  make([]bool, dims.Cells()),
		Origin: origin,
	}, nil
}

// Dims returns the grid size.
func (g *Grid) Dims() Dims {
	return g.dims
}

// InBounds reports whether (x, y, z) is a cell of the grid.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 &&
		x < g.dims.Width && y < g.dims.Height && z < g.dims.Depth
}

// Index returns the flat offset of an in-bounds cell.
func (g *Grid) Index(x, y, z int) int {
	return (x*g.dims.Height+y)*g.dims.Depth + z
}

// Occupied reports whether (x, y, z) is solid. Coordinates outside the grid
// are empty, which is what exposes the faces on the grid boundary.
func (g *Grid) Occupied(x, y, z int) bool {
	if !g.InBounds(x, y, z) {
		return false
	}
	return g.cells[g.Index(x, y, z)]
}

// Set marks a cell solid or empty. Out-of-range coordinates panic.
func (g *Grid) Set(x, y, z int, solid bool) {
	if !g.InBounds(x, y, z) {
		panic("voxel: Set out of range")
	}
	g.cells[g.Index(x, y, z)] = solid
}

// Fill sets every cell to solid.
func (g *Grid) Fill(solid bool) {
	for i := range g.cells {
		g.cells[i] = solid
	}
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Equal reports whether two grids have the same size, origin and occupancy.
func (g *Grid) Equal(other *Grid) bool {
	if g.dims != other.dims || g.Origin != other.Origin {
		return false
	}
	for i, c := range g.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// Center returns the world position of a cell centre.
func (g *Grid) Center(x, y, z int) math.Vec3 {
	return g.Origin.Add(math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
}
