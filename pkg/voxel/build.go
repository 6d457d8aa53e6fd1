package voxel

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/Faultbox/voxelmesh/pkg/math"
	"github.com/Faultbox/voxelmesh/pkg/noise"
)

// Params configures a full pipeline run.
type Params struct {
	Dims   Dims
	Origin math.Vec3
	Seed   int64
	Scale  float64

	// Octaves above 1 layer fractal noise; 0 and 1 both mean plain Perlin.
	Octaves     int
	Persistence float64
	Lacunarity  float64

	Workers int
}

// DefaultParams returns a 32^3 single-octave field at DefaultScale, seed 1.
func DefaultParams() Params {
	return Params{
		Dims:        Cube(32),
		Seed:        1,
		Scale:       DefaultScale,
		Octaves:     1,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Workers:     1,
	}
}

// Validate checks every parameter before any work starts.
func (p Params) Validate() error {
	if err := p.Dims.Validate(); err != nil {
		return err
	}
	if err := validateScale(p.Scale); err != nil {
		return err
	}
	if p.Octaves < 0 {
		return fmt.Errorf("%w: octaves %d", ErrInvalidOctaves, p.Octaves)
	}
	if p.Octaves > 1 && (p.Lacunarity <= 0 || gomath.IsNaN(p.Lacunarity)) {
		return fmt.Errorf("%w: lacunarity %v", ErrInvalidOctaves, p.Lacunarity)
	}
	return nil
}

// Sampler returns the noise field described by the parameters.
func (p Params) Sampler() Sampler {
	src := noise.New(p.Seed)
	if p.Octaves <= 1 {
		return src
	}
	return noise.Fractal{
		Source:      src,
		Octaves:     p.Octaves,
		Persistence: p.Persistence,
		Lacunarity:  p.Lacunarity,
	}
}

// Stats describes one pipeline run.
type Stats struct {
	Cells     int
	Occupied  int
	Quads     int
	Triangles int
	Vertices  int

	GenerateTime time.Duration
	MeshTime     time.Duration
	ShadeTime    time.Duration
}

// Total returns the time spent across all stages.
func (s Stats) Total() time.Duration {
	return s.GenerateTime + s.MeshTime + s.ShadeTime
}

// Build generates, meshes and shades a field in one call.
func Build(p Params) (*Mesh, error) {
	m, _, err := BuildWithStats(p)
	return m, err
}

// BuildWithStats is Build that also reports counts and stage timings.
func BuildWithStats(p Params) (*Mesh, Stats, error) {
	m, _, stats, err := BuildWithGrid(p)
	return m, stats, err
}

// BuildWithGrid is BuildWithStats that also returns the occupancy grid the
// mesh was built from.
func BuildWithGrid(p Params) (*Mesh, *Grid, Stats, error) {
	var stats Stats
	if err := p.Validate(); err != nil {
		return nil, nil, stats, err
	}
	opts := []Option{WithWorkers(p.Workers)}

	start := time.Now()
	grid, err := Generate(p.Dims, p.Origin, p.Sampler(), p.Scale, opts...)
	if err != nil {
		return nil, nil, stats, fmt.Errorf("generate: %w", err)
	}
	stats.GenerateTime = time.Since(start)
	stats.Cells = p.Dims.Cells()
	stats.Occupied = grid.Count()

	start = time.Now()
	raw := MeshGrid(grid, opts...)
	stats.MeshTime = time.Since(start)
	stats.Quads = raw.QuadCount()

	start = time.Now()
	mesh, err := FlatShade(raw)
	if err != nil {
		return nil, grid, stats, fmt.Errorf("shade: %w", err)
	}
	stats.ShadeTime = time.Since(start)
	stats.Triangles = mesh.TriangleCount()
	stats.Vertices = mesh.VertexCount()

	return mesh, grid, stats, nil
}

// BuildGrid meshes and shades an existing grid.
func BuildGrid(g *Grid, opts ...Option) (*Mesh, error) {
	return FlatShade(MeshGrid(g, opts...))
}
