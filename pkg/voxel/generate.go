package voxel

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/voxelmesh/pkg/math"
	"github.com/Faultbox/voxelmesh/pkg/noise"
)

// DefaultScale is the lattice-to-noise scale the generator uses unless told
// otherwise: neighbouring cells sample noise 0.1 apart.
const DefaultScale = 0.1

// Sampler is a scalar field over noise space. It must be safe for concurrent
// reads when generation runs with more than one worker.
type Sampler interface {
	Sample(x, y, z float64) float64
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(x, y, z float64) float64

// Sample calls f(x, y, z).
func (f SamplerFunc) Sample(x, y, z float64) float64 {
	return f(x, y, z)
}

// Solid is a Sampler that is positive everywhere.
var Solid Sampler = SamplerFunc(func(_, _, _ float64) float64 { return 1 })

// Generate fills a new grid: cell (x, y, z) is occupied iff
// sampler.Sample(x*scale, y*scale, z*scale) > 0.
func Generate(dims Dims, origin math.Vec3, sampler Sampler, scale float64, opts ...Option) (*Grid, error) {
	if err := validateScale(scale); err != nil {
		return nil, err
	}
	g, err := NewGrid(dims, origin)
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	err = forEachSlab(splitSlabs(dims.Width, o.workers), o.workers, func(_ int, s slab) {
		fillSlab(g, sampler, scale, s)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GenerateNoise fills a grid from single-octave Perlin noise seeded with seed.
func GenerateNoise(dims Dims, origin math.Vec3, seed int64, scale float64, opts ...Option) (*Grid, error) {
	return Generate(dims, origin, noise.New(seed), scale, opts...)
}

// fillSlab writes only the cells of columns [s.x0, s.x1), a contiguous run of
// the flat buffer no other slab touches.
func fillSlab(g *Grid, sampler Sampler, scale float64, s slab) {
	d := g.dims
	for x := s.x0; x < s.x1; x++ {
		for y := range d.Height {
			for z := range d.Depth {
				v := sampler.Sample(float64(x)*scale, float64(y)*scale, float64(z)*scale)
				g.cells[g.Index(x, y, z)] = v > 0
			}
		}
	}
}

func validateScale(scale float64) error {
	if scale <= 0 || gomath.IsNaN(scale) || gomath.IsInf(scale, 0) {
		return fmt.Errorf("%w: %v (must be a positive finite number)", ErrInvalidScale, scale)
	}
	return nil
}
