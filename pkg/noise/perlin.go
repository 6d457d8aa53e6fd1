// Package noise provides seeded coherent noise for voxel field generation.
package noise

import (
	"math"
	"math/rand/v2"
)

// Source is a continuous scalar field in three dimensions.
type Source interface {
	Sample(x, y, z float64) float64
}

// Perlin is improved gradient noise (Perlin 2002) over a seeded permutation
// table. The zero value is not usable; construct with New.
//
// Values are roughly in [-1, 1], exactly 0 on integer lattice points, and the
// field is C1-continuous across cell boundaries. A Perlin is read-only after
// construction and safe for concurrent use.
type Perlin struct {
	seed int64
	perm [512]uint8
}

// New returns Perlin noise whose permutation is shuffled deterministically
// from seed.
func New(seed int64) *Perlin {
	p := &Perlin{seed: seed}

	var table [256]uint8
	for i := range table {
		table[i] = uint8(i)
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9E3779B97F4A7C15))
	rng.Shuffle(len(table), func(i, j int) {
		table[i], table[j] = table[j], table[i]
	})

	for i := range p.perm {
		p.perm[i] = table[i&255]
	}
	return p
}

// Seed returns the seed the permutation was built from.
func (p *Perlin) Seed() int64 {
	return p.seed
}

// Sample evaluates the noise at (x, y, z).
func (p *Perlin) Sample(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)

	// Lattice cell, wrapped into the permutation table
	xi := int(fx) & 255
	yi := int(fy) & 255
	zi := int(fz) & 255

	// Position inside the cell
	x -= fx
	y -= fy
	z -= fz

	u := fade(x)
	v := fade(y)
	w := fade(z)

	perm := &p.perm
	a := int(perm[xi]) + yi
	aa := int(perm[a]) + zi
	ab := int(perm[a+1]) + zi
	b := int(perm[xi+1]) + yi
	ba := int(perm[b]) + zi
	bb := int(perm[b+1]) + zi

	return lerp(w,
		lerp(v,
			lerp(u, grad(perm[aa], x, y, z), grad(perm[ba], x-1, y, z)),
			lerp(u, grad(perm[ab], x, y-1, z), grad(perm[bb], x-1, y-1, z))),
		lerp(v,
			lerp(u, grad(perm[aa+1], x, y, z-1), grad(perm[ba+1], x-1, y, z-1)),
			lerp(u, grad(perm[ab+1], x, y-1, z-1), grad(perm[bb+1], x-1, y-1, z-1))))
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad dots (x, y, z) with one of the 12 cube-edge gradients picked by hash.
func grad(hash uint8, x, y, z float64) float64 {
	h := hash & 15

	u := y
	if h < 8 {
		u = x
	}

	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}

	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
