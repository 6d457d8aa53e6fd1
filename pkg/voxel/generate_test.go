package voxel

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/voxelmesh/pkg/math"
)

func TestGenerateSolidSampler(t *testing.T) {
	g, err := Generate(Dims{Width: 3, Height: 4, Depth: 5}, math.Vec3{}, Solid, DefaultScale)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if g.Count() != 60 {
		t.Errorf("expected 60 occupied cells, got %d", g.Count())
	}
}

func TestGenerateThresholdIsStrict(t *testing.T) {
	zero := SamplerFunc(func(_, _, _ float64) float64 { return 0 })
	g, err := Generate(Cube(4), math.Vec3{}, zero, DefaultScale)
	if err != nil {
		t.Fatal(err)
	}
	if g.Count() != 0 {
		t.Errorf("expected a zero field to be empty, got %d occupied", g.Count())
	}
}

func TestGenerateSamplesScaledCoordinates(t *testing.T) {
	// Occupied only where the scaled x is below 0.25: columns 0, 1 and 2.
	s := SamplerFunc(func(x, _, _ float64) float64 {
		if x < 0.25 {
			return 1
		}
		return -1
	})
	g, err := Generate(Dims{Width: 6, Height: 2, Depth: 2}, math.Vec3{}, s, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	for x := range 6 {
		want := x < 3
		if got := g.Occupied(x, 1, 1); got != want {
			t.Errorf("column %d: expected occupied=%v, got %v", x, want, got)
		}
	}
}

func TestGenerateNoiseDeterministic(t *testing.T) {
	dims := Dims{Width: 20, Height: 16, Depth: 12}
	a, err := GenerateNoise(dims, math.Vec3{}, 1, DefaultScale)
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateNoise(dims, math.Vec3{}, 1, DefaultScale)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("expected identical grids for the same seed")
	}

	n := a.Count()
	if n == 0 || n == dims.Cells() {
		t.Errorf("expected a mix of solid and empty cells, got %d of %d", n, dims.Cells())
	}
}

func TestGenerateWorkersMatchSequential(t *testing.T) {
	dims := Dims{Width: 23, Height: 9, Depth: 14}
	seq, err := GenerateNoise(dims, math.Vec3{}, 77, DefaultScale)
	if err != nil {
		t.Fatal(err)
	}
	for _, workers := range []int{2, 3, 8, 64} {
		par, err := GenerateNoise(dims, math.Vec3{}, 77, DefaultScale, WithWorkers(workers))
		if err != nil {
			t.Fatal(err)
		}
		if !seq.Equal(par) {
			t.Errorf("workers=%d produced a different grid", workers)
		}
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	if _, err := Generate(Dims{Width: 0, Height: 1, Depth: 1}, math.Vec3{}, Solid, DefaultScale); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
	for _, scale := range []float64{0, -0.1, gomath.NaN(), gomath.Inf(1)} {
		if _, err := Generate(Cube(2), math.Vec3{}, Solid, scale); !errors.Is(err, ErrInvalidScale) {
			t.Errorf("scale %v: expected ErrInvalidScale, got %v", scale, err)
		}
	}
}

func TestSplitSlabs(t *testing.T) {
	tests := []struct {
		width, workers int
		want           int
	}{
		{10, 1, 1},
		{10, 3, 3},
		{10, 4, 4},
		{3, 8, 3},
		{1, 4, 1},
	}
	for _, tt := range tests {
		slabs := splitSlabs(tt.width, tt.workers)
		if len(slabs) != tt.want {
			t.Errorf("splitSlabs(%d, %d): expected %d slabs, got %d", tt.width, tt.workers, tt.want, len(slabs))
		}
		next := 0
		for _, s := range slabs {
			if s.x0 != next || s.x1 <= s.x0 {
				t.Errorf("splitSlabs(%d, %d): bad slab %+v", tt.width, tt.workers, s)
			}
			next = s.x1
		}
		if next != tt.width {
			t.Errorf("splitSlabs(%d, %d): covered %d columns", tt.width, tt.workers, next)
		}
	}
}

func TestGenerateRecoversSamplerPanic(t *testing.T) {
	boom := SamplerFunc(func(x, _, _ float64) float64 {
		if x > 0.5 {
			panic("sampler failed")
		}
		return 1
	})
	for _, workers := range []int{1, 4} {
		g, err := Generate(Cube(8), math.Vec3{}, boom, DefaultScale, WithWorkers(workers))
		if !errors.Is(err, ErrWorkerPanic) {
			t.Errorf("workers=%d: expected %v, got %v", workers, ErrWorkerPanic, err)
		}
		if g != nil {
			t.Errorf("workers=%d: expected no grid after a panic", workers)
		}
	}
}
