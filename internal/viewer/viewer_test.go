package viewer

import (
	"testing"
	"time"

	"github.com/Faultbox/voxelmesh/pkg/voxel"
)

func TestWindowTitle(t *testing.T) {
	p := voxel.DefaultParams()
	p.Dims = voxel.Dims{Width: 4, Height: 5, Depth: 6}
	p.Seed = 7
	s := voxel.Stats{Triangles: 120, GenerateTime: 2 * time.Millisecond, MeshTime: time.Millisecond}

	want := "voxelmesh - 4x5x6 seed 7 - 120 triangles (3ms)"
	if got := windowTitle(p, s); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
