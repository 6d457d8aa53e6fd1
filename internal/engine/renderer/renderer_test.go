package renderer

import (
	"testing"

	"github.com/Faultbox/voxelmesh/pkg/math"
	"github.com/Faultbox/voxelmesh/pkg/voxel"
)

func TestInterleave(t *testing.T) {
	m := &voxel.Mesh{
		Positions: []math.Vec3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}},
		Normals:   []math.Vec3{{X: 0, Y: 1, Z: 0}, {X: -1, Y: 0, Z: 0}},
		Indices:   []uint32{0, 1},
	}

	got := Interleave(m)
	want := []float32{1, 2, 3, 0, 1, 0, 4, 5, 6, -1, 0, 0}
	if len(got) != len(want) {
		t.Fatalf("expected %d floats, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("float %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestInterleaveBuiltMesh(t *testing.T) {
	g, err := voxel.NewGrid(voxel.Cube(2), math.Vec3{})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	g.Fill(true)
	m, err := voxel.BuildGrid(g)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}

	got := Interleave(m)
	if len(got) != m.VertexCount()*vertexStride {
		t.Errorf("expected %d floats, got %d", m.VertexCount()*vertexStride, len(got))
	}
}

func TestInterleaveNil(t *testing.T) {
	if got := Interleave(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
