package main

import (
	"bytes"
	"testing"

	"github.com/Faultbox/voxelmesh/pkg/formats"
	"github.com/Faultbox/voxelmesh/pkg/math"
	"github.com/Faultbox/voxelmesh/pkg/voxel"
)

func TestRenderSlice(t *testing.T) {
	g, err := voxel.NewGrid(voxel.Dims{Width: 3, Height: 2, Depth: 2}, math.Vec3{})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	g.Set(0, 1, 0, true)
	g.Set(2, 1, 1, true)
	g.Set(1, 0, 0, true)

	want := "#..\n..#\n"
	if got := renderSlice(g, 1); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSTLBoundsRoundTrip(t *testing.T) {
	g, err := voxel.NewGrid(voxel.Cube(2), math.V3(10, 0, 0))
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	g.Fill(true)
	mesh, err := voxel.BuildGrid(g)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}

	var buf bytes.Buffer
	if err := formats.WriteSTL(&buf, "test", mesh); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}
	stl, err := formats.ReadSTL(&buf)
	if err != nil {
		t.Fatalf("ReadSTL: %v", err)
	}

	lo, hi := stlBounds(stl)
	if lo != mesh.Bounds.Min || hi != mesh.Bounds.Max {
		t.Errorf("expected bounds %v..%v, got %v..%v", mesh.Bounds.Min, mesh.Bounds.Max, lo, hi)
	}
}

func TestPercent(t *testing.T) {
	if got := percent(1, 4); got != 25 {
		t.Errorf("expected 25, got %v", got)
	}
	if got := percent(3, 0); got != 0 {
		t.Errorf("expected 0 for empty grid, got %v", got)
	}
}
