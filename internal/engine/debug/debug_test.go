package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/voxelmesh/pkg/math"
)

func TestBoundsWireframe(t *testing.T) {
	lo, hi := math.V3(0, 0, 0), math.V3(2, 3, 4)
	v := BoundsWireframe(lo, hi, 0)

	if len(v) != BoundsVertexCount*3 {
		t.Fatalf("expected %d floats, got %d", BoundsVertexCount*3, len(v))
	}

	var total float32
	for i := 0; i < len(v); i += 6 {
		a := math.V3(v[i], v[i+1], v[i+2])
		b := math.V3(v[i+3], v[i+4], v[i+5])
		total += a.Distance(b)
	}
	// 4 edges along each axis
	if want := float32(4 * (2 + 3 + 4)); total != want {
		t.Errorf("expected total edge length %v, got %v", want, total)
	}
}

func TestBoundsWireframePadding(t *testing.T) {
	v := BoundsWireframe(math.V3(1, 1, 1), math.V3(0, 0, 0), 0.5)

	for i, f := range v {
		if f != -0.5 && f != 1.5 {
			t.Fatalf("float %d: expected -0.5 or 1.5, got %v", i, f)
		}
	}
}

func TestScreenshotSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "voxelmesh")
	s.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	// 1x2 image stored bottom row first: bottom red, top blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := s.Save(pixels, 1, 2)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(dir, "voxelmesh_2024-05-06_07-08-09.000.png"); path != want {
		t.Errorf("expected %s, got %s", want, path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	_, _, b, _ := img.At(0, 0).RGBA()
	if b == 0 {
		t.Error("expected top row to be blue after flip")
	}
	r, _, _, _ := img.At(0, 1).RGBA()
	if r == 0 {
		t.Error("expected bottom row to be red after flip")
	}
}

func TestScreenshotSizeMismatch(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "x")
	if _, err := s.Save(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected error for short pixel buffer")
	}
}
