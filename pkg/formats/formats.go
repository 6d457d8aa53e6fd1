// Package formats writes meshes to interchange formats.
package formats

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Faultbox/voxelmesh/pkg/math"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown mesh format")

// TriangleMesh is a triangle list with one normal per triangle.
type TriangleMesh interface {
	TriangleCount() int
	Triangle(i int) (n, a, b, c math.Vec3)
}

// Format is a supported output format.
type Format int

const (
	FormatOBJ Format = iota
	FormatSTL
)

// ParseFormat maps "obj" or "stl" (any case, optional leading dot) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "obj":
		return FormatOBJ, nil
	case "stl":
		return FormatSTL, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatOBJ:
		return "obj"
	case FormatSTL:
		return "stl"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// ContentType returns the MIME type used when serving this format.
func (f Format) ContentType() string {
	if f == FormatOBJ {
		return "model/obj"
	}
	return "model/stl"
}

// Write encodes m to w in this format. name ends up in the file header.
func (f Format) Write(w io.Writer, name string, m TriangleMesh) error {
	switch f {
	case FormatOBJ:
		return WriteOBJ(w, name, m)
	case FormatSTL:
		return WriteSTL(w, name, m)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}
