package formats

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	gomath "math"

	"github.com/Faultbox/voxelmesh/pkg/math"
)

// STL format errors.
var (
	ErrTruncatedSTL = errors.New("truncated STL data")
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50 // normal + 3 vertices (12 float32) + uint16 attribute
)

// STLTriangle is one facet of a binary STL file.
type STLTriangle struct {
	Normal    math.Vec3
	Vertices  [3]math.Vec3
	Attribute uint16
}

// STL is a parsed binary STL file.
type STL struct {
	Header    string
	Triangles []STLTriangle
}

// TriangleCount returns the number of facets.
func (s *STL) TriangleCount() int {
	return len(s.Triangles)
}

// Triangle returns the normal and corners of facet i.
func (s *STL) Triangle(i int) (n, a, b, c math.Vec3) {
	t := &s.Triangles[i]
	return t.Normal, t.Vertices[0], t.Vertices[1], t.Vertices[2]
}

// WriteSTL writes m as little-endian binary STL with name in the header.
func WriteSTL(w io.Writer, name string, m TriangleMesh) error {
	bw := bufio.NewWriter(w)

	var header [stlHeaderSize]byte
	copy(header[:], name)
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	count := m.TriangleCount()
	if err := binary.Write(bw, binary.LittleEndian, uint32(count)); err != nil {
		return err
	}

	var rec [stlTriangleSize]byte
	for i := range count {
		n, a, b, c := m.Triangle(i)
		putVec3(rec[0:], n)
		putVec3(rec[12:], a)
		putVec3(rec[24:], b)
		putVec3(rec[36:], c)
		binary.LittleEndian.PutUint16(rec[48:], 0)
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadSTL parses a binary STL stream.
func ReadSTL(r io.Reader) (*STL, error) {
	var header [stlHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrTruncatedSTL, err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: triangle count: %v", ErrTruncatedSTL, err)
	}

	s := &STL{Header: trimNull(header[:])}
	var rec [stlTriangleSize]byte
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, fmt.Errorf("%w: triangle %d of %d", ErrTruncatedSTL, i, count)
		}
		s.Triangles = append(s.Triangles, STLTriangle{
			Normal: getVec3(rec[0:]),
			Vertices: [3]math.Vec3{
				getVec3(rec[12:]),
				getVec3(rec[24:]),
				getVec3(rec[36:]),
			},
			Attribute: binary.LittleEndian.Uint16(rec[48:]),
		})
	}
	return s, nil
}

func putVec3(b []byte, v math.Vec3) {
	binary.LittleEndian.PutUint32(b[0:], gomath.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], gomath.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], gomath.Float32bits(v.Z))
}

func getVec3(b []byte) math.Vec3 {
	return math.Vec3{
		X: gomath.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		Y: gomath.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		Z: gomath.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}

// trimNull converts a null-padded byte field to a string.
func trimNull(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
