package formats

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes m as a Wavefront OBJ object named name. Every triangle gets
// its own three vertices and one normal, referenced as "f v//vn".
func WriteOBJ(w io.Writer, name string, m TriangleMesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# voxelmesh: %d triangles\n", m.TriangleCount())
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}

	count := m.TriangleCount()
	for i := range count {
		_, a, b, c := m.Triangle(i)
		for _, p := range [3][3]float32{a.Array(), b.Array(), c.Array()} {
			fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
		}
	}
	for i := range count {
		n, _, _, _ := m.Triangle(i)
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}

	// OBJ indices are 1-based
	for i := range count {
		v := i*3 + 1
		vn := i + 1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", v, vn, v+1, vn, v+2, vn)
	}

	return bw.Flush()
}
