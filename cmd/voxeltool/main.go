// voxeltool is a CLI utility for generating and exporting voxel meshes.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/voxelmesh/internal/config"
	"github.com/Faultbox/voxelmesh/pkg/formats"
	"github.com/Faultbox/voxelmesh/pkg/math"
	"github.com/Faultbox/voxelmesh/pkg/voxel"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "build":
		err = cmdBuild(args)
	case "export", "x":
		err = cmdExport(args)
	case "slice":
		err = cmdSlice(args)
	case "inspect":
		err = cmdInspect(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`voxeltool - voxel noise field mesher

Usage:
  voxeltool <command> [options]

Commands:
  build   [grid options]                   Build a mesh and print statistics
  export  [grid options] [-format f] <out> Write the mesh as OBJ or STL
  slice   [grid options] [-y layer]        Print one Y layer of the occupancy grid
  inspect <file.stl>                       Show triangle count and bounds of an STL file

Grid options:
  -config path   YAML config providing defaults
  -size n        Cells along every axis
  -width, -height, -depth n
  -seed n        Noise seed
  -scale s       Noise scale per cell
  -octaves n     Fractal octaves (1 = plain Perlin)
  -workers n     Goroutines for generation and meshing

Examples:
  voxeltool build -size 64 -seed 7
  voxeltool export -size 32 terrain.obj
  voxeltool slice -size 24 -y 12`)
}

// gridFlags registers the shared grid options on fs. The returned function
// resolves them on top of the loaded config after fs.Parse.
func gridFlags(fs *flag.FlagSet) func() (*config.Config, error) {
	cfgPath := fs.String("config", "", "Path to config file")
	size := fs.Int("size", 0, "Cells along every axis")
	width := fs.Int("width", 0, "Cells along X")
	height := fs.Int("height", 0, "Cells along Y")
	depth := fs.Int("depth", 0, "Cells along Z")
	seed := fs.Int64("seed", 0, "Noise seed")
	scale := fs.Float64("scale", 0, "Noise scale per cell")
	octaves := fs.Int("octaves", 0, "Fractal octaves")
	workers := fs.Int("workers", 0, "Goroutines for generation and meshing")

	return func() (*config.Config, error) {
		cfg, err := config.LoadFile(*cfgPath)
		if err != nil {
			return nil, err
		}
		g := &cfg.Grid
		if *size > 0 {
			g.Width, g.Height, g.Depth = *size, *size, *size
		}
		if *width > 0 {
			g.Width = *width
		}
		if *height > 0 {
			g.Height = *height
		}
		if *depth > 0 {
			g.Depth = *depth
		}
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "seed" {
				g.Seed = *seed
			}
		})
		if *scale > 0 {
			g.Scale = *scale
		}
		if *octaves > 0 {
			g.Octaves = *octaves
		}
		if *workers > 0 {
			g.Workers = *workers
		}
		return cfg, nil
	}
}

func cmdBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	resolve := gridFlags(fs)
	fs.Parse(args)

	cfg, err := resolve()
	if err != nil {
		return err
	}
	p := cfg.Params()
	mesh, stats, err := voxel.BuildWithStats(p)
	if err != nil {
		return err
	}
	printStats(p, mesh, stats)
	return nil
}

func printStats(p voxel.Params, mesh *voxel.Mesh, s voxel.Stats) {
	fmt.Printf("Grid:      %s (%d cells)\n", p.Dims, s.Cells)
	fmt.Printf("Seed:      %d\n", p.Seed)
	fmt.Printf("Occupied:  %d (%.1f%%)\n", s.Occupied, percent(s.Occupied, s.Cells))
	fmt.Printf("Quads:     %d\n", s.Quads)
	fmt.Printf("Triangles: %d\n", s.Triangles)
	fmt.Printf("Vertices:  %d\n", s.Vertices)
	if s.Triangles > 0 {
		fmt.Printf("Bounds:    %v .. %v\n", fmtVec(mesh.Bounds.Min), fmtVec(mesh.Bounds.Max))
	}
	fmt.Println()
	fmt.Printf("Generate:  %v\n", s.GenerateTime)
	fmt.Printf("Mesh:      %v\n", s.MeshTime)
	fmt.Printf("Shade:     %v\n", s.ShadeTime)
	fmt.Printf("Total:     %v\n", s.Total())
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

func fmtVec(v math.Vec3) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	resolve := gridFlags(fs)
	format := fs.String("format", "", "Output format (obj, stl); defaults to the file extension")
	fs.Parse(args)

	cfg, err := resolve()
	if err != nil {
		return err
	}

	out := cfg.Export.Path
	if fs.NArg() > 0 {
		out = fs.Arg(0)
	}
	if out == "" {
		return fmt.Errorf("usage: voxeltool export [options] <output>")
	}

	name := *format
	if name == "" {
		name = filepath.Ext(out)
	}
	if name == "" {
		name = cfg.Export.Format
	}
	ff, err := formats.ParseFormat(name)
	if err != nil {
		return err
	}

	mesh, stats, err := voxel.BuildWithStats(cfg.Params())
	if err != nil {
		return err
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := ff.Write(w, strings.TrimSuffix(filepath.Base(out), filepath.Ext(out)), mesh); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", ff, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%s, %d triangles, %v)\n", out, ff, stats.Triangles, stats.Total())
	return nil
}

func cmdSlice(args []string) error {
	fs := flag.NewFlagSet("slice", flag.ExitOnError)
	resolve := gridFlags(fs)
	layer := fs.Int("y", -1, "Layer to print (default: middle)")
	fs.Parse(args)

	cfg, err := resolve()
	if err != nil {
		return err
	}
	p := cfg.Params()
	if err := p.Validate(); err != nil {
		return err
	}
	grid, err := voxel.Generate(p.Dims, p.Origin, p.Sampler(), p.Scale, voxel.WithWorkers(p.Workers))
	if err != nil {
		return err
	}

	y := *layer
	if y < 0 {
		y = p.Dims.Height / 2
	}
	if y >= p.Dims.Height {
		return fmt.Errorf("layer %d outside grid height %d", y, p.Dims.Height)
	}

	fmt.Printf("Layer y=%d of %s, seed %d (rows z, columns x)\n", y, p.Dims, p.Seed)
	fmt.Print(renderSlice(grid, y))
	return nil
}

// renderSlice draws one Y layer, '#' for occupied and '.' for empty.
func renderSlice(g *voxel.Grid, y int) string {
	d := g.Dims()
	var sb strings.Builder
	for z := 0; z < d.Depth; z++ {
		for x := 0; x < d.Width; x++ {
			if g.Occupied(x, y, z) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cmdInspect(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: voxeltool inspect <file.stl>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	stl, err := formats.ReadSTL(bufio.NewReader(f))
	if err != nil {
		return err
	}

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Header:    %s\n", stl.Header)
	fmt.Printf("Triangles: %d\n", stl.TriangleCount())
	if stl.TriangleCount() > 0 {
		lo, hi := stlBounds(stl)
		fmt.Printf("Bounds:    %v .. %v\n", fmtVec(lo), fmtVec(hi))
	}
	return nil
}

func stlBounds(s *formats.STL) (lo, hi math.Vec3) {
	for i := range s.TriangleCount() {
		_, a, b, c := s.Triangle(i)
		if i == 0 {
			lo, hi = a, a
		}
		for _, p := range []math.Vec3{a, b, c} {
			lo = lo.Min(p)
			hi = hi.Max(p)
		}
	}
	return lo, hi
}
