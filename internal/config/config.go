// Package config handles voxelmesh configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/voxelmesh/pkg/formats"
	"github.com/Faultbox/voxelmesh/pkg/math"
	"github.com/Faultbox/voxelmesh/pkg/voxel"
)

// Config holds all settings shared by the voxelmesh commands.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Export  ExportConfig  `yaml:"export"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// GridConfig describes the occupancy field to generate.
type GridConfig struct {
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	Depth       int        `yaml:"depth"`
	Origin      [3]float32 `yaml:"origin"` // centre of cell (0,0,0)
	Seed        int64      `yaml:"seed"`
	Scale       float64    `yaml:"scale"`
	Octaves     int        `yaml:"octaves"`
	Persistence float64    `yaml:"persistence"`
	Lacunarity  float64    `yaml:"lacunarity"`
	Workers     int        `yaml:"workers"` // goroutines for generation and meshing
}

// ExportConfig holds mesh file output settings.
type ExportConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // obj or stl
}

// ViewerConfig holds display settings for voxelview.
type ViewerConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FOV        float32    `yaml:"fov"` // vertical, degrees
	Color      [3]float32 `yaml:"color"`
	LightDir   [3]float32 `yaml:"light_dir"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// ServerConfig holds voxelserve settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	MaxCells     int           `yaml:"max_cells"` // largest grid a request may ask for
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	p := voxel.DefaultParams()
	return &Config{
		Grid: GridConfig{
			Width:       p.Dims.Width,
			Height:      p.Dims.Height,
			Depth:       p.Dims.Depth,
			Seed:        p.Seed,
			Scale:       p.Scale,
			Octaves:     p.Octaves,
			Persistence: p.Persistence,
			Lacunarity:  p.Lacunarity,
			Workers:     p.Workers,
		},
		Export: ExportConfig{
			Path:   "",
			Format: "obj",
		},
		Viewer: ViewerConfig{
			Width:    1280,
			Height:   720,
			VSync:    true,
			FOV:      60,
			Color:    [3]float32{0.8, 0.7, 0.6},
			LightDir: [3]float32{-0.4, -1.0, -0.3},

			ScreenshotDir: "screenshots",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			MaxCells:     128 * 128 * 128,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params converts the grid section into pipeline parameters.
func (c *Config) Params() voxel.Params {
	g := c.Grid
	return voxel.Params{
		Dims:        voxel.Dims{Width: g.Width, Height: g.Height, Depth: g.Depth},
		Origin:      math.Vec3{X: g.Origin[0], Y: g.Origin[1], Z: g.Origin[2]},
		Seed:        g.Seed,
		Scale:       g.Scale,
		Octaves:     g.Octaves,
		Persistence: g.Persistence,
		Lacunarity:  g.Lacunarity,
		Workers:     g.Workers,
	}
}

// Validate reports the first setting that would make a command fail.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if _, err := formats.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer: window size %dx%d must be positive", c.Viewer.Width, c.Viewer.Height)
	}
	if c.Server.MaxCells <= 0 {
		return fmt.Errorf("server: max_cells must be positive, got %d", c.Server.MaxCells)
	}
	return nil
}
