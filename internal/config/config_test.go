package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/voxelmesh/pkg/formats"
	"github.com/Faultbox/voxelmesh/pkg/math"
	"github.com/Faultbox/voxelmesh/pkg/voxel"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Grid.Width != 32 || cfg.Grid.Height != 32 || cfg.Grid.Depth != 32 {
		t.Errorf("expected 32^3 grid, got %dx%dx%d", cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.Depth)
	}
	if cfg.Grid.Scale != 0.1 {
		t.Errorf("expected scale 0.1, got %v", cfg.Grid.Scale)
	}
	if cfg.Grid.Seed != 1 {
		t.Errorf("expected seed 1, got %d", cfg.Grid.Seed)
	}
	if cfg.Grid.Workers != 1 {
		t.Errorf("expected 1 worker, got %d", cfg.Grid.Workers)
	}

	if cfg.Export.Format != "obj" {
		t.Errorf("expected obj export, got %s", cfg.Export.Format)
	}

	if cfg.Viewer.Width != 1280 || cfg.Viewer.Height != 720 {
		t.Errorf("expected 1280x720 viewer, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if !cfg.Viewer.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("expected server addr 127.0.0.1:8080, got %s", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("expected read timeout 10s, got %v", cfg.Server.ReadTimeout)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestParams(t *testing.T) {
	cfg := Default()
	cfg.Grid.Width = 5
	cfg.Grid.Height = 6
	cfg.Grid.Depth = 7
	cfg.Grid.Origin = [3]float32{1, 2, 3}
	cfg.Grid.Seed = 99
	cfg.Grid.Workers = 4

	p := cfg.Params()
	if p.Dims != (voxel.Dims{Width: 5, Height: 6, Depth: 7}) {
		t.Errorf("unexpected dims %s", p.Dims)
	}
	if p.Origin != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("unexpected origin %v", p.Origin)
	}
	if p.Seed != 99 || p.Workers != 4 || p.Scale != 0.1 {
		t.Errorf("unexpected params %+v", p)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		is     error
	}{
		{"zero depth", func(c *Config) { c.Grid.Depth = 0 }, voxel.ErrInvalidDimensions},
		{"negative scale", func(c *Config) { c.Grid.Scale = -1 }, voxel.ErrInvalidScale},
		{"bad format", func(c *Config) { c.Export.Format = "fbx" }, formats.ErrUnknownFormat},
		{"bad window", func(c *Config) { c.Viewer.Width = 0 }, nil},
		{"bad max cells", func(c *Config) { c.Server.MaxCells = 0 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("expected %v, got %v", tt.is, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "voxelmesh.yaml")

	yamlContent := `
grid:
  width: 64
  height: 48
  depth: 16
  origin: [10, 0, -5]
  seed: 1234
  scale: 0.05
  octaves: 3
  workers: 8

export:
  path: "out/terrain.stl"
  format: stl

viewer:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  color: [0.2, 0.4, 0.6]

server:
  addr: ":9000"
  max_cells: 1000
  read_timeout: 5s

logging:
  level: "debug"
  log_file: "voxelmesh.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Grid.Width != 64 || cfg.Grid.Height != 48 || cfg.Grid.Depth != 16 {
		t.Errorf("unexpected grid size %dx%dx%d", cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.Depth)
	}
	if cfg.Grid.Origin != [3]float32{10, 0, -5} {
		t.Errorf("unexpected origin %v", cfg.Grid.Origin)
	}
	if cfg.Grid.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", cfg.Grid.Seed)
	}
	if cfg.Grid.Scale != 0.05 {
		t.Errorf("expected scale 0.05, got %v", cfg.Grid.Scale)
	}
	if cfg.Grid.Octaves != 3 || cfg.Grid.Workers != 8 {
		t.Errorf("expected 3 octaves and 8 workers, got %d and %d", cfg.Grid.Octaves, cfg.Grid.Workers)
	}
	// Keys absent from the file keep their defaults
	if cfg.Grid.Lacunarity != 2.0 {
		t.Errorf("expected default lacunarity 2.0, got %v", cfg.Grid.Lacunarity)
	}

	if cfg.Export.Path != "out/terrain.stl" || cfg.Export.Format != "stl" {
		t.Errorf("unexpected export %+v", cfg.Export)
	}

	if !cfg.Viewer.Fullscreen || cfg.Viewer.VSync {
		t.Errorf("unexpected viewer flags %+v", cfg.Viewer)
	}
	if cfg.Viewer.Color != [3]float32{0.2, 0.4, 0.6} {
		t.Errorf("unexpected color %v", cfg.Viewer.Color)
	}

	if cfg.Server.Addr != ":9000" || cfg.Server.MaxCells != 1000 {
		t.Errorf("unexpected server %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("expected read timeout 5s, got %v", cfg.Server.ReadTimeout)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "voxelmesh.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
grid:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/voxelmesh.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "voxelmesh.yaml"), []byte("grid:\n  width: 8\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find voxelmesh.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "size flag",
			setup: func() { *flagSize = 12 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Grid.Width != 12 || cfg.Grid.Height != 12 || cfg.Grid.Depth != 12 {
					t.Errorf("expected 12^3 grid, got %dx%dx%d", cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.Depth)
				}
			},
			teardown: func() { *flagSize = 0 },
		},
		{
			name:  "seed flag accepts zero",
			setup: func() { *flagSeed = "0" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Grid.Seed != 0 {
					t.Errorf("expected seed 0, got %d", cfg.Grid.Seed)
				}
			},
			teardown: func() { *flagSeed = "" },
		},
		{
			name:  "export flags",
			setup: func() { *flagOut = "mesh.stl"; *flagFormat = "stl" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.Path != "mesh.stl" || cfg.Export.Format != "stl" {
					t.Errorf("unexpected export %+v", cfg.Export)
				}
			},
			teardown: func() { *flagOut = ""; *flagFormat = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "workers and addr flags",
			setup: func() { *flagWorkers = 6; *flagAddr = ":7000" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Grid.Workers != 6 || cfg.Server.Addr != ":7000" {
					t.Errorf("unexpected workers %d addr %s", cfg.Grid.Workers, cfg.Server.Addr)
				}
			},
			teardown: func() { *flagWorkers = 0; *flagAddr = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			if err := applyFlags(cfg); err != nil {
				t.Fatalf("applyFlags failed: %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlagsBadSeed(t *testing.T) {
	*flagSeed = "twelve"
	defer func() { *flagSeed = "" }()

	if err := applyFlags(Default()); err == nil {
		t.Error("expected error for non-numeric seed")
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "voxelmesh.yaml")
	yamlContent := `
grid:
  width: 40
  seed: 7
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagSeed = "99"
	defer func() {
		*flagConfig = ""
		*flagSeed = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Seed comes from the flag, width from the file
	if cfg.Grid.Seed != 99 {
		t.Errorf("expected seed 99 from flag, got %d", cfg.Grid.Seed)
	}
	if cfg.Grid.Width != 40 {
		t.Errorf("expected width 40 from file, got %d", cfg.Grid.Width)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "voxelmesh.yaml")

	cfg := Default()
	cfg.Grid.Seed = 4242
	cfg.Export.Format = "stl"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Grid.Seed != 4242 || loaded.Export.Format != "stl" {
		t.Errorf("saved values not restored: seed %d format %s", loaded.Grid.Seed, loaded.Export.Format)
	}
}

func TestLoadFileIgnoresFlags(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "voxelmesh.yaml")
	if err := os.WriteFile(configPath, []byte("grid:\n  seed: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagSeed = "50"
	defer func() { *flagSeed = "" }()

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Grid.Seed != 3 {
		t.Errorf("expected seed 3 from file, got %d", cfg.Grid.Seed)
	}
}
