package config

import (
	"flag"
	"fmt"
	"strconv"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSize       = flag.Int("size", 0, "Grid size in cells along every axis")
	flagSeed       = flag.String("seed", "", "Noise seed")
	flagScale      = flag.Float64("scale", 0, "Noise scale per cell")
	flagWorkers    = flag.Int("workers", 0, "Goroutines for generation and meshing")
	flagOut        = flag.String("out", "", "Export path")
	flagFormat     = flag.String("format", "", "Export format (obj, stl)")
	flagAddr       = flag.String("addr", "", "Server listen address")
	flagWindowed   = flag.Bool("windowed", false, "Run the viewer in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run the viewer in fullscreen mode")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSize > 0 {
		cfg.Grid.Width = *flagSize
		cfg.Grid.Height = *flagSize
		cfg.Grid.Depth = *flagSize
	}
	if *flagSeed != "" {
		seed, err := strconv.ParseInt(*flagSeed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid -seed %q: %w", *flagSeed, err)
		}
		cfg.Grid.Seed = seed
	}
	if *flagScale > 0 {
		cfg.Grid.Scale = *flagScale
	}
	if *flagWorkers > 0 {
		cfg.Grid.Workers = *flagWorkers
	}
	if *flagOut != "" {
		cfg.Export.Path = *flagOut
	}
	if *flagFormat != "" {
		cfg.Export.Format = *flagFormat
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	if *flagWindowed {
		cfg.Viewer.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	return nil
}
