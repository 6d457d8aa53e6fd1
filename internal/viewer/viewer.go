// Package viewer shows a generated voxel mesh in an interactive window.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelmesh/internal/config"
	"github.com/Faultbox/voxelmesh/internal/engine/camera"
	"github.com/Faultbox/voxelmesh/internal/engine/debug"
	"github.com/Faultbox/voxelmesh/internal/engine/input"
	"github.com/Faultbox/voxelmesh/internal/engine/lighting"
	"github.com/Faultbox/voxelmesh/internal/engine/picking"
	"github.com/Faultbox/voxelmesh/internal/engine/renderer"
	"github.com/Faultbox/voxelmesh/internal/engine/window"
	"github.com/Faultbox/voxelmesh/pkg/math"
	"github.com/Faultbox/voxelmesh/pkg/voxel"
)

const (
	title = "voxelmesh"

	// degrees per second while an arrow key is held
	sunSpeed = 90
)

// result is one finished background build.
type result struct {
	params voxel.Params
	mesh   *voxel.Mesh
	grid   *voxel.Grid
	stats  voxel.Stats
	err    error
}

// Viewer is the window, renderer and camera around one mesh.
type Viewer struct {
	cfg config.ViewerConfig
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	sun      lighting.Sun
	shots    *debug.Screenshots
	capture  bool

	params   voxel.Params
	building bool
	results  chan result
	bounds   *voxel.Bounds // of the mesh on screen
	grid     *voxel.Grid
}

// New opens the window and starts building the first mesh.
func New(cfg *config.Config, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Viewer{
		cfg:     cfg.Viewer,
		log:     log,
		input:   input.New(),
		camera:  camera.NewOrbitCamera(),
		sun:     lighting.FromLightDir(vec3(cfg.Viewer.LightDir)),
		shots:   debug.NewScreenshots(cfg.Viewer.ScreenshotDir, title),
		params:  cfg.Params(),
		results: make(chan result, 1),
	}
	if err := v.params.Validate(); err != nil {
		return nil, err
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:    width,
		Height:   height,
		Color:    vec3(cfg.Viewer.Color),
		LightDir: v.sun.LightDir(),
		Ambient:  math.V3(0.25, 0.25, 0.3),
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.rebuild()
	return v, nil
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// rebuild starts a background build for the current params unless one is
// already running.
func (v *Viewer) rebuild() {
	if v.building {
		return
	}
	v.building = true
	p := v.params
	v.log.Info("building mesh", zap.Stringer("dims", p.Dims), zap.Int64("seed", p.Seed))
	go func() {
		mesh, grid, stats, err := voxel.BuildWithGrid(p)
		v.results <- result{params: p, mesh: mesh, grid: grid, stats: stats, err: err}
	}()
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (v *Viewer) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")
	for {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			return nil
		}
		if quit := v.handleEvents(); quit {
			return nil
		}
		v.handleKeys(dt)

		select {
		case r := <-v.results:
			v.building = false
			v.apply(r)
		default:
		}

		v.renderer.Draw(v.camera.ViewMatrix(), v.camera.ProjectionMatrix(v.cfg.FOV, v.renderer.Aspect()))
		if v.capture {
			v.capture = false
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

func (v *Viewer) handleEvents() (quit bool) {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			width, height := v.window.DrawableSize()
			v.renderer.Resize(width, height)
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				return true
			case sdl.SCANCODE_R:
				v.params.Seed++
				v.rebuild()
			case sdl.SCANCODE_B:
				v.renderer.ShowBounds = !v.renderer.ShowBounds
			case sdl.SCANCODE_P:
				v.capture = true
			case sdl.SCANCODE_F:
				if v.bounds != nil {
					v.camera.FitToBounds(v.bounds.Min, v.bounds.Max)
				}
			}
		case input.EventMouseMove:
			if v.input.IsButtonHeld(sdl.BUTTON_LEFT) {
				v.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
			}
		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_RIGHT {
				v.pick(e.MouseX, e.MouseY)
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(e.Wheel)
		}
	}
	return false
}

func (v *Viewer) handleKeys(dt float32) {
	var forward, right, up float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_E) {
		up++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_Q) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		v.camera.HandleMovement(forward, right, up, dt)
	}

	var turn float32
	if v.input.IsKeyHeld(sdl.SCANCODE_LEFT) {
		turn--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_RIGHT) {
		turn++
	}
	if turn != 0 {
		v.sun.Rotate(turn * sunSpeed * dt)
		v.renderer.SetLightDir(v.sun.LightDir())
	}
}

// pick logs the cell under the cursor.
func (v *Viewer) pick(x, y int) {
	if v.grid == nil {
		return
	}
	view := v.camera.ViewMatrix()
	proj := v.camera.ProjectionMatrix(v.cfg.FOV, v.renderer.Aspect())
	inv, ok := proj.Mul(view).Inverse()
	if !ok {
		return
	}

	width, height := v.window.Size()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(width), float32(height), inv)
	hit, ok := picking.PickCell(v.grid, ray)
	if !ok {
		v.log.Info("pick missed")
		return
	}
	v.log.Info("picked cell",
		zap.Int("x", hit.X), zap.Int("y", hit.Y), zap.Int("z", hit.Z),
		zap.Stringer("face", hit.Face),
		zap.Float32("distance", hit.Distance))
}

func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.shots.Save(pixels, width, height)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// apply uploads a finished build. Results for a seed that has since been
// replaced are dropped and the current one is requested again.
func (v *Viewer) apply(r result) {
	if r.params.Seed != v.params.Seed {
		v.rebuild()
		return
	}
	if r.err != nil {
		v.log.Error("mesh build failed", zap.Error(r.err))
		return
	}

	v.renderer.Upload(r.mesh)
	if v.bounds == nil {
		v.camera.FitToBounds(r.mesh.Bounds.Min, r.mesh.Bounds.Max)
	}
	v.bounds = &r.mesh.Bounds
	v.grid = r.grid
	v.window.SetTitle(windowTitle(r.params, r.stats))
	v.log.Info("mesh ready",
		zap.Int("triangles", r.stats.Triangles),
		zap.Int("occupied", r.stats.Occupied),
		zap.Duration("took", r.stats.Total()))
}

func windowTitle(p voxel.Params, s voxel.Stats) string {
	return fmt.Sprintf("%s - %s seed %d - %d triangles (%s)",
		title, p.Dims, p.Seed, s.Triangles, s.Total().Round(time.Millisecond))
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
