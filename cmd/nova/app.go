package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/nova/pkg/math3d"
	"github.com/taigrr/nova/pkg/models"
	"github.com/taigrr/nova/pkg/render"
	"github.com/taigrr/nova/pkg/shade"
)

const (
	minCameraDistance     = 2.0
	maxCameraDistance     = 10.0
	defaultCameraDistance = 3.5

	starScale     = 1.5
	rotationSpeed = 0.3
)

// simClock tracks elapsed shader time with pause support. Pausing freezes
// the reported time; resuming continues from the frozen value without a
// jump, so the star animation never skips.
type simClock struct {
	start    time.Time
	offset   time.Duration // accumulated paused duration
	paused   bool
	pausedAt time.Time
}

func newSimClock() *simClock {
	return &simClock{start: time.Now()}
}

// Seconds returns the elapsed simulation time.
func (c *simClock) Seconds() float64 {
	now := time.Now()
	if c.paused {
		now = c.pausedAt
	}
	return now.Sub(c.start).Seconds() - c.offset.Seconds()
}

// TogglePause flips the paused state.
func (c *simClock) TogglePause() {
	if c.paused {
		c.offset += time.Since(c.pausedAt)
		c.paused = false
	} else {
		c.pausedAt = time.Now()
		c.paused = true
	}
}

// Paused reports whether the clock is paused.
func (c *simClock) Paused() bool {
	return c.paused
}

// zoomSpring animates the camera orbit distance toward a target with a
// critically damped spring, so zoom steps glide instead of snapping.
type zoomSpring struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func newZoomSpring(fps int) *zoomSpring {
	return &zoomSpring{
		// Damping 1.0 = critically damped, no overshoot.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		pos:    defaultCameraDistance,
		target: defaultCameraDistance,
	}
}

// Update advances the spring one frame.
func (z *zoomSpring) Update() {
	z.pos, z.vel = z.spring.Update(z.pos, z.vel, z.target)
}

// Zoom moves the target distance, clamped to the orbit range.
func (z *zoomSpring) Zoom(delta float64) {
	z.target += delta
	if z.target < minCameraDistance {
		z.target = minCameraDistance
	}
	if z.target > maxCameraDistance {
		z.target = maxCameraDistance
	}
}

// App holds the state shared by the terminal and window front-ends.
type App struct {
	mesh    *models.Mesh
	index   int
	name    string
	program shade.Program
	clock   *simClock
	zoom    *zoomSpring
	bg      color.RGBA
}

func newApp(mesh *models.Mesh, shader string, fps int, bg color.RGBA) (*App, error) {
	program, ok := shade.ByName(shader)
	if !ok {
		return nil, fmt.Errorf("unknown shader %q (have %v)", shader, shade.Names())
	}
	index := 0
	for i, name := range shade.Names() {
		if name == shader {
			index = i
		}
	}
	return &App{
		mesh:    mesh,
		index:   index,
		name:    shader,
		program: program,
		clock:   newSimClock(),
		zoom:    newZoomSpring(fps),
		bg:      bg,
	}, nil
}

// SelectProgram switches the active shading program by hotkey index.
func (a *App) SelectProgram(i int) {
	a.index = ((i % shade.Count()) + shade.Count()) % shade.Count()
	a.name, a.program = shade.ByIndex(a.index)
}

// CycleProgram advances to the next shading program, wrapping around.
func (a *App) CycleProgram() {
	a.SelectProgram(a.index + 1)
}

// Status returns the one-line HUD text.
func (a *App) Status() string {
	if a.clock.Paused() {
		return a.name + " [paused]"
	}
	return a.name
}

// RenderFrame draws the current star into fb.
func (a *App) RenderFrame(pipe *render.Pipeline, fb *render.Framebuffer, cam *render.Camera) {
	a.zoom.Update()
	cam.SetDistance(a.zoom.pos)

	t := a.clock.Seconds()
	model := math3d.Rotate(math3d.Up(), t*rotationSpeed).Mul(math3d.ScaleUniform(starScale))

	fb.Clear(a.bg)
	pipe.RenderMesh(fb, a.mesh, a.program, model, cam.ViewMatrix(), cam.ProjectionMatrix(), t)
}

// Screenshot saves the framebuffer next to the working directory.
func (a *App) Screenshot(fb *render.Framebuffer) error {
	return fb.SavePNG(fmt.Sprintf("nova-%s.png", time.Now().Format("20060102-150405")))
}
