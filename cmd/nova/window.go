package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/nova/pkg/render"
)

// runWindow drives the star animation in a desktop window. It blocks until
// the window closes.
func runWindow(app *App, width, height, fps, renderWorkers int) error {
	fb := render.NewFramebuffer(width, height)

	camera := render.NewCamera()
	camera.SetAspectRatio(float64(width) / float64(height))

	pipeline := render.NewPipeline(width, height)
	pipeline.SetWorkers(renderWorkers)

	g := &windowGame{
		app:      app,
		fb:       fb,
		camera:   camera,
		pipeline: pipeline,
		fbImg:    ebiten.NewImage(width, height),
		width:    width,
		height:   height,
	}
	ebiten.SetWindowTitle("nova")
	ebiten.SetWindowSize(width, height)
	ebiten.SetTPS(fps)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

type windowGame struct {
	app      *App
	fb       *render.Framebuffer
	camera   *render.Camera
	pipeline *render.Pipeline
	fbImg    *ebiten.Image
	width    int
	height   int
}

func (g *windowGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4} {
		if inpututil.IsKeyJustPressed(key) {
			g.app.SelectProgram(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) || inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.app.CycleProgram()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.app.clock.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.app.Screenshot(g.fb)
	}

	// Held keys nudge the zoom target; the spring smooths the motion.
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.app.zoom.Zoom(-0.05)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.app.zoom.Zoom(0.05)
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.app.zoom.Zoom(-dy * 0.25)
	}

	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	g.app.RenderFrame(g.pipeline, g.fb, g.camera)
	g.fbImg.WritePixels(g.fb.Bytes())
	screen.DrawImage(g.fbImg, nil)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%.0f FPS  %s", ebiten.ActualFPS(), g.app.Status()))
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
