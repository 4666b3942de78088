package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/nova/pkg/render"
)

// runTerminal drives the star animation in the terminal using half-block
// cells, two framebuffer rows per terminal row.
func runTerminal(app *App, fps, renderWorkers int) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode for wheel zoom
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	camera := render.NewCamera()
	camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

	pipeline := render.NewPipeline(fbWidth, fbHeight)
	pipeline.SetWorkers(renderWorkers)

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)
				pipeline = render.NewPipeline(fbWidth, fbHeight)
				pipeline.SetWorkers(renderWorkers)
				camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
					cancel()
					return
				case ev.MatchString("1"):
					app.SelectProgram(0)
				case ev.MatchString("2"):
					app.SelectProgram(1)
				case ev.MatchString("3"):
					app.SelectProgram(2)
				case ev.MatchString("4"):
					app.SelectProgram(3)
				case ev.MatchString("tab"), ev.MatchString("n"):
					app.CycleProgram()
				case ev.MatchString("up", "k"), ev.MatchString("+", "="):
					app.zoom.Zoom(-0.5)
				case ev.MatchString("down", "j"), ev.MatchString("-", "_"):
					app.zoom.Zoom(0.5)
				case ev.MatchString("space"):
					app.clock.TogglePause()
				case ev.MatchString("p"):
					app.Screenshot(fb)
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					app.zoom.Zoom(-0.5)
				case uv.MouseWheelDown:
					app.zoom.Zoom(0.5)
				}
			}
		}
	}()

	// Main loop
	targetDuration := time.Second / time.Duration(fps)

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	var (
		fpsFrames int
		fpsValue  float64
		fpsTime   = time.Now()
	)

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()

		app.RenderFrame(pipeline, fb, camera)

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		// FPS counter
		fpsFrames++
		if elapsed := time.Since(fpsTime); elapsed >= time.Second {
			fpsValue = float64(fpsFrames) / elapsed.Seconds()
			fpsFrames = 0
			fpsTime = time.Now()
		}

		// Status line overlay
		fmt.Printf("\x1b[1;1H\x1b[2K\x1b[40m\x1b[92m %.0f FPS \x1b[97m %s \x1b[0m", fpsValue, app.Status())

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
