// nova - Procedural Star Renderer
// Real-time CPU rendering of animated stars in your terminal or a window.
//
// Controls:
//
//	1-4         - Select shader (sun, pulsar, plasma, supernova)
//	Tab         - Cycle to next shader
//	Up/Down     - Zoom in/out (scroll wheel also works)
//	Space       - Pause/resume animation
//	P           - Save a PNG screenshot
//	Esc         - Quit
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/nova/pkg/math3d"
	"github.com/taigrr/nova/pkg/models"
	"github.com/taigrr/nova/pkg/render"
	"github.com/taigrr/nova/pkg/shade"
)

var (
	shaderName = flag.String("shader", "sun", "Initial shader ("+strings.Join(shade.Names(), ", ")+")")
	targetFPS  = flag.Int("fps", 60, "Target FPS")
	bgColor    = flag.String("bg", "5,5,15", "Background color (R,G,B)")
	windowMode = flag.Bool("window", false, "Render into a desktop window instead of the terminal")
	windowSize = flag.String("size", "800x600", "Window size (WxH, window mode only)")
	workers    = flag.Int("workers", 0, "Render worker goroutines (0 = all CPUs)")
	sphereRes  = flag.Int("res", 64, "Sphere resolution (rings and sectors)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "nova - Procedural Star Renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: nova [options] [model.glb|model.gltf]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a procedural star sphere by default; pass a glTF model\n")
		fmt.Fprintf(os.Stderr, "to shade its surface instead.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  1-4         - Select shader (sun, pulsar, plasma, supernova)\n")
		fmt.Fprintf(os.Stderr, "  Tab         - Cycle to next shader\n")
		fmt.Fprintf(os.Stderr, "  Up/Down     - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  Space       - Pause/resume animation\n")
		fmt.Fprintf(os.Stderr, "  P           - Save a PNG screenshot\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse background color
	var bgR, bgG, bgB uint8 = 5, 5, 15
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)

	mesh, err := loadMesh()
	if err != nil {
		return err
	}

	app, err := newApp(mesh, *shaderName, *targetFPS, render.RGB(bgR, bgG, bgB))
	if err != nil {
		return err
	}

	if *windowMode {
		var w, h int
		if _, err := fmt.Sscanf(*windowSize, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
			return fmt.Errorf("invalid -size %q (want WxH)", *windowSize)
		}
		return runWindow(app, w, h, *targetFPS, *workers)
	}
	return runTerminal(app, *targetFPS, *workers)
}

// loadMesh returns the surface to shade: the procedural sphere, or a
// normalized glTF model if one was given on the command line.
func loadMesh() (*models.Mesh, error) {
	if flag.NArg() < 1 {
		return models.UVSphere(1.0, *sphereRes, *sphereRes), nil
	}

	modelPath := flag.Arg(0)
	ext := strings.ToLower(filepath.Ext(modelPath))
	if ext != ".glb" && ext != ".gltf" {
		return nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
	}

	mesh, err := models.LoadGLTF(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	// Center and scale into the same unit-ish footprint as the sphere.
	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		scale := 2.0 / maxDim
		transform := math3d.ScaleUniform(scale).Mul(math3d.Translate(center.Scale(-1)))
		mesh.Transform(transform)
	}
	return mesh, nil
}
