// Package render provides the software rasterization core for nova: a
// depth-buffered framebuffer, the triangle pipeline, and presentation
// helpers.
package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// Framebuffer owns one frame's color plane and depth plane. Pix holds RGBA
// bytes in row-major order; Depth holds one float per pixel, +Inf meaning
// "nothing drawn yet". The two planes always cover the same pixel count.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint8   // RGBA, 4 bytes per pixel, row-major
	Depth  []float64 // one entry per pixel, row-major
}

// NewFramebuffer creates a framebuffer with the given dimensions. The color
// plane starts black and the depth plane starts at +Inf.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
		Depth:  make([]float64, width*height),
	}
	for i := range fb.Depth {
		fb.Depth[i] = math.Inf(1)
	}
	return fb
}

// Clear fills every pixel with the given color at full opacity and resets
// every depth entry to +Inf. Uses copy-doubling for fast plane fills.
func (fb *Framebuffer) Clear(c color.RGBA) {
	if len(fb.Depth) == 0 {
		return
	}

	fb.Pix[0], fb.Pix[1], fb.Pix[2], fb.Pix[3] = c.R, c.G, c.B, 255
	for i := 4; i < len(fb.Pix); i *= 2 {
		copy(fb.Pix[i:], fb.Pix[:i])
	}

	fb.Depth[0] = math.Inf(1)
	for i := 1; i < len(fb.Depth); i *= 2 {
		copy(fb.Depth[i:], fb.Depth[:i])
	}
}

// SetPixel writes color and depth at (x, y) if the new depth passes the depth
// test: strictly less than the stored depth, so exact ties keep the earlier
// write. Out-of-bounds coordinates are silently ignored. This is the only
// mutation path for pixel data.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA, depth float64) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	i := y*fb.Width + x
	if depth >= fb.Depth[i] {
		return
	}
	fb.Depth[i] = depth
	p := i * 4
	fb.Pix[p] = c.R
	fb.Pix[p+1] = c.G
	fb.Pix[p+2] = c.B
	fb.Pix[p+3] = 255
}

// GetPixel returns the color at (x, y), or transparent black if out of
// bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	p := (y*fb.Width + x) * 4
	return color.RGBA{fb.Pix[p], fb.Pix[p+1], fb.Pix[p+2], fb.Pix[p+3]}
}

// DepthAt returns the stored depth at (x, y), or +Inf if out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return math.Inf(1)
	}
	return fb.Depth[y*fb.Width+x]
}

// Bytes exposes the color plane as a flat RGBA byte sequence in row-major
// order. The slice is a read-only view into the framebuffer, not a copy.
func (fb *Framebuffer) Bytes() []uint8 {
	return fb.Pix
}

// ToImage copies the color plane into a standard Go image.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Pix)
	return img
}

// SavePNG writes the framebuffer contents to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}
