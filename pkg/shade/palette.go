package shade

import (
	"image/color"

	"github.com/taigrr/nova/pkg/math3d"
)

// TemperatureToColor maps a normalized temperature in [0, 1] to an
// approximate black-body color through three piecewise-linear segments:
// deep red, orange, warm white, white.
func TemperatureToColor(t float64) math3d.Vec3 {
	t = clamp01(t)

	switch {
	case t < 0.33:
		return math3d.V3(1, 0.2, 0).Lerp(math3d.V3(1, 0.5, 0), t/0.33)
	case t < 0.66:
		return math3d.V3(1, 0.5, 0).Lerp(math3d.V3(1, 0.9, 0.3), (t-0.33)/0.33)
	default:
		return math3d.V3(1, 0.9, 0.3).Lerp(math3d.V3(1, 1, 1), (t-0.66)/0.34)
	}
}

// HueToRGB maps a cyclic hue in [0, 1) to an iridescent palette through three
// segments between magenta, violet, and cyan.
func HueToRGB(hue float64) math3d.Vec3 {
	switch {
	case hue < 0.33:
		return math3d.V3(1, 0, 0.5).Lerp(math3d.V3(0.5, 0, 1), hue*3)
	case hue < 0.66:
		return math3d.V3(0.5, 0, 1).Lerp(math3d.V3(0, 1, 1), (hue-0.33)*3)
	default:
		return math3d.V3(0, 1, 1).Lerp(math3d.V3(1, 0, 0.5), (hue-0.66)*3)
	}
}

// rgba8 converts linear RGB, possibly above 1.0 from additive emission, to an
// opaque 8-bit color. The per-channel clamp is the only defense against
// overflow artifacts and is mandatory for every program.
func rgba8(v math3d.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(v.X) * 255),
		G: uint8(clamp01(v.Y) * 255),
		B: uint8(clamp01(v.Z) * 255),
		A: 255,
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
