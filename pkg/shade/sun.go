package shade

import (
	"image/color"
	"math"

	"github.com/taigrr/nova/pkg/math3d"
	"github.com/taigrr/nova/pkg/noise"
)

// Sun renders a Sol-like star: multi-octave gradient-noise granulation, dark
// sunspots, black-body temperature mapping, a slow brightness pulse, and a
// Fresnel-style corona rim.
type Sun struct{}

// Fragment implements Program.
func (Sun) Fragment(pos, normal math3d.Vec3, t float64) color.RGBA {
	dir := pos.Normalize()

	// Granulation: 5-octave turbulence scrolled slowly over time.
	turbOffset := math3d.V3(t*0.1, t*0.05, 0)
	turb := noise.Turbulence(dir.Scale(3).Add(turbOffset), 5, noise.KindLattice)

	// Sunspots: a single high-frequency sample thresholded into dark patches.
	spotNoise := noise.Lattice(dir.X*8+t*0.2, dir.Y*8, dir.Z*8)
	spots := noise.Smoothstep(0.65, 0.75, spotNoise)

	baseTemp := 0.7 + turb*0.15 - spots*0.3
	tempColor := TemperatureToColor(baseTemp)

	pulse := math.Sin(t*2)*0.05 + 0.95
	emission := tempColor.Scale((1.5 + turb*0.5) * pulse)

	// Corona: brighten toward the silhouette.
	fresnel := math.Pow(1-math.Abs(normal.Dot(viewDir)), 3)
	corona := math3d.V3(1, 0.8, 0.3).Scale(fresnel * 0.5)

	return rgba8(emission.Add(corona).Mul(math3d.V3(1.2, 1.0, 0.8)))
}
