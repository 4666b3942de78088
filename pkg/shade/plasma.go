package shade

import (
	"image/color"
	"math"

	"github.com/taigrr/nova/pkg/math3d"
	"github.com/taigrr/nova/pkg/noise"
)

// Plasma renders an iridescent plasma star: two counter-scrolling
// simplex-like vortex fields, thresholded high-frequency filaments, a cyclic
// hue palette, and an electric flickering rim.
type Plasma struct{}

// Fragment implements Program.
func (Plasma) Fragment(pos, normal math3d.Vec3, t float64) color.RGBA {
	dir := pos.Normalize()

	vortex1 := noise.SimplexLike(dir.X*4+t*0.3, dir.Y*4, dir.Z*4+t*0.2)
	vortex2 := noise.SimplexLike(dir.X*6-t*0.4, dir.Y*6+t*0.1, dir.Z*6)
	pattern := (vortex1 + vortex2*0.5) / 1.5

	filaments := noise.Lattice(dir.X*10, dir.Y*10+t*2, dir.Z*10)
	filamentBoost := noise.Smoothstep(0.6, 0.8, filaments) * 1.5

	hue := math.Mod(pattern*2+t*0.5, 1)
	plasmaColor := HueToRGB(hue)

	emission := plasmaColor.Scale(2 + pattern + filamentBoost)

	// Electric flicker along the silhouette.
	edge := math.Pow(1-math.Abs(normal.Dot(viewDir)), 2)
	electric := math3d.V3(0.5, 1, 1).Scale(edge * (1 + math.Sin(t*10)*0.3))

	return rgba8(emission.Add(electric))
}
