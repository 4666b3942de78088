package shade

import (
	"image/color"
	"math"

	"github.com/taigrr/nova/pkg/math3d"
	"github.com/taigrr/nova/pkg/noise"
)

// Supernova renders an exploding star from layered fields: a white-hot
// turbulent core, an orange explosion shell, sparse red cellular fragments,
// a pulsing Fresnel flare, and a radial burst sweep. The layers are blended
// by a breathing expansion factor and summed additively.
type Supernova struct{}

// Fragment implements Program.
func (Supernova) Fragment(pos, normal math3d.Vec3, t float64) color.RGBA {
	dir := pos.Normalize()

	// Slow radial breathing of the sample space.
	expansion := math.Sin(t*0.5)*0.2 + 1
	expanded := dir.Scale(expansion)

	core := noise.Turbulence(expanded.Scale(5), 4, noise.KindLattice)
	coreColor := TemperatureToColor(0.9 + core*0.1)

	explosionOffset := math3d.V3(t*0.2, t*0.15, t*0.1)
	explosion := noise.Turbulence(expanded.Scale(3).Add(explosionOffset), 5, noise.KindSimplex)
	explosionColor := math3d.V3(1, 0.6, 0.2).Scale(1 + explosion*2)

	fragments := noise.Cellular(expanded.X*8+t*0.3, expanded.Y*8, expanded.Z*8+t*0.4)
	fragmentColor := math3d.V3(1, 0.3, 0.1).Scale(fragments * 1.5)

	layerMix := frac(pos.Len() + math.Sin(t*0.5)*0.3)
	mid := coreColor.Scale(2).Lerp(explosionColor, layerMix)
	blend := mid.Lerp(fragmentColor, fragments*0.4)

	flare := math.Pow(1-math.Abs(normal.Dot(viewDir)), 1.5)
	flareIntensity := math.Sin(t*4)*0.3 + 0.7
	flareColor := math3d.V3(1, 0.9, 0.5).Scale(flare * flareIntensity * 3)

	radialBurst := math.Sin(t*3+dir.Y*10)*0.5 + 0.5
	burstColor := math3d.V3(1, 0.8, 0.3).Scale(radialBurst * 0.5)

	return rgba8(blend.Add(flareColor).Add(burstColor))
}

// frac returns the fractional part of x, matching the sign of x.
func frac(x float64) float64 {
	return x - math.Trunc(x)
}
