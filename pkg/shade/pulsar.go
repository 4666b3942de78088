package shade

import (
	"image/color"
	"math"

	"github.com/taigrr/nova/pkg/math3d"
	"github.com/taigrr/nova/pkg/noise"
)

// Pulsar renders a rapidly pulsing star: a sharp periodic pulse, a rotating
// simplex-like pattern crossed with scrolling latitude bands, a violet-to-blue
// intensity ramp, and white jet bursts at the poles.
type Pulsar struct{}

// Fragment implements Program.
func (Pulsar) Fragment(pos, _ math3d.Vec3, t float64) color.RGBA {
	dir := pos.Normalize()

	pulse := noise.Pulse(t, 3, 2)

	// Rotate the sample coordinates about the vertical axis so the pattern
	// sweeps across the surface.
	angle := t * 0.5
	rotX := dir.X*math.Cos(angle) - dir.Z*math.Sin(angle)
	rotZ := dir.X*math.Sin(angle) + dir.Z*math.Cos(angle)

	pattern := noise.SimplexLike(rotX*5, dir.Y*5, rotZ*5)

	bands := math.Sin(dir.Y*10+t*2)*0.5 + 0.5
	combined := pattern * bands

	intensity := (combined + pulse) * 0.5
	hot := math3d.V3(0.2, 0.5, 1.0)
	cold := math3d.V3(0.8, 0.2, 1.0)
	base := cold.Lerp(hot, intensity)

	emission := base.Scale(2 + pulse*1.5)

	// Jets: additive white light concentrated at the poles.
	poleIntensity := math.Pow(1-math.Abs(dir.Y), 4)
	poleBurst := math3d.V3(1, 1, 1).Scale(poleIntensity * pulse * 2)

	return rgba8(emission.Add(poleBurst))
}
