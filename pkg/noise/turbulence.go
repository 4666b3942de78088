package noise

import (
	"math"

	"github.com/taigrr/nova/pkg/math3d"
)

// Kind selects the base noise primitive used by Turbulence.
type Kind int

const (
	// KindLattice uses classic gradient noise.
	KindLattice Kind = iota
	// KindSimplex uses the cheap two-tap simplex approximation.
	KindSimplex
	// KindCellular uses Worley-style cellular noise.
	KindCellular
)

// Turbulence sums octaves layers of the chosen noise at doubling frequency
// and halving amplitude. The sum is intentionally not normalized; callers
// compensate when mapping the result to color.
func Turbulence(p math3d.Vec3, octaves int, kind Kind) float64 {
	var sum float64
	freq := 1.0
	amp := 1.0

	for range octaves {
		var n float64
		switch kind {
		case KindSimplex:
			n = SimplexLike(p.X*freq, p.Y*freq, p.Z*freq)
		case KindCellular:
			n = Cellular(p.X*freq, p.Y*freq, p.Z*freq)
		default:
			n = Lattice(p.X*freq, p.Y*freq, p.Z*freq)
		}
		sum += amp * n
		freq *= 2
		amp *= 0.5
	}
	return sum
}

// Smoothstep is the clamped cubic Hermite interpolation between edge0 and
// edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// Pulse produces a rhythmic brightness factor: a sine wave at the given
// frequency remapped to [0, 1] and sharpened by the exponent.
func Pulse(t, freq, exponent float64) float64 {
	return math.Pow(math.Sin(t*freq)*0.5+0.5, exponent)
}
