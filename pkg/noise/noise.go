// Package noise provides deterministic procedural noise over 3D space.
//
// All functions are pure: identical inputs always produce identical outputs,
// across calls and across process runs. There is no seeding and no state;
// randomness comes from integer mixing of lattice coordinates.
package noise

import "math"

// Lattice computes classic gradient noise at (x, y, z).
// The result is rescaled from the raw [-1, 1] range into [0, 1].
func Lattice(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	xi, yi, zi := int32(fx), int32(fy), int32(fz)

	// Fractional offset within the cell.
	xf := x - fx
	yf := y - fy
	zf := z - fz

	u := fade(xf)
	v := fade(yf)
	w := fade(zf)

	// Hash the 8 cell corners.
	aaa := latticeHash(xi, yi, zi)
	aba := latticeHash(xi, yi+1, zi)
	aab := latticeHash(xi, yi, zi+1)
	abb := latticeHash(xi, yi+1, zi+1)
	baa := latticeHash(xi+1, yi, zi)
	bba := latticeHash(xi+1, yi+1, zi)
	bab := latticeHash(xi+1, yi, zi+1)
	bbb := latticeHash(xi+1, yi+1, zi+1)

	x1 := lerp(grad(aaa, xf, yf, zf), grad(baa, xf-1, yf, zf), u)
	x2 := lerp(grad(aba, xf, yf-1, zf), grad(bba, xf-1, yf-1, zf), u)
	y1 := lerp(x1, x2, v)

	x3 := lerp(grad(aab, xf, yf, zf-1), grad(bab, xf-1, yf, zf-1), u)
	x4 := lerp(grad(abb, xf, yf-1, zf-1), grad(bbb, xf-1, yf-1, zf-1), u)
	y2 := lerp(x3, x4, v)

	return (lerp(y1, y2, w) + 1) * 0.5
}

// SimplexLike approximates higher-frequency simplex-style detail with two
// Lattice taps: the second tap is offset, doubled in frequency, weighted 0.5,
// and the sum is divided by 1.5. This is not a true simplex lattice; the
// two-tap composition is deliberate and must not be swapped for one, since
// the visual output differs.
func SimplexLike(x, y, z float64) float64 {
	n0 := Lattice(x, y, z)
	n1 := Lattice(x*2+5.2, y*2+1.3, z*2+8.1)
	return (n0 + n1*0.5) / 1.5
}

// Cellular computes Worley-style cellular noise at (x, y, z): the distance to
// the nearest feature point across the 3x3x3 cell neighborhood, inverted so
// the result is high near feature points. Output lies in [0, 1].
func Cellular(x, y, z float64) float64 {
	xi := math.Floor(x)
	yi := math.Floor(y)
	zi := math.Floor(z)

	minDist := 10.0

	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for k := -1; k <= 1; k++ {
				cx := xi + float64(i)
				cy := yi + float64(j)
				cz := zi + float64(k)

				// One deterministic feature point per cell.
				px := cx + cellHash(cx, cy, cz)
				py := cy + cellHash(cx+1, cy+2, cz+3)
				pz := cz + cellHash(cx+4, cy+5, cz+6)

				dx := x - px
				dy := y - py
				dz := z - pz
				dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
				minDist = math.Min(minDist, dist)
			}
		}
	}

	return 1 - math.Min(minDist, 1)
}

// fade is the smoothed interpolation curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// lerp linearly interpolates between a and b.
func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// latticeHash mixes lattice coordinates into a gradient selector in [0, 255].
// Arithmetic is wrapping int32 on purpose.
func latticeHash(x, y, z int32) int32 {
	n := x*374761393 + y*668265263 + z*1274126177
	n = (n ^ (n >> 13)) * 1274126177
	return n & 0xff
}

// grad evaluates one of 16 pseudo-random gradients at the fractional offset.
func grad(hash int32, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// cellHash derives a deterministic pseudo-random offset in (-1, 1) from cell
// coordinates using a sine hash.
func cellHash(x, y, z float64) float64 {
	v := math.Sin(x*12.9898+y*78.233+z*45.164) * 43758.5453
	return v - math.Trunc(v)
}
