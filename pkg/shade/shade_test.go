package shade

import (
	"math"
	"testing"

	"github.com/taigrr/nova/pkg/math3d"
)

// surfacePoints samples unit-sphere surface positions with matching normals.
var surfacePoints = []math3d.Vec3{
	math3d.V3(0, 0, 1),
	math3d.V3(0, 1, 0),
	math3d.V3(1, 0, 0),
	math3d.V3(0, -1, 0),
	math3d.V3(0.577, 0.577, 0.577),
	math3d.V3(-0.707, 0, 0.707),
}

func TestProgramsOpaque(t *testing.T) {
	// Every program must emit fully opaque pixels at every time; the
	// clamp in rgba8 guarantees channels never wrap.
	times := []float64{0, 0.5, 1.7, 10, 123.456}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			program, ok := ByName(name)
			if !ok {
				t.Fatalf("ByName(%q) failed", name)
			}
			for _, p := range surfacePoints {
				for _, tt := range times {
					c := program.Fragment(p, p, tt)
					if c.A != 255 {
						t.Errorf("%s.Fragment(%v, t=%v).A = %d, want 255", name, p, tt, c.A)
					}
				}
			}
		})
	}
}

func TestProgramsDeterministic(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			program, _ := ByName(name)
			for _, p := range surfacePoints {
				a := program.Fragment(p, p, 2.5)
				b := program.Fragment(p, p, 2.5)
				if a != b {
					t.Errorf("%s.Fragment(%v) not deterministic: %v != %v", name, p, a, b)
				}
			}
		})
	}
}

func TestProgramsAnimate(t *testing.T) {
	// Each program is time-varying: some sample point must change color as
	// time advances.
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			program, _ := ByName(name)
			changed := false
			for _, p := range surfacePoints {
				if program.Fragment(p, p, 0) != program.Fragment(p, p, 5) {
					changed = true
					break
				}
			}
			if !changed {
				t.Errorf("%s produced identical colors at t=0 and t=5", name)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	want := []string{"sun", "pulsar", "plasma", "supernova"}
	names := Names()
	if len(names) != len(want) || Count() != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], name)
		}
	}

	if _, ok := ByName("nope"); ok {
		t.Error("ByName should reject unknown names")
	}

	// ByIndex wraps in both directions.
	tests := []struct {
		index int
		want  string
	}{
		{0, "sun"},
		{3, "supernova"},
		{4, "sun"},
		{7, "supernova"},
		{-1, "supernova"},
	}
	for _, tc := range tests {
		if name, _ := ByIndex(tc.index); name != tc.want {
			t.Errorf("ByIndex(%d) = %q, want %q", tc.index, name, tc.want)
		}
	}
}

func TestTemperatureToColor(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		want math3d.Vec3
	}{
		{"coolest", 0, math3d.V3(1, 0.2, 0)},
		{"orange", 0.33, math3d.V3(1, 0.5, 0)},
		{"warm white", 0.66, math3d.V3(1, 0.9, 0.3)},
		{"white", 1, math3d.V3(1, 1, 1)},
		{"clamped low", -3, math3d.V3(1, 0.2, 0)},
		{"clamped high", 5, math3d.V3(1, 1, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TemperatureToColor(tc.temp)
			if math.Abs(got.X-tc.want.X) > 0.01 ||
				math.Abs(got.Y-tc.want.Y) > 0.01 ||
				math.Abs(got.Z-tc.want.Z) > 0.01 {
				t.Errorf("TemperatureToColor(%v) = %v, want %v", tc.temp, got, tc.want)
			}
		})
	}

	// Red never drops: every stop keeps R at 1 so the star stays warm.
	for temp := 0.0; temp <= 1.0; temp += 0.05 {
		if c := TemperatureToColor(temp); c.X < 0.99 {
			t.Fatalf("TemperatureToColor(%v).X = %v, want 1", temp, c.X)
		}
	}
}

func TestHueToRGB(t *testing.T) {
	tests := []struct {
		name string
		hue  float64
		want math3d.Vec3
	}{
		{"magenta", 0, math3d.V3(1, 0, 0.5)},
		{"violet", 0.33, math3d.V3(0.5, 0, 1)},
		{"cyan", 0.66, math3d.V3(0, 1, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := HueToRGB(tc.hue)
			if math.Abs(got.X-tc.want.X) > 0.01 ||
				math.Abs(got.Y-tc.want.Y) > 0.01 ||
				math.Abs(got.Z-tc.want.Z) > 0.01 {
				t.Errorf("HueToRGB(%v) = %v, want %v", tc.hue, got, tc.want)
			}
		})
	}

	// The palette is cyclic: hue just below 1 approaches the hue-0 color.
	a := HueToRGB(0.999)
	b := HueToRGB(0)
	if math.Abs(a.X-b.X) > 0.02 || math.Abs(a.Y-b.Y) > 0.02 || math.Abs(a.Z-b.Z) > 0.02 {
		t.Errorf("hue wrap mismatch: HueToRGB(0.999) = %v, HueToRGB(0) = %v", a, b)
	}
}

func TestRGBA8Clamps(t *testing.T) {
	tests := []struct {
		name string
		in   math3d.Vec3
		want [3]uint8
	}{
		{"black", math3d.V3(0, 0, 0), [3]uint8{0, 0, 0}},
		{"white", math3d.V3(1, 1, 1), [3]uint8{255, 255, 255}},
		{"overbright", math3d.V3(3.2, 1.5, 255), [3]uint8{255, 255, 255}},
		{"negative", math3d.V3(-1, -0.5, 0.5), [3]uint8{0, 0, 127}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := rgba8(tc.in)
			if c.R != tc.want[0] || c.G != tc.want[1] || c.B != tc.want[2] {
				t.Errorf("rgba8(%v) = %v, want %v", tc.in, c, tc.want)
			}
			if c.A != 255 {
				t.Errorf("rgba8(%v).A = %d, want 255", tc.in, c.A)
			}
		})
	}
}

func BenchmarkSunFragment(b *testing.B) {
	p := math3d.V3(0.577, 0.577, 0.577)
	var s Sun
	for b.Loop() {
		_ = s.Fragment(p, p, 1.5)
	}
}

func BenchmarkPulsarFragment(b *testing.B) {
	p := math3d.V3(0.577, 0.577, 0.577)
	var s Pulsar
	for b.Loop() {
		_ = s.Fragment(p, p, 1.5)
	}
}

func BenchmarkPlasmaFragment(b *testing.B) {
	p := math3d.V3(0.577, 0.577, 0.577)
	var s Plasma
	for b.Loop() {
		_ = s.Fragment(p, p, 1.5)
	}
}

func BenchmarkSupernovaFragment(b *testing.B) {
	p := math3d.V3(0.577, 0.577, 0.577)
	var s Supernova
	for b.Loop() {
		_ = s.Fragment(p, p, 1.5)
	}
}
