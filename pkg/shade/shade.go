// Package shade implements the procedural star-surface shading programs.
//
// Each program is a stateless strategy: a pure function from world position,
// world normal, and elapsed time to a displayable color. Programs compose the
// primitives from pkg/noise; they carry no per-frame state and are safe to
// share across goroutines.
package shade

import (
	"image/color"

	"github.com/taigrr/nova/pkg/math3d"
)

// Program computes a fragment color from world-space surface attributes and
// elapsed time in seconds.
type Program interface {
	Fragment(pos, normal math3d.Vec3, t float64) color.RGBA
}

// viewDir is the fixed forward view direction used by the Fresnel-style rim
// terms. The camera always orbits on the Z axis, so a constant is close
// enough for a stylized effect.
var viewDir = math3d.V3(0, 0, 1)

type entry struct {
	name    string
	program Program
}

// Registration order doubles as the 1-based hotkey order in the viewer.
var programs = []entry{
	{"sun", Sun{}},
	{"pulsar", Pulsar{}},
	{"plasma", Plasma{}},
	{"supernova", Supernova{}},
}

// Names returns the program names in registration order.
func Names() []string {
	out := make([]string, len(programs))
	for i, e := range programs {
		out[i] = e.name
	}
	return out
}

// Count returns the number of registered programs.
func Count() int {
	return len(programs)
}

// ByName looks up a program by name.
func ByName(name string) (Program, bool) {
	for _, e := range programs {
		if e.name == name {
			return e.program, true
		}
	}
	return nil, false
}

// ByIndex returns the name and program at index i in registration order.
// Out-of-range indices wrap around.
func ByIndex(i int) (string, Program) {
	i %= len(programs)
	if i < 0 {
		i += len(programs)
	}
	return programs[i].name, programs[i].program
}
