// Package models provides triangle mesh representation, procedural
// generation, and model-file loading for nova.
package models

import (
	"fmt"
	"math"

	"github.com/taigrr/nova/pkg/math3d"
)

// Vertex holds the object-space attributes of one mesh vertex.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Mesh is a triangle mesh: a vertex sequence plus an index sequence whose
// consecutive triples form triangles. A valid mesh has a non-empty vertex
// list, an index count divisible by 3, and every index below the vertex
// count; the renderer tolerates violations by skipping bad triangles, but
// Validate reports them at load time.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// UVSphere generates a unit-style UV sphere with dedicated pole vertices.
// Vertex and index counts are closed-form in rings and sectors, so both
// slices are allocated at full size up front. rings is clamped to at least 3
// and sectors to at least 3.
func UVSphere(radius float64, rings, sectors int) *Mesh {
	if rings < 3 {
		rings = 3
	}
	if sectors < 3 {
		sectors = 3
	}

	vertexCount := 2 + (rings-1)*(sectors+1)
	indexCount := 3*sectors + 6*(rings-2)*sectors + 3*sectors

	m := &Mesh{
		Name:     "uvsphere",
		Vertices: make([]Vertex, vertexCount),
		Indices:  make([]uint32, indexCount),
	}

	// North pole, intermediate rings (each with a duplicated seam column),
	// south pole.
	m.Vertices[0] = Vertex{
		Position: math3d.V3(0, radius, 0),
		Normal:   math3d.Up(),
	}
	vi := 1
	for r := 1; r < rings; r++ {
		for s := 0; s <= sectors; s++ {
			theta := math.Pi * float64(r) / float64(rings)
			phi := 2 * math.Pi * float64(s) / float64(sectors)

			x := math.Sin(theta) * math.Cos(phi)
			y := math.Cos(theta)
			z := math.Sin(theta) * math.Sin(phi)

			m.Vertices[vi] = Vertex{
				Position: math3d.V3(x*radius, y*radius, z*radius),
				Normal:   math3d.V3(x, y, z),
			}
			vi++
		}
	}
	southPole := uint32(vertexCount - 1)
	m.Vertices[southPole] = Vertex{
		Position: math3d.V3(0, -radius, 0),
		Normal:   math3d.V3(0, -1, 0),
	}

	// Triangle fan around the north pole.
	ii := 0
	for s := 0; s < sectors; s++ {
		m.Indices[ii] = 0
		m.Indices[ii+1] = uint32(1 + s)
		m.Indices[ii+2] = uint32(1 + s + 1)
		ii += 3
	}

	// Quad bands between intermediate rings, two triangles each.
	for r := 0; r < rings-2; r++ {
		for s := 0; s < sectors; s++ {
			current := uint32(1 + r*(sectors+1) + s)
			next := current + uint32(sectors+1)

			m.Indices[ii] = current
			m.Indices[ii+1] = next
			m.Indices[ii+2] = current + 1

			m.Indices[ii+3] = current + 1
			m.Indices[ii+4] = next
			m.Indices[ii+5] = next + 1
			ii += 6
		}
	}

	// Triangle fan around the south pole.
	lastRingStart := southPole - uint32(sectors+1)
	for s := 0; s < sectors; s++ {
		m.Indices[ii] = lastRingStart + uint32(s)
		m.Indices[ii+1] = southPole
		m.Indices[ii+2] = lastRingStart + uint32(s) + 1
		ii += 3
	}

	m.CalculateBounds()
	return m
}

// Validate reports the first structural problem with the mesh, or nil.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("mesh %q has no vertices", m.Name)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q index count %d is not a multiple of 3", m.Name, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("mesh %q index %d out of range: %d >= %d", m.Name, i, idx, len(m.Vertices))
		}
	}
	return nil
}

// VertexCount returns the number of vertices.
// Implements render.Mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Vertex returns the position and normal of vertex i.
// Implements render.Mesh.
func (m *Mesh) Vertex(i int) (pos, normal math3d.Vec3) {
	v := m.Vertices[i]
	return v.Position, v.Normal
}

// IndexCount returns the number of indices.
// Implements render.Mesh.
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// Index returns the vertex index at position i.
// Implements render.Mesh.
func (m *Mesh) Index(i int) int {
	return int(m.Indices[i])
}

// TriangleCount returns the number of whole triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = vecMin(m.BoundsMin, v.Position)
		m.BoundsMax = vecMax(m.BoundsMax, v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Transform applies a transformation matrix to all vertices. Normals are
// transformed as directions and renormalized.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// CalculateSmoothNormals computes area-weighted averaged vertex normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if int(i0) >= len(m.Vertices) || int(i1) >= len(m.Vertices) || int(i2) >= len(m.Vertices) {
			continue
		}
		v0 := m.Vertices[i0].Position
		v1 := m.Vertices[i1].Position
		v2 := m.Vertices[i2].Position

		// Cross product length is proportional to triangle area, so summing
		// unnormalized face normals weights by area.
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		m.Vertices[i0].Normal = m.Vertices[i0].Normal.Add(n)
		m.Vertices[i1].Normal = m.Vertices[i1].Normal.Add(n)
		m.Vertices[i2].Normal = m.Vertices[i2].Normal.Add(n)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

func vecMin(a, b math3d.Vec3) math3d.Vec3 {
	return math3d.V3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
}

func vecMax(a, b math3d.Vec3) math3d.Vec3 {
	return math3d.V3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))
}
