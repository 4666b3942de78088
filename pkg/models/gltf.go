package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/nova/pkg/math3d"
)

// LoadGLTF loads a glTF or GLB file into a Mesh, merging every
// triangle-mode primitive in the document. Only positions, normals, and
// indices are read; material and texture data are ignored. Missing normals
// are reconstructed by smooth averaging.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := &Mesh{Name: filepath.Base(path)}

	for _, gm := range doc.Meshes {
		if err := appendPrimitives(doc, gm, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", gm.Name, err)
		}
	}

	if len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("no triangle geometry found in %s", path)
	}

	if !hasNormals(mesh) {
		mesh.CalculateSmoothNormals()
	}

	mesh.CalculateBounds()

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// appendPrimitives extracts geometry from one glTF mesh into mesh.
func appendPrimitives(doc *gltf.Document, gm *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip lines, points, strips, fans.
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		baseVertex := uint32(len(mesh.Vertices))

		for i, p := range positions {
			v := Vertex{Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))}
			if i < len(normals) {
				n := normals[i]
				v.Normal = math3d.V3(float64(n[0]), float64(n[1]), float64(n[2])).Normalize()
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		if prim.Indices != nil {
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for _, idx := range indices {
				mesh.Indices = append(mesh.Indices, baseVertex+idx)
			}
		} else {
			// Non-indexed primitive: vertices form sequential triangles.
			for i := range uint32(len(positions)) {
				mesh.Indices = append(mesh.Indices, baseVertex+i)
			}
		}
	}

	return nil
}

// hasNormals reports whether any vertex carries a usable normal.
func hasNormals(m *Mesh) bool {
	for _, v := range m.Vertices {
		if v.Normal.Len() > 0.001 {
			return true
		}
	}
	return false
}
