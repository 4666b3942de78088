package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/nova/pkg/math3d"
)

func TestLoadGLTFInvalidPath(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadGLTFGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.gltf")
	if err := os.WriteFile(path, []byte("not a gltf document"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadGLTF(path)
	if err == nil {
		t.Error("Expected error for malformed file")
	}
}

func TestHasNormals(t *testing.T) {
	m := &Mesh{Vertices: make([]Vertex, 3)}
	if hasNormals(m) {
		t.Error("zero normals should not count as usable")
	}

	m.Vertices[1].Normal = math3d.Up()
	if !hasNormals(m) {
		t.Error("a unit normal should count as usable")
	}
}
