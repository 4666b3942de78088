package render

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/nova/pkg/math3d"
)

// mockMesh implements Mesh for testing.
type mockMesh struct {
	vertices []struct {
		pos    math3d.Vec3
		normal math3d.Vec3
	}
	indices []int
}

func (m *mockMesh) VertexCount() int { return len(m.vertices) }
func (m *mockMesh) IndexCount() int  { return len(m.indices) }
func (m *mockMesh) Index(i int) int  { return m.indices[i] }
func (m *mockMesh) Vertex(i int) (pos, normal math3d.Vec3) {
	v := m.vertices[i]
	return v.pos, v.normal
}

// flatShader paints every covered fragment a fixed color.
type flatShader struct {
	c color.RGBA
}

func (s flatShader) Fragment(pos, normal math3d.Vec3, t float64) color.RGBA {
	return s.c
}

// depthShader encodes the fragment's world z into the red channel, which
// makes occlusion visible in the output.
type depthShader struct{}

func (depthShader) Fragment(pos, normal math3d.Vec3, t float64) color.RGBA {
	r := uint8(math.Min(math.Max((pos.Z+1)*127, 0), 255))
	return color.RGBA{R: r, A: 255}
}

// quadMesh builds a camera-facing square at the given z from two triangles.
func quadMesh(half, z float64) *mockMesh {
	m := &mockMesh{}
	n := math3d.V3(0, 0, 1)
	for _, p := range []math3d.Vec3{
		math3d.V3(-half, -half, z),
		math3d.V3(half, -half, z),
		math3d.V3(half, half, z),
		math3d.V3(-half, half, z),
	} {
		m.vertices = append(m.vertices, struct {
			pos    math3d.Vec3
			normal math3d.Vec3
		}{p, n})
	}
	m.indices = []int{0, 1, 2, 0, 2, 3}
	return m
}

// createTestPipeline returns a pipeline, framebuffer, and camera at z=3.5
// looking at the origin with a square aspect.
func createTestPipeline(size int) (*Pipeline, *Framebuffer, *Camera) {
	fb := NewFramebuffer(size, size)
	camera := NewCamera()
	camera.SetAspectRatio(1)
	return NewPipeline(size, size), fb, camera
}

func countLit(fb *Framebuffer, bg color.RGBA) int {
	n := 0
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if fb.GetPixel(x, y) != bg {
				n++
			}
		}
	}
	return n
}

func TestRenderMeshCoversCenter(t *testing.T) {
	p, fb, cam := createTestPipeline(64)
	bg := RGB(0, 0, 0)
	fb.Clear(bg)

	mesh := quadMesh(1, 0)
	p.RenderMesh(fb, mesh, flatShader{RGB(255, 0, 0)}, math3d.Identity(), cam.ViewMatrix(), cam.ProjectionMatrix(), 0)

	if got := fb.GetPixel(32, 32); got != RGB(255, 0, 0) {
		t.Errorf("center pixel = %v, want red", got)
	}
	if math.IsInf(fb.DepthAt(32, 32), 1) {
		t.Error("center depth still +Inf after draw")
	}
	if lit := countLit(fb, bg); lit == 0 {
		t.Error("no pixels covered")
	}
}

func TestRenderMeshDeterministic(t *testing.T) {
	p, fb, cam := createTestPipeline(48)
	mesh := quadMesh(0.8, 0)
	shader := depthShader{}

	render := func() []uint8 {
		fb.Clear(RGB(0, 0, 0))
		p.RenderMesh(fb, mesh, shader, math3d.RotateY(0.4), cam.ViewMatrix(), cam.ProjectionMatrix(), 1.25)
		out := make([]uint8, len(fb.Pix))
		copy(out, fb.Pix)
		return out
	}

	if !bytes.Equal(render(), render()) {
		t.Error("identical draw calls produced different images")
	}
}

func TestRenderMeshOrderIndependent(t *testing.T) {
	// Depth testing alone decides occlusion, so drawing near-then-far must
	// match far-then-near exactly.
	near := quadMesh(0.6, 0.5)
	far := quadMesh(1, -0.5)
	nearShader := flatShader{RGB(255, 0, 0)}
	farShader := flatShader{RGB(0, 0, 255)}

	p1, fb1, cam := createTestPipeline(64)
	fb1.Clear(RGB(0, 0, 0))
	p1.RenderMesh(fb1, near, nearShader, math3d.Identity(), cam.ViewMatrix(), cam.ProjectionMatrix(), 0)
	p1.RenderMesh(fb1, far, farShader, math3d.Identity(), cam.ViewMatrix(), cam.ProjectionMatrix(), 0)

	p2, fb2, _ := createTestPipeline(64)
	fb2.Clear(RGB(0, 0, 0))
	p2.RenderMesh(fb2, far, farShader, math3d.Identity(), cam.ViewMatrix(), cam.ProjectionMatrix(), 0)
	p2.RenderMesh(fb2, near, nearShader, math3d.Identity(), cam.ViewMatrix(), cam.ProjectionMatrix(), 0)

	if !bytes.Equal(fb1.Pix, fb2.Pix) {
		t.Error("draw order changed the final image")
	}

	// The near quad must win where both overlap.
	if got := fb1.GetPixel(32, 32); got != RGB(255, 0, 0) {
		t.Errorf("center pixel = %v, want near quad's red", got)
	}
}

func TestRenderMeshDegenerateTriangle(t *testing.T) {
	p, fb, cam := createTestPipeline(32)
	bg := RGB(0, 0, 0)
	fb.Clear(bg)

	// All three vertices collinear: zero screen area.
	m := &mockMesh{}
	n := math3d.V3(0, 0, 1)
	for _, pos := range []math3d.Vec3{
		math3d.V3(-1, 0, 0),
		math3d.V3(0, 0, 0),
		math3d.V3(1, 0, 0),
	} {
		m.vertices = append(m.vertices, struct {
			pos    math3d.Vec3
			normal math3d.Vec3
		}{pos, n})
	}
	m.indices = []int{0, 1, 2}

	p.RenderMesh(fb, m, flatShader{RGB(255, 255, 255)}, math3d.Identity(), cam.ViewMatrix(), cam.ProjectionMatrix(), 0)

	if lit := countLit(fb, bg); lit != 0 {
		t.Errorf("degenerate triangle covered %d pixels, want 0", lit)
	}
}

func TestRenderMeshMalformedIndices(t *testing.T) {
	p, fb, cam := createTestPipeline(32)
	bg := RGB(0, 0, 0)
	fb.Clear(bg)

	m := quadMesh(1, 0)
	m.indices = []int{
		0, 1, 99, // out of range, skipped
		-1, 1, 2, // negative, skipped
		0, 1, // trailing partial triple, ignored
	}

	p.RenderMesh(fb, m, flatShader{RGB(255, 255, 255)}, math3d.Identity(), cam.ViewMatrix(), cam.ProjectionMatrix(), 0)

	if lit := countLit(fb, bg); lit != 0 {
		t.Errorf("malformed indices drew %d pixels, want 0", lit)
	}
}

func TestRenderMeshParallelMatchesSerial(t *testing.T) {
	mesh := quadMesh(0.9, 0)
	shader := depthShader{}
	model := math3d.RotateY(0.7).Mul(math3d.RotateX(0.3))

	serial, fbSerial, cam := createTestPipeline(64)
	fbSerial.Clear(RGB(0, 0, 0))
	serial.RenderMesh(fbSerial, mesh, shader, model, cam.ViewMatrix(), cam.ProjectionMatrix(), 2)

	for _, workers := range []int{2, 3, 8} {
		parallel, fbParallel, _ := createTestPipeline(64)
		parallel.SetWorkers(workers)
		fbParallel.Clear(RGB(0, 0, 0))
		parallel.RenderMesh(fbParallel, mesh, shader, model, cam.ViewMatrix(), cam.ProjectionMatrix(), 2)

		if !bytes.Equal(fbSerial.Pix, fbParallel.Pix) {
			t.Errorf("%d-worker render differs from serial render", workers)
		}
	}
}

func TestTransformVertexCenterMapsToScreenCenter(t *testing.T) {
	p, _, cam := createTestPipeline(100)

	mvp := cam.ProjectionMatrix().Mul(cam.ViewMatrix())
	tv := p.transformVertex(math3d.Zero3(), math3d.V3(0, 0, 1), math3d.Identity(), mvp)

	if math.Abs(tv.screenX-50) > 0.001 || math.Abs(tv.screenY-50) > 0.001 {
		t.Errorf("origin projected to (%v, %v), want (50, 50)", tv.screenX, tv.screenY)
	}
}

func TestTransformVertexYFlip(t *testing.T) {
	p, _, cam := createTestPipeline(100)
	mvp := cam.ProjectionMatrix().Mul(cam.ViewMatrix())

	// World up must land in the top half of the screen.
	tv := p.transformVertex(math3d.V3(0, 1, 0), math3d.Up(), math3d.Identity(), mvp)
	if tv.screenY >= 50 {
		t.Errorf("world +Y projected to screenY %v, want above center", tv.screenY)
	}
}

func TestTransformVertexDegenerateW(t *testing.T) {
	p := NewPipeline(100, 100)

	// A zero projection matrix forces clip w to 0.
	var zero math3d.Mat4
	tv := p.transformVertex(math3d.V3(1, 2, 3), math3d.Up(), math3d.Identity(), zero)

	if tv.screenX != -1000 || tv.screenY != -1000 || tv.depth != 1 {
		t.Errorf("degenerate-w vertex = (%v, %v, depth %v), want (-1000, -1000, 1)",
			tv.screenX, tv.screenY, tv.depth)
	}
}

func TestSetWorkersDefaults(t *testing.T) {
	p := NewPipeline(10, 10)
	if p.workers != 1 {
		t.Errorf("new pipeline workers = %d, want 1", p.workers)
	}
	p.SetWorkers(0)
	if p.workers < 1 {
		t.Errorf("SetWorkers(0) left workers = %d", p.workers)
	}
	p.SetWorkers(4)
	if p.workers != 4 {
		t.Errorf("SetWorkers(4) left workers = %d", p.workers)
	}
}

func TestMin3Max3(t *testing.T) {
	if min3(1, 2, 3) != 1 || min3(3, 1, 2) != 1 || min3(2, 3, 1) != 1 {
		t.Error("min3 failed")
	}
	if max3(1, 2, 3) != 3 || max3(3, 1, 2) != 3 || max3(2, 3, 1) != 3 {
		t.Error("max3 failed")
	}
}

func BenchmarkRenderMeshQuad(b *testing.B) {
	p, fb, cam := createTestPipeline(200)
	mesh := quadMesh(0.9, 0)
	shader := flatShader{RGB(255, 128, 0)}

	for b.Loop() {
		fb.Clear(RGB(0, 0, 0))
		p.RenderMesh(fb, mesh, shader, math3d.Identity(), cam.ViewMatrix(), cam.ProjectionMatrix(), 0)
	}
}

func BenchmarkRenderMeshQuadParallel(b *testing.B) {
	p, fb, cam := createTestPipeline(200)
	p.SetWorkers(0)
	mesh := quadMesh(0.9, 0)
	shader := flatShader{RGB(255, 128, 0)}

	for b.Loop() {
		fb.Clear(RGB(0, 0, 0))
		p.RenderMesh(fb, mesh, shader, math3d.Identity(), cam.ViewMatrix(), cam.ProjectionMatrix(), 0)
	}
}
