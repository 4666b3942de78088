package render

import (
	"image/color"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/nova/pkg/math3d"
)

// Shader computes a fragment color from the interpolated world-space position
// and normal at the given time. Implementations must be stateless; the
// pipeline may invoke them from multiple goroutines.
type Shader interface {
	Fragment(pos, normal math3d.Vec3, t float64) color.RGBA
}

// Mesh is the geometry contract consumed by the pipeline: a vertex sequence
// and an index sequence forming triangles. Defined here, like Shader, so
// model packages depend on render and not the other way around.
type Mesh interface {
	VertexCount() int
	Vertex(i int) (pos, normal math3d.Vec3)
	IndexCount() int
	Index(i int) int
}

const (
	// Clip-space w magnitudes below this are treated as degenerate; the
	// vertex is parked far outside the viewport instead of divided.
	degenerateW = 1e-6
	// Barycentric denominators below this mean a zero-area triangle, which
	// covers no pixels.
	degenerateArea = 1e-8
)

// transformedVertex is the per-draw-call intermediate: screen position, NDC
// depth, and the world-space attributes the shader interpolates.
type transformedVertex struct {
	screenX, screenY float64
	depth            float64
	worldPos         math3d.Vec3
	worldNormal      math3d.Vec3
}

// Pipeline rasterizes triangle meshes into a Framebuffer. The target
// dimensions are fixed at construction. There is no triangle sorting and no
// back-face culling; occlusion relies entirely on the per-pixel depth test,
// so draw order never changes the final image.
type Pipeline struct {
	width   int
	height  int
	workers int
}

// NewPipeline creates a pipeline targeting the given framebuffer dimensions.
// Rendering is single-threaded until SetWorkers enables more.
func NewPipeline(width, height int) *Pipeline {
	return &Pipeline{width: width, height: height, workers: 1}
}

// SetWorkers sets the number of goroutines used per draw call. n <= 0 picks
// one per CPU. With more than one worker the screen is split into horizontal
// bands, one per worker, so depth-test writes never race.
func (p *Pipeline) SetWorkers(n int) {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p.workers = n
}

// RenderMesh transforms the mesh through the model, view, and projection
// matrices and fills its triangles into fb, shading each covered pixel.
// Malformed index triples are skipped silently; rendering edge cases never
// surface as errors.
func (p *Pipeline) RenderMesh(fb *Framebuffer, mesh Mesh, shader Shader, model, view, proj math3d.Mat4, t float64) {
	mvp := proj.Mul(view).Mul(model)

	tv := make([]transformedVertex, mesh.VertexCount())
	p.transformVertices(tv, mesh, model, mvp)

	if p.workers <= 1 {
		p.rasterizeAll(fb, tv, mesh, shader, t, 0, p.height-1)
		return
	}

	var g errgroup.Group
	band := (p.height + p.workers - 1) / p.workers
	for w := range p.workers {
		minY := w * band
		maxY := minY + band - 1
		if maxY > p.height-1 {
			maxY = p.height - 1
		}
		if minY > maxY {
			continue
		}
		g.Go(func() error {
			p.rasterizeAll(fb, tv, mesh, shader, t, minY, maxY)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
}

// transformVertices fills tv with transformed vertices. Vertices have no
// cross dependencies, so the work is chunked across workers when enabled.
func (p *Pipeline) transformVertices(tv []transformedVertex, mesh Mesh, model, mvp math3d.Mat4) {
	if p.workers <= 1 || len(tv) < 256 {
		for i := range tv {
			pos, normal := mesh.Vertex(i)
			tv[i] = p.transformVertex(pos, normal, model, mvp)
		}
		return
	}

	var g errgroup.Group
	chunk := (len(tv) + p.workers - 1) / p.workers
	for start := 0; start < len(tv); start += chunk {
		end := min(start+chunk, len(tv))
		g.Go(func() error {
			for i := start; i < end; i++ {
				pos, normal := mesh.Vertex(i)
				tv[i] = p.transformVertex(pos, normal, model, mvp)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// transformVertex maps one object-space vertex to screen space, keeping the
// world-space position and renormalized normal for shading.
func (p *Pipeline) transformVertex(pos, normal math3d.Vec3, model, mvp math3d.Mat4) transformedVertex {
	worldPos := model.MulVec4(math3d.V4FromV3(pos, 1)).Vec3()
	worldNormal := model.MulVec3Dir(normal).Normalize()

	clip := mvp.MulVec4(math3d.V4FromV3(pos, 1))
	if math.Abs(clip.W) < degenerateW {
		// Park the vertex far off-screen so any triangle using it covers
		// nothing. This is the only clipping safeguard in the pipeline.
		return transformedVertex{
			screenX:     -1000,
			screenY:     -1000,
			depth:       1,
			worldPos:    worldPos,
			worldNormal: worldNormal,
		}
	}

	invW := 1 / clip.W
	ndcX := clip.X * invW
	ndcY := clip.Y * invW
	ndcZ := clip.Z * invW

	return transformedVertex{
		screenX:     (ndcX + 1) * 0.5 * float64(p.width),
		screenY:     (1 - ndcY) * 0.5 * float64(p.height), // Y flipped for top-left origin
		depth:       ndcZ,
		worldPos:    worldPos,
		worldNormal: worldNormal,
	}
}

// rasterizeAll walks the index triples and fills each valid triangle,
// restricted to the [bandMinY, bandMaxY] rows.
func (p *Pipeline) rasterizeAll(fb *Framebuffer, tv []transformedVertex, mesh Mesh, shader Shader, t float64, bandMinY, bandMaxY int) {
	n := mesh.IndexCount()
	for i := 0; i+2 < n; i += 3 {
		i0 := mesh.Index(i)
		i1 := mesh.Index(i + 1)
		i2 := mesh.Index(i + 2)
		if i0 < 0 || i0 >= len(tv) || i1 < 0 || i1 >= len(tv) || i2 < 0 || i2 >= len(tv) {
			continue // malformed triple, tolerated
		}
		p.rasterizeTriangle(fb, &tv[i0], &tv[i1], &tv[i2], shader, t, bandMinY, bandMaxY)
	}
}

// rasterizeTriangle fills one screen-space triangle: bounding-box walk,
// barycentric coverage test, attribute interpolation, and a depth-tested
// write per covered pixel.
func (p *Pipeline) rasterizeTriangle(fb *Framebuffer, v0, v1, v2 *transformedVertex, shader Shader, t float64, bandMinY, bandMaxY int) {
	minX := int(math.Max(0, math.Floor(min3(v0.screenX, v1.screenX, v2.screenX))))
	maxX := int(math.Min(float64(p.width-1), math.Ceil(max3(v0.screenX, v1.screenX, v2.screenX))))
	minY := int(math.Max(float64(bandMinY), math.Floor(min3(v0.screenY, v1.screenY, v2.screenY))))
	maxY := int(math.Min(float64(bandMaxY), math.Ceil(max3(v0.screenY, v1.screenY, v2.screenY))))
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup: solve the 2x2 system once per triangle.
	e1x := v1.screenX - v0.screenX
	e1y := v1.screenY - v0.screenY
	e2x := v2.screenX - v0.screenX
	e2y := v2.screenY - v0.screenY

	d00 := e1x*e1x + e1y*e1y
	d01 := e1x*e2x + e1y*e2y
	d11 := e2x*e2x + e2y*e2y

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < degenerateArea {
		return // zero screen area, no coverage
	}
	invDenom := 1 / denom

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5

			dpx := px - v0.screenX
			dpy := py - v0.screenY
			dp1 := dpx*e1x + dpy*e1y
			dp2 := dpx*e2x + dpy*e2y

			w1 := (d11*dp1 - d01*dp2) * invDenom
			w2 := (d00*dp2 - d01*dp1) * invDenom
			w0 := 1 - w1 - w2

			// Covered iff all weights are non-negative. Shared edges may
			// double-shade; the depth test picks the surviving write.
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			depth := w0*v0.depth + w1*v1.depth + w2*v2.depth
			if depth >= fb.DepthAt(x, y) {
				continue // reject before paying for the shader
			}

			worldPos := v0.worldPos.Scale(w0).
				Add(v1.worldPos.Scale(w1)).
				Add(v2.worldPos.Scale(w2))
			normal := v0.worldNormal.Scale(w0).
				Add(v1.worldNormal.Scale(w1)).
				Add(v2.worldNormal.Scale(w2)).
				Normalize()

			fb.SetPixel(x, y, shader.Fragment(worldPos, normal, t), depth)
		}
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
