package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// TriangleMesh is a compound primitive made of triangles sharing one model.
// Hits report the individual triangle so callers can tell faces apart.
type TriangleMesh struct {
	triangles []*Triangle
	cdf       []float64 // Cumulative area fractions for surface sampling
}

// NewTriangleMesh creates a mesh from vertices and face indices. Each group
// of three indices forms a triangle. normals is optional; when given it must
// hold one normal per vertex and enables smooth shading.
func NewTriangleMesh(vertices []core.Vec3, faces []int, normals []core.Vec3) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face index count %d is not a multiple of 3", len(faces))
	}
	if normals != nil && len(normals) != len(vertices) {
		return nil, fmt.Errorf("got %d normals for %d vertices", len(normals), len(vertices))
	}

	triangles := make([]*Triangle, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range", i/3, idx)
			}
		}

		if normals != nil {
			triangles = append(triangles, NewSmoothTriangle(
				vertices[i0], vertices[i1], vertices[i2],
				normals[i0], normals[i1], normals[i2]))
		} else {
			triangles = append(triangles, NewTriangle(vertices[i0], vertices[i1], vertices[i2]))
		}
	}

	return newMesh(triangles), nil
}

// NewTriangleMeshFromTriangles wraps already-built triangles
func NewTriangleMeshFromTriangles(triangles []*Triangle) *TriangleMesh {
	return newMesh(triangles)
}

func newMesh(triangles []*Triangle) *TriangleMesh {
	cdf := make([]float64, len(triangles))
	total := 0.0
	for i, tri := range triangles {
		total += tri.Area()
		cdf[i] = total
	}
	if total > 0 {
		for i := range cdf {
			cdf[i] /= total
		}
	}
	return &TriangleMesh{triangles: triangles, cdf: cdf}
}

// Intersect returns the hits of every triangle
func (m *TriangleMesh) Intersect(ray core.Ray) []Hit {
	var hits []Hit
	for _, tri := range m.triangles {
		if hit, ok := tri.intersect(ray); ok {
			hits = append(hits, hit)
		}
	}
	return hits
}

// SamplePoint picks a triangle proportionally to its area, then a point on it
func (m *TriangleMesh) SamplePoint(sample core.Vec2) core.Vec3 {
	if len(m.triangles) == 0 {
		return core.Vec3{}
	}

	idx := len(m.cdf) - 1
	lower := 0.0
	for i, c := range m.cdf {
		if sample.X < c {
			idx = i
			break
		}
		lower = c
	}

	// Stretch the consumed slice of sample.X back to [0, 1)
	width := m.cdf[idx] - lower
	x := 0.0
	if width > 0 {
		x = math.Min((sample.X-lower)/width, math.Nextafter(1, 0))
	}
	return m.triangles[idx].SamplePoint(core.NewVec2(x, sample.Y))
}

// Triangles returns the mesh's triangles
func (m *TriangleMesh) Triangles() []*Triangle {
	return m.triangles
}

// GetTriangleCount returns the number of triangles in the mesh
func (m *TriangleMesh) GetTriangleCount() int {
	return len(m.triangles)
}
