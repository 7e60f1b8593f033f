package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// parallelEpsilon rejects rays lying (almost) in the triangle's plane
const parallelEpsilon = 1e-8

// Triangle is a single triangle with per-vertex normals for smooth shading
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	N0, N1, N2 core.Vec3 // Unit vertex normals
}

// NewTriangle creates a triangle whose vertex normals all equal the face normal
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	n := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return NewSmoothTriangle(v0, v1, v2, n, n, n)
}

// NewSmoothTriangle creates a triangle with explicit vertex normals
func NewSmoothTriangle(v0, v1, v2, n0, n1, n2 core.Vec3) *Triangle {
	return &Triangle{
		V0: v0, V1: v1, V2: v2,
		N0: n0.Normalize(), N1: n1.Normalize(), N2: n2.Normalize(),
	}
}

// Intersect tests the ray against the triangle using the Möller-Trumbore
// algorithm. At most one hit is reported.
func (tri *Triangle) Intersect(ray core.Ray) []Hit {
	hit, ok := tri.intersect(ray)
	if !ok {
		return nil
	}
	return []Hit{hit}
}

func (tri *Triangle) intersect(ray core.Ray) (Hit, bool) {
	edge1 := tri.V1.Subtract(tri.V0)
	edge2 := tri.V2.Subtract(tri.V0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if det > -parallelEpsilon && det < parallelEpsilon {
		return Hit{}, false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(tri.V0)
	u := invDet * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return Hit{}, false
	}

	q := s.Cross(edge1)
	v := invDet * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return Hit{}, false
	}

	t := invDet * edge2.Dot(q)
	if !(t > 0) {
		return Hit{}, false
	}

	return Hit{
		T:         t,
		Point:     ray.At(t),
		Normal:    tri.interpolateNormal(u, v),
		Primitive: tri,
	}, true
}

// interpolateNormal blends the vertex normals with barycentric weights
func (tri *Triangle) interpolateNormal(u, v float64) core.Vec3 {
	return tri.N0.Multiply(1 - u - v).
		Add(tri.N1.Multiply(u)).
		Add(tri.N2.Multiply(v)).
		Normalize()
}

// SamplePoint returns a uniformly distributed point on the triangle
func (tri *Triangle) SamplePoint(sample core.Vec2) core.Vec3 {
	w0, w1, w2 := core.SampleTriangle(sample)
	return tri.V0.Multiply(w0).Add(tri.V1.Multiply(w1)).Add(tri.V2.Multiply(w2))
}

// Area returns the triangle's surface area
func (tri *Triangle) Area() float64 {
	return 0.5 * tri.V1.Subtract(tri.V0).Cross(tri.V2.Subtract(tri.V0)).Length()
}
