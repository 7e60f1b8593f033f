package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Sphere is the unit sphere centered at the local origin. Position and size
// come from the owning model's transform.
type Sphere struct{}

// NewSphere creates a unit sphere
func NewSphere() *Sphere {
	return &Sphere{}
}

// Intersect solves |o + t*d|^2 = 1 and reports every root with t > 0
func (s *Sphere) Intersect(ray core.Ray) []Hit {
	// Quadratic equation coefficients: at² + 2*halfB*t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return nil
	}
	halfB := ray.Origin.Dot(ray.Direction)
	c := ray.Origin.Dot(ray.Origin) - 1.0

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	var hits []Hit
	for _, root := range [2]float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
		if !(root > 0) {
			continue
		}
		point := ray.At(root)
		hits = append(hits, Hit{
			T:         root,
			Point:     point,
			Normal:    point.Normalize(),
			Primitive: s,
		})
	}
	return hits
}

// SamplePoint returns a uniformly distributed point on the sphere
func (s *Sphere) SamplePoint(sample core.Vec2) core.Vec3 {
	return core.SampleOnUnitSphere(sample)
}
