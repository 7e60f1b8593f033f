package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Disc is the unit disc in the local XZ plane, centered at the origin and
// facing +Y
type Disc struct{}

// NewDisc creates a unit disc
func NewDisc() *Disc {
	return &Disc{}
}

// Intersect reports the plane crossing when it falls inside the unit radius
func (d *Disc) Intersect(ray core.Ray) []Hit {
	// Ray is parallel to the disc
	if math.Abs(ray.Direction.Y) < 1e-12 {
		return nil
	}

	t := -ray.Origin.Y / ray.Direction.Y
	if !(t > 0) {
		return nil
	}

	point := ray.At(t)
	if point.X*point.X+point.Z*point.Z > 1 {
		return nil
	}
	point.Y = 0
	return []Hit{{T: t, Point: point, Normal: core.NewVec3(0, 1, 0), Primitive: d}}
}

// SamplePoint samples a point uniformly over the disc area
func (d *Disc) SamplePoint(sample core.Vec2) core.Vec3 {
	r := math.Sqrt(sample.X)
	theta := 2.0 * math.Pi * sample.Y
	return core.NewVec3(r*math.Cos(theta), 0, r*math.Sin(theta))
}
