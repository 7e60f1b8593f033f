package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// Hit is one candidate ray/primitive intersection in the primitive's local frame
type Hit struct {
	T         float64   // Ray parameter, always > 0
	Point     core.Vec3 // Local hit point
	Normal    core.Vec3 // Outward unit normal
	Primitive Primitive // The primitive actually hit (a sub-triangle for meshes)
}

// Primitive is a shape defined in its own coordinate frame. The owning model
// is responsible for carrying rays into that frame and results back out.
type Primitive interface {
	// Intersect returns every hit in front of the ray origin, in no particular order
	Intersect(ray core.Ray) []Hit

	// SamplePoint maps a uniform 2D sample to a point on the surface
	SamplePoint(sample core.Vec2) core.Vec3
}
