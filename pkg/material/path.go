package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Path is one light-transport path being traced. The scene advances it one
// bounce per call; the driver owns it and must never share it between
// goroutines.
type Path struct {
	Origin    core.Vec3 // Start of the current segment
	Direction core.Vec3 // Unit direction of the current segment

	Color      core.Vec3 // Radiance gathered so far
	Throughput core.Vec3 // Product of every sampling weight along the path

	Bounces       int  // Number of bounces taken
	InProgress    bool // False once the path has terminated
	DiffuseBounce bool // Whether the previous bounce was diffuse

	// Scratch list of candidate hits for the current segment
	Intersections []Intersection
}

// NewPath starts a path with unit throughput
func NewPath(origin, direction core.Vec3) *Path {
	p := &Path{}
	p.Reset(origin, direction)
	return p
}

// Reset reinitializes the path for a new sample, keeping scratch storage
func (p *Path) Reset(origin, direction core.Vec3) {
	p.Origin = origin
	p.Direction = direction.Normalize()
	p.Color = core.Vec3{}
	p.Throughput = core.Splat(1)
	p.Bounces = 0
	p.InProgress = true
	p.DiffuseBounce = false
	p.Intersections = p.Intersections[:0]
}

// Ray returns the current segment as a geometric ray
func (p *Path) Ray() core.Ray {
	return core.NewRay(p.Origin, p.Direction)
}

// Finish marks the path as terminated
func (p *Path) Finish() {
	p.InProgress = false
}

// Continue moves the path to a new segment starting at origin
func (p *Path) Continue(origin, direction core.Vec3, diffuse bool) {
	p.Origin = origin
	p.Direction = direction
	p.DiffuseBounce = diffuse
	p.Bounces++
}
