package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Material decides how light leaves a surface after a path reaches it
type Material interface {
	// SampleRay draws the next path segment, folding the bounce weight into
	// the path throughput and advancing the bounce counter
	SampleRay(path *Path, hit Intersection, sampler core.Sampler)

	// ColorOfLastBounce is the direct-lighting radiance gathered at this hit,
	// before the path throughput is applied
	ColorOfLastBounce(path *Path, hit Intersection, scene Scene, sampler core.Sampler) core.Vec3

	// DirectLighting estimates the light arriving straight from light
	// sources, scaled by the diffuse albedo
	DirectLighting(hit Intersection, scene Scene, sampler core.Sampler) core.Vec3

	// IsLightSource reports whether Emission is non-zero
	IsLightSource() bool

	// Emission is the radiance emitted by the surface
	Emission() core.Vec3

	// LightAttenuation divides emitted light that travelled distance
	LightAttenuation(distance float64) float64
}

// Surface is a placed model a path can hit
type Surface interface {
	Material() Material

	// SamplePoint returns a world-space point on the surface
	SamplePoint(sampler core.Sampler) core.Vec3
}

// Scene is the read-only view materials need for shadow rays
type Scene interface {
	NumLights() int
	Light(i int) Surface

	// Nearest returns the closest intersection along the ray, or a sentinel
	// with T = +Inf and no model
	Nearest(ray core.Ray) Intersection
}

// Intersection records one world-space hit of a ray with a model
type Intersection struct {
	T         float64            // Distance along the ray, strictly positive
	Point     core.Vec3          // World-space hit point
	Normal    core.Vec3          // Outward unit normal
	FrontFace bool               // Whether the ray arrived against the outward normal
	Model     Surface            // The model that was hit
	Primitive geometry.Primitive // The sub-primitive hit, for compound models
}

// NoIntersection returns the miss sentinel
func NoIntersection() Intersection {
	return Intersection{T: math.Inf(1)}
}

// Valid reports whether the record describes an actual hit
func (i Intersection) Valid() bool {
	return i.Model != nil && !math.IsInf(i.T, 1)
}

// Closer reports whether i lies strictly closer than other. NaN distances
// and non-positive distances never count as closer.
func (i Intersection) Closer(other Intersection) bool {
	return i.T > 0 && i.T < other.T
}

// ShadingNormal is the normal flipped to face the side the ray came from
func (i Intersection) ShadingNormal() core.Vec3 {
	if i.FrontFace {
		return i.Normal
	}
	return i.Normal.Negate()
}
