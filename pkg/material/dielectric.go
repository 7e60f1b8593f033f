package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric is a clear refracting material like glass. Each bounce either
// reflects or refracts, chosen with the Fresnel reflectance as probability.
type Dielectric struct {
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
	Tint            core.Vec3 // Transmission color, white for clear glass
}

// NewDielectric creates a clear dielectric
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Tint: core.Splat(1)}
}

// SampleRay reflects or refracts the path through the surface
func (d *Dielectric) SampleRay(path *Path, hit Intersection, sampler core.Sampler) {
	normal := hit.ShadingNormal()

	refractionRatio := d.RefractiveIndex // Exiting the material
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := path.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(normal), 1.0)
	sinTheta := math.Sqrt(max(0, 1.0-cosTheta*cosTheta))

	var direction, origin core.Vec3
	cannotRefract := refractionRatio*sinTheta > 1.0
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = unitDirection.Reflect(normal).Normalize()
		origin = hit.Point.Add(normal.Multiply(SurfaceOffset))
	} else {
		direction = refractVector(unitDirection, normal, refractionRatio).Normalize()
		origin = hit.Point.Subtract(normal.Multiply(SurfaceOffset))
	}

	path.Throughput = path.Throughput.MultiplyVec(d.Tint)
	path.Continue(origin, direction, false)
}

// ColorOfLastBounce is zero; a delta surface gathers no direct light
func (d *Dielectric) ColorOfLastBounce(path *Path, hit Intersection, scene Scene, sampler core.Sampler) core.Vec3 {
	return core.Vec3{}
}

// DirectLighting is zero; a delta surface gathers no direct light
func (d *Dielectric) DirectLighting(hit Intersection, scene Scene, sampler core.Sampler) core.Vec3 {
	return core.Vec3{}
}

// IsLightSource is always false for dielectrics
func (d *Dielectric) IsLightSource() bool {
	return false
}

// Emission is always zero for dielectrics
func (d *Dielectric) Emission() core.Vec3 {
	return core.Vec3{}
}

// LightAttenuation is irrelevant for non-emitters
func (d *Dielectric) LightAttenuation(distance float64) float64 {
	return 1
}

// refractVector bends a unit vector through a surface using Snell's law
func refractVector(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance is Schlick's approximation of the Fresnel reflectance
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
