package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

const (
	// SurfaceOffset lifts new bounce origins off the surface
	SurfaceOffset = 1e-3

	// ShadowOffset lifts shadow ray origins off the surface
	ShadowOffset = 1e-2
)

// UnshadowedLight sums the light arriving at hit from every light source other
// than the hit model itself, ignoring albedo. Each light is sampled once at a
// random point on its surface.
func UnshadowedLight(hit Intersection, scene Scene, sampler core.Sampler) core.Vec3 {
	total := core.Vec3{}
	normal := hit.ShadingNormal()
	origin := hit.Point.Add(normal.Multiply(ShadowOffset))

	for i := 0; i < scene.NumLights(); i++ {
		light := scene.Light(i)
		if light == hit.Model {
			continue
		}

		target := light.SamplePoint(sampler)
		dir := target.Subtract(origin).Normalize()
		if dir.IsZero() {
			continue
		}

		nearest := scene.Nearest(core.NewRay(origin, dir))
		if !Illuminates(nearest, light) {
			continue
		}

		lightMat := light.Material()
		attenuation := lightMat.LightAttenuation(nearest.T)
		if !(attenuation > 0) {
			continue
		}

		cosine := max(normal.Dot(dir), 0)
		total = total.Add(lightMat.Emission().Multiply(cosine / attenuation))
	}

	return total
}

// Illuminates reports whether light is what a shadow ray reaches first.
// Anything else in front of it, or nothing at all, means shadow.
func Illuminates(nearest Intersection, light Surface) bool {
	return nearest.Valid() && nearest.Model == light
}
