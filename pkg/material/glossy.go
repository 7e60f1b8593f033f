package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Glossy mixes a diffuse lobe with a perfect mirror. Shininess is the
// probability of taking the mirror bounce.
type Glossy struct {
	Diffuse   core.Vec3 // Diffuse albedo
	Specular  core.Vec3 // Specular albedo
	Shininess float64   // Probability of a specular bounce, in [0, 1]
}

// NewGlossy creates a glossy material, clamping shininess to [0, 1]
func NewGlossy(diffuse, specular core.Vec3, shininess float64) *Glossy {
	return &Glossy{
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: max(0, min(1, shininess)),
	}
}

// NewDiffuse creates a purely diffuse material
func NewDiffuse(albedo core.Vec3) *Glossy {
	return NewGlossy(albedo, core.Vec3{}, 0)
}

// NewMirror creates a perfect mirror
func NewMirror(albedo core.Vec3) *Glossy {
	return NewGlossy(core.Vec3{}, albedo, 1)
}

// SampleRay picks the diffuse or specular lobe and continues the path
func (g *Glossy) SampleRay(path *Path, hit Intersection, sampler core.Sampler) {
	normal := hit.ShadingNormal()
	origin := hit.Point.Add(normal.Multiply(SurfaceOffset))

	if sampler.Get1D() >= g.Shininess {
		dir := core.SampleCosineHemisphere(normal, sampler.Get2D())
		lambertian := max(dir.Dot(normal), 0)
		path.Throughput = path.Throughput.MultiplyVec(g.Diffuse.Multiply(lambertian))
		path.Continue(origin, dir, true)
		return
	}

	// Mirror sampling carries no density correction
	dir := path.Direction.Reflect(normal).Normalize()
	path.Throughput = path.Throughput.MultiplyVec(g.Specular)
	path.Continue(origin, dir, false)
}

// ColorOfLastBounce returns the diffuse share of the direct lighting
func (g *Glossy) ColorOfLastBounce(path *Path, hit Intersection, scene Scene, sampler core.Sampler) core.Vec3 {
	if g.Shininess >= 1 {
		return core.Vec3{}
	}
	return g.DirectLighting(hit, scene, sampler).Multiply(1 - g.Shininess)
}

// DirectLighting applies the diffuse albedo once to the summed light
func (g *Glossy) DirectLighting(hit Intersection, scene Scene, sampler core.Sampler) core.Vec3 {
	return g.Diffuse.MultiplyVec(UnshadowedLight(hit, scene, sampler))
}

// IsLightSource is always false for glossy surfaces
func (g *Glossy) IsLightSource() bool {
	return false
}

// Emission is always zero for glossy surfaces
func (g *Glossy) Emission() core.Vec3 {
	return core.Vec3{}
}

// LightAttenuation is irrelevant for non-emitters
func (g *Glossy) LightAttenuation(distance float64) float64 {
	return 1
}
