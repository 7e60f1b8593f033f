package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Attenuation describes how emitted light falls off with distance:
// constant + linear*d + quadratic*d²
type Attenuation struct {
	Constant  float64
	Linear    float64
	Quadratic float64
}

// NoAttenuation keeps emitted light constant over distance
var NoAttenuation = Attenuation{Constant: 1}

// Factor evaluates the falloff at distance
func (a Attenuation) Factor(distance float64) float64 {
	return a.Constant + a.Linear*distance + a.Quadratic*distance*distance
}

// Emissive represents a light-emitting material
type Emissive struct {
	Color       core.Vec3   // Emitted radiance
	Attenuation Attenuation // Distance falloff for direct lighting
}

// NewEmissive creates an emissive material without distance falloff
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Color: emission, Attenuation: NoAttenuation}
}

// NewAttenuatedEmissive creates an emissive material with distance falloff
func NewAttenuatedEmissive(emission core.Vec3, attenuation Attenuation) *Emissive {
	return &Emissive{Color: emission, Attenuation: attenuation}
}

// SampleRay absorbs the path; lights do not reflect
func (e *Emissive) SampleRay(path *Path, hit Intersection, sampler core.Sampler) {
	path.Finish()
}

// ColorOfLastBounce is zero; emission is accounted for when a path reaches the light
func (e *Emissive) ColorOfLastBounce(path *Path, hit Intersection, scene Scene, sampler core.Sampler) core.Vec3 {
	return core.Vec3{}
}

// DirectLighting is zero since lights have no diffuse albedo
func (e *Emissive) DirectLighting(hit Intersection, scene Scene, sampler core.Sampler) core.Vec3 {
	return core.Vec3{}
}

// IsLightSource reports whether any emission channel is non-zero
func (e *Emissive) IsLightSource() bool {
	return !e.Color.IsZero()
}

// Emission returns the emitted radiance
func (e *Emissive) Emission() core.Vec3 {
	return e.Color
}

// LightAttenuation evaluates the distance falloff
func (e *Emissive) LightAttenuation(distance float64) float64 {
	return e.Attenuation.Factor(distance)
}
