package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/transform"
)

// Model is a primitive placed in the world with a material. Models are only
// created by Build, which sets the transform exactly once.
type Model struct {
	name      string
	primitive geometry.Primitive
	mat       material.Material
	transform transform.Transform
	isLight   bool
}

func newModel(name string, primitive geometry.Primitive, mat material.Material, tr transform.Transform) *Model {
	return &Model{
		name:      name,
		primitive: primitive,
		mat:       mat,
		transform: tr,
		isLight:   mat.IsLightSource(),
	}
}

// Name returns the name of the tree node the model came from
func (m *Model) Name() string {
	return m.name
}

// Material returns the bound material
func (m *Model) Material() material.Material {
	return m.mat
}

// Primitive returns the model's shape in local space
func (m *Model) Primitive() geometry.Primitive {
	return m.primitive
}

// Transform returns the model-to-world transform and its inverse
func (m *Model) Transform() transform.Transform {
	return m.transform
}

// IsLightSource reports whether the material emits light
func (m *Model) IsLightSource() bool {
	return m.isLight
}

// Intersect appends the model's world-space hits along ray to hits
func (m *Model) Intersect(ray core.Ray, hits []material.Intersection) []material.Intersection {
	local := m.transform.RayToLocal(ray)
	for _, h := range m.primitive.Intersect(local) {
		normal := m.transform.NormalToWorld(h.Normal)
		hits = append(hits, material.Intersection{
			T:         h.T,
			Point:     m.transform.PointToWorld(h.Point),
			Normal:    normal,
			FrontFace: ray.Direction.Dot(normal) < 0,
			Model:     m,
			Primitive: h.Primitive,
		})
	}
	return hits
}

// SamplePoint returns a world-space point on the model's surface
func (m *Model) SamplePoint(sampler core.Sampler) core.Vec3 {
	return m.transform.PointToWorld(m.primitive.SamplePoint(sampler.Get2D()))
}
