package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// fakeSurface is a surface whose sampled point never moves
type fakeSurface struct {
	mat   Material
	point core.Vec3
}

func (f *fakeSurface) Material() Material                         { return f.mat }
func (f *fakeSurface) SamplePoint(sampler core.Sampler) core.Vec3 { return f.point }

// fakeScene answers every shadow query with a fixed nearest hit
type fakeScene struct {
	lights  []Surface
	nearest func(ray core.Ray) Intersection
	queries []core.Ray
}

func (f *fakeScene) NumLights() int      { return len(f.lights) }
func (f *fakeScene) Light(i int) Surface { return f.lights[i] }
func (f *fakeScene) Nearest(ray core.Ray) Intersection {
	f.queries = append(f.queries, ray)
	if f.nearest == nil {
		return NoIntersection()
	}
	return f.nearest(ray)
}

func floorHit(model Surface) Intersection {
	return Intersection{
		T:         1,
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
		Model:     model,
	}
}
