package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Intersect advances path by one bounce. The caller repeats the call until
// path.InProgress is false; a finished path is left untouched.
func (s *Scene) Intersect(path *material.Path, sampler core.Sampler) {
	if !path.InProgress {
		return
	}

	var hit material.Intersection
	path.Intersections, hit = s.collect(path.Ray(), path.Intersections)

	// Escaped the scene
	if !hit.Valid() {
		path.Color = path.Color.Add(path.Throughput.MultiplyVec(s.SkyColor(path.Direction)))
		path.Finish()
		return
	}

	if s.options.Shading == ShadingNormals {
		path.Color = NormalColor(hit.Normal)
		path.Finish()
		return
	}

	mat := hit.Model.Material()

	// Reached a light. After a diffuse bounce its emission was already
	// gathered as direct lighting at the previous hit.
	if mat.IsLightSource() {
		if !path.DiffuseBounce {
			path.Color = path.Color.Add(path.Throughput.MultiplyVec(mat.Emission()))
		}
		path.Finish()
		return
	}

	if !s.survives(path, sampler) {
		path.Finish()
		return
	}

	direct := mat.ColorOfLastBounce(path, hit, s, sampler)
	path.Color = path.Color.Add(path.Throughput.MultiplyVec(direct))

	mat.SampleRay(path, hit, sampler)
}

// survives plays Russian roulette and reweights the surviving path
func (s *Scene) survives(path *material.Path, sampler core.Sampler) bool {
	lambda := s.options.Roulette
	if sampler.Get1D() >= lambda {
		return false
	}

	p := lambda
	if s.options.Compensation == CompensateDepth {
		p = lambda * math.Pow(1-lambda, float64(path.Bounces))
	}
	if !(p > 0) {
		return false
	}
	path.Throughput = path.Throughput.Multiply(1 / p)
	return true
}
