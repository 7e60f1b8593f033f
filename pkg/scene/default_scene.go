package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/transform"
)

// NewDefaultScene creates a default scene with spheres, ground, and a light
func NewDefaultScene() *Preset {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:      core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 128

	// Create materials
	ground := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	blue := material.NewGlossy(core.NewVec3(0.1, 0.2, 0.5), core.NewVec3(0.9, 0.9, 0.9), 0.2)
	silver := material.NewMirror(core.NewVec3(0.8, 0.8, 0.8))
	red := material.NewGlossy(core.NewVec3(0.65, 0.25, 0.2), core.NewVec3(1, 1, 1), 0.5)
	glass := material.NewDielectric(1.5)
	lamp := material.NewEmissive(core.NewVec3(15, 14, 13))

	sphere := geometry.NewSphere()
	halfSize := func(offset core.Vec3) mgl64.Mat4 {
		return transform.Compose(transform.Translate(offset), transform.UniformScale(0.5))
	}

	root := NewGroup("default").
		Add(mgl64.Ident4(), NewLeaf("ground",
			quad(core.NewVec3(-10, 0, 10), core.NewVec3(20, 0, 0), core.NewVec3(0, 0, -20)), ground)).
		Add(halfSize(core.NewVec3(0, 0.5, -1)), NewLeaf("center", sphere, red)).
		Add(halfSize(core.NewVec3(-1, 0.5, -1)), NewLeaf("left", sphere, silver)).
		Add(halfSize(core.NewVec3(1, 0.5, -1)), NewLeaf("right", sphere, blue)).
		Add(transform.Compose(transform.Translate(core.NewVec3(-0.45, 0.2, -0.2)), transform.UniformScale(0.2)),
			NewLeaf("glass", sphere, glass)).
		Add(transform.Compose(transform.Translate(core.NewVec3(2, 4, 1)), transform.UniformScale(0.6)),
			NewLeaf("light", sphere, lamp))

	return &Preset{
		Root:     root,
		Options:  DefaultOptions(),
		Camera:   cameraConfig,
		Sampling: samplingConfig,
	}
}

// NewNormalsScene shows the default scene colored by surface normal
func NewNormalsScene() *Preset {
	p := NewDefaultScene()
	p.Options.Shading = ShadingNormals
	p.Sampling.SamplesPerPixel = 4
	return p
}
