package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/transform"
)

// NewSpaceScene creates a small planetary system under a starfield
func NewSpaceScene() *Preset {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 3, 14),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       640,
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}

	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 96

	sphere := geometry.NewSphere()
	place := func(center core.Vec3, radius float64) mgl64.Mat4 {
		return transform.Compose(transform.Translate(center), transform.UniformScale(radius))
	}

	// The sun fades with distance so the outer planet stays dim
	sun := NewLeaf("sun", sphere, material.NewAttenuatedEmissive(
		core.NewVec3(40, 34, 24),
		material.Attenuation{Constant: 1, Linear: 0.05, Quadratic: 0.01},
	))

	rock := material.NewDiffuse(core.NewVec3(0.55, 0.5, 0.45))
	ocean := material.NewGlossy(core.NewVec3(0.1, 0.25, 0.6), core.NewVec3(0.9, 0.9, 1.0), 0.25)
	gas := material.NewGlossy(core.NewVec3(0.75, 0.55, 0.35), core.NewVec3(1, 1, 1), 0.1)

	// A planet with its moon; the system is tilted and placed as a unit
	moon := NewLeaf("moon", sphere, rock)
	earth := NewGroup("earth-system").
		Add(mgl64.Ident4(), NewLeaf("earth", sphere, ocean)).
		Add(place(core.NewVec3(1.8, 0.3, 0), 0.27), moon)

	root := NewGroup("space").
		Add(place(core.NewVec3(-6, 0, -4), 1.6), sun).
		Add(transform.Compose(
			transform.Translate(core.NewVec3(0.5, 0, 0)),
			transform.Rotate(core.NewVec3(0, 0, 1), 15),
		), earth).
		Add(transform.Compose(
			transform.Translate(core.NewVec3(5, -0.5, -3)),
			transform.Rotate(core.NewVec3(1, 0, 0), -20),
			transform.Scale(core.NewVec3(1.6, 1.3, 1.6)),
		), NewLeaf("giant", sphere, gas)).
		// Second moon reuses the same leaf around the giant
		Add(place(core.NewVec3(7.4, 0.2, -1.5), 0.35), moon)

	opts := DefaultOptions()
	opts.Sky = SkySpace

	return &Preset{
		Root:     root,
		Options:  opts,
		Camera:   cameraConfig,
		Sampling: samplingConfig,
	}
}
