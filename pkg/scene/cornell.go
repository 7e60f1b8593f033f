package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/transform"
)

// NewCornellScene creates a classic Cornell box scene with triangle walls and area lighting
func NewCornellScene() *Preset {
	config := renderer.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        40.0,
	}

	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 150
	samplingConfig.MaxDepth = 40

	// Create materials
	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewEmissive(core.NewVec3(15, 15, 15))

	// Cornell box dimensions (standard 555x555x555 units)
	boxSize := 555.0
	x := core.NewVec3(boxSize, 0, 0)
	y := core.NewVec3(0, boxSize, 0)
	z := core.NewVec3(0, 0, boxSize)

	walls := NewGroup("walls").
		Add(mgl64.Ident4(), NewLeaf("floor", quad(core.Vec3{}, z, x), white)).
		Add(mgl64.Ident4(), NewLeaf("ceiling", quad(y, x, z), white)).
		Add(mgl64.Ident4(), NewLeaf("back", quad(z, y, x), white)).
		Add(mgl64.Ident4(), NewLeaf("left", quad(core.Vec3{}, y, z), red)).
		Add(mgl64.Ident4(), NewLeaf("right", quad(x, z, y), green))

	// Area light just below the ceiling
	ceilingLight := NewLeaf("light",
		quad(core.NewVec3(213, boxSize-1, 227), core.NewVec3(130, 0, 0), core.NewVec3(0, 0, 105)), light)

	// Spheres of radius 90 resting on the floor
	ball := func(name string, center core.Vec3, mat material.Material) (mgl64.Mat4, *Node) {
		return transform.Compose(transform.Translate(center), transform.UniformScale(90)),
			NewLeaf(name, geometry.NewSphere(), mat)
	}

	root := NewGroup("cornell").
		Add(mgl64.Ident4(), walls).
		Add(mgl64.Ident4(), ceilingLight).
		Add(ball("mirror", core.NewVec3(185, 90, 169), material.NewMirror(core.NewVec3(0.9, 0.9, 0.9)))).
		Add(ball("glossy", core.NewVec3(370, 90, 351), material.NewGlossy(white.Diffuse, core.NewVec3(1, 1, 1), 0.3)))

	opts := DefaultOptions()
	opts.Sky = SkySpace

	return &Preset{
		Root:     root,
		Options:  opts,
		Camera:   config,
		Sampling: samplingConfig,
	}
}
