package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/transform"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b

	lc = lc * lc * lc
	mc = mc * mc * mc
	sc = sc * sc * sc

	// LMS to linear RGB
	return core.NewVec3(
		+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc,
		-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc,
		-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc,
	).Clamp(0, 1)
}

// NewSphereGridScene shares one sphere primitive across a grid of glossy
// spheres colored by position
func NewSphereGridScene() *Preset {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(4.5, 6, 18),    // Position camera farther back and slightly lower
		LookAt:      core.NewVec3(4.5, 0.8, 4.5), // Look at center of grid, slightly lower
		Up:          core.NewVec3(0, 1, 0),
		Width:       800,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 100
	samplingConfig.MaxDepth = 40

	const gridSize = 10
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	radius := spacing * 0.35

	sphere := geometry.NewSphere()
	grid := NewGroup("grid")

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue across X, chroma across Z
			hue := float64(i) / float64(gridSize-1) * 360.0
			chroma := 0.05 + float64(j)/float64(gridSize-1)*0.2
			lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)
			shininess := 0.3 + 0.2*float64((i+j)%3)

			mat := material.NewGlossy(oklchToRGB(lightness, chroma, hue), core.NewVec3(0.95, 0.95, 0.95), shininess)
			grid.Add(
				transform.Compose(transform.Translate(core.NewVec3(x, radius, z)), transform.UniformScale(radius)),
				NewLeaf(fmt.Sprintf("sphere-%d-%d", i, j), sphere, mat),
			)
		}
	}

	root := NewGroup("sphere-grid").
		Add(mgl64.Ident4(), NewLeaf("ground",
			quad(core.NewVec3(-20, 0, 30), core.NewVec3(50, 0, 0), core.NewVec3(0, 0, -50)),
			material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))).
		Add(mgl64.Ident4(), grid).
		// A bright sun-like light high and to the side
		Add(transform.Compose(transform.Translate(core.NewVec3(20, 25, 20)), transform.UniformScale(8)),
			NewLeaf("sun", sphere, material.NewEmissive(core.NewVec3(12.0, 11.5, 10.0))))

	return &Preset{
		Root:     root,
		Options:  DefaultOptions(),
		Camera:   cameraConfig,
		Sampling: samplingConfig,
	}
}
