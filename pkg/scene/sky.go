package scene

import (
	"math"
	"sort"

	"github.com/aquilax/go-perlin"

	"github.com/df07/go-pathtracer/pkg/core"
)

var (
	skyHorizon = core.SRGBToLinear(core.NewVec3(0.227, 0.392, 1.0))
	skyZenith  = core.SRGBToLinear(core.Splat(0.9))

	spaceLow  = core.NewVec3(0, 0, 0)
	spaceHigh = core.NewVec3(0.01, 0.01, 0.05)
)

const (
	starMinBrightness = 1.0
	starMaxBrightness = 2.5
	starOpacity       = 0.95

	// Directions sampled to calibrate the noise distribution
	starCalibrationSamples = 8192
)

// SkyColor returns the background radiance seen along direction
func (s *Scene) SkyColor(direction core.Vec3) core.Vec3 {
	dir := direction.Normalize()
	if s.options.Sky == SkySpace {
		return s.stars.color(dir)
	}
	return gradientSky(dir)
}

func gradientSky(dir core.Vec3) core.Vec3 {
	a := 0.5 * (dir.Y + 1)
	return skyHorizon.Multiply(1 - a).Add(skyZenith.Multiply(a))
}

// starfield thresholds perlin noise over the sky sphere. The raw noise range
// depends on the octave settings, so the threshold is the (1-density)
// quantile of the noise measured over a fixed set of directions.
type starfield struct {
	noise     *perlin.Perlin
	frequency float64
	density   float64
	threshold float64 // Raw noise above this is a star
	peak      float64 // Largest raw noise seen during calibration
}

func newStarfield(opts Options) *starfield {
	sf := &starfield{
		noise:     perlin.NewPerlin(2, 2, 3, opts.StarSeed),
		frequency: opts.StarFrequency,
		density:   opts.StarDensity,
	}

	switch {
	case sf.density <= 0:
		sf.threshold = math.Inf(1)
		return sf
	case sf.density >= 1:
		sf.threshold = math.Inf(-1)
	}

	values := make([]float64, starCalibrationSamples)
	for i := range values {
		values[i] = sf.raw(fibonacciSphere(i, starCalibrationSamples))
	}
	sort.Float64s(values)
	sf.peak = values[len(values)-1]
	if sf.density < 1 {
		sf.threshold = values[int((1-sf.density)*float64(len(values)))]
	}
	return sf
}

func (sf *starfield) raw(dir core.Vec3) float64 {
	p := dir.Multiply(sf.frequency)
	return sf.noise.Noise3D(p.X, p.Y, p.Z)
}

// level maps raw noise above the threshold into [1-density, 1]
func (sf *starfield) level(raw float64) float64 {
	t := 1.0
	if span := sf.peak - sf.threshold; span > 0 && !math.IsInf(span, 0) {
		t = max(0, min(1, (raw-sf.threshold)/span))
	}
	density := min(sf.density, 1)
	return 1 - density + density*t
}

func (sf *starfield) color(dir core.Vec3) core.Vec3 {
	background := spaceLow.Lerp(spaceHigh, 0.5*(dir.Y+1))

	raw := sf.raw(dir)
	if !(raw > sf.threshold) {
		return background
	}

	n := sf.level(raw)
	brightness := starMinBrightness + (starMaxBrightness-starMinBrightness)*n
	return background.Lerp(core.Splat(brightness), starOpacity)
}

// fibonacciSphere returns the i-th of n near-uniform directions
func fibonacciSphere(i, n int) core.Vec3 {
	y := 1 - (2*float64(i)+1)/float64(n)
	r := math.Sqrt(max(0, 1-y*y))
	phi := float64(i) * math.Pi * (3 - math.Sqrt(5))
	return core.NewVec3(r*math.Cos(phi), y, r*math.Sin(phi))
}

// NormalColor maps a unit normal to the debug view color
func NormalColor(normal core.Vec3) core.Vec3 {
	return core.SRGBToLinear(normal.Multiply(0.4).Add(core.Splat(0.6)))
}
