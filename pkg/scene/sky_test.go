package scene

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-pathtracer/pkg/core"
)

func emptyScene(t *testing.T, opts Options) *Scene {
	t.Helper()
	return mustBuild(t, NewGroup("empty"), opts)
}

func TestSkyColor_Gradient(t *testing.T) {
	s := emptyScene(t, DefaultOptions())

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.SRGBToLinear(core.Splat(0.9))},
		{"straight down", core.NewVec3(0, -1, 0), core.SRGBToLinear(core.NewVec3(0.227, 0.392, 1.0))},
		{"unnormalized input", core.NewVec3(0, 5, 0), core.SRGBToLinear(core.Splat(0.9))},
		{"horizon", core.NewVec3(1, 0, 0), core.SRGBToLinear(core.Splat(0.9)).Lerp(core.SRGBToLinear(core.NewVec3(0.227, 0.392, 1.0)), 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, s.SkyColor(tt.direction), approx); diff != "" {
				t.Errorf("sky mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func spaceBackground(dir core.Vec3) core.Vec3 {
	return spaceLow.Lerp(spaceHigh, 0.5*(dir.Normalize().Y+1))
}

func TestSkyColor_Space(t *testing.T) {
	opts := DefaultOptions()
	opts.Sky = SkySpace
	s := emptyScene(t, opts)
	again := emptyScene(t, opts)

	const samples = 20000
	stars := 0
	sampler := core.NewSeededSampler(5)
	for i := 0; i < samples; i++ {
		dir := core.SampleOnUnitSphere(sampler.Get2D())
		got := s.SkyColor(dir)

		if got != again.SkyColor(dir) {
			t.Fatalf("Starfield not deterministic for %v", dir)
		}
		if got == spaceBackground(dir) {
			continue
		}

		stars++
		// Stars only appear above the density threshold, so they are bright
		minStar := starOpacity * (starMinBrightness + (starMaxBrightness-starMinBrightness)*(1-opts.StarDensity))
		if got.X < minStar-1e-9 {
			t.Fatalf("Dim star %v in direction %v", got, dir)
		}
	}

	fraction := float64(stars) / samples
	if math.Abs(fraction-opts.StarDensity) > 0.01 {
		t.Errorf("Expected about %.0f%% of the sky covered by stars, got %.2f%% (%d of %d)",
			100*opts.StarDensity, 100*fraction, stars, samples)
	}
}

func TestSkyColor_SpaceDensityScales(t *testing.T) {
	count := func(density float64) int {
		opts := DefaultOptions()
		opts.Sky = SkySpace
		opts.StarDensity = density
		s := emptyScene(t, opts)

		n := 0
		sampler := core.NewSeededSampler(11)
		for i := 0; i < 10000; i++ {
			dir := core.SampleOnUnitSphere(sampler.Get2D())
			if s.SkyColor(dir) != spaceBackground(dir) {
				n++
			}
		}
		return n
	}

	none, sparse, dense := count(0), count(0.01), count(0.2)
	if none != 0 {
		t.Errorf("Expected no stars at zero density, got %d", none)
	}
	if !(sparse > 0 && sparse < dense) {
		t.Errorf("Expected star count to grow with density, got %d then %d", sparse, dense)
	}
	if math.Abs(float64(dense)/10000-0.2) > 0.03 {
		t.Errorf("Expected about 20%% stars, got %d of 10000", dense)
	}
}

func TestStarfield_DifferentSeeds(t *testing.T) {
	opts := DefaultOptions()
	opts.Sky = SkySpace
	a := emptyScene(t, opts)
	opts.StarSeed = 2
	b := emptyScene(t, opts)

	differ := false
	sampler := core.NewSeededSampler(3)
	for i := 0; i < 2000 && !differ; i++ {
		dir := core.SampleOnUnitSphere(sampler.Get2D())
		differ = a.SkyColor(dir) != b.SkyColor(dir)
	}
	if !differ {
		t.Error("Expected different seeds to place stars differently")
	}
}

func TestSkyColor_SpaceFullDensity(t *testing.T) {
	opts := DefaultOptions()
	opts.Sky = SkySpace
	opts.StarDensity = 2
	s := emptyScene(t, opts)

	sampler := core.NewSeededSampler(9)
	for i := 0; i < 200; i++ {
		dir := core.SampleOnUnitSphere(sampler.Get2D())
		if got := s.SkyColor(dir); got == spaceBackground(dir) {
			t.Fatalf("Expected a star in every direction, got background for %v", dir)
		}
	}
}

func TestParseModes(t *testing.T) {
	if m, err := ParseShadingMode("normal"); err != nil || m != ShadingNormals {
		t.Errorf("ParseShadingMode(normal) = %v, %v", m, err)
	}
	if m, err := ParseSkyMode("space"); err != nil || m != SkySpace {
		t.Errorf("ParseSkyMode(space) = %v, %v", m, err)
	}
	if _, err := ParseShadingMode("toon"); err == nil {
		t.Error("Expected an error for an unknown shading mode")
	}
	if _, err := ParseSkyMode("sunset"); err == nil {
		t.Error("Expected an error for an unknown sky")
	}
	if ShadingNormals.String() != "normal" || SkySpace.String() != "space" {
		t.Error("Mode names should round trip through the parsers")
	}
}
