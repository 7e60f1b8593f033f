package material

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDielectric_SampleRay(t *testing.T) {
	glass := NewDielectric(1.5)
	model := &fakeSurface{mat: glass}
	sinT := math.Sqrt(0.5) / 1.5

	testCases := []struct {
		name       string
		direction  core.Vec3
		frontFace  bool
		sample     float64
		wantDir    core.Vec3
		wantOrigin core.Vec3
	}{
		{
			name:       "normal incidence refracts",
			direction:  core.NewVec3(0, -1, 0),
			frontFace:  true,
			sample:     0.9,
			wantDir:    core.NewVec3(0, -1, 0),
			wantOrigin: core.NewVec3(0, -SurfaceOffset, 0),
		},
		{
			name:       "normal incidence reflects below the Fresnel weight",
			direction:  core.NewVec3(0, -1, 0),
			frontFace:  true,
			sample:     0.01,
			wantDir:    core.NewVec3(0, 1, 0),
			wantOrigin: core.NewVec3(0, SurfaceOffset, 0),
		},
		{
			name:       "oblique entry bends toward the normal",
			direction:  core.NewVec3(1, -1, 0).Normalize(),
			frontFace:  true,
			sample:     0.99,
			wantDir:    core.NewVec3(sinT, -math.Sqrt(1-sinT*sinT), 0),
			wantOrigin: core.NewVec3(0, -SurfaceOffset, 0),
		},
		{
			name:       "grazing exit is totally reflected",
			direction:  core.NewVec3(1, 0.2, 0).Normalize(),
			frontFace:  false,
			sample:     0.99,
			wantDir:    core.NewVec3(1, -0.2, 0).Normalize(),
			wantOrigin: core.NewVec3(0, -SurfaceOffset, 0),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := NewPath(core.NewVec3(0, 1, 0), tc.direction)
			path.DiffuseBounce = true
			hit := floorHit(model)
			hit.FrontFace = tc.frontFace

			glass.SampleRay(path, hit, core.NewSequenceSampler(tc.sample))

			if diff := cmp.Diff(tc.wantDir, path.Direction, approx); diff != "" {
				t.Errorf("direction mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantOrigin, path.Origin, approx); diff != "" {
				t.Errorf("origin mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(core.Splat(1), path.Throughput, approx); diff != "" {
				t.Errorf("throughput mismatch (-want +got):\n%s", diff)
			}
			if path.DiffuseBounce || path.Bounces != 1 {
				t.Errorf("Expected one specular bounce, got diffuse=%v bounces=%d", path.DiffuseBounce, path.Bounces)
			}
		})
	}
}

func TestDielectric_Tint(t *testing.T) {
	glass := &Dielectric{RefractiveIndex: 1.5, Tint: core.NewVec3(0.9, 0.5, 0.1)}
	path := NewPath(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	path.Throughput = core.Splat(0.5)

	glass.SampleRay(path, floorHit(&fakeSurface{mat: glass}), core.NewSequenceSampler(0.9))

	if diff := cmp.Diff(core.NewVec3(0.45, 0.25, 0.05), path.Throughput, approx); diff != "" {
		t.Errorf("throughput mismatch (-want +got):\n%s", diff)
	}
}

func TestDielectric_GathersNoDirectLight(t *testing.T) {
	glass := NewDielectric(1.5)
	lamp := &fakeSurface{mat: NewEmissive(core.Splat(10)), point: core.NewVec3(0, 5, 0)}
	scene := &fakeScene{lights: []Surface{lamp}}
	hit := floorHit(&fakeSurface{mat: glass})
	path := NewPath(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	if c := glass.ColorOfLastBounce(path, hit, scene, core.NewSequenceSampler(0.5)); !c.IsZero() {
		t.Errorf("Expected no direct light, got %v", c)
	}
	if len(scene.queries) != 0 {
		t.Errorf("Expected no shadow rays, got %d", len(scene.queries))
	}
	if glass.IsLightSource() || !glass.Emission().IsZero() {
		t.Error("Glass should not emit")
	}
}

func TestReflectance(t *testing.T) {
	if r := Reflectance(1, 1); r != 0 {
		t.Errorf("Matched indices should not reflect, got %v", r)
	}
	if r := Reflectance(0, 1/1.5); math.Abs(r-1) > 1e-12 {
		t.Errorf("Grazing incidence should fully reflect, got %v", r)
	}
	if r := Reflectance(1, 1/1.5); math.Abs(r-0.04) > 1e-12 {
		t.Errorf("Expected 4%% at normal incidence, got %v", r)
	}
}
