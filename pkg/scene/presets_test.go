package scene

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestPresets_Build(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			preset, err := NewPreset(info.ID)
			if err != nil {
				t.Fatalf("NewPreset failed: %v", err)
			}
			s, err := preset.Build()
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if len(s.Models()) == 0 {
				t.Error("Preset has no models")
			}
			if s.NumLights() == 0 {
				t.Error("Preset has no light sources")
			}
			if preset.Camera.Width <= 0 || preset.Camera.AspectRatio <= 0 {
				t.Errorf("Invalid camera %+v", preset.Camera)
			}
			if preset.Sampling.SamplesPerPixel <= 0 {
				t.Errorf("Invalid sampling %+v", preset.Sampling)
			}
		})
	}
}

func TestPresets_Unknown(t *testing.T) {
	if _, err := NewPreset("teapot"); err == nil {
		t.Error("Expected an error for an unknown preset")
	}
}

func TestPresets_FreshCopies(t *testing.T) {
	a, _ := NewPreset("default")
	b, _ := NewPreset("default")
	if a.Root == b.Root {
		t.Error("Presets should not share trees")
	}
	a.Options.Shading = ShadingNormals
	if b.Options.Shading != ShadingPathTrace {
		t.Error("Presets should not share options")
	}
}

func TestCornellScene_CameraSeesBackWall(t *testing.T) {
	preset := NewCornellScene()
	s, err := preset.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ray := core.NewRay(preset.Camera.Center, preset.Camera.LookAt.Subtract(preset.Camera.Center).Normalize())
	hit := s.Nearest(ray)
	if !hit.Valid() {
		t.Fatal("Camera axis should hit the box")
	}
	if model := hit.Model.(*Model); model.Name() != "back" {
		t.Errorf("Expected the back wall, got %s", model.Name())
	}
	if hit.Primitive == nil {
		t.Error("Expected the hit sub-triangle to be reported")
	}
	if _, ok := hit.Model.Material().(*material.Glossy); !ok {
		t.Errorf("Expected a glossy wall, got %T", hit.Model.Material())
	}
}

func TestOklchToRGB(t *testing.T) {
	white := oklchToRGB(1, 0, 0)
	if white.Subtract(core.Splat(1)).Length() > 1e-6 {
		t.Errorf("Expected white, got %v", white)
	}
	black := oklchToRGB(0, 0, 0)
	if !black.IsZero() {
		t.Errorf("Expected black, got %v", black)
	}
}
