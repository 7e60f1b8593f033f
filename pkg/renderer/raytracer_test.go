package renderer

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// constantTracer ends every path on its first step with a fixed color
type constantTracer struct {
	color core.Vec3
}

func (c constantTracer) Intersect(path *material.Path, sampler core.Sampler) {
	path.Color = c.color
	path.Finish()
}

// noiseTracer ends every path with a random gray level
type noiseTracer struct{}

func (noiseTracer) Intersect(path *material.Path, sampler core.Sampler) {
	path.Color = core.Splat(sampler.Get1D())
	path.Finish()
}

// loopTracer bounces forever
type loopTracer struct{}

func (loopTracer) Intersect(path *material.Path, sampler core.Sampler) {
	path.Color = path.Color.Add(core.Splat(0.01))
	path.Bounces++
}

func testCamera() *Camera {
	return NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.5,
		VFov:        60,
	})
}

func TestRaytracer_RenderPass(t *testing.T) {
	rt := NewRaytracer(constantTracer{color: core.Splat(1)}, testCamera(), 6, 4)
	config := DefaultSamplingConfig()
	config.SamplesPerPixel = 3
	rt.SetSamplingConfig(config)

	img, stats, err := rt.RenderPass(context.Background())
	if err != nil {
		t.Fatalf("RenderPass failed: %v", err)
	}

	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 4 {
		t.Fatalf("Expected a 6x4 image, got %v", img.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			if got := img.RGBAAt(x, y); got != (color.RGBA{255, 255, 255, 255}) {
				t.Fatalf("pixel (%d,%d) = %v, expected white", x, y, got)
			}
		}
	}

	if stats.TotalPixels != 24 || stats.TotalSamples != 72 || stats.AverageSamples != 3 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.CappedPaths != 0 || stats.TotalBounces != 0 {
		t.Errorf("Expected no bounces or capped paths, got %+v", stats)
	}
	if stats.AverageVariance != 0 {
		t.Errorf("Constant paths should have no variance, got %v", stats.AverageVariance)
	}
}

func TestRaytracer_Deterministic(t *testing.T) {
	render := func(workers int) []byte {
		rt := NewRaytracer(noiseTracer{}, testCamera(), 8, 5)
		config := DefaultSamplingConfig()
		config.SamplesPerPixel = 2
		config.Workers = workers
		rt.SetSamplingConfig(config)

		img, _, err := rt.RenderPass(context.Background())
		if err != nil {
			t.Fatalf("RenderPass failed: %v", err)
		}
		return img.Pix
	}

	serial := render(1)
	parallel := render(4)
	if !bytes.Equal(serial, parallel) {
		t.Error("Image depends on the number of workers")
	}
	if !bytes.Equal(parallel, render(4)) {
		t.Error("Image differs between identical renders")
	}
}

func TestRaytracer_ReportsVariance(t *testing.T) {
	rt := NewRaytracer(noiseTracer{}, testCamera(), 4, 4)
	config := DefaultSamplingConfig()
	config.SamplesPerPixel = 200
	rt.SetSamplingConfig(config)

	_, stats, err := rt.RenderPass(context.Background())
	if err != nil {
		t.Fatalf("RenderPass failed: %v", err)
	}
	// A uniform gray level in [0, 1] has luminance variance 1/12
	if math.Abs(stats.AverageVariance-1.0/12) > 0.02 {
		t.Errorf("Expected pixel variance near 1/12, got %v", stats.AverageVariance)
	}
	if math.Abs(stats.TotalVariance-16*stats.AverageVariance) > 1e-9 {
		t.Errorf("Average variance %v inconsistent with total %v", stats.AverageVariance, stats.TotalVariance)
	}
}

func TestRaytracer_MaxDepth(t *testing.T) {
	rt := NewRaytracer(loopTracer{}, testCamera(), 2, 2)
	config := DefaultSamplingConfig()
	config.SamplesPerPixel = 1
	config.MaxDepth = 10
	rt.SetSamplingConfig(config)

	path := material.NewPath(core.Vec3{}, core.NewVec3(0, 0, -1))
	c, capped := rt.TracePath(path, core.NewSeededSampler(1))
	if !capped {
		t.Error("Expected the path to be capped")
	}
	if path.Bounces != 10 {
		t.Errorf("Expected 10 bounces, got %d", path.Bounces)
	}
	if c.Subtract(core.Splat(0.1)).Length() > 1e-9 {
		t.Errorf("Expected color gathered so far, got %v", c)
	}

	_, stats, err := rt.RenderPass(context.Background())
	if err != nil {
		t.Fatalf("RenderPass failed: %v", err)
	}
	if stats.CappedPaths != 4 || stats.AverageBounces != 10 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestRaytracer_Errors(t *testing.T) {
	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		rt := NewRaytracer(constantTracer{}, testCamera(), 4, 4)
		if _, _, err := rt.RenderPass(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})

	t.Run("empty image", func(t *testing.T) {
		rt := NewRaytracer(constantTracer{}, testCamera(), 0, 4)
		if _, _, err := rt.RenderPass(context.Background()); err == nil {
			t.Error("Expected an error for a zero width")
		}
	})

	t.Run("no samples", func(t *testing.T) {
		rt := NewRaytracer(constantTracer{}, testCamera(), 4, 4)
		config := DefaultSamplingConfig()
		config.SamplesPerPixel = 0
		rt.SetSamplingConfig(config)
		if _, _, err := rt.RenderPass(context.Background()); err == nil {
			t.Error("Expected an error for zero samples")
		}
	})
}

func TestRaytracer_Vec3ToColor(t *testing.T) {
	rt := NewRaytracer(constantTracer{}, testCamera(), 1, 1)

	tests := []struct {
		name     string
		input    core.Vec3
		expected color.RGBA
	}{
		{"black", core.Vec3{}, color.RGBA{0, 0, 0, 255}},
		{"white", core.Splat(1), color.RGBA{255, 255, 255, 255}},
		{"overexposed clamps", core.Splat(8), color.RGBA{255, 255, 255, 255}},
		{"negative clamps", core.Splat(-1), color.RGBA{0, 0, 0, 255}},
		// 0.5^(1/2.2) = 0.7297
		{"mid gray is gamma encoded", core.Splat(0.5), color.RGBA{186, 186, 186, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rt.vec3ToColor(tt.input); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
