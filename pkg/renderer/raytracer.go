package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int     // Number of paths per pixel
	MaxDepth        int     // Bounce cap for paths roulette never stops
	Seed            int64   // Base seed; row j samples with Seed+j
	Gamma           float64 // Display gamma applied when writing pixels
	Workers         int     // Rows rendered at once, GOMAXPROCS when zero
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 64,
		MaxDepth:        50,
		Seed:            42,
		Gamma:           2.2,
	}
}

// Tracer advances a path by one bounce; *scene.Scene implements it
type Tracer interface {
	Intersect(path *material.Path, sampler core.Sampler)
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene  Tracer
	camera *Camera
	width  int
	height int
	config SamplingConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Tracer, camera *Camera, width, height int) *Raytracer {
	return &Raytracer{
		scene:  scene,
		camera: camera,
		width:  width,
		height: height,
		config: DefaultSamplingConfig(),
		logger: core.NopLogger{},
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// SetLogger directs progress messages to logger
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// TracePath runs the path until it terminates or reaches the bounce cap and
// returns its gathered color
func (rt *Raytracer) TracePath(path *material.Path, sampler core.Sampler) (core.Vec3, bool) {
	for path.InProgress {
		if rt.config.MaxDepth > 0 && path.Bounces >= rt.config.MaxDepth {
			return path.Color, true
		}
		rt.scene.Intersect(path, sampler)
	}
	return path.Color, false
}

// RenderPass renders every pixel with SamplesPerPixel paths. Rows render in
// parallel, each with its own sampler, so the image depends only on the seed.
func (rt *Raytracer) RenderPass(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", rt.width, rt.height)
	}
	if rt.config.SamplesPerPixel <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid samples per pixel %d", rt.config.SamplesPerPixel)
	}

	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	rowStats := make([]RenderStats, rt.height)

	workers := rt.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))

	for j := 0; j < rt.height; j++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Let running rows finish before returning
			_ = eg.Wait()
			return nil, RenderStats{}, fmt.Errorf("while acquiring row semaphore: %w", err)
		}

		j := j
		eg.Go(func() error {
			defer sem.Release(1)
			if err := ctx.Err(); err != nil {
				return err
			}
			rowStats[j] = rt.renderRow(img, j)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("while waiting for rows: %w", err)
	}

	var stats RenderStats
	for _, s := range rowStats {
		stats.merge(s)
	}
	stats.finalize()

	rt.logger.Printf("Rendered %dx%d: %d paths, %.2f bounces/path, %d capped, pixel variance %.4g\n",
		rt.width, rt.height, stats.TotalSamples, stats.AverageBounces, stats.CappedPaths, stats.AverageVariance)
	return img, stats, nil
}

// renderRow renders image row j, counted from the top
func (rt *Raytracer) renderRow(img *image.RGBA, j int) RenderStats {
	sampler := core.NewSeededSampler(rt.config.Seed + int64(j))
	path := &material.Path{}
	var stats RenderStats

	for i := 0; i < rt.width; i++ {
		var pixel PixelStats
		for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
			jitter := sampler.Get2D()
			s := (float64(i) + jitter.X) / float64(rt.width)
			t := (float64(rt.height-1-j) + jitter.Y) / float64(rt.height)

			ray := rt.camera.GetRay(s, t)
			path.Reset(ray.Origin, ray.Direction)

			c, capped := rt.TracePath(path, sampler)
			pixel.AddSample(c)

			stats.TotalBounces += path.Bounces
			if capped {
				stats.CappedPaths++
			}
		}
		stats.TotalSamples += pixel.SampleCount
		stats.TotalPixels++
		stats.TotalVariance += pixel.Variance()

		img.SetRGBA(i, j, rt.vec3ToColor(pixel.GetColor()))
	}
	return stats
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func (rt *Raytracer) vec3ToColor(colorVec core.Vec3) color.RGBA {
	gamma := rt.config.Gamma
	if gamma <= 0 {
		gamma = 2.2
	}
	colorVec = colorVec.GammaCorrect(gamma)

	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
