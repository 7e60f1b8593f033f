package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var (
	sceneFlag    = flag.String("scene", "default", "Built-in scene id, file:<name> from -scenes, or a path to a .yaml scene")
	scenesDir    = flag.String("scenes", "scenes", "Directory searched for YAML scene files")
	listFlag     = flag.Bool("list", false, "List available scenes and exit")
	outFlag      = flag.String("out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	samplesFlag  = flag.Int("spp", 0, "Samples per pixel (0 keeps the scene's setting)")
	widthFlag    = flag.Int("width", 0, "Image width in pixels (0 keeps the scene's setting)")
	seedFlag     = flag.Int64("seed", -1, "Random seed (-1 keeps the scene's setting)")
	maxDepthFlag = flag.Int("maxdepth", 0, "Hard cap on bounces per path (0 keeps the scene's setting)")
	workersFlag  = flag.Int("workers", 0, "Rows rendered concurrently (0 uses GOMAXPROCS)")
)

// glogLogger routes renderer progress messages to glog
type glogLogger struct{}

func (glogLogger) Printf(format string, args ...interface{}) {
	glog.InfoDepth(1, strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if *listFlag {
		if err := listScenes(*scenesDir); err != nil {
			glog.Exitf("Listing scenes: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	filename, err := run(ctx, *sceneFlag)
	if err != nil {
		glog.Exitf("Render failed: %v", err)
	}
	glog.Infof("Render saved as %s", filename)
}

func run(ctx context.Context, sceneType string) (string, error) {
	preset, err := createScene(sceneType, *scenesDir)
	if err != nil {
		return "", err
	}
	applyOverrides(preset)

	s, err := preset.Build()
	if err != nil {
		return "", fmt.Errorf("building scene: %w", err)
	}

	width := preset.Camera.Width
	height := preset.Camera.ImageHeight()
	rt := renderer.NewRaytracer(s, renderer.NewCamera(preset.Camera), width, height)
	rt.SetSamplingConfig(preset.Sampling)
	rt.SetLogger(glogLogger{})

	glog.Infof("Rendering %s at %dx%d, %d spp", sceneType, width, height, preset.Sampling.SamplesPerPixel)
	start := time.Now()
	img, stats, err := rt.RenderPass(ctx)
	if err != nil {
		return "", err
	}
	glog.Infof("Render completed in %v: %.2f bounces/path, luminance %.3f",
		time.Since(start), stats.AverageBounces, renderer.CalculateAverageLuminance(img))

	filename := *outFlag
	if filename == "" {
		dir := createOutputDir(sceneType)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
		filename = filepath.Join(dir, fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	}
	if err := savePNG(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// createScene resolves a scene argument to a preset: a built-in id, a
// "file:<name>" reference into scenesDir, or a path to a YAML file
func createScene(sceneType, scenesDir string) (*scene.Preset, error) {
	if sceneType == "" {
		return nil, errors.New("scene name cannot be empty")
	}

	if name, ok := strings.CutPrefix(sceneType, "file:"); ok {
		return loadSceneFile(scenesDir, name)
	}

	ext := strings.ToLower(filepath.Ext(sceneType))
	if ext == ".yaml" || ext == ".yml" {
		return loaders.LoadYAML(sceneType)
	}

	preset, err := scene.NewPreset(sceneType)
	if err == nil {
		return preset, nil
	}
	// Fall back to a scene file of the same name
	if fileScene, fileErr := loadSceneFile(scenesDir, sceneType); fileErr == nil {
		return fileScene, nil
	}
	return nil, err
}

func loadSceneFile(dir, name string) (*scene.Preset, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return loaders.LoadYAML(path)
		}
	}
	return nil, fmt.Errorf("scene file %q not found in %s", name, dir)
}

// createOutputDir names the output directory after the scene
func createOutputDir(sceneType string) string {
	base := strings.TrimPrefix(sceneType, "file:")
	base = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	if base == "" || base == "." {
		base = "scene"
	}
	return filepath.Join("output", base)
}

func applyOverrides(preset *scene.Preset) {
	if *samplesFlag > 0 {
		preset.Sampling.SamplesPerPixel = *samplesFlag
	}
	if *widthFlag > 0 {
		preset.Camera.Width = *widthFlag
	}
	if *seedFlag >= 0 {
		preset.Sampling.Seed = *seedFlag
	}
	if *maxDepthFlag > 0 {
		preset.Sampling.MaxDepth = *maxDepthFlag
	}
	if *workersFlag > 0 {
		preset.Sampling.Workers = *workersFlag
	}
}

func listScenes(dir string) error {
	groups, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	for _, group := range groups {
		fmt.Printf("%s:\n", group.Name)
		for _, info := range group.Scenes {
			if info.Description != "" {
				fmt.Printf("  %-24s %s - %s\n", info.ID, info.DisplayName, info.Description)
			} else {
				fmt.Printf("  %-24s %s\n", info.ID, info.DisplayName)
			}
		}
	}
	return nil
}

func savePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}
