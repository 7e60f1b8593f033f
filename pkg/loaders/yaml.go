package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/pkg/transform"
)

var (
	// ErrUnknownShape is returned for a shape type the loader does not know
	ErrUnknownShape = errors.New("unknown shape")
	// ErrUnknownMaterial is returned for a material type or reference that
	// does not exist
	ErrUnknownMaterial = errors.New("unknown material")
)

// Vec3 is a YAML sequence of three numbers
type Vec3 [3]float64

func (v Vec3) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// SceneFile is the document layout of a YAML scene description
type SceneFile struct {
	Shading      string                  `yaml:"shading"`
	Sky          string                  `yaml:"sky"`
	Roulette     *float64                `yaml:"roulette"`
	Compensation string                  `yaml:"compensation"` // survival or depth
	StarSeed     *int64                  `yaml:"star_seed"`
	Camera       *CameraSpec             `yaml:"camera"`
	Sampling     *SamplingSpec           `yaml:"sampling"`
	Materials    map[string]MaterialSpec `yaml:"materials"`
	Root         NodeSpec                `yaml:"root"`
}

// CameraSpec places the camera
type CameraSpec struct {
	From   Vec3    `yaml:"from"`
	At     Vec3    `yaml:"at"`
	Up     *Vec3   `yaml:"up"`
	VFov   float64 `yaml:"vfov"`
	Width  int     `yaml:"width"`
	Aspect float64 `yaml:"aspect"`
}

// SamplingSpec overrides render settings
type SamplingSpec struct {
	Samples  int    `yaml:"samples"`
	MaxDepth int    `yaml:"max_depth"`
	Seed     *int64 `yaml:"seed"`
}

// MaterialSpec describes one named material
type MaterialSpec struct {
	Type            string      `yaml:"type"`
	Diffuse         *Vec3       `yaml:"diffuse"`
	Specular        *Vec3       `yaml:"specular"`
	Shininess       float64     `yaml:"shininess"`
	Emission        *Vec3       `yaml:"emission"`
	Attenuation     *[3]float64 `yaml:"attenuation"` // constant, linear, quadratic
	RefractiveIndex float64     `yaml:"refractive_index"`
	Tint            *Vec3       `yaml:"tint"`
}

// TransformSpec is one placement step; exactly one field is set
type TransformSpec struct {
	Translate    *Vec3       `yaml:"translate"`
	Scale        *Vec3       `yaml:"scale"`
	UniformScale *float64    `yaml:"uniform_scale"`
	Rotate       *RotateSpec `yaml:"rotate"`
}

// RotateSpec rotates about an axis through the origin
type RotateSpec struct {
	Axis    Vec3    `yaml:"axis"`
	Degrees float64 `yaml:"degrees"`
}

// ShapeSpec describes a leaf's primitive
type ShapeSpec struct {
	Type     string `yaml:"type"` // sphere, disc, triangle, mesh
	Vertices []Vec3 `yaml:"vertices"`
	Normals  []Vec3 `yaml:"normals"`
	Faces    []int  `yaml:"faces"`
	File     string `yaml:"file"` // PLY file for meshes, relative to the scene file
}

// NodeSpec is one node of the scene tree. Its transform list places it
// relative to its parent and is applied last to first.
type NodeSpec struct {
	Name      string          `yaml:"name"`
	Transform []TransformSpec `yaml:"transform"`
	Shape     *ShapeSpec      `yaml:"shape"`
	Material  string          `yaml:"material"`
	Children  []NodeSpec      `yaml:"children"`
}

// LoadYAML reads a scene description from a file. Relative mesh paths are
// resolved against the file's directory.
func LoadYAML(filename string) (*scene.Preset, error) {
	if err := ValidateSceneFilePath(filename); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	preset, err := ParseYAML(bytes.NewReader(data), filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return preset, nil
}

// ParseYAML decodes a scene description. baseDir anchors relative mesh files.
func ParseYAML(r io.Reader, baseDir string) (*scene.Preset, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file SceneFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	preset := &scene.Preset{
		Options:  scene.DefaultOptions(),
		Camera:   renderer.DefaultCameraConfig(),
		Sampling: renderer.DefaultSamplingConfig(),
	}

	if err := applyOptions(&file, preset); err != nil {
		return nil, err
	}

	l := &yamlLoader{specs: file.Materials, materials: make(map[string]material.Material), baseDir: baseDir}
	placement, root, err := l.node(file.Root, rootName(file.Root))
	if err != nil {
		return nil, err
	}
	preset.Root = scene.NewGroup("scene").Add(placement, root)

	return preset, nil
}

func rootName(spec NodeSpec) string {
	if spec.Name != "" {
		return spec.Name
	}
	return "root"
}

func applyOptions(file *SceneFile, preset *scene.Preset) error {
	shading, err := scene.ParseShadingMode(file.Shading)
	if err != nil {
		return err
	}
	sky, err := scene.ParseSkyMode(file.Sky)
	if err != nil {
		return err
	}
	preset.Options.Shading = shading
	preset.Options.Sky = sky
	if file.Roulette != nil {
		preset.Options.Roulette = *file.Roulette
	}
	switch strings.ToLower(file.Compensation) {
	case "", "survival":
		preset.Options.Compensation = scene.CompensateSurvival
	case "depth":
		preset.Options.Compensation = scene.CompensateDepth
	default:
		return fmt.Errorf("unknown roulette compensation %q", file.Compensation)
	}
	if file.StarSeed != nil {
		preset.Options.StarSeed = *file.StarSeed
	}

	if c := file.Camera; c != nil {
		preset.Camera.Center = c.From.vec()
		preset.Camera.LookAt = c.At.vec()
		if c.Up != nil {
			preset.Camera.Up = c.Up.vec()
		}
		if c.VFov > 0 {
			preset.Camera.VFov = c.VFov
		}
		if c.Width > 0 {
			preset.Camera.Width = c.Width
		}
		if c.Aspect > 0 {
			preset.Camera.AspectRatio = c.Aspect
		}
		if preset.Camera.Center == preset.Camera.LookAt {
			return fmt.Errorf("camera: from and at must differ")
		}
	}

	if s := file.Sampling; s != nil {
		if s.Samples > 0 {
			preset.Sampling.SamplesPerPixel = s.Samples
		}
		if s.MaxDepth > 0 {
			preset.Sampling.MaxDepth = s.MaxDepth
		}
		if s.Seed != nil {
			preset.Sampling.Seed = *s.Seed
		}
	}
	return nil
}

type yamlLoader struct {
	specs     map[string]MaterialSpec
	materials map[string]material.Material
	baseDir   string
}

// node converts a decoded node into a tree node and its placement in the parent
func (l *yamlLoader) node(spec NodeSpec, path string) (mgl64.Mat4, *scene.Node, error) {
	placement, err := placementOf(spec.Transform)
	if err != nil {
		return mgl64.Mat4{}, nil, fmt.Errorf("%s: %w", path, err)
	}

	if spec.Shape != nil {
		if len(spec.Children) > 0 {
			return mgl64.Mat4{}, nil, fmt.Errorf("%s: a node with a shape cannot have children", path)
		}
		primitive, err := l.shape(*spec.Shape)
		if err != nil {
			return mgl64.Mat4{}, nil, fmt.Errorf("%s: %w", path, err)
		}
		mat, err := l.material(spec.Material)
		if err != nil {
			return mgl64.Mat4{}, nil, fmt.Errorf("%s: %w", path, err)
		}
		return placement, scene.NewLeaf(spec.Name, primitive, mat), nil
	}

	if spec.Material != "" {
		return mgl64.Mat4{}, nil, fmt.Errorf("%s: material %q given without a shape", path, spec.Material)
	}

	group := scene.NewGroup(spec.Name)
	for i, child := range spec.Children {
		childPath := fmt.Sprintf("%s/%d", path, i)
		if child.Name != "" {
			childPath = path + "/" + child.Name
		}
		childPlacement, childNode, err := l.node(child, childPath)
		if err != nil {
			return mgl64.Mat4{}, nil, err
		}
		group.Add(childPlacement, childNode)
	}
	return placement, group, nil
}

func placementOf(steps []TransformSpec) (mgl64.Mat4, error) {
	ms := make([]mgl64.Mat4, 0, len(steps))
	for i, step := range steps {
		var m mgl64.Mat4
		set := 0
		if step.Translate != nil {
			m = transform.Translate(step.Translate.vec())
			set++
		}
		if step.Scale != nil {
			m = transform.Scale(step.Scale.vec())
			set++
		}
		if step.UniformScale != nil {
			m = transform.UniformScale(*step.UniformScale)
			set++
		}
		if step.Rotate != nil {
			if step.Rotate.Axis.vec().IsZero() {
				return mgl64.Mat4{}, fmt.Errorf("transform %d: rotation axis is zero", i)
			}
			m = transform.Rotate(step.Rotate.Axis.vec(), step.Rotate.Degrees)
			set++
		}
		if set != 1 {
			return mgl64.Mat4{}, fmt.Errorf("transform %d: expected exactly one operation, got %d", i, set)
		}
		ms = append(ms, m)
	}
	return transform.Compose(ms...), nil
}

func (l *yamlLoader) shape(spec ShapeSpec) (geometry.Primitive, error) {
	switch strings.ToLower(spec.Type) {
	case "sphere":
		return geometry.NewSphere(), nil

	case "disc":
		return geometry.NewDisc(), nil

	case "triangle":
		if len(spec.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(spec.Vertices))
		}
		v := spec.Vertices
		switch len(spec.Normals) {
		case 0:
			return geometry.NewTriangle(v[0].vec(), v[1].vec(), v[2].vec()), nil
		case 3:
			n := spec.Normals
			return geometry.NewSmoothTriangle(v[0].vec(), v[1].vec(), v[2].vec(), n[0].vec(), n[1].vec(), n[2].vec()), nil
		default:
			return nil, fmt.Errorf("triangle needs 0 or 3 normals, got %d", len(spec.Normals))
		}

	case "mesh":
		if spec.File != "" {
			return l.plyMesh(spec.File)
		}
		var normals []core.Vec3
		if len(spec.Normals) > 0 {
			normals = vecs(spec.Normals)
		}
		return geometry.NewTriangleMesh(vecs(spec.Vertices), spec.Faces, normals)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownShape, spec.Type)
}

func (l *yamlLoader) plyMesh(name string) (geometry.Primitive, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.baseDir, path)
	}
	data, err := LoadPLY(path)
	if err != nil {
		return nil, err
	}
	var normals []core.Vec3
	if len(data.Normals) > 0 {
		normals = data.Normals
	}
	return geometry.NewTriangleMesh(data.Vertices, data.Faces, normals)
}

func vecs(in []Vec3) []core.Vec3 {
	out := make([]core.Vec3, len(in))
	for i, v := range in {
		out[i] = v.vec()
	}
	return out
}

// material resolves a named material, building each one once so leaves that
// share a name share the material
func (l *yamlLoader) material(name string) (material.Material, error) {
	if m, ok := l.materials[name]; ok {
		return m, nil
	}
	spec, ok := l.specs[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMaterial, name)
	}

	m, err := newMaterial(spec)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", name, err)
	}
	l.materials[name] = m
	return m, nil
}

func newMaterial(spec MaterialSpec) (material.Material, error) {
	color := func(v *Vec3, fallback core.Vec3) core.Vec3 {
		if v == nil {
			return fallback
		}
		return v.vec()
	}

	switch strings.ToLower(spec.Type) {
	case "glossy":
		return material.NewGlossy(color(spec.Diffuse, core.Splat(0.5)), color(spec.Specular, core.Splat(1)), spec.Shininess), nil
	case "diffuse":
		return material.NewDiffuse(color(spec.Diffuse, core.Splat(0.5))), nil
	case "mirror":
		return material.NewMirror(color(spec.Specular, core.Splat(1))), nil
	case "glass", "dielectric":
		if spec.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("glass needs a positive refractive_index")
		}
		glass := material.NewDielectric(spec.RefractiveIndex)
		glass.Tint = color(spec.Tint, glass.Tint)
		return glass, nil
	case "emissive":
		if spec.Emission == nil {
			return nil, fmt.Errorf("emissive material needs an emission color")
		}
		if a := spec.Attenuation; a != nil {
			att := material.Attenuation{Constant: a[0], Linear: a[1], Quadratic: a[2]}
			return material.NewAttenuatedEmissive(spec.Emission.vec(), att), nil
		}
		return material.NewEmissive(spec.Emission.vec()), nil
	}
	return nil, fmt.Errorf("%w type %q", ErrUnknownMaterial, spec.Type)
}

// ValidateSceneFilePath rejects paths that are not plain YAML scene files
func ValidateSceneFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}
	if len(filename) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("invalid file type: only .yaml and .yml files are allowed")
	}
	return nil
}
