package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Preset is a scene tree together with how it is meant to be viewed
type Preset struct {
	Root     *Node
	Options  Options
	Camera   renderer.CameraConfig
	Sampling renderer.SamplingConfig
}

// Build flattens the preset's tree with its options
func (p *Preset) Build() (*Scene, error) {
	return Build(p.Root, p.Options)
}

type presetEntry struct {
	info  SceneInfo
	build func() *Preset
}

var presets = map[string]presetEntry{
	"default": {
		info:  builtinInfo("default", "Default Scene", "Glossy spheres on a floor under a sphere light"),
		build: NewDefaultScene,
	},
	"cornell": {
		info:  builtinInfo("cornell", "Cornell Box", "Triangle Cornell box with an area light and two spheres"),
		build: NewCornellScene,
	},
	"space": {
		info:  builtinInfo("space", "Space", "Planets lit by an attenuated sun under a starfield"),
		build: NewSpaceScene,
	},
	"normals": {
		info:  builtinInfo("normals", "Normals", "Default scene colored by surface normal"),
		build: NewNormalsScene,
	},
	"sphere-grid": {
		info:  builtinInfo("sphere-grid", "Sphere Grid", "One sphere instanced across a grid of colors"),
		build: NewSphereGridScene,
	},
	"triangle-mesh": {
		info:  builtinInfo("triangle-mesh", "Triangle Mesh", "Smooth and faceted triangle meshes"),
		build: NewTriangleMeshScene,
	},
}

// NewPreset returns a fresh copy of the named built-in scene
func NewPreset(id string) (*Preset, error) {
	entry, ok := presets[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	return entry.build(), nil
}

// BuiltinScenes lists the built-in scenes ordered by id
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(presets))
	for _, entry := range presets {
		infos = append(infos, entry.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

func builtinInfo(id, name, description string) SceneInfo {
	return SceneInfo{
		ID:          id,
		Name:        name,
		DisplayName: name,
		Description: description,
		Group:       builtinGroup,
		Type:        "builtin",
	}
}

// quad returns the parallelogram corner, corner+u, corner+u+v, corner+v as
// two triangles facing along u x v
func quad(corner, u, v core.Vec3) *geometry.TriangleMesh {
	c0 := corner
	c1 := corner.Add(u)
	c2 := corner.Add(u).Add(v)
	c3 := corner.Add(v)
	return geometry.NewTriangleMeshFromTriangles([]*geometry.Triangle{
		geometry.NewTriangle(c0, c1, c2),
		geometry.NewTriangle(c0, c2, c3),
	})
}
