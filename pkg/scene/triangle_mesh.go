package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/transform"
)

// NewTriangleMeshScene creates a scene showcasing triangle mesh geometry
func NewTriangleMeshScene() *Preset {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 2, 6), // Position camera to see the meshes
		LookAt:      core.NewVec3(0, 1, 0), // Look at the center of the scene
		Up:          core.NewVec3(0, 1, 0),
		Width:       600,
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}

	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 150
	samplingConfig.MaxDepth = 40

	red := material.NewGlossy(core.NewVec3(0.8, 0.2, 0.2), core.NewVec3(0.9, 0.9, 0.9), 0.4)
	blue := material.NewDiffuse(core.NewVec3(0.2, 0.3, 0.8))
	gold := material.NewGlossy(core.NewVec3(0.8, 0.6, 0.2), core.NewVec3(0.8, 0.6, 0.2), 0.7)
	sphere := geometry.NewSphere()

	root := NewGroup("triangle-mesh").
		Add(mgl64.Ident4(), NewLeaf("ground",
			quad(core.NewVec3(-10, 0, 10), core.NewVec3(20, 0, 0), core.NewVec3(0, 0, -20)),
			material.NewDiffuse(core.NewVec3(0.7, 0.7, 0.7)))).
		// Box rotated to show multiple faces
		Add(transform.Compose(
			transform.Translate(core.NewVec3(-2, 0.5, 0)),
			transform.Rotate(core.NewVec3(0, 1, 0), 30),
		), NewLeaf("box", boxMesh(), red)).
		Add(transform.Compose(
			transform.Translate(core.NewVec3(0, 1, 0)),
			transform.Rotate(core.NewVec3(0, 1, 0), 45),
			transform.Scale(core.NewVec3(1.5, 2, 1.5)),
		), NewLeaf("pyramid", pyramidMesh(), blue)).
		Add(transform.Compose(
			transform.Translate(core.NewVec3(2, 0.8, 0)),
			transform.Rotate(core.NewVec3(0, 1, 0), 60),
			transform.UniformScale(0.8),
		), NewLeaf("icosahedron", icosahedronMesh(true), gold)).
		// Main overhead light and a cooler downward-facing fill disc
		Add(transform.Compose(transform.Translate(core.NewVec3(2, 6, 3)), transform.UniformScale(1.5)),
			NewLeaf("key-light", sphere, material.NewEmissive(core.NewVec3(12.0, 11.0, 10.0)))).
		Add(transform.Compose(
			transform.Translate(core.NewVec3(-3, 4, 2)),
			transform.Rotate(core.NewVec3(1, 0, 0), 180),
			transform.UniformScale(0.8),
		), NewLeaf("fill-light", geometry.NewDisc(), material.NewEmissive(core.NewVec3(6.0, 7.0, 8.0))))

	return &Preset{
		Root:     root,
		Options:  DefaultOptions(),
		Camera:   cameraConfig,
		Sampling: samplingConfig,
	}
}

// meshFromFaces builds a mesh from index triples. Smooth meshes use the
// normalized vertex position as the vertex normal.
func meshFromFaces(vertices []core.Vec3, faces [][3]int, smooth bool) *geometry.TriangleMesh {
	triangles := make([]*geometry.Triangle, 0, len(faces))
	for _, f := range faces {
		v0, v1, v2 := vertices[f[0]], vertices[f[1]], vertices[f[2]]
		if smooth {
			triangles = append(triangles, geometry.NewSmoothTriangle(v0, v1, v2, v0, v1, v2))
		} else {
			triangles = append(triangles, geometry.NewTriangle(v0, v1, v2))
		}
	}
	return geometry.NewTriangleMeshFromTriangles(triangles)
}

// boxMesh is the unit cube centered at the origin
func boxMesh() *geometry.TriangleMesh {
	vertices := []core.Vec3{
		core.NewVec3(-0.5, -0.5, -0.5), // 0: left-bottom-back
		core.NewVec3(+0.5, -0.5, -0.5), // 1: right-bottom-back
		core.NewVec3(+0.5, +0.5, -0.5), // 2: right-top-back
		core.NewVec3(-0.5, +0.5, -0.5), // 3: left-top-back
		core.NewVec3(-0.5, -0.5, +0.5), // 4: left-bottom-front
		core.NewVec3(+0.5, -0.5, +0.5), // 5: right-bottom-front
		core.NewVec3(+0.5, +0.5, +0.5), // 6: right-top-front
		core.NewVec3(-0.5, +0.5, +0.5), // 7: left-top-front
	}
	faces := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // Back (Z-)
		{4, 5, 6}, {4, 6, 7}, // Front (Z+)
		{0, 4, 7}, {0, 7, 3}, // Left (X-)
		{1, 2, 6}, {1, 6, 5}, // Right (X+)
		{0, 1, 5}, {0, 5, 4}, // Bottom (Y-)
		{3, 7, 6}, {3, 6, 2}, // Top (Y+)
	}
	return meshFromFaces(vertices, faces, false)
}

// pyramidMesh is a square pyramid with unit base and height, centered at the origin
func pyramidMesh() *geometry.TriangleMesh {
	vertices := []core.Vec3{
		core.NewVec3(-0.5, -0.5, -0.5),
		core.NewVec3(+0.5, -0.5, -0.5),
		core.NewVec3(+0.5, -0.5, +0.5),
		core.NewVec3(-0.5, -0.5, +0.5),
		core.NewVec3(0, 0.5, 0), // apex
	}
	faces := [][3]int{
		{0, 1, 2}, {0, 2, 3}, // Base
		{0, 4, 1}, {1, 4, 2}, {2, 4, 3}, {3, 4, 0},
	}
	return meshFromFaces(vertices, faces, false)
}

// icosahedronMesh is the regular icosahedron inscribed in the unit sphere
func icosahedronMesh(smooth bool) *geometry.TriangleMesh {
	phi := (1 + math.Sqrt(5)) / 2
	raw := []core.Vec3{
		core.NewVec3(-1, phi, 0), core.NewVec3(1, phi, 0), core.NewVec3(-1, -phi, 0), core.NewVec3(1, -phi, 0),
		core.NewVec3(0, -1, phi), core.NewVec3(0, 1, phi), core.NewVec3(0, -1, -phi), core.NewVec3(0, 1, -phi),
		core.NewVec3(phi, 0, -1), core.NewVec3(phi, 0, 1), core.NewVec3(-phi, 0, -1), core.NewVec3(-phi, 0, 1),
	}
	vertices := make([]core.Vec3, len(raw))
	for i, v := range raw {
		vertices[i] = v.Normalize()
	}

	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return meshFromFaces(vertices, faces, smooth)
}
