package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/glog"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/transform"
)

var (
	// ErrMissingMaterial is returned for a leaf without a material
	ErrMissingMaterial = errors.New("leaf has no material")
	// ErrSingularTransform is returned when a leaf's accumulated transform
	// cannot be inverted
	ErrSingularTransform = errors.New("singular transform")
	// ErrMalformedTree is returned for nil children, leaves with children,
	// materials without a primitive and cycles
	ErrMalformedTree = errors.New("malformed scene tree")
)

// Scene is a flattened, immutable list of models. It is safe for concurrent
// use once built.
type Scene struct {
	models  []*Model
	lights  []*Model
	options Options
	stars   *starfield
}

// Build flattens the tree under root into world-space models. Every leaf
// becomes a fresh model, so building the same tree twice yields two
// independent scenes and never modifies the tree.
func Build(root *Node, opts Options) (*Scene, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", ErrMalformedTree)
	}

	b := &builder{active: make(map[*Node]bool)}
	if err := b.visit(root, mgl64.Ident4(), nodeLabel(root, "root")); err != nil {
		return nil, err
	}

	s := &Scene{models: b.models, options: opts}
	for _, m := range s.models {
		if m.IsLightSource() {
			s.lights = append(s.lights, m)
		}
	}
	if opts.Sky == SkySpace {
		s.stars = newStarfield(opts)
	}

	glog.V(1).Infof("scene: %d models, %d lights, shading=%v sky=%v", len(s.models), len(s.lights), opts.Shading, opts.Sky)
	if len(s.lights) == 0 && opts.Shading == ShadingPathTrace {
		glog.V(1).Info("scene: no emissive models, surfaces are lit by the sky only")
	}
	return s, nil
}

type builder struct {
	models []*Model
	active map[*Node]bool
}

func (b *builder) visit(n *Node, parent mgl64.Mat4, label string) error {
	if b.active[n] {
		return fmt.Errorf("%w: %s is its own ancestor", ErrMalformedTree, label)
	}

	if n.IsLeaf() {
		if len(n.Children) > 0 {
			return fmt.Errorf("%w: leaf %s has children", ErrMalformedTree, label)
		}
		if n.Material == nil {
			return fmt.Errorf("%s: %w", label, ErrMissingMaterial)
		}
		tr, err := transform.New(parent)
		if err != nil {
			return fmt.Errorf("%s: %w: %w", label, ErrSingularTransform, err)
		}
		b.models = append(b.models, newModel(n.Name, n.Primitive, n.Material, tr))
		glog.V(2).Infof("scene: model %s", label)
		return nil
	}

	if n.Material != nil {
		return fmt.Errorf("%w: %s has a material but no primitive", ErrMalformedTree, label)
	}

	b.active[n] = true
	defer delete(b.active, n)

	for i, child := range n.Children {
		if child.Node == nil {
			return fmt.Errorf("%w: %s child %d is nil", ErrMalformedTree, label, i)
		}
		childLabel := label + "/" + nodeLabel(child.Node, fmt.Sprintf("%d", i))
		if err := b.visit(child.Node, parent.Mul4(child.Transform), childLabel); err != nil {
			return err
		}
	}
	return nil
}

func nodeLabel(n *Node, fallback string) string {
	if n.Name != "" {
		return n.Name
	}
	return fallback
}

// Models returns every model in the scene
func (s *Scene) Models() []*Model {
	return s.models
}

// Lights returns the models whose material emits light, each exactly once
func (s *Scene) Lights() []*Model {
	return s.lights
}

// NumLights returns the number of light sources
func (s *Scene) NumLights() int {
	return len(s.lights)
}

// Light returns the i-th light source
func (s *Scene) Light(i int) material.Surface {
	return s.lights[i]
}

// Options returns the options the scene was built with
func (s *Scene) Options() Options {
	return s.options
}

// Nearest returns the closest hit along ray in front of its origin, or the
// miss sentinel
func (s *Scene) Nearest(ray core.Ray) material.Intersection {
	var scratch [4]material.Intersection
	nearest := material.NoIntersection()
	for _, m := range s.models {
		for _, h := range m.Intersect(ray, scratch[:0]) {
			if h.Closer(nearest) {
				nearest = h
			}
		}
	}
	return nearest
}

// collect gathers every hit along ray into hits and returns the nearest
func (s *Scene) collect(ray core.Ray, hits []material.Intersection) ([]material.Intersection, material.Intersection) {
	hits = hits[:0]
	for _, m := range s.models {
		hits = m.Intersect(ray, hits)
	}
	nearest := material.NoIntersection()
	for _, h := range hits {
		if h.Closer(nearest) {
			nearest = h
		}
	}
	return hits, nearest
}
