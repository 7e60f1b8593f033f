package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Node is one node of the transform tree a scene is built from. A node with
// a primitive is a leaf; every other node groups children, each placed by its
// own transform relative to the parent. The same node may be placed several
// times to instance it.
type Node struct {
	Name      string
	Primitive geometry.Primitive
	Material  material.Material
	Children  []Child
}

// Child places a node relative to its parent
type Child struct {
	Transform mgl64.Mat4
	Node      *Node
}

// NewLeaf creates a leaf node
func NewLeaf(name string, primitive geometry.Primitive, mat material.Material) *Node {
	return &Node{Name: name, Primitive: primitive, Material: mat}
}

// NewGroup creates an empty group node
func NewGroup(name string) *Node {
	return &Node{Name: name}
}

// Add places child under n and returns n for chaining
func (n *Node) Add(transform mgl64.Mat4, child *Node) *Node {
	n.Children = append(n.Children, Child{Transform: transform, Node: child})
	return n
}

// IsLeaf reports whether the node carries a primitive
func (n *Node) IsLeaf() bool {
	return n.Primitive != nil
}
