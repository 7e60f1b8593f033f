// Package transform maps points, directions and normals between a model's
// local frame and world space.
package transform

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrSingular is returned when a matrix has no inverse
var ErrSingular = errors.New("transform matrix is singular")

// singularEpsilon bounds |det| below which a matrix is treated as non-invertible
const singularEpsilon = 1e-12

// Transform holds a model-to-world matrix together with its inverse and the
// matrix that carries local normals to world space. All three are computed
// once by New and never change afterwards.
type Transform struct {
	toWorld mgl64.Mat4
	toLocal mgl64.Mat4
	normal  mgl64.Mat3
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{
		toWorld: mgl64.Ident4(),
		toLocal: mgl64.Ident4(),
		normal:  mgl64.Ident3(),
	}
}

// New builds a transform from a model-to-world matrix
func New(toWorld mgl64.Mat4) (Transform, error) {
	det := toWorld.Det()
	if math.IsNaN(det) || math.Abs(det) < singularEpsilon {
		return Transform{}, ErrSingular
	}

	toLocal := toWorld.Inv()
	return Transform{
		toWorld: toWorld,
		toLocal: toLocal,
		// Normals use the inverse transpose of the linear part
		normal: toLocal.Mat3().Transpose(),
	}, nil
}

// Matrix returns the model-to-world matrix
func (t Transform) Matrix() mgl64.Mat4 {
	return t.toWorld
}

// Inverse returns the world-to-model matrix
func (t Transform) Inverse() mgl64.Mat4 {
	return t.toLocal
}

// RayToLocal carries a world-space ray into the local frame. The direction is
// deliberately not renormalized so that ray parameters agree in both frames.
func (t Transform) RayToLocal(r core.Ray) core.Ray {
	return core.Ray{
		Origin:    mulPoint(t.toLocal, r.Origin),
		Direction: mulVector(t.toLocal, r.Direction),
	}
}

// PointToWorld maps a local point to world space
func (t Transform) PointToWorld(p core.Vec3) core.Vec3 {
	return mulPoint(t.toWorld, p)
}

// NormalToWorld maps a local surface normal to a unit world-space normal
func (t Transform) NormalToWorld(n core.Vec3) core.Vec3 {
	return FromMgl(t.normal.Mul3x1(ToMgl(n))).Normalize()
}

// ApproxEqual reports whether both matrices of t and other agree within eps
func (t Transform) ApproxEqual(other Transform, eps float64) bool {
	return t.toWorld.ApproxEqualThreshold(other.toWorld, eps) &&
		t.toLocal.ApproxEqualThreshold(other.toLocal, eps)
}

func mulPoint(m mgl64.Mat4, p core.Vec3) core.Vec3 {
	return FromMgl(m.Mul4x1(ToMgl(p).Vec4(1)).Vec3())
}

func mulVector(m mgl64.Mat4, v core.Vec3) core.Vec3 {
	return FromMgl(m.Mul4x1(ToMgl(v).Vec4(0)).Vec3())
}

// ToMgl converts a core vector to a mathgl vector
func ToMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// FromMgl converts a mathgl vector to a core vector
func FromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
