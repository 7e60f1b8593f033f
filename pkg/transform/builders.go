package transform

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Translate returns a translation matrix
func Translate(offset core.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(offset.X, offset.Y, offset.Z)
}

// Scale returns a non-uniform scale matrix
func Scale(factors core.Vec3) mgl64.Mat4 {
	return mgl64.Scale3D(factors.X, factors.Y, factors.Z)
}

// UniformScale returns a uniform scale matrix
func UniformScale(s float64) mgl64.Mat4 {
	return mgl64.Scale3D(s, s, s)
}

// Rotate returns a rotation of degrees around axis
func Rotate(axis core.Vec3, degrees float64) mgl64.Mat4 {
	return mgl64.HomogRotate3D(mgl64.DegToRad(degrees), ToMgl(axis.Normalize()))
}

// Compose multiplies matrices left to right, so the last one is applied first
func Compose(ms ...mgl64.Mat4) mgl64.Mat4 {
	result := mgl64.Ident4()
	for _, m := range ms {
		result = result.Mul4(m)
	}
	return result
}
