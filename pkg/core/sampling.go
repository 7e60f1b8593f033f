package core

import (
	"math"
	"math/rand"
)

// Sampler provides uniform random numbers in [0, 1) for the stochastic parts
// of light transport. Swap in a seeded or replaying implementation for tests.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a reproducible sampler from a seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// TangentFrame builds an orthonormal (tangent, bitangent) pair around a unit
// normal. The helper axis is Z unless the normal leans more towards Z than X,
// so the cross product never degenerates.
func TangentFrame(normal Vec3) (tangent, bitangent Vec3) {
	if math.Abs(normal.X) > math.Abs(normal.Z) {
		tangent = normal.Cross(NewVec3(0, 0, 1)).Normalize()
	} else {
		tangent = normal.Cross(NewVec3(1, 0, 0)).Normalize()
	}
	bitangent = normal.Cross(tangent).Normalize()
	return tangent, bitangent
}

// SampleCosineHemisphere maps two uniform numbers to a cosine-weighted
// direction in the hemisphere around a unit normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	phi := 2.0 * math.Pi * sample.X
	sinTheta := math.Sqrt(1.0 - sample.Y)
	cosTheta := math.Sqrt(sample.Y)

	tangent, bitangent := TangentFrame(normal)

	return tangent.Multiply(sinTheta * math.Cos(phi)).
		Add(normal.Multiply(cosTheta)).
		Add(bitangent.Multiply(sinTheta * math.Sin(phi))).
		Normalize()
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SampleTriangle returns uniform barycentric weights (w0, w1, w2) over a triangle
func SampleTriangle(sample Vec2) (w0, w1, w2 float64) {
	su := math.Sqrt(sample.X)
	w0 = 1 - su
	w1 = sample.Y * su
	w2 = 1 - w0 - w1
	return w0, w1, w2
}
