package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDisc_Intersect(t *testing.T) {
	disc := NewDisc()

	tests := []struct {
		name     string
		ray      core.Ray
		expectT  float64 // 0 means a miss
		expectPt core.Vec3
	}{
		{"straight down through center", core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0)), 2, core.NewVec3(0, 0, 0)},
		{"from below", core.NewRay(core.NewVec3(0.5, -1, 0.5), core.NewVec3(0, 1, 0)), 1, core.NewVec3(0.5, 0, 0.5)},
		{"oblique hit", core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0)), 1, core.NewVec3(0, 0, 0)},
		{"outside radius", core.NewRay(core.NewVec3(0.8, 1, 0.8), core.NewVec3(0, -1, 0)), 0, core.Vec3{}},
		{"parallel", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)), 0, core.Vec3{}},
		{"pointing away", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)), 0, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := disc.Intersect(tt.ray)
			if tt.expectT == 0 {
				if len(hits) != 0 {
					t.Errorf("Expected a miss, got %+v", hits)
				}
				return
			}
			if len(hits) != 1 {
				t.Fatalf("Expected 1 hit, got %d", len(hits))
			}
			if math.Abs(hits[0].T-tt.expectT) > 1e-9 {
				t.Errorf("Expected t=%v, got %v", tt.expectT, hits[0].T)
			}
			if hits[0].Point.Subtract(tt.expectPt).Length() > 1e-9 {
				t.Errorf("Expected point %v, got %v", tt.expectPt, hits[0].Point)
			}
			if hits[0].Normal != core.NewVec3(0, 1, 0) {
				t.Errorf("Expected +Y normal, got %v", hits[0].Normal)
			}
			if hits[0].Primitive != disc {
				t.Error("Primitive should be the disc itself")
			}
		})
	}
}

func TestDisc_SamplePoint(t *testing.T) {
	disc := NewDisc()
	for _, sample := range []core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0.25), core.NewVec2(0.5, 0.9)} {
		p := disc.SamplePoint(sample)
		if p.Y != 0 {
			t.Errorf("Sample %v left the plane: %v", sample, p)
		}
		if r := math.Sqrt(p.X*p.X + p.Z*p.Z); r > 1+1e-12 {
			t.Errorf("Sample %v outside the disc: r=%v", sample, r)
		}
	}

	edge := disc.SamplePoint(core.NewVec2(1, 0.25))
	if edge.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected (0, 0, 1), got %v", edge)
	}
}
