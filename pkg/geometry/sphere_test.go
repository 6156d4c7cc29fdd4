package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestSphere_Intersect(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name         string
		rayOrigin    core.Vec3
		rayDirection core.Vec3
		expectHit    bool
		expectedT    float64
	}{
		{"perpendicular hit", core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0), true, 4},
		{"unnormalized direction", core.NewVec3(0, -5, 0), core.NewVec3(0, 7, 0), true, 4},
		{"parallel miss", core.NewVec3(0, -5, 0), core.NewVec3(1, 0, 0), false, 0},
		{"pointing away", core.NewVec3(0, -5, 0), core.NewVec3(1, -1, -1), false, 0},
		{"behind origin", core.NewVec3(0, 5, 0), core.NewVec3(0, 1, 0), false, 0},
		{"origin inside sphere", core.NewVec3(0, 0, 0), core.NewVec3(1, -1, -1), false, 0},
		{"glancing hit", core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1), true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			distance, hit := sphere.Intersect(ray)

			if hit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got hit=%t (t=%f)", tt.expectHit, hit, distance)
			}
			if hit && math.Abs(distance-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, distance)
			}
		})
	}
}

func TestSphere_NormalAt(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"positive Z", core.NewVec3(0, 0, 2), core.NewVec3(0, 0, 1)},
		{"negative Y", core.NewVec3(0, -2, 0), core.NewVec3(0, -1, 0)},
		{"diagonal", core.NewVec3(math.Sqrt2, math.Sqrt2, 0), core.NewVec3(math.Sqrt2/2, math.Sqrt2/2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVecNear(t, tt.expected, sphere.NormalAt(tt.point))
		})
	}
}

func TestSphere_NormalAtOffsetCenter(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5)
	normal := sphere.NormalAt(core.NewVec3(1, 2, 3.5))
	if normal != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected (0, 0, 1), got %v", normal)
	}
}
