package lights

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPointLight_Sample(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 4, 0), core.NewColour(1, 0.5, 0))

	tests := []struct {
		name              string
		point             core.Vec3
		expectedDirection core.Vec3
		expectedDistance  float64
	}{
		{"directly below", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 4},
		{"directly above", core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0), 6},
		{"pythagorean offset", core.NewVec3(3, 0, 0), core.NewVec3(-0.6, 0.8, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sample := light.Sample(tt.point)
			if sample.Distance != tt.expectedDistance {
				t.Errorf("Expected distance %f, got %f", tt.expectedDistance, sample.Distance)
			}
			if sample.Direction.Subtract(tt.expectedDirection).Length() > 1e-12 {
				t.Errorf("Expected direction %v, got %v", tt.expectedDirection, sample.Direction)
			}
			if sample.Colour != light.Colour {
				t.Errorf("Expected colour %v, got %v", light.Colour, sample.Colour)
			}
		})
	}
}
