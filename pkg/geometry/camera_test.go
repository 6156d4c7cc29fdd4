package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCamera_RayForPixel(t *testing.T) {
	camera := DefaultCamera()

	tests := []struct {
		name              string
		frameX, frameY    float64
		expectedDirection core.Vec3
	}{
		{"centre", 0, 0, core.NewVec3(0, 0, 1)},
		{"right edge", 1, 0, core.NewVec3(1, 0, 3).Normalize()},
		{"bottom left corner", -1, -1, core.NewVec3(-1, -1, 3).Normalize()},
		{"top edge", 0, 1, core.NewVec3(0, 1, 3).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.RayForPixel(tt.frameX, tt.frameY)
			if ray.Origin != camera.FocalPoint {
				t.Errorf("Expected origin at focal point %v, got %v", camera.FocalPoint, ray.Origin)
			}
			assertVecNear(t, tt.expectedDirection, ray.Direction)
		})
	}
}

func TestCamera_RayPassesThroughFrame(t *testing.T) {
	camera := Camera{
		FocalPoint:  core.NewVec3(1, 1, 1),
		FrameCentre: core.NewVec3(1, 1, 3),
		XDirection:  core.NewVec3(0.5, 0, 0),
		YDirection:  core.NewVec3(0, 0.25, 0),
	}

	ray := camera.RayForPixel(0.5, -1)
	framePoint := core.NewVec3(1.25, 0.75, 3)
	distance := framePoint.Subtract(camera.FocalPoint).Length()
	assertVecNear(t, framePoint, ray.At(distance))
}
