package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"gonum.org/v1/gonum/floats/scalar"
)

const tolerance = 1e-5

func assertVecNear(t *testing.T, expected, actual core.Vec3) {
	t.Helper()
	if !scalar.EqualWithinAbs(expected.X, actual.X, tolerance) ||
		!scalar.EqualWithinAbs(expected.Y, actual.Y, tolerance) ||
		!scalar.EqualWithinAbs(expected.Z, actual.Z, tolerance) {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}
