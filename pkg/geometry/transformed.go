package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Transformed places an inner shape in the world through an affine
// transform. The transform maps the inner shape's local space to world space.
type Transformed struct {
	Inner     Shape
	Transform core.Matrix

	inverse      core.Matrix // world to local
	normalMatrix core.Matrix // inverse transpose, local normals to world
}

// NewTransformed wraps a shape in a transform. The transform must be a 4×4
// invertible matrix.
func NewTransformed(inner Shape, transform core.Matrix) (*Transformed, error) {
	if transform.Rows() != 4 || transform.Cols() != 4 {
		return nil, fmt.Errorf("transform must be 4x4, got %dx%d: %w",
			transform.Rows(), transform.Cols(), core.ErrDimensionMismatch)
	}
	inverse, err := transform.Inverse()
	if err != nil {
		return nil, fmt.Errorf("invalid shape transform: %w", err)
	}
	return &Transformed{
		Inner:        inner,
		Transform:    transform,
		inverse:      inverse,
		normalMatrix: inverse.Transpose(),
	}, nil
}

// Intersect moves the ray into local space, intersects the inner shape and
// reports the world-space distance to the hit point. The local distance
// cannot be reused directly since scaling changes lengths.
func (t *Transformed) Intersect(ray core.Ray) (float64, bool) {
	localRay := ray.Transform(t.inverse)
	localDistance, hit := t.Inner.Intersect(localRay)
	if !hit {
		return 0, false
	}

	worldPoint := t.Transform.Times(localRay.At(localDistance))
	return worldPoint.Subtract(ray.Origin).Length(), true
}

// NormalAt maps the point to local space, asks the inner shape for its
// normal and maps that back with the inverse transpose of the linear part.
func (t *Transformed) NormalAt(point core.Vec3) core.Vec3 {
	localNormal := t.Inner.NormalAt(t.inverse.Times(point))
	return t.normalMatrix.LinearTimes(localNormal).Normalize()
}
