package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Intersect tests if a ray hits the sphere. Only the nearer root of the
// quadratic is considered, so a ray starting inside the sphere misses.
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	// Vector from sphere center to ray origin
	v := ray.Origin.Subtract(s.Center)

	// Direction is unit length, so the quadratic reduces to t² + 2bt + c = 0
	b := ray.Direction.Dot(v)
	discriminant := b*b - v.LengthSquared() + s.Radius*s.Radius
	if discriminant < 0 {
		return 0, false
	}

	t := -b - math.Sqrt(discriminant)
	if t < 0 {
		return 0, false
	}
	return t, true
}

// NormalAt returns the outward normal at a point on the sphere
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}
