package core

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3 // Always unit length
}

// NewRay creates a new ray, normalizing the direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Transform maps the ray through an affine transform. The origin is moved
// affinely, the direction only by the linear part and then renormalized.
func (r Ray) Transform(m Matrix) Ray {
	return NewRay(m.Times(r.Origin), m.LinearTimes(r.Direction))
}
