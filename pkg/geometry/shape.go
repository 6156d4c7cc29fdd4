package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Shape is the purely geometric part of a scene object
type Shape interface {
	// Intersect returns the distance along the ray to the first hit at or
	// ahead of the ray origin, or false if the ray misses.
	Intersect(ray core.Ray) (float64, bool)

	// NormalAt returns the unit surface normal at a point on the surface.
	NormalAt(point core.Vec3) core.Vec3
}
