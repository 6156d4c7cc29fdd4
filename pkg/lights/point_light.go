package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight emits light equally in all directions from a single position.
// A point light must not sit exactly on a surface it illuminates.
type PointLight struct {
	Position core.Vec3
	Colour   core.Colour
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, colour core.Colour) PointLight {
	return PointLight{Position: position, Colour: colour}
}

// Sample returns the light as seen from point
func (l PointLight) Sample(point core.Vec3) LightSample {
	toLight := l.Position.Subtract(point)
	return LightSample{
		Direction: toLight.Normalize(),
		Distance:  toLight.Length(),
		Colour:    l.Colour,
	}
}
