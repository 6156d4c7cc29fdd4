package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Light is anything that can illuminate a shading point directly
type Light interface {
	// Sample returns the direction and distance from point to the light
	// along with the light's colour
	Sample(point core.Vec3) LightSample
}

// LightSample describes a light as seen from a shading point
type LightSample struct {
	Direction core.Vec3   // Unit direction from shading point to light
	Distance  float64     // Distance to light
	Colour    core.Colour // Emitted colour
}
