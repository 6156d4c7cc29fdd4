package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Colour {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewColour(r, g, blue)
}

const (
	sphereGridSize   = 6
	sphereGridRadius = 0.35
	sphereGridFloorY = 1.0
)

// NewSphereGridScene creates a grid of rainbow-coloured, slightly
// reflective spheres resting on a mirror-tinted floor
func NewSphereGridScene() *Scene {
	s := NewScene()

	s.Camera = geometry.Camera{
		FocalPoint:  core.NewVec3(0, -3, -4),
		FrameCentre: core.NewVec3(0, -2.1, -1.2),
		XDirection:  core.NewVec3(1, 0, 0),
		YDirection:  core.NewVec3(0, 0.95, -0.3),
	}

	s.AddObject(
		geometry.NewPlane(core.NewVec3(0, sphereGridFloorY, 0), core.NewVec3(0, -1, 0)),
		core.NewColour(0.5, 0.5, 0.55),
		core.NewColour(0.25, 0.25, 0.25),
	)

	spacing := 1.0
	offset := float64(sphereGridSize-1) * spacing / 2
	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			x := float64(i)*spacing - offset
			z := float64(j)*spacing + 3

			// Hue sweeps diagonally across the grid
			hue := float64(i+j) / float64(2*(sphereGridSize-1)) * 300.0
			colour := oklchToRGB(0.7, 0.15, hue)

			s.AddObject(
				geometry.NewSphere(core.NewVec3(x, sphereGridFloorY-sphereGridRadius, z), sphereGridRadius),
				colour,
				core.NewColour(0.3, 0.3, 0.3),
			)
		}
	}

	s.AddPointLight(core.NewVec3(-3, -6, 2), core.White)
	s.AddPointLight(core.NewVec3(4, -3, 10), core.NewColour(0.5, 0.45, 0.4))

	return s
}
