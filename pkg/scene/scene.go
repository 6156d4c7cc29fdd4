package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// ShadingConfig contains the tunable constants of the shading algorithm
type ShadingConfig struct {
	BrightnessCorrectionFactor float64 // Scales inverse-square light falloff
	RecursionLimit             int     // Maximum number of reflection bounces
}

// DefaultShadingConfig returns sensible default values
func DefaultShadingConfig() ShadingConfig {
	return ShadingConfig{
		BrightnessCorrectionFactor: 40.0,
		RecursionLimit:             10,
	}
}

// Object is a shape together with its material colours
type Object struct {
	Shape            geometry.Shape
	Colour           core.Colour // Diffuse colour
	ReflectionColour core.Colour // Mirror tint, black for no reflection
}

// Scene contains all the elements needed for rendering. It must not be
// modified while a render is in progress.
type Scene struct {
	Camera  geometry.Camera
	Objects []*Object      // Objects in the scene
	Lights  []lights.Light // Lights in the scene
	Config  ShadingConfig
}

// NewScene creates an empty scene with the default camera and shading config
func NewScene() *Scene {
	return &Scene{
		Camera:  geometry.DefaultCamera(),
		Objects: make([]*Object, 0),
		Lights:  make([]lights.Light, 0),
		Config:  DefaultShadingConfig(),
	}
}

// AddObject adds a shape with a diffuse colour and reflection tint
func (s *Scene) AddObject(shape geometry.Shape, colour, reflection core.Colour) *Object {
	object := &Object{Shape: shape, Colour: colour, ReflectionColour: reflection}
	s.Objects = append(s.Objects, object)
	return object
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(position core.Vec3, colour core.Colour) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, colour))
}

// ColourForRay returns the colour seen along a ray, tracing reflections up
// to Config.RecursionLimit bounces
func (s *Scene) ColourForRay(ray core.Ray) core.Colour {
	return s.TraceRay(ray, s.Config.RecursionLimit, nil)
}

// TraceRay returns the colour seen along a ray. ignored, if not nil, is
// skipped during intersection so a reflected ray cannot hit the surface it
// leaves. The result is not clamped.
func (s *Scene) TraceRay(ray core.Ray, recursionLimit int, ignored *Object) core.Colour {
	closest, distance, hit := s.FirstIntersection(ray, ignored)
	if !hit {
		return core.Black
	}

	point := ray.At(distance)
	normal := closest.Shape.NormalAt(point)
	incidentLight := s.incidentLight(point, normal, closest)

	reflectedColour := core.Black
	if recursionLimit > 0 && !closest.ReflectionColour.IsBlack() {
		reflectedRay := reflectAt(ray.Direction, point, normal)
		reflectedColour = s.TraceRay(reflectedRay, recursionLimit-1, closest)
	}

	return closest.Colour.Multiply(incidentLight).
		Add(reflectedColour.Multiply(closest.ReflectionColour))
}

// FirstIntersection finds the nearest object hit by the ray, skipping
// ignored (compared by identity)
func (s *Scene) FirstIntersection(ray core.Ray, ignored *Object) (*Object, float64, bool) {
	var closest *Object
	closestDistance := 0.0

	for _, object := range s.Objects {
		if object == ignored {
			continue
		}
		distance, hit := object.Shape.Intersect(ray)
		if hit && (closest == nil || distance < closestDistance) {
			closest = object
			closestDistance = distance
		}
	}

	return closest, closestDistance, closest != nil
}

// incidentLight sums the unshadowed light arriving at a point on object
func (s *Scene) incidentLight(point, normal core.Vec3, object *Object) core.Colour {
	total := core.Black
	for _, light := range s.Lights {
		sample := light.Sample(point)

		// Light is behind the surface
		cosTheta := normal.Dot(sample.Direction)
		if cosTheta <= 0 {
			continue
		}

		// Check whether some other object is between us and the light
		shadowRay := core.NewRay(point, sample.Direction)
		if _, blockerDistance, blocked := s.FirstIntersection(shadowRay, object); blocked && blockerDistance < sample.Distance {
			continue
		}

		falloff := cosTheta * s.Config.BrightnessCorrectionFactor / (sample.Distance * sample.Distance)
		total = total.Add(sample.Colour.Scale(falloff))
	}
	return total
}

// reflectAt returns the mirror reflection of an incident direction about
// the surface normal, starting at the intersection point
func reflectAt(incident, point, normal core.Vec3) core.Ray {
	reflected := incident.Subtract(normal.Multiply(2 * normal.Dot(incident)))
	return core.NewRay(point, reflected)
}
