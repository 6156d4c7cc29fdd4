package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// builtinScenes maps scene names to their constructors
var builtinScenes = map[string]func() *Scene{
	"default":     NewDefaultScene,
	"mirrors":     NewMirrorScene,
	"transformed": NewTransformedScene,
	"spheregrid":  NewSphereGridScene,
}

// BuiltinSceneNames returns the names of all built-in scenes in sorted order
func BuiltinSceneNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltinScene creates a built-in scene by name
func NewBuiltinScene(name string) (*Scene, error) {
	constructor, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %q", name)
	}
	return constructor(), nil
}

// NewDefaultScene creates a single reflective sphere lit by a bright white
// light and a dim purple fill light
func NewDefaultScene() *Scene {
	s := NewScene()

	s.AddObject(
		geometry.NewSphere(core.NewVec3(-1, -1, 5), 1),
		core.NewColour(1.0, 0.9, 0.9),
		core.NewColour(0.2, 0.2, 0.2),
	)

	s.AddPointLight(core.NewVec3(0, -5, -5), core.White)
	s.AddPointLight(core.NewVec3(-1, 0.7, 1), core.NewColour(0.2, 0.15, 0.2))

	return s
}

// NewMirrorScene places a sphere between two facing mirrors, producing a
// corridor of reflections that ends at the recursion limit
func NewMirrorScene() *Scene {
	s := NewScene()

	mirrorTint := core.NewColour(0.8, 0.8, 0.85)
	dark := core.NewColour(0.05, 0.05, 0.05)

	// Left and right mirrors facing each other
	s.AddObject(geometry.NewPlane(core.NewVec3(-3, 0, 0), core.NewVec3(1, 0, 0)), dark, mirrorTint)
	s.AddObject(geometry.NewPlane(core.NewVec3(3, 0, 0), core.NewVec3(-1, 0, 0)), dark, mirrorTint)

	// Floor, matte
	s.AddObject(geometry.NewPlane(core.NewVec3(0, 1.5, 0), core.NewVec3(0, -1, 0)),
		core.NewColour(0.6, 0.6, 0.5), core.Black)

	s.AddObject(geometry.NewSphere(core.NewVec3(0, 0.5, 6), 1),
		core.NewColour(0.9, 0.3, 0.2), core.NewColour(0.1, 0.1, 0.1))

	s.AddPointLight(core.NewVec3(0, -4, 2), core.White)
	s.AddPointLight(core.NewVec3(1.5, -1, 9), core.NewColour(0.3, 0.3, 0.6))

	return s
}

// NewTransformedScene shows shapes placed through affine transforms: a
// squashed and tilted ellipsoid, a rotated floor and a stretched mirror ball
func NewTransformedScene() *Scene {
	s := NewScene()

	unitSphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1)

	ellipsoid := mustTransformed(unitSphere,
		core.Translation(-1.2, 0, 6),
		core.RotateZ(30),
		core.Scale(1.5, 0.6, 0.6),
	)
	s.AddObject(ellipsoid, core.NewColour(0.2, 0.8, 0.3), core.Black)

	mirrorBall := mustTransformed(unitSphere,
		core.Translation(1.3, -0.2, 7),
		core.Scale(0.8, 1.4, 0.8),
	)
	s.AddObject(mirrorBall, core.NewColour(0.1, 0.1, 0.1), core.NewColour(0.7, 0.7, 0.7))

	floor := mustTransformed(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0)),
		core.Translation(0, 1.5, 0),
		core.RotateX(-10),
	)
	s.AddObject(floor, core.NewColour(0.7, 0.7, 0.7), core.Black)

	s.AddPointLight(core.NewVec3(-2, -5, 0), core.White)
	s.AddPointLight(core.NewVec3(3, -2, 3), core.NewColour(0.4, 0.3, 0.2))

	return s
}

// mustTransformed composes transforms left to right (so the last one is
// applied to the shape first) and wraps the shape. Built-in scenes only use
// invertible transforms, so a failure here is a programming error.
func mustTransformed(shape geometry.Shape, transforms ...core.Matrix) *geometry.Transformed {
	composed := core.Identity(4)
	for _, transform := range transforms {
		var err error
		composed, err = composed.Multiply(transform)
		if err != nil {
			panic(err)
		}
	}

	transformed, err := geometry.NewTransformed(shape, composed)
	if err != nil {
		panic(err)
	}
	return transformed
}
