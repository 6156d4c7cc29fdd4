package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidScene is returned when a scene file is well-formed YAML but does
// not describe a valid scene
var ErrInvalidScene = errors.New("invalid scene")

// SceneFile is the YAML representation of a scene
type SceneFile struct {
	Camera  *CameraSpec  `yaml:"camera"`
	Shading *ShadingSpec `yaml:"shading"`
	Lights  []LightSpec  `yaml:"lights"`
	Objects []ObjectSpec `yaml:"objects"`
}

// CameraSpec describes the camera. Omitted vectors keep their default values.
type CameraSpec struct {
	FocalPoint  Vector `yaml:"focal_point"`
	FrameCentre Vector `yaml:"frame_centre"`
	XDirection  Vector `yaml:"x_direction"`
	YDirection  Vector `yaml:"y_direction"`
}

// ShadingSpec overrides the shading constants
type ShadingSpec struct {
	Brightness     *float64 `yaml:"brightness"`
	RecursionLimit *int     `yaml:"recursion_limit"`
}

// LightSpec describes a point light
type LightSpec struct {
	Position Vector `yaml:"position"`
	Colour   Vector `yaml:"colour"`
}

// ObjectSpec describes a shape and its material
type ObjectSpec struct {
	Shape      string          `yaml:"shape"`
	Centre     Vector          `yaml:"centre"`
	Radius     *float64        `yaml:"radius"`
	Point      Vector          `yaml:"point"`
	Normal     Vector          `yaml:"normal"`
	Colour     Vector          `yaml:"colour"`
	Reflection Vector          `yaml:"reflection"`
	Transform  []TransformSpec `yaml:"transform"`
}

// TransformSpec is a single transform step. Exactly one field must be set.
type TransformSpec struct {
	Translate Vector   `yaml:"translate"`
	RotateX   *float64 `yaml:"rotate_x"`
	RotateY   *float64 `yaml:"rotate_y"`
	RotateZ   *float64 `yaml:"rotate_z"`
	Scale     Vector   `yaml:"scale"`
}

// Vector is a YAML sequence of three numbers
type Vector []float64

func (v Vector) vec3(field string) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("%s: expected 3 components, got %d: %w", field, len(v), ErrInvalidScene)
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func (v Vector) colour(field string) (core.Colour, error) {
	vec, err := v.vec3(field)
	if err != nil {
		return core.Black, err
	}
	return core.NewColour(vec.X, vec.Y, vec.Z), nil
}

// LoadScene loads a YAML scene file
func LoadScene(filename string) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// ParseScene decodes a YAML scene description. Unknown keys are rejected.
func ParseScene(reader io.Reader) (*scene.Scene, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var file SceneFile
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty scene file: %w", ErrInvalidScene)
		}
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	return file.Build()
}

// Build converts the parsed file into a scene
func (f *SceneFile) Build() (*scene.Scene, error) {
	s := scene.NewScene()

	if f.Camera != nil {
		if err := f.Camera.apply(&s.Camera); err != nil {
			return nil, err
		}
	}

	if f.Shading != nil {
		if f.Shading.Brightness != nil {
			s.Config.BrightnessCorrectionFactor = *f.Shading.Brightness
		}
		if f.Shading.RecursionLimit != nil {
			if *f.Shading.RecursionLimit < 0 {
				return nil, fmt.Errorf("shading.recursion_limit must not be negative: %w", ErrInvalidScene)
			}
			s.Config.RecursionLimit = *f.Shading.RecursionLimit
		}
	}

	for i, light := range f.Lights {
		position, err := light.Position.vec3(fmt.Sprintf("lights[%d].position", i))
		if err != nil {
			return nil, err
		}
		colour, err := light.Colour.colour(fmt.Sprintf("lights[%d].colour", i))
		if err != nil {
			return nil, err
		}
		s.AddPointLight(position, colour)
	}

	for i, object := range f.Objects {
		if err := object.addTo(s, fmt.Sprintf("objects[%d]", i)); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (c *CameraSpec) apply(camera *geometry.Camera) error {
	fields := []struct {
		name   string
		value  Vector
		target *core.Vec3
	}{
		{"camera.focal_point", c.FocalPoint, &camera.FocalPoint},
		{"camera.frame_centre", c.FrameCentre, &camera.FrameCentre},
		{"camera.x_direction", c.XDirection, &camera.XDirection},
		{"camera.y_direction", c.YDirection, &camera.YDirection},
	}
	for _, field := range fields {
		if field.value == nil {
			continue
		}
		vec, err := field.value.vec3(field.name)
		if err != nil {
			return err
		}
		*field.target = vec
	}
	return nil
}

func (o *ObjectSpec) addTo(s *scene.Scene, path string) error {
	shape, err := o.shape(path)
	if err != nil {
		return err
	}

	if len(o.Transform) > 0 {
		transform, err := composeTransforms(o.Transform, path)
		if err != nil {
			return err
		}
		transformed, err := geometry.NewTransformed(shape, transform)
		if err != nil {
			return fmt.Errorf("%s.transform: %w", path, err)
		}
		shape = transformed
	}

	colour, err := o.Colour.colour(path + ".colour")
	if err != nil {
		return err
	}

	reflection := core.Black
	if o.Reflection != nil {
		if reflection, err = o.Reflection.colour(path + ".reflection"); err != nil {
			return err
		}
	}

	s.AddObject(shape, colour, reflection)
	return nil
}

func (o *ObjectSpec) shape(path string) (geometry.Shape, error) {
	switch strings.ToLower(o.Shape) {
	case "sphere":
		centre, err := o.Centre.vec3(path + ".centre")
		if err != nil {
			return nil, err
		}
		if o.Radius == nil || *o.Radius <= 0 {
			return nil, fmt.Errorf("%s.radius must be positive: %w", path, ErrInvalidScene)
		}
		return geometry.NewSphere(centre, *o.Radius), nil

	case "plane":
		point, err := o.Point.vec3(path + ".point")
		if err != nil {
			return nil, err
		}
		normal, err := o.Normal.vec3(path + ".normal")
		if err != nil {
			return nil, err
		}
		if normal.LengthSquared() == 0 {
			return nil, fmt.Errorf("%s.normal must be non-zero: %w", path, ErrInvalidScene)
		}
		return geometry.NewPlane(point, normal), nil

	case "":
		return nil, fmt.Errorf("%s.shape is required: %w", path, ErrInvalidScene)

	default:
		return nil, fmt.Errorf("%s: unknown shape %q: %w", path, o.Shape, ErrInvalidScene)
	}
}

// composeTransforms multiplies the steps so the first entry is applied to
// the shape first
func composeTransforms(steps []TransformSpec, path string) (core.Matrix, error) {
	composed := core.Identity(4)
	for i, step := range steps {
		m, err := step.matrix(fmt.Sprintf("%s.transform[%d]", path, i))
		if err != nil {
			return core.Matrix{}, err
		}
		if composed, err = m.Multiply(composed); err != nil {
			return core.Matrix{}, err
		}
	}
	return composed, nil
}

func (t TransformSpec) matrix(path string) (core.Matrix, error) {
	var result core.Matrix
	count := 0

	if t.Translate != nil {
		v, err := t.Translate.vec3(path + ".translate")
		if err != nil {
			return core.Matrix{}, err
		}
		result = core.Translation(v.X, v.Y, v.Z)
		count++
	}
	if t.Scale != nil {
		v, err := t.Scale.vec3(path + ".scale")
		if err != nil {
			return core.Matrix{}, err
		}
		result = core.Scale(v.X, v.Y, v.Z)
		count++
	}
	if t.RotateX != nil {
		result = core.RotateX(*t.RotateX)
		count++
	}
	if t.RotateY != nil {
		result = core.RotateY(*t.RotateY)
		count++
	}
	if t.RotateZ != nil {
		result = core.RotateZ(*t.RotateZ)
		count++
	}

	if count != 1 {
		return core.Matrix{}, fmt.Errorf("%s: expected exactly one of translate, rotate_x, rotate_y, rotate_z, scale: %w", path, ErrInvalidScene)
	}
	return result, nil
}

// validateFilePath validates a scene file path for security issues
func validateFilePath(filename string) error {
	// Check for empty filename
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	cleanPath := filepath.Clean(filename)

	// Only YAML scene files
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("invalid file type: only .yaml and .yml files are allowed")
	}

	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	return nil
}
