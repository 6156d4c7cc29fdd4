package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Colour       [3]float64             `json:"colour"`
	Reflection   [3]float64             `json:"reflection"`
	PixelColour  string                 `json:"pixelColour"` // Rendered colour as #rrggbb
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit      bool
	Object   *scene.Object
	Distance float64
	Point    core.Vec3
	Normal   core.Vec3
	Colour   core.Colour // Shaded colour seen along the ray
}

// inspectPixel casts the primary ray for a pixel and reports the first
// object it hits
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	fx, fy := renderer.PixelToFrame(pixelX, pixelY, width, height)
	ray := sceneObj.Camera.RayForPixel(fx, fy)

	object, distance, hit := sceneObj.FirstIntersection(ray, nil)
	if !hit {
		return InspectResult{Hit: false}
	}

	point := ray.At(distance)
	return InspectResult{
		Hit:      true,
		Object:   object,
		Distance: distance,
		Point:    point,
		Normal:   object.Shape.NormalAt(point),
		Colour:   sceneObj.ColourForRay(ray),
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
		return "plane", properties

	case *geometry.Transformed:
		innerType, innerProps := extractGeometryInfo(geom.Inner)
		properties["inner"] = map[string]interface{}{
			"type":       innerType,
			"properties": innerProps,
		}
		properties["transform"] = geom.Transform.String()
		return "transformed", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := s.createRequestScene(r, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, PixelColour: "#000000"})
		return
	}

	geometryType, geometryProps := extractGeometryInfo(result.Object.Shape)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        vecArray(result.Point),
		Normal:       vecArray(result.Normal),
		Distance:     result.Distance,
		Colour:       colourArray(result.Object.Colour),
		Reflection:   colourArray(result.Object.ReflectionColour),
		PixelColour:  hexColour(result.Colour),
		Properties:   map[string]interface{}{"geometry": geometryProps},
	})
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func colourArray(c core.Colour) [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

func hexColour(c core.Colour) string {
	return fmt.Sprintf("#%06x", c.ToRGB())
}
