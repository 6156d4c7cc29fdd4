package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Image size limits for render and inspect requests
const (
	minImageSize     = 16
	maxImageSize     = 2000
	defaultImageSize = 400
	maxRecursion     = 50
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server. Scene files are discovered in scenesDir.
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string `json:"scene"`  // Built-in scene name or "yaml:<file name>"
	Width  int    `json:"width"`  // Image width
	Height int    `json:"height"` // Image height
}

// Stats represents render statistics
type Stats struct {
	TotalPixels int   `json:"totalPixels"`
	LitPixels   int   `json:"litPixels"`
	Tiles       int   `json:"tiles"`
	Workers     int   `json:"workers"`
	ElapsedMs   int64 `json:"elapsedMs"`
}

// Handler returns the HTTP handler serving all API endpoints
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		log.Printf("Error listing scenes: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list scenes")
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the camera and shading configuration of a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	camera := sceneObj.Camera
	response := map[string]interface{}{
		"scene": sceneName,
		"camera": map[string][3]float64{
			"focalPoint":  vecArray(camera.FocalPoint),
			"frameCentre": vecArray(camera.FrameCentre),
			"xDirection":  vecArray(camera.XDirection),
			"yDirection":  vecArray(camera.YDirection),
		},
		"defaults": map[string]interface{}{
			"brightness":     sceneObj.Config.BrightnessCorrectionFactor,
			"recursionLimit": sceneObj.Config.RecursionLimit,
		},
		"objects": len(sceneObj.Objects),
		"lights":  len(sceneObj.Lights),
		"limits": map[string]interface{}{
			"width":          map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":         map[string]int{"min": minImageSize, "max": maxImageSize},
			"recursionLimit": map[string]int{"min": 0, "max": maxRecursion},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses the scene and image size parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	values := r.URL.Query()
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", defaultImageSize, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", defaultImageSize, minImageSize, maxImageSize); err != nil {
		return nil, err
	}

	return req, nil
}

// createRequestScene creates the requested scene and applies optional
// shading overrides from the query string
func (s *Server) createRequestScene(r *http.Request, req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, err
	}

	values := r.URL.Query()
	config := &sceneObj.Config
	if config.RecursionLimit, err = parseIntParam(values, "recursionLimit", config.RecursionLimit, 0, maxRecursion); err != nil {
		return nil, err
	}
	if config.BrightnessCorrectionFactor, err = parseFloatParam(values, "brightness", config.BrightnessCorrectionFactor, 0, 1000); err != nil {
		return nil, err
	}

	return sceneObj, nil
}

// createScene resolves a built-in scene name or a "yaml:<name>" scene file
func (s *Server) createScene(sceneName string) (*scene.Scene, error) {
	name, isFile := strings.CutPrefix(sceneName, "yaml:")
	if !isFile {
		return scene.NewBuiltinScene(sceneName)
	}

	// Only plain file names from the scenes directory
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid scene name: %q", sceneName)
	}

	scenes, err := scene.ListYAMLScenes(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range scenes {
		if info.ID == sceneName {
			sceneObj, err := loaders.LoadScene(info.FilePath)
			if err != nil {
				log.Printf("Error loading scene %s: %v", info.FilePath, err)
				return nil, fmt.Errorf("failed to load scene: %s", filepath.Base(info.FilePath))
			}
			return sceneObj, nil
		}
	}
	return nil, fmt.Errorf("unknown scene: %q", sceneName)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
