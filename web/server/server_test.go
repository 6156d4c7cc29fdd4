package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const testSceneFile = `# Scene: Test Sphere
# Group: Tests

lights:
  - position: [0, 0, -5]
    colour: [1, 1, 1]
objects:
  - shape: Sphere
    centre: [0, 0, 5]
    radius: 2
    colour: [1, 0, 0]
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "test-sphere.yaml"), []byte(testSceneFile), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("objects:\n  - shape: Cube\n"), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	return NewServer(0, dir)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]string
	decodeJSON(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var response scene.ScenesResponse
	decodeJSON(t, rec, &response)

	ids := make(map[string]bool)
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			ids[info.ID] = true
		}
	}
	for _, expected := range []string{"default", "mirrors", "yaml:test-sphere", "yaml:broken"} {
		if !ids[expected] {
			t.Errorf("Expected scene %q in listing, got %v", expected, ids)
		}
	}
}

func TestHandleRender(t *testing.T) {
	tests := []struct {
		name  string
		query string
		width int
	}{
		{"default scene", "scene=default&width=32&height=24", 32},
		{"scene file", "scene=yaml:test-sphere&width=20&height=20", 20},
		{"shading overrides", "scene=mirrors&width=16&height=16&recursionLimit=0&brightness=10", 16},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/api/render?"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
				t.Errorf("Expected image/png, got %q", ct)
			}

			img, err := imaging.Decode(rec.Body)
			if err != nil {
				t.Fatalf("Failed to decode PNG: %v", err)
			}
			if img.Bounds().Dx() != tt.width {
				t.Errorf("Expected width %d, got %d", tt.width, img.Bounds().Dx())
			}
		})
	}
}

func TestHandleRender_SceneFileCentreIsLit(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/render?scene=yaml:test-sphere&width=20&height=20")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	img, err := imaging.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	r, g, b, _ := img.At(10, 10).RGBA()
	if r == 0 || g != 0 || b != 0 {
		t.Errorf("Expected red centre pixel, got (%d, %d, %d)", r, g, b)
	}
}

func TestHandleRender_BadRequests(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		errorText string
	}{
		{"width too small", "width=1", "width must be between"},
		{"height too large", "height=5000", "height must be between"},
		{"non-numeric width", "width=abc", "invalid width"},
		{"unknown scene", "scene=nonexistent", "unknown scene"},
		{"unknown scene file", "scene=yaml:nonexistent", "unknown scene"},
		{"path traversal", "scene=" + url.QueryEscape("yaml:../secret"), "invalid scene name"},
		{"broken scene file", "scene=yaml:broken", "failed to load scene"},
		{"negative recursion", "recursionLimit=-1", "recursionLimit must be between"},
		{"bad brightness", "brightness=bright", "invalid brightness"},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/api/render?"+tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON error, got %q", ct)
			}

			var body map[string]string
			decodeJSON(t, rec, &body)
			if !strings.Contains(body["error"], tt.errorText) {
				t.Errorf("Expected error containing %q, got %q", tt.errorText, body["error"])
			}
		})
	}
}

func TestHandleRenderStream(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/render/stream?scene=default&width=16&height=16")
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "event: console\n") {
		t.Errorf("Expected console events, got %q", body)
	}

	const marker = "event: complete\ndata: "
	idx := strings.Index(body, marker)
	if idx < 0 {
		t.Fatalf("Expected complete event, got %q", body)
	}
	data := body[idx+len(marker):]
	data = data[:strings.Index(data, "\n")]

	var complete RenderComplete
	if err := json.Unmarshal([]byte(data), &complete); err != nil {
		t.Fatalf("Failed to decode complete event: %v", err)
	}
	if complete.Stats.TotalPixels != 256 {
		t.Errorf("Expected 256 pixels, got %d", complete.Stats.TotalPixels)
	}

	png, err := base64.StdEncoding.DecodeString(complete.ImageData)
	if err != nil {
		t.Fatalf("Failed to decode image data: %v", err)
	}
	img, err := imaging.Decode(strings.NewReader(string(png)))
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("Expected 16x16 image, got %v", img.Bounds())
	}
}

func TestHandleRenderStream_Error(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/render/stream?scene=nonexistent")
	if !strings.Contains(rec.Body.String(), "event: error\n") {
		t.Errorf("Expected error event, got %q", rec.Body.String())
	}
}

func TestHandleSceneConfig(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/scene-config?scene=mirrors")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body struct {
		Scene    string `json:"scene"`
		Defaults struct {
			Brightness     float64 `json:"brightness"`
			RecursionLimit int     `json:"recursionLimit"`
		} `json:"defaults"`
		Objects int `json:"objects"`
		Lights  int `json:"lights"`
	}
	decodeJSON(t, rec, &body)
	if body.Scene != "mirrors" || body.Defaults.Brightness != 40 || body.Defaults.RecursionLimit != 10 {
		t.Errorf("Unexpected scene config: %+v", body)
	}
	if body.Objects == 0 || body.Lights == 0 {
		t.Errorf("Expected objects and lights, got %+v", body)
	}

	if rec := get(t, s, "/api/scene-config?scene=nonexistent"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown scene, got %d", rec.Code)
	}
}

func TestHandleInspect(t *testing.T) {
	s := newTestServer(t)

	// The default sphere at (-1, -1, 5) sits under pixel (35, 35) of a 100x100 frame
	rec := get(t, s, "/api/inspect?scene=default&width=100&height=100&x=35&y=35")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var hit InspectResponse
	decodeJSON(t, rec, &hit)
	if !hit.Hit || hit.GeometryType != "sphere" {
		t.Errorf("Expected sphere hit, got %+v", hit)
	}
	if hit.Distance <= 0 {
		t.Errorf("Expected positive distance, got %f", hit.Distance)
	}

	rec = get(t, s, "/api/inspect?scene=default&width=100&height=100&x=99&y=99")
	var miss InspectResponse
	decodeJSON(t, rec, &miss)
	if miss.Hit {
		t.Errorf("Expected miss, got %+v", miss)
	}

	rec = get(t, s, "/api/inspect?scene=transformed&width=100&height=100&x=50&y=99")
	var transformed InspectResponse
	decodeJSON(t, rec, &transformed)
	if transformed.Hit && transformed.GeometryType != "transformed" {
		t.Errorf("Expected transformed geometry, got %q", transformed.GeometryType)
	}

	for _, query := range []string{"x=abc&y=0", "x=0", "x=100&y=0", "x=-1&y=0"} {
		if rec := get(t, s, "/api/inspect?width=100&height=100&"+query); rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %q, got %d", query, rec.Code)
		}
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  int
		expectErr bool
	}{
		{"missing uses default", "", 7, false},
		{"valid", "12", 12, false},
		{"below min", "0", 0, true},
		{"above max", "101", 0, true},
		{"not a number", "x", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			if tt.value != "" {
				values.Set("n", tt.value)
			}
			got, err := parseIntParam(values, "n", 7, 1, 100)
			if tt.expectErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.value)
				}
				return
			}
			if err != nil || got != tt.expected {
				t.Errorf("parseIntParam(%q) = %d, %v; want %d", tt.value, got, err, tt.expected)
			}
		})
	}
}
