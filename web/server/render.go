package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/disintegration/imaging"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// RenderComplete is the final event of a streamed render
type RenderComplete struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
}

// renderSeq numbers renders for log prefixes
var renderSeq atomic.Int64

// renderOutcome carries the result of a render goroutine
type renderOutcome struct {
	image *image.RGBA
	stats renderer.RenderStats
	err   error
}

// handleRender renders a scene and responds with a PNG image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createRequestScene(r, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raytracer, err := renderer.NewRaytracer(sceneObj, req.Width, req.Height, renderer.DefaultRenderConfig(), nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Request context cancels the render if the client goes away
	img, stats, err := raytracer.RenderImage(r.Context())
	if err != nil {
		log.Printf("Render of %s cancelled: %v", req.Scene, err)
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode image")
		return
	}

	log.Printf("Rendered %s at %dx%d in %v", req.Scene, req.Width, req.Height, stats.Duration)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders a scene while streaming console output via SSE,
// finishing with a "complete" event holding the PNG
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createRequestScene(r, req)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	webLogger.Printf("Scene %s: %d objects, %d lights\n", req.Scene, len(sceneObj.Objects), len(sceneObj.Lights))

	raytracer, err := renderer.NewRaytracer(sceneObj, req.Width, req.Height, renderer.DefaultRenderConfig(), webLogger)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	done := s.startRender(ctx, raytracer)

	// This handler is the only writer, so events never interleave
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)

		case outcome := <-done:
			s.drainConsole(w, consoleChan)
			if outcome.err != nil {
				s.sendSSEError(w, fmt.Sprintf("Render error: %v", outcome.err))
				return
			}
			s.sendComplete(w, req, outcome)
			return

		case <-ctx.Done():
			// Client disconnected; the render stops on the same context
			return
		}
	}
}

// startRender runs the render in a goroutine
func (s *Server) startRender(ctx context.Context, raytracer *renderer.Raytracer) <-chan renderOutcome {
	done := make(chan renderOutcome, 1)
	go func() {
		img, stats, err := raytracer.RenderImage(ctx)
		done <- renderOutcome{image: img, stats: stats, err: err}
	}()
	return done
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", renderSeq.Add(1))
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

func (s *Server) drainConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		default:
			return
		}
	}
}

func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return
	}
	s.sendSSEEvent(w, "console", string(data))
}

func (s *Server) sendComplete(w http.ResponseWriter, req *RenderRequest, outcome renderOutcome) {
	imageData, err := s.imageToBase64PNG(outcome.image)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	data, err := json.Marshal(RenderComplete{
		ImageData: imageData,
		Width:     req.Width,
		Height:    req.Height,
		Stats: Stats{
			TotalPixels: outcome.stats.TotalPixels,
			LitPixels:   outcome.stats.LitPixels,
			Tiles:       outcome.stats.Tiles,
			Workers:     outcome.stats.Workers,
			ElapsedMs:   outcome.stats.Duration.Milliseconds(),
		},
	})
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Failed to encode result: %v", err))
		return
	}
	s.sendSSEEvent(w, "complete", string(data))
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
