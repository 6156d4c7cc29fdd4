package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderConfig contains rendering configuration
type RenderConfig struct {
	TileSize   int // Size of each tile (64x64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// PixelSink receives rendered pixels as packed 0xRRGGBB values. SetPixel is
// called concurrently, but never twice for the same pixel.
type PixelSink interface {
	SetPixel(x, y int, rgb uint32)
}

// ImageSink writes pixels into an RGBA image
type ImageSink struct {
	Image *image.RGBA
}

// NewImageSink creates a sink backed by a new width×height image
func NewImageSink(width, height int) *ImageSink {
	return &ImageSink{Image: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// SetPixel implements PixelSink
func (s *ImageSink) SetPixel(x, y int, rgb uint32) {
	s.Image.SetRGBA(x, y, color.RGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 255,
	})
}

// Raytracer renders a scene to a fixed-size pixel grid
type Raytracer struct {
	scene  *scene.Scene
	width  int
	height int
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(s *scene.Scene, width, height int, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	if logger == nil {
		logger = discardLogger{}
	}
	return &Raytracer{
		scene:  s,
		width:  width,
		height: height,
		config: config,
		logger: logger,
	}, nil
}

// PixelToFrame maps pixel coordinates of a width×height image to frame
// coordinates in [-1, 1). Pixel (0, 0) maps to (-1, -1).
func PixelToFrame(x, y, width, height int) (float64, float64) {
	fx := float64(x)*2/float64(width) - 1
	fy := float64(y)*2/float64(height) - 1
	return fx, fy
}

// PixelColour traces the primary ray for a single pixel
func (rt *Raytracer) PixelColour(x, y int) core.Colour {
	fx, fy := PixelToFrame(x, y, rt.width, rt.height)
	return rt.scene.ColourForRay(rt.scene.Camera.RayForPixel(fx, fy))
}

// RenderBounds renders the pixels within bounds into sink
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, sink PixelSink) RenderStats {
	stats := RenderStats{Tiles: 1}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgb := rt.PixelColour(x, y).ToRGB()
			sink.SetPixel(x, y, rgb)

			stats.TotalPixels++
			if rgb != 0 {
				stats.LitPixels++
			}
		}
	}
	return stats
}

// Render renders the whole image into sink using a tile worker pool. If ctx
// is cancelled, remaining tiles are skipped and ctx.Err() is returned.
func (rt *Raytracer) Render(ctx context.Context, sink PixelSink) (RenderStats, error) {
	startTime := time.Now()
	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize)

	pool := NewWorkerPool(rt, sink, rt.config.NumWorkers, len(tiles))
	pool.Start(ctx)

	rt.logger.Printf("Rendering %dx%d in %d tiles (using %d workers)...\n",
		rt.width, rt.height, len(tiles), pool.GetNumWorkers())

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}
	pool.Stop()

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	var firstErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.add(result.Stats)
	}
	stats.Duration = time.Since(startTime)

	if firstErr != nil {
		rt.logger.Printf("Rendering cancelled after %d of %d tiles\n", stats.Tiles, len(tiles))
		return stats, firstErr
	}

	rt.logger.Printf("Render completed in %v\n", stats.Duration)
	return stats, nil
}

// RenderImage renders the scene to a new RGBA image
func (rt *Raytracer) RenderImage(ctx context.Context) (*image.RGBA, RenderStats, error) {
	sink := NewImageSink(rt.width, rt.height)
	stats, err := rt.Render(ctx, sink)
	if err != nil {
		return nil, stats, err
	}
	return sink.Image, stats, nil
}
