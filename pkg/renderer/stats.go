package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Number of pixels written
	LitPixels   int           // Pixels that received any light
	Tiles       int           // Number of tiles rendered
	Workers     int           // Number of parallel workers used
	Duration    time.Duration // Wall-clock render time
}

// add merges per-tile statistics into the total
func (s *RenderStats) add(tile RenderStats) {
	s.TotalPixels += tile.TotalPixels
	s.LitPixels += tile.LitPixels
	s.Tiles += tile.Tiles
}
