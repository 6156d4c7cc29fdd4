package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const scenesDir = "scenes"

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Built-in scene name, scene file name in scenes/, or path to a .yaml scene")
	width := flag.Int("width", 1000, "Image width in pixels")
	height := flag.Int("height", 1000, "Image height in pixels")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	output := flag.String("output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, sceneName, err := createScene(*sceneType)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Using scene %s (%d objects, %d lights)...\n",
		sceneName, len(selectedScene.Objects), len(selectedScene.Lights))

	config := renderer.DefaultRenderConfig()
	config.NumWorkers = *workers

	raytracer, err := renderer.NewRaytracer(selectedScene, *width, *height, config, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	img, stats, err := raytracer.RenderImage(context.Background())
	if err != nil {
		fmt.Printf("Error rendering: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Lit pixels: %d of %d\n", stats.LitPixels, stats.TotalPixels)

	filename := *output
	if filename == "" {
		filename = defaultOutputPath(sceneName, time.Now())
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	if err := imaging.Save(img, filename); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Built-in scenes:")
	for _, name := range scene.BuiltinSceneNames() {
		fmt.Printf("  %s\n", name)
	}

	if files, err := scene.ListYAMLScenes(scenesDir); err == nil && len(files) > 0 {
		fmt.Println()
		fmt.Println("Scene files:")
		for _, info := range files {
			fmt.Printf("  %s - %s\n", strings.TrimPrefix(info.ID, "yaml:"), info.Name)
		}
	}

	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// createScene resolves a scene argument to a scene and a name for output
// paths. The argument may be a built-in scene, the name of a file in
// scenes/ without extension, or a path to a .yaml/.yml file.
func createScene(sceneType string) (*scene.Scene, string, error) {
	if sceneType == "" {
		return nil, "", fmt.Errorf("scene name cannot be empty")
	}

	if s, err := scene.NewBuiltinScene(sceneType); err == nil {
		return s, sceneType, nil
	}

	ext := strings.ToLower(filepath.Ext(sceneType))
	if ext == ".yaml" || ext == ".yml" {
		s, err := loaders.LoadScene(sceneType)
		if err != nil {
			return nil, "", err
		}
		return s, strings.TrimSuffix(filepath.Base(sceneType), filepath.Ext(sceneType)), nil
	}

	for _, candidate := range []string{sceneType + ".yaml", sceneType + ".yml"} {
		path := filepath.Join(scenesDir, candidate)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		s, err := loaders.LoadScene(path)
		if err != nil {
			return nil, "", err
		}
		return s, sceneType, nil
	}

	return nil, "", fmt.Errorf("unknown scene: %q", sceneType)
}

func defaultOutputPath(sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", timestamp))
}
