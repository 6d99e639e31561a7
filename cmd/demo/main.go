package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"ray-engine/internal/preview"
	"ray-engine/renderer"
	"ray-engine/sampler"
	"ray-engine/scene"
)

func main() {
	configPath := flag.String("config", "", "YAML scene description (omit for the built-in scene)")
	outputPath := flag.String("output", "render.png", "output PNG path")
	workers := flag.Int("workers", 0, "render workers (0 = all CPUs)")
	showPreview := flag.Bool("preview", false, "show the result in a window")
	flag.Parse()

	if err := run(*configPath, *outputPath, *workers, *showPreview); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, outputPath string, workers int, showPreview bool) error {
	var config *scene.Config
	var err error

	if configPath != "" {
		config, err = scene.LoadConfig(configPath)
		if err != nil {
			return err
		}
	} else {
		config = builtinConfig()
	}

	sceneGraph, camera, imageSampler, err := build(config)
	if err != nil {
		return err
	}

	engine := renderer.New(sceneGraph, camera, imageSampler, config.MinimumDistance)
	engine.Workers = workers

	log.Printf("rendering %dx%d, %d spp, sampler=%s",
		config.Width, config.Height, config.SamplesPerPixel, config.Sampler)

	start := time.Now()
	film, err := engine.Render(config.Width, config.Height)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Printf("rendered in %v", time.Since(start))

	if err := film.WritePNG(outputPath); err != nil {
		return err
	}
	log.Printf("wrote %s", outputPath)

	if showPreview {
		window, err := preview.NewWindow("ray-engine", film)
		if err != nil {
			return err
		}
		defer window.Close()

		for !window.ShouldClose() {
			window.Frame()
		}
	}

	return nil
}

func build(config *scene.Config) (*scene.Scene, *scene.Camera, sampler.ImageSampler, error) {
	sceneGraph, err := config.BuildScene()
	if err != nil {
		return nil, nil, nil, err
	}

	camera, err := config.BuildCamera()
	if err != nil {
		return nil, nil, nil, err
	}

	sequence, err := config.NewSequence()
	if err != nil {
		return nil, nil, nil, err
	}

	imageSampler, err := sampler.NewLowDiscrepancyImageSampler(sequence, config.SamplesPerPixel)
	if err != nil {
		return nil, nil, nil, err
	}

	return sceneGraph, camera, imageSampler, nil
}

// builtinConfig is the fallback scene: three spheres and a ground plane.
func builtinConfig() *scene.Config {
	return &scene.Config{
		Width:           640,
		Height:          480,
		SamplesPerPixel: 16,
		Sampler:         "halton",
		MinimumDistance: 1e-3,
		Camera: scene.CameraConfig{
			Position: [3]float64{0, 1.5, 6},
			Target:   [3]float64{0, 0.75, 0},
			Up:       [3]float64{0, 1, 0},
			FOV:      55,
		},
		Nodes: []scene.NodeConfig{
			{
				Name:   "ground",
				Plane:  &[2]float64{40, 40},
				Albedo: &[3]float32{0.7, 0.7, 0.7},
			},
			{
				Name:      "center",
				Sphere:    &scene.SphereConfig{Radius: 1},
				Translate: &[3]float64{0, 1, 0},
				Albedo:    &[3]float32{0.9, 0.3, 0.25},
			},
			{
				Name:      "left",
				Sphere:    &scene.SphereConfig{Radius: 0.6},
				Translate: &[3]float64{-1.9, 0.6, 0.6},
				Albedo:    &[3]float32{0.25, 0.5, 0.9},
			},
			{
				Name:      "right",
				Sphere:    &scene.SphereConfig{Radius: 0.6},
				Translate: &[3]float64{1.9, 0.6, 0.6},
				Albedo:    &[3]float32{0.3, 0.85, 0.4},
			},
		},
	}
}
