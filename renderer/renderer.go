package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"ray-engine/core"
	reMath "ray-engine/math"
	"ray-engine/sampler"
	"ray-engine/scene"
	"ray-engine/trace"
)

// Renderer drives the tracing core over an image. Each worker gets its own
// duplicated image sampler and its own ray tracer, so nothing in the hot
// path is shared; workers pull whole rows from a common queue.
type Renderer struct {
	Scene           *scene.Scene
	Camera          *scene.Camera
	Sampler         sampler.ImageSampler
	MinimumDistance float64
	Workers         int
}

func New(
	sceneGraph *scene.Scene,
	camera *scene.Camera,
	imageSampler sampler.ImageSampler,
	minimumDistance float64,
) *Renderer {
	return &Renderer{
		Scene:           sceneGraph,
		Camera:          camera,
		Sampler:         imageSampler,
		MinimumDistance: minimumDistance,
	}
}

// shadeContext carries per-sample state into the process-hit callback.
type shadeContext struct {
	ray   reMath.RayDifferential
	color core.Color
}

// processHit shades the closest hit with a fixed Lambert headlight: just
// enough to make geometry visible without a material system.
func processHit(
	context any,
	hit *trace.HitContext,
	modelToWorld *reMath.Matrix,
	modelHitPoint reMath.Point3,
	worldHitPoint reMath.Point3,
) error {
	shade := context.(*shadeContext)

	var shape scene.Shape
	albedo := core.ColorWhite
	premultiplied := false

	switch data := hit.Data.(type) {
	case *scene.Node:
		shape = data.Shape
		albedo = data.Albedo
		premultiplied = data.Premultiplied
	case scene.Shape:
		shape = data
	}

	if shape == nil {
		return nil
	}

	normal := shape.Normal(hit, modelHitPoint)
	if !premultiplied {
		normal = modelToWorld.InverseMulVectorTransposed(normal).Normalize()
	}

	toEye := shade.ray.Ray.Direction.Normalize().Negate()
	cosine := normal.Dot(toEye)
	if cosine < 0 {
		cosine = 0
	}

	shade.color = albedo.Scale(float32(cosine))

	return nil
}

// Render traces the full image and returns the film.
func (r *Renderer) Render(width, height int) (*Film, error) {
	if width <= 0 || height <= 0 {
		return nil, core.InvalidArgument(1)
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	film := NewFilm(width, height)

	rows := make(chan int, height)
	for row := 0; row < height; row++ {
		rows <- row
	}
	close(rows)

	errs := make(chan error, workers)
	var group sync.WaitGroup

	for i := 0; i < workers; i++ {
		group.Add(1)
		go func() {
			defer group.Done()
			if err := r.renderRows(film, rows, width, height); err != nil {
				errs <- err
			}
		}()
	}

	group.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}

	return film, nil
}

func (r *Renderer) renderRows(film *Film, rows <-chan int, width, height int) error {
	workerSampler, err := r.Sampler.Duplicate()
	if err != nil {
		return fmt.Errorf("duplicate sampler: %w", err)
	}

	rng, err := workerSampler.Random()
	if err != nil {
		return fmt.Errorf("sampler rng: %w", err)
	}

	tracer := trace.NewRayTracer()
	shade := &shadeContext{}

	for row := range rows {
		for column := 0; column < width; column++ {
			numSamples, err := workerSampler.Start(column, width, row, height)
			if err != nil {
				return err
			}

			for sampleIndex := uint32(0); sampleIndex < numSamples; sampleIndex++ {
				sample, err := workerSampler.Next(rng, false)
				if err != nil {
					return err
				}

				shade.ray = r.Camera.GenerateRay(sample)
				shade.color = core.ColorBlack

				err = tracer.TraceClosestHitWithCoordinates(shade.ray.Ray,
					r.MinimumDistance,
					r.Scene.Trace,
					nil,
					processHit,
					shade)

				if err != nil {
					return err
				}

				film.Add(column, row, shade.color)
			}
		}
	}

	return nil
}
