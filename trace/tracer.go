package trace

import (
	"errors"
	"math"
	"sort"

	"ray-engine/core"
	reMath "ray-engine/math"
)

// TraceCallback walks a scene for one ray, dispatching the tester's
// TestGeometry variants for every shape the ray might touch.
type TraceCallback func(traceContext any, tester *HitTester, ray reMath.Ray) error

// ProcessHitCallback consumes one hit context. During a TraceAllHits walk a
// return of core.ErrDone stops the walk successfully.
type ProcessHitCallback func(processContext any, hit *HitContext) error

// ProcessHitWithCoordinatesCallback additionally receives the hit's
// model-to-world transform (nil for world geometry) and the reconstructed
// model and world hit points.
type ProcessHitWithCoordinatesCallback func(
	processContext any,
	hit *HitContext,
	modelToWorld *reMath.Matrix,
	modelHitPoint reMath.Point3,
	worldHitPoint reMath.Point3,
) error

// RayTracer is the front end that owns the per-ray hit tester and arena.
// One tracer serves one worker; duplicate tracers, not rays, for
// parallelism.
type RayTracer struct {
	tester HitTester
}

func NewRayTracer() *RayTracer {
	tracer := &RayTracer{}
	tracer.tester.initialize()
	return tracer
}

func (r *RayTracer) validateAndTrace(
	ray reMath.Ray,
	minimumDistance float64,
	traceCallback TraceCallback,
	traceContext any,
	haveProcessCallback bool,
	collectAll bool,
) error {
	if r == nil {
		return core.InvalidArgument(0)
	}

	if !ray.Validate() {
		return core.InvalidArgument(1)
	}

	if math.IsNaN(minimumDistance) || math.IsInf(minimumDistance, 0) ||
		minimumDistance < 0.0 {
		return core.InvalidArgument(2)
	}

	if traceCallback == nil {
		return core.InvalidArgument(3)
	}

	if !haveProcessCallback {
		return core.InvalidArgument(5)
	}

	r.tester.reset(ray, minimumDistance, collectAll)

	return traceCallback(traceContext, &r.tester, ray)
}

// TraceClosestHit traces the ray through the scene and hands the closest
// admissible hit, if any, to the process callback.
func (r *RayTracer) TraceClosestHit(
	ray reMath.Ray,
	minimumDistance float64,
	traceCallback TraceCallback,
	traceContext any,
	processCallback ProcessHitCallback,
	processContext any,
) error {
	err := r.validateAndTrace(ray,
		minimumDistance,
		traceCallback,
		traceContext,
		processCallback != nil,
		false)

	if err != nil {
		return err
	}

	closest := r.tester.closestHit
	if !math.IsInf(closest.hit.Distance, 1) {
		return processCallback(processContext, &closest.context)
	}

	return nil
}

// TraceClosestHitWithCoordinates behaves like TraceClosestHit but also
// reconstructs the model and world hit points before invoking the process
// callback. A model hit point recorded at allocation time is reused instead
// of being recomputed.
func (r *RayTracer) TraceClosestHitWithCoordinates(
	ray reMath.Ray,
	minimumDistance float64,
	traceCallback TraceCallback,
	traceContext any,
	processCallback ProcessHitWithCoordinatesCallback,
	processContext any,
) error {
	err := r.validateAndTrace(ray,
		minimumDistance,
		traceCallback,
		traceContext,
		processCallback != nil,
		false)

	if err != nil {
		return err
	}

	closest := r.tester.closestHit
	if math.IsInf(closest.hit.Distance, 1) {
		return nil
	}

	return processHitWithCoordinates(ray, closest, processCallback, processContext)
}

func processHitWithCoordinates(
	ray reMath.Ray,
	hit *fullHitContext,
	processCallback ProcessHitWithCoordinatesCallback,
	processContext any,
) error {
	if hit.modelToWorld == nil {
		worldHitPoint := hit.modelHitPoint
		if !hit.modelHitPointValid {
			worldHitPoint = ray.Endpoint(hit.context.Distance)
		}

		return processCallback(processContext,
			&hit.context,
			nil,
			worldHitPoint,
			worldHitPoint)
	}

	if hit.premultiplied {
		worldHitPoint := hit.modelHitPoint
		if !hit.modelHitPointValid {
			worldHitPoint = ray.Endpoint(hit.context.Distance)
		}

		modelHitPoint := hit.modelToWorld.InverseMulPoint(worldHitPoint)

		return processCallback(processContext,
			&hit.context,
			hit.modelToWorld,
			modelHitPoint,
			worldHitPoint)
	}

	worldHitPoint := ray.Endpoint(hit.context.Distance)

	modelHitPoint := hit.modelHitPoint
	if !hit.modelHitPointValid {
		modelHitPoint = hit.modelToWorld.InverseMulPoint(worldHitPoint)
	}

	return processCallback(processContext,
		&hit.context,
		hit.modelToWorld,
		modelHitPoint,
		worldHitPoint)
}

// TraceAllHits traces the ray, then hands every admissible hit to the
// process callback in order of increasing distance. core.ErrDone from the
// callback ends the walk successfully; any other error ends it verbatim.
func (r *RayTracer) TraceAllHits(
	ray reMath.Ray,
	minimumDistance float64,
	traceCallback TraceCallback,
	traceContext any,
	processCallback ProcessHitCallback,
	processContext any,
) error {
	err := r.validateAndTrace(ray,
		minimumDistance,
		traceCallback,
		traceContext,
		processCallback != nil,
		true)

	if err != nil {
		return err
	}

	hits := r.tester.allHits
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].hit.Distance < hits[j].hit.Distance
	})

	for _, hit := range hits {
		err := processCallback(processContext, &hit.context)
		if errors.Is(err, core.ErrDone) {
			return nil
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// FarthestHitAllowed exposes the tester's current pruning bound.
func (r *RayTracer) FarthestHitAllowed() float64 {
	return r.tester.FarthestHitAllowed()
}
