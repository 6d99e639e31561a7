package scene

import (
	reMath "ray-engine/math"
	"ray-engine/trace"
)

// Shape is geometry that can be intersected in its own model space. The
// hits a shape allocates are reclaimed by the tracing core; shapes only
// build the list.
type Shape interface {
	// Intersect tests the model-space ray and returns the head of the
	// allocated hit list, or core.ErrNoIntersection.
	Intersect(ray reMath.Ray, allocator *trace.HitAllocator) (*trace.Hit, error)

	// Normal returns the model-space surface normal for a hit produced by
	// Intersect at the given model hit point.
	Normal(hit *trace.HitContext, modelHitPoint reMath.Point3) reMath.Vec3

	// Bounds returns the model-space bounding box.
	Bounds() reMath.Bounds3
}

// intersectShape adapts a Shape carried as geometry data to the tracing
// core's callback contract.
func intersectShape(
	geometryData any,
	ray reMath.Ray,
	allocator *trace.HitAllocator,
) (*trace.Hit, error) {
	return geometryData.(Shape).Intersect(ray, allocator)
}
