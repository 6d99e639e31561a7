package trace

import (
	"errors"
	"math"

	"ray-engine/core"
	reMath "ray-engine/math"
)

// GeometryCallback is the shape intersection contract. It receives the ray
// to test in the coordinate space chosen by the Test variant, allocates any
// hits it finds through the allocator, and returns the head of the hit
// list. A shape that found nothing returns (nil, core.ErrNoIntersection).
type GeometryCallback func(
	geometryData any,
	ray reMath.Ray,
	allocator *HitAllocator,
) (*Hit, error)

// HitTester dispatches geometry tests for one ray and tracks the closest
// admissible hit. There are four coordinate regimes:
//
//  1. TestWorldGeometry for shapes defined in world coordinates.
//  2. TestPremultipliedGeometry for shapes that own a model-to-world
//     transform already baked into their geometric data; the test itself
//     runs in world coordinates.
//  3. TestTransformedGeometry for shapes tested in their own model space;
//     the world ray is transformed by the inverse before the callback runs.
//  4. TestGeometry, the union of 2 and 3 selected by a flag.
//
// A nil transform behaves as the identity in every variant.
type HitTester struct {
	allocator       HitAllocator
	closestHit      *fullHitContext
	worldRay        reMath.Ray
	minimumDistance float64
	maximumDistance float64

	// collectAll switches the tester from closest-hit selection to
	// retaining every admissible hit, for TraceAllHits.
	collectAll bool
	allHits    []*fullHitContext
}

func (t *HitTester) initialize() {
	node := t.allocator.arena.allocate(0)
	node.context.hit.Distance = math.Inf(1)
	node.context.hit.owner = &node.context
	t.closestHit = &node.context
	t.minimumDistance = 0.0
	t.maximumDistance = math.Inf(1)
}

// reset prepares the tester for a new ray, recycling every arena record
// except the one backing the running closest hit, which becomes the new
// +Inf sentinel.
func (t *HitTester) reset(worldRay reMath.Ray, minimumDistance float64, collectAll bool) {
	t.allocator.arena.freeAllExcept(t.closestHit.allocation)
	t.closestHit.hit.Distance = math.Inf(1)
	t.closestHit.context.Distance = math.Inf(1)

	t.worldRay = worldRay
	t.minimumDistance = minimumDistance
	t.maximumDistance = math.Inf(1)
	t.collectAll = collectAll
	t.allHits = t.allHits[:0]
}

func (t *HitTester) testGeometryInternal(
	callback GeometryCallback,
	geometryData any,
	hitData any,
	modelToWorld *reMath.Matrix,
	premultiplied bool,
) error {
	if t == nil {
		return core.InvalidArgument(0)
	}

	if callback == nil {
		return core.InvalidArgument(1)
	}

	var traceRay reMath.Ray
	if modelToWorld == nil || premultiplied {
		traceRay = t.worldRay
	} else {
		traceRay = modelToWorld.InverseMulRay(t.worldRay)
	}

	t.allocator.setRay(traceRay)
	t.allocator.setUserData(hitData)

	hit, err := callback(geometryData, traceRay, &t.allocator)

	if errors.Is(err, core.ErrNoIntersection) {
		return nil
	}

	if err != nil {
		return err
	}

	for ; hit != nil; hit = hit.Next {
		if t.minimumDistance <= hit.Distance &&
			hit.Distance <= t.maximumDistance {
			full := hit.owner
			full.modelToWorld = modelToWorld
			full.premultiplied = premultiplied

			if t.collectAll {
				t.allHits = append(t.allHits, full)
			} else {
				t.closestHit = full
				t.maximumDistance = hit.Distance
			}
		}
	}

	if !t.collectAll {
		t.allocator.arena.freeAllExcept(t.closestHit.allocation)
	}

	return nil
}

// FarthestHitAllowed returns the current upper bound on admissible hit
// distances. It starts at +Inf and shrinks to the best distance seen so
// far, so shape primitives may use it to prune early.
func (t *HitTester) FarthestHitAllowed() float64 {
	return t.maximumDistance
}

func (t *HitTester) TestWorldGeometry(
	callback GeometryCallback,
	geometryData any,
	hitData any,
) error {
	return t.testGeometryInternal(callback, geometryData, hitData, nil, false)
}

func (t *HitTester) TestPremultipliedGeometry(
	callback GeometryCallback,
	geometryData any,
	hitData any,
	modelToWorld *reMath.Matrix,
) error {
	return t.testGeometryInternal(callback, geometryData, hitData, modelToWorld, true)
}

func (t *HitTester) TestTransformedGeometry(
	callback GeometryCallback,
	geometryData any,
	hitData any,
	modelToWorld *reMath.Matrix,
) error {
	return t.testGeometryInternal(callback, geometryData, hitData, modelToWorld, false)
}

func (t *HitTester) TestGeometry(
	callback GeometryCallback,
	geometryData any,
	hitData any,
	modelToWorld *reMath.Matrix,
	premultiplied bool,
) error {
	return t.testGeometryInternal(callback, geometryData, hitData, modelToWorld, premultiplied)
}

// The WithLimit variants additionally report the farthest hit distance
// still allowed after the test, saving traversals a FarthestHitAllowed
// round trip between shapes.

func (t *HitTester) TestWorldGeometryWithLimit(
	callback GeometryCallback,
	geometryData any,
	hitData any,
) (float64, error) {
	err := t.testGeometryInternal(callback, geometryData, hitData, nil, false)
	if err != nil {
		return 0, err
	}
	return t.maximumDistance, nil
}

func (t *HitTester) TestPremultipliedGeometryWithLimit(
	callback GeometryCallback,
	geometryData any,
	hitData any,
	modelToWorld *reMath.Matrix,
) (float64, error) {
	err := t.testGeometryInternal(callback, geometryData, hitData, modelToWorld, true)
	if err != nil {
		return 0, err
	}
	return t.maximumDistance, nil
}

func (t *HitTester) TestTransformedGeometryWithLimit(
	callback GeometryCallback,
	geometryData any,
	hitData any,
	modelToWorld *reMath.Matrix,
) (float64, error) {
	err := t.testGeometryInternal(callback, geometryData, hitData, modelToWorld, false)
	if err != nil {
		return 0, err
	}
	return t.maximumDistance, nil
}

func (t *HitTester) TestGeometryWithLimit(
	callback GeometryCallback,
	geometryData any,
	hitData any,
	modelToWorld *reMath.Matrix,
	premultiplied bool,
) (float64, error) {
	err := t.testGeometryInternal(callback, geometryData, hitData, modelToWorld, premultiplied)
	if err != nil {
		return 0, err
	}
	return t.maximumDistance, nil
}

// TestNestedGeometry runs a geometry callback against the shape nested
// inside the one currently being tested. Nested shapes always share the
// enclosing shape's coordinate space, so the callback receives the
// allocator's current model ray unchanged. Unlike the tester's Test
// variants the hit list is returned directly; the enclosing callback is
// responsible for linking those hits into the list it returns. The nested
// hit data replaces the allocator's user data only for the duration of the
// call.
func TestNestedGeometry(
	allocator *HitAllocator,
	callback GeometryCallback,
	geometryData any,
	hitData any,
) (*Hit, error) {
	if allocator == nil {
		return nil, core.InvalidArgument(0)
	}

	if callback == nil {
		return nil, core.InvalidArgument(1)
	}

	modelRay := allocator.ray()

	originalData := allocator.userData()
	allocator.setUserData(hitData)

	hits, err := callback(geometryData, modelRay, allocator)

	allocator.setUserData(originalData)

	return hits, err
}
