package trace

import (
	"math"

	"ray-engine/core"
	reMath "ray-engine/math"
)

// HitAllocator allocates the hits produced during one geometry test. The
// distance, face ids, and additional data land directly in the allocated hit
// context; additional data is copied into arena-owned bytes, so only
// trivially copyable values belong there. Hits are reclaimed collectively by
// the owning tester and must never be freed by shape code.
type HitAllocator struct {
	arena           hitArena
	modelRay        reMath.Ray
	data            any
	minimumDistance float64
}

func (a *HitAllocator) ray() reMath.Ray {
	return a.modelRay
}

func (a *HitAllocator) setRay(modelRay reMath.Ray) {
	a.modelRay = modelRay
}

func (a *HitAllocator) userData() any {
	return a.data
}

func (a *HitAllocator) setUserData(data any) {
	a.data = data
}

func (a *HitAllocator) allocateInternal(
	next *Hit,
	distance float64,
	frontFace uint32,
	backFace uint32,
	additionalData []byte,
	additionalDataAlignment uint,
	hitPoint *reMath.Point3,
) (*Hit, error) {
	if a == nil {
		return nil, core.InvalidArgument(0)
	}

	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return nil, core.InvalidArgument(2)
	}

	if len(additionalData) != 0 {
		if additionalDataAlignment == 0 ||
			additionalDataAlignment&(additionalDataAlignment-1) != 0 {
			return nil, core.InvalidArgumentCombination(1)
		}

		if uint(len(additionalData))%additionalDataAlignment != 0 {
			return nil, core.InvalidArgumentCombination(2)
		}
	}

	node := a.arena.allocate(len(additionalData))
	copy(node.payload, additionalData)

	context := &node.context
	context.hit.Next = next
	context.hit.Distance = distance
	context.hit.owner = context
	context.context.Distance = distance
	context.context.FrontFace = frontFace
	context.context.BackFace = backFace
	context.context.Data = a.data
	if len(additionalData) != 0 {
		context.context.AdditionalData = node.payload
	} else {
		context.context.AdditionalData = nil
	}

	if hitPoint != nil {
		context.modelHitPoint = *hitPoint
		context.modelHitPointValid = true
	}

	return &context.hit, nil
}

// Allocate creates a hit at the given distance linked ahead of next.
// Alignment must be a power of two and must evenly divide the additional
// data size; both constraints are validated even though Go slices impose no
// alignment of their own, so misuse fails the same way everywhere.
func (a *HitAllocator) Allocate(
	next *Hit,
	distance float64,
	frontFace uint32,
	backFace uint32,
	additionalData []byte,
	additionalDataAlignment uint,
) (*Hit, error) {
	return a.allocateInternal(next,
		distance,
		frontFace,
		backFace,
		additionalData,
		additionalDataAlignment,
		nil)
}

// AllocateWithHitPoint additionally records the model-space hit point
// computed during the intersection test, sparing the tracer from
// recomputing it during coordinate reconstruction.
func (a *HitAllocator) AllocateWithHitPoint(
	next *Hit,
	distance float64,
	frontFace uint32,
	backFace uint32,
	additionalData []byte,
	additionalDataAlignment uint,
	hitPoint reMath.Point3,
) (*Hit, error) {
	if !hitPoint.Validate() {
		return nil, core.InvalidArgument(8)
	}

	return a.allocateInternal(next,
		distance,
		frontFace,
		backFace,
		additionalData,
		additionalDataAlignment,
		&hitPoint)
}
