package trace

import (
	reMath "ray-engine/math"
)

// Hit is one node in the singly-linked list a shape callback hands back.
// Shape callbacks own the ordering of the list; the tester only reads it.
type Hit struct {
	Next     *Hit
	Distance float64

	owner *fullHitContext
}

// HitContext is the public view of a hit handed to process callbacks. The
// additional data bytes live in the arena and stay valid until the owning
// tester is reset for the next ray.
type HitContext struct {
	Distance       float64
	FrontFace      uint32
	BackFace       uint32
	Data           any
	AdditionalData []byte
}

// fullHitContext is the arena-side record behind every Hit: the public
// context plus the transform bookkeeping the tester stamps during the
// closest-hit walk and the optional model hit point recorded at allocation.
type fullHitContext struct {
	hit                Hit
	context            HitContext
	modelToWorld       *reMath.Matrix
	premultiplied      bool
	modelHitPoint      reMath.Point3
	modelHitPointValid bool
	allocation         *allocation
}
