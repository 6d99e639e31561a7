package scene

import (
	"errors"

	"ray-engine/core"
	reMath "ray-engine/math"
	"ray-engine/trace"
)

// Group is a composite shape: its children live in the same model space as
// the group itself and are tested through the nested-geometry path, so one
// transform covers the whole assembly.
type Group struct {
	Children []Shape
}

func NewGroup(children ...Shape) *Group {
	return &Group{Children: append([]Shape(nil), children...)}
}

// Intersect concatenates the hit lists of every child. Children that found
// nothing contribute nothing; the group reports no intersection only when
// all of them came up empty.
func (g *Group) Intersect(
	ray reMath.Ray,
	allocator *trace.HitAllocator,
) (*trace.Hit, error) {
	var head *trace.Hit

	for _, child := range g.Children {
		hits, err := trace.TestNestedGeometry(allocator, intersectShape, child, child)
		if errors.Is(err, core.ErrNoIntersection) {
			continue
		}

		if err != nil {
			return nil, err
		}

		if hits == nil {
			continue
		}

		tail := hits
		for tail.Next != nil {
			tail = tail.Next
		}
		tail.Next = head
		head = hits
	}

	if head == nil {
		return nil, core.ErrNoIntersection
	}

	return head, nil
}

// Normal delegates to the child that produced the hit, which the nested
// test recorded as the hit's user data.
func (g *Group) Normal(hit *trace.HitContext, modelHitPoint reMath.Point3) reMath.Vec3 {
	if child, ok := hit.Data.(Shape); ok {
		return child.Normal(hit, modelHitPoint)
	}
	return reMath.Vec3Up
}

func (g *Group) Bounds() reMath.Bounds3 {
	bounds := reMath.NewBounds3()
	for _, child := range g.Children {
		bounds = bounds.Union(child.Bounds())
	}
	return bounds
}
