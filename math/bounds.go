package math

import "math"

// Bounds3 is an axis-aligned bounding box used as a cheap broad-phase
// reject before per-primitive intersection tests.
type Bounds3 struct {
	Min Point3
	Max Point3
}

// NewBounds3 returns an empty box that any Extend call will overwrite.
func NewBounds3() Bounds3 {
	return Bounds3{
		Min: Point3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Point3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

func (b Bounds3) Extend(p Point3) Bounds3 {
	return Bounds3{
		Min: Point3{
			X: math.Min(b.Min.X, p.X),
			Y: math.Min(b.Min.Y, p.Y),
			Z: math.Min(b.Min.Z, p.Z),
		},
		Max: Point3{
			X: math.Max(b.Max.X, p.X),
			Y: math.Max(b.Max.Y, p.Y),
			Z: math.Max(b.Max.Z, p.Z),
		},
	}
}

func (b Bounds3) Union(other Bounds3) Bounds3 {
	return b.Extend(other.Min).Extend(other.Max)
}

// IntersectRay runs the slab test and reports whether the ray passes through
// the box anywhere in [0, maxDistance].
func (b Bounds3) IntersectRay(r Ray, maxDistance float64) bool {
	invX := 1.0 / r.Direction.X
	invY := 1.0 / r.Direction.Y
	invZ := 1.0 / r.Direction.Z

	t1 := (b.Min.X - r.Origin.X) * invX
	t2 := (b.Max.X - r.Origin.X) * invX
	t3 := (b.Min.Y - r.Origin.Y) * invY
	t4 := (b.Max.Y - r.Origin.Y) * invY
	t5 := (b.Min.Z - r.Origin.Z) * invZ
	t6 := (b.Max.Z - r.Origin.Z) * invZ

	tmin := math.Max(math.Max(math.Min(t1, t2), math.Min(t3, t4)), math.Min(t5, t6))
	tmax := math.Min(math.Min(math.Max(t1, t2), math.Max(t3, t4)), math.Max(t5, t6))

	if tmax < 0 || tmin > tmax {
		return false
	}

	return tmin <= maxDistance
}
