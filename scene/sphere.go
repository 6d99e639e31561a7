package scene

import (
	"math"

	"ray-engine/core"
	reMath "ray-engine/math"
	"ray-engine/trace"
)

// Face ids reported by the built-in shapes.
const (
	FaceFront uint32 = 0
	FaceBack  uint32 = 1
)

// Sphere is an analytic sphere in model space.
type Sphere struct {
	Center reMath.Point3
	Radius float64
}

func NewSphere(center reMath.Point3, radius float64) (*Sphere, error) {
	if !center.Validate() {
		return nil, core.InvalidArgument(0)
	}

	if !isFinitePositive(radius) {
		return nil, core.InvalidArgument(1)
	}

	return &Sphere{Center: center, Radius: radius}, nil
}

func isFinitePositive(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0) && value > 0
}

// Intersect solves the quadratic and allocates one hit per real root. Both
// roots are reported, including negative ones; the tester's distance window
// decides admissibility.
func (s *Sphere) Intersect(
	ray reMath.Ray,
	allocator *trace.HitAllocator,
) (*trace.Hit, error) {
	toCenter := s.Center.Sub(ray.Origin)

	a := ray.Direction.Dot(ray.Direction)
	b := ray.Direction.Dot(toCenter)
	discriminant := b*b - a*(toCenter.Dot(toCenter)-s.Radius*s.Radius)

	if discriminant < 0 {
		return nil, core.ErrNoIntersection
	}

	sqrtDiscriminant := math.Sqrt(discriminant)
	enter := (b - sqrtDiscriminant) / a
	exit := (b + sqrtDiscriminant) / a

	if enter == exit {
		return allocator.AllocateWithHitPoint(nil,
			enter,
			FaceFront,
			FaceBack,
			nil,
			0,
			ray.Endpoint(enter))
	}

	exitHit, err := allocator.Allocate(nil, exit, FaceBack, FaceFront, nil, 0)
	if err != nil {
		return nil, err
	}

	return allocator.AllocateWithHitPoint(exitHit,
		enter,
		FaceFront,
		FaceBack,
		nil,
		0,
		ray.Endpoint(enter))
}

func (s *Sphere) Normal(hit *trace.HitContext, modelHitPoint reMath.Point3) reMath.Vec3 {
	normal := modelHitPoint.Sub(s.Center).Normalize()
	if hit.FrontFace == FaceBack {
		return normal.Negate()
	}
	return normal
}

func (s *Sphere) Bounds() reMath.Bounds3 {
	radius := reMath.NewVec3(s.Radius, s.Radius, s.Radius)
	return reMath.Bounds3{
		Min: s.Center.Add(radius.Negate()),
		Max: s.Center.Add(radius),
	}
}
