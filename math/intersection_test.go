package math

import (
	"testing"
)

func planeDifferential() RayDifferential {
	// Straight down onto the y = 0 plane, offsets one unit apart in x and z.
	return NewRayDifferential(
		NewRay(NewPoint3(0, 2, 0), NewVec3(0, -1, 0)),
		NewRay(NewPoint3(1, 2, 0), NewVec3(0, -1, 0)),
		NewRay(NewPoint3(0, 2, 1), NewVec3(0, -1, 0)),
	)
}

func TestIntersectionHitPoints(t *testing.T) {
	world := planeDifferential()
	model := world

	intersection := NewIntersection(model, world, Vec3Up, NormalWorldSpace, 2.0)

	if intersection.WorldHitPoint != NewPoint3(0, 0, 0) {
		t.Errorf("world hit point: got %v", intersection.WorldHitPoint)
	}
	if intersection.ModelHitPoint != NewPoint3(0, 0, 0) {
		t.Errorf("model hit point: got %v", intersection.ModelHitPoint)
	}
	if !intersection.HasDerivatives {
		t.Fatal("expected derivatives")
	}

	vecsClose(t, "world dpdx", intersection.WorldDpDx, NewVec3(1, 0, 0), matrixTolerance)
	vecsClose(t, "world dpdy", intersection.WorldDpDy, NewVec3(0, 0, 1), matrixTolerance)
	vecsClose(t, "model dpdx", intersection.ModelDpDx, NewVec3(1, 0, 0), matrixTolerance)
	vecsClose(t, "model dpdy", intersection.ModelDpDy, NewVec3(0, 0, 1), matrixTolerance)
}

func TestIntersectionScaledModelSpace(t *testing.T) {
	scale, err := NewScale(2, 2, 2)
	if err != nil {
		t.Fatalf("NewScale: %v", err)
	}

	world := planeDifferential()
	model := scale.InverseMulRayDifferential(world)

	intersection := NewIntersection(model, world, Vec3Up, NormalWorldSpace, 2.0)

	if !intersection.HasDerivatives {
		t.Fatal("expected derivatives")
	}

	// Model coordinates are half the world coordinates under the 2x scale.
	vecsClose(t, "model dpdx", intersection.ModelDpDx, NewVec3(0.5, 0, 0), matrixTolerance)
	vecsClose(t, "world dpdx", intersection.WorldDpDx, NewVec3(1, 0, 0), matrixTolerance)
}

func TestIntersectionWithoutDifferentials(t *testing.T) {
	ray := NewRay(NewPoint3(0, 2, 0), NewVec3(0, -1, 0))
	world := NewRayDifferentialWithoutDifferentials(ray)

	intersection := NewIntersection(world, world, Vec3Up, NormalWorldSpace, 2.0)

	if intersection.HasDerivatives {
		t.Error("derivatives should be undefined")
	}
	if intersection.WorldHitPoint != NewPoint3(0, 0, 0) {
		t.Errorf("world hit point: got %v", intersection.WorldHitPoint)
	}
}

func TestIntersectionPerpendicularNormalSuppressesDerivatives(t *testing.T) {
	// Offset directions parallel to the plane: the offset rays never cross
	// the tangent plane, so the derivatives would be infinite.
	world := NewRayDifferential(
		NewRay(NewPoint3(0, 2, 0), NewVec3(0, -1, 0)),
		NewRay(NewPoint3(1, 2, 0), NewVec3(1, 0, 0)),
		NewRay(NewPoint3(0, 2, 1), NewVec3(0, 0, 1)),
	)

	intersection := NewIntersection(world, world, Vec3Up, NormalWorldSpace, 2.0)

	if intersection.HasDerivatives {
		t.Error("derivatives should be suppressed")
	}
}
