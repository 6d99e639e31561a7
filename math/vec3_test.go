package math

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	if v1.Add(v2) != NewVec3(5, 7, 9) {
		t.Errorf("Add: got %v", v1.Add(v2))
	}
	if v2.Sub(v1) != NewVec3(3, 3, 3) {
		t.Errorf("Sub: got %v", v2.Sub(v1))
	}
	if v1.Mul(2) != NewVec3(2, 4, 6) {
		t.Errorf("Mul: got %v", v1.Mul(2))
	}
	if v1.Dot(v2) != 32 {
		t.Errorf("Dot: got %v", v1.Dot(v2))
	}
	if Vec3Right.Cross(Vec3Up) != Vec3Front {
		t.Errorf("Cross: got %v", Vec3Right.Cross(Vec3Up))
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 0).Normalize()
	if v != NewVec3(1, 0, 0) {
		t.Errorf("Normalize: got %v", v)
	}

	zero := Vec3Zero.Normalize()
	if zero != Vec3Zero {
		t.Errorf("Normalize of zero: got %v", zero)
	}
}

func TestVec3Validate(t *testing.T) {
	if !NewVec3(1, 0, 0).Validate() {
		t.Error("unit vector should validate")
	}
	if Vec3Zero.Validate() {
		t.Error("zero vector should not validate")
	}
	if NewVec3(math.NaN(), 0, 1).Validate() {
		t.Error("NaN component should not validate")
	}
	if NewVec3(math.Inf(1), 0, 1).Validate() {
		t.Error("infinite component should not validate")
	}
}

func TestVec2Operations(t *testing.T) {
	a := NewVec2(1, 2)
	b := NewVec2(3, -1)

	if a.Add(b) != NewVec2(4, 1) {
		t.Errorf("Add: got %v", a.Add(b))
	}
	if a.Sub(b) != NewVec2(-2, 3) {
		t.Errorf("Sub: got %v", a.Sub(b))
	}
	if a.Mul(3) != NewVec2(3, 6) {
		t.Errorf("Mul: got %v", a.Mul(3))
	}
	if !a.Validate() || NewVec2(math.NaN(), 0).Validate() {
		t.Error("Validate")
	}
}

func TestPoint3Operations(t *testing.T) {
	p := NewPoint3(1, 2, 3)

	if p.Add(NewVec3(1, 1, 1)) != NewPoint3(2, 3, 4) {
		t.Errorf("Add: got %v", p.Add(NewVec3(1, 1, 1)))
	}
	if p.AddScaled(NewVec3(1, 0, 0), 5) != NewPoint3(6, 2, 3) {
		t.Errorf("AddScaled: got %v", p.AddScaled(NewVec3(1, 0, 0), 5))
	}
	if p.Sub(NewPoint3(0, 0, 1)) != NewVec3(1, 2, 2) {
		t.Errorf("Sub: got %v", p.Sub(NewPoint3(0, 0, 1)))
	}

	if !p.Validate() {
		t.Error("finite point should validate")
	}
	if NewPoint3(0, math.Inf(-1), 0).Validate() {
		t.Error("infinite point should not validate")
	}
}

func TestRayEndpoint(t *testing.T) {
	ray := NewRay(NewPoint3(1, 2, 3), NewVec3(4, 5, 6))

	if ray.Endpoint(0) != NewPoint3(1, 2, 3) {
		t.Errorf("Endpoint(0): got %v", ray.Endpoint(0))
	}
	if ray.Endpoint(2) != NewPoint3(9, 12, 15) {
		t.Errorf("Endpoint(2): got %v", ray.Endpoint(2))
	}

	if !ray.Validate() {
		t.Error("ray should validate")
	}
	if NewRay(NewPoint3(0, 0, 0), Vec3Zero).Validate() {
		t.Error("zero-direction ray should not validate")
	}
}

func TestBoundsSlabTest(t *testing.T) {
	bounds := Bounds3{
		Min: NewPoint3(-1, -1, -1),
		Max: NewPoint3(1, 1, 1),
	}

	hit := NewRay(NewPoint3(0, 0, 5), NewVec3(0, 0, -1))
	if !bounds.IntersectRay(hit, math.Inf(1)) {
		t.Error("axis ray should hit")
	}

	miss := NewRay(NewPoint3(0, 5, 5), NewVec3(0, 0, -1))
	if bounds.IntersectRay(miss, math.Inf(1)) {
		t.Error("offset ray should miss")
	}

	behind := NewRay(NewPoint3(0, 0, 5), NewVec3(0, 0, 1))
	if bounds.IntersectRay(behind, math.Inf(1)) {
		t.Error("box behind the ray should miss")
	}

	if bounds.IntersectRay(hit, 1.0) {
		t.Error("box beyond the distance limit should miss")
	}

	inside := NewRay(NewPoint3(0, 0, 0), NewVec3(1, 0, 0))
	if !bounds.IntersectRay(inside, math.Inf(1)) {
		t.Error("ray starting inside should hit")
	}
}

func TestBoundsExtend(t *testing.T) {
	bounds := NewBounds3().
		Extend(NewPoint3(1, -2, 3)).
		Extend(NewPoint3(-1, 4, 0))

	if bounds.Min != NewPoint3(-1, -2, 0) {
		t.Errorf("Min: got %v", bounds.Min)
	}
	if bounds.Max != NewPoint3(1, 4, 3) {
		t.Errorf("Max: got %v", bounds.Max)
	}
}
