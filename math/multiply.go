package math

// Multiply routines for vectors, points, and rays. All of them accept a nil
// receiver, which stands for the identity transform. Vectors ignore the
// translation column; points take the full affine transform plus a
// perspective divide by the w row.

func (m *Matrix) MulVector(v Vec3) Vec3 {
	if m == nil {
		return v
	}

	return Vec3{
		X: m.m[0][0]*v.X + m.m[0][1]*v.Y + m.m[0][2]*v.Z,
		Y: m.m[1][0]*v.X + m.m[1][1]*v.Y + m.m[1][2]*v.Z,
		Z: m.m[2][0]*v.X + m.m[2][1]*v.Y + m.m[2][2]*v.Z,
	}
}

// MulVectorTransposed multiplies by the transpose in place, reading the
// stored rows as columns. Used for transforming normals by an inverse.
func (m *Matrix) MulVectorTransposed(v Vec3) Vec3 {
	if m == nil {
		return v
	}

	return Vec3{
		X: m.m[0][0]*v.X + m.m[1][0]*v.Y + m.m[2][0]*v.Z,
		Y: m.m[0][1]*v.X + m.m[1][1]*v.Y + m.m[2][1]*v.Z,
		Z: m.m[0][2]*v.X + m.m[1][2]*v.Y + m.m[2][2]*v.Z,
	}
}

func (m *Matrix) InverseMulVector(v Vec3) Vec3 {
	if m == nil {
		return v
	}
	return m.inverse.MulVector(v)
}

func (m *Matrix) InverseMulVectorTransposed(v Vec3) Vec3 {
	if m == nil {
		return v
	}
	return m.inverse.MulVectorTransposed(v)
}

func (m *Matrix) MulPoint(p Point3) Point3 {
	if m == nil {
		return p
	}

	x := m.m[0][0]*p.X + m.m[0][1]*p.Y + m.m[0][2]*p.Z + m.m[0][3]
	y := m.m[1][0]*p.X + m.m[1][1]*p.Y + m.m[1][2]*p.Z + m.m[1][3]
	z := m.m[2][0]*p.X + m.m[2][1]*p.Y + m.m[2][2]*p.Z + m.m[2][3]
	w := m.m[3][0]*p.X + m.m[3][1]*p.Y + m.m[3][2]*p.Z + m.m[3][3]

	scalar := 1.0 / w
	return Point3{X: x * scalar, Y: y * scalar, Z: z * scalar}
}

func (m *Matrix) InverseMulPoint(p Point3) Point3 {
	if m == nil {
		return p
	}
	return m.inverse.MulPoint(p)
}

func (m *Matrix) MulRay(r Ray) Ray {
	if m == nil {
		return r
	}

	return Ray{
		Origin:    m.MulPoint(r.Origin),
		Direction: m.MulVector(r.Direction),
	}
}

func (m *Matrix) InverseMulRay(r Ray) Ray {
	if m == nil {
		return r
	}
	return m.inverse.MulRay(r)
}
