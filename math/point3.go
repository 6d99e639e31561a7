package math

// Point3 is a position in 3D space. Points and vectors transform differently
// under the fourth matrix row, so they are distinct types.
type Point3 struct {
	X, Y, Z float64
}

func NewPoint3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

func (p Point3) Add(v Vec3) Point3 {
	return Point3{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

func (p Point3) AddScaled(v Vec3, scalar float64) Point3 {
	return Point3{
		X: p.X + v.X*scalar,
		Y: p.Y + v.Y*scalar,
		Z: p.Z + v.Z*scalar,
	}
}

// Sub returns the vector from other to p.
func (p Point3) Sub(other Point3) Vec3 {
	return Vec3{X: p.X - other.X, Y: p.Y - other.Y, Z: p.Z - other.Z}
}

func (p Point3) Vec3() Vec3 {
	return Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// Validate reports whether every component is finite.
func (p Point3) Validate() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}
