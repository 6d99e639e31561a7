package scene

import (
	"math"

	reMath "ray-engine/math"
)

// CreateSphereMesh generates a UV-sphere triangle mesh. The analytic Sphere
// shape is cheaper to trace; the mesh variant exists for scenes that need
// every shape as triangles.
func CreateSphereMesh(radius float64, segments, rings int) (*TriangleMesh, error) {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	var vertices []reMath.Point3
	var normals []reMath.Vec3
	var indices []uint32

	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * math.Pi / float64(rings)
		sinPhi := math.Sin(phi)
		cosPhi := math.Cos(phi)

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2.0 * math.Pi / float64(segments)

			normal := reMath.NewVec3(sinPhi*math.Cos(theta), cosPhi, sinPhi*math.Sin(theta))
			normals = append(normals, normal)
			vertices = append(vertices, reMath.NewPoint3(0, 0, 0).Add(normal.Mul(radius)))
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			indices = append(indices, current, next, current+1)
			indices = append(indices, current+1, next, next+1)
		}
	}

	return NewTriangleMesh("Sphere", vertices, normals, indices)
}

// CreateCubeMesh generates an axis-aligned cube centered at the origin.
func CreateCubeMesh(size float64) (*TriangleMesh, error) {
	h := size * 0.5

	faces := []struct {
		normal reMath.Vec3
		corner [4]reMath.Point3
	}{
		{reMath.Vec3Front, [4]reMath.Point3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{reMath.Vec3Back, [4]reMath.Point3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{reMath.Vec3Right, [4]reMath.Point3{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{reMath.Vec3Left, [4]reMath.Point3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{reMath.Vec3Up, [4]reMath.Point3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{reMath.Vec3Down, [4]reMath.Point3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}

	var vertices []reMath.Point3
	var normals []reMath.Vec3
	var indices []uint32

	for _, face := range faces {
		base := uint32(len(vertices))
		for _, corner := range face.corner {
			vertices = append(vertices, corner)
			normals = append(normals, face.normal)
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return NewTriangleMesh("Cube", vertices, normals, indices)
}

// CreatePlaneMesh generates a two-triangle ground plane in the xz plane.
func CreatePlaneMesh(width, depth float64) (*TriangleMesh, error) {
	hw := width * 0.5
	hd := depth * 0.5

	vertices := []reMath.Point3{
		{-hw, 0, -hd}, {hw, 0, -hd}, {hw, 0, hd}, {-hw, 0, hd},
	}
	normals := []reMath.Vec3{
		reMath.Vec3Up, reMath.Vec3Up, reMath.Vec3Up, reMath.Vec3Up,
	}
	indices := []uint32{0, 2, 1, 0, 3, 2}

	return NewTriangleMesh("Plane", vertices, normals, indices)
}
