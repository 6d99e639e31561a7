package scene

import (
	"encoding/binary"
	"math"

	"ray-engine/core"
	reMath "ray-engine/math"
	"ray-engine/trace"
)

const triangleEpsilon = 1e-9

// TriangleData is the additional data a triangle mesh attaches to each hit:
// enough to reinterpolate vertex attributes without re-intersecting.
type TriangleData struct {
	Barycentric   [3]float64
	VertexIndices [3]uint32
}

// triangleDataSize is three float64 coordinates plus three uint32 indices
// padded to the payload alignment.
const (
	triangleDataSize      = 3*8 + 3*4 + 4
	triangleDataAlignment = 8
)

// EncodeTriangleData packs the data into the supplied payload buffer, which
// shape code keeps per intersection call to avoid churn.
func EncodeTriangleData(data TriangleData, payload *[triangleDataSize]byte) []byte {
	for i, value := range data.Barycentric {
		binary.LittleEndian.PutUint64(payload[i*8:], math.Float64bits(value))
	}
	for i, index := range data.VertexIndices {
		binary.LittleEndian.PutUint32(payload[24+i*4:], index)
	}
	return payload[:]
}

// DecodeTriangleData unpacks a payload written by EncodeTriangleData.
func DecodeTriangleData(payload []byte) (TriangleData, bool) {
	if len(payload) != triangleDataSize {
		return TriangleData{}, false
	}

	var data TriangleData
	for i := range data.Barycentric {
		data.Barycentric[i] = math.Float64frombits(
			binary.LittleEndian.Uint64(payload[i*8:]))
	}
	for i := range data.VertexIndices {
		data.VertexIndices[i] = binary.LittleEndian.Uint32(payload[24+i*4:])
	}

	return data, true
}

// TriangleMesh is an indexed triangle list in model space. Normals are
// optional; without them the geometric normal is used.
type TriangleMesh struct {
	Name     string
	Vertices []reMath.Point3
	Normals  []reMath.Vec3
	Indices  []uint32

	bounds reMath.Bounds3
}

func NewTriangleMesh(
	name string,
	vertices []reMath.Point3,
	normals []reMath.Vec3,
	indices []uint32,
) (*TriangleMesh, error) {
	if len(vertices) == 0 {
		return nil, core.InvalidArgument(1)
	}

	if len(normals) != 0 && len(normals) != len(vertices) {
		return nil, core.InvalidArgumentCombination(0)
	}

	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, core.InvalidArgument(3)
	}

	for _, index := range indices {
		if int(index) >= len(vertices) {
			return nil, core.InvalidArgument(3)
		}
	}

	bounds := reMath.NewBounds3()
	for _, vertex := range vertices {
		bounds = bounds.Extend(vertex)
	}

	return &TriangleMesh{
		Name:     name,
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
		bounds:   bounds,
	}, nil
}

// Intersect walks every triangle with Möller-Trumbore after a bounding-box
// reject, allocating one hit per triangle the ray pierces. The face ids
// encode which side of the triangle was hit.
func (m *TriangleMesh) Intersect(
	ray reMath.Ray,
	allocator *trace.HitAllocator,
) (*trace.Hit, error) {
	if !m.bounds.IntersectRay(ray, math.Inf(1)) {
		return nil, core.ErrNoIntersection
	}

	var payload [triangleDataSize]byte
	var head *trace.Hit

	for i := 0; i < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0 := m.Vertices[i0]
		v1 := m.Vertices[i1]
		v2 := m.Vertices[i2]

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		h := ray.Direction.Cross(edge2)
		determinant := edge1.Dot(h)

		if determinant > -triangleEpsilon && determinant < triangleEpsilon {
			continue
		}

		inverseDeterminant := 1.0 / determinant
		s := ray.Origin.Sub(v0)
		u := inverseDeterminant * s.Dot(h)
		if u < 0.0 || u > 1.0 {
			continue
		}

		q := s.Cross(edge1)
		v := inverseDeterminant * ray.Direction.Dot(q)
		if v < 0.0 || u+v > 1.0 {
			continue
		}

		distance := inverseDeterminant * edge2.Dot(q)

		frontFace, backFace := FaceFront, FaceBack
		if determinant < 0 {
			frontFace, backFace = FaceBack, FaceFront
		}

		data := EncodeTriangleData(TriangleData{
			Barycentric:   [3]float64{1.0 - u - v, u, v},
			VertexIndices: [3]uint32{i0, i1, i2},
		}, &payload)

		hit, err := allocator.AllocateWithHitPoint(head,
			distance,
			frontFace,
			backFace,
			data,
			triangleDataAlignment,
			ray.Endpoint(distance))

		if err != nil {
			return nil, err
		}

		head = hit
	}

	if head == nil {
		return nil, core.ErrNoIntersection
	}

	return head, nil
}

// Normal interpolates shading normals from the hit's barycentric payload
// when the mesh has them, falling back to the geometric normal.
func (m *TriangleMesh) Normal(hit *trace.HitContext, modelHitPoint reMath.Point3) reMath.Vec3 {
	data, ok := DecodeTriangleData(hit.AdditionalData)
	if !ok {
		return reMath.Vec3Up
	}

	i0, i1, i2 := data.VertexIndices[0], data.VertexIndices[1], data.VertexIndices[2]

	var normal reMath.Vec3
	if len(m.Normals) != 0 {
		normal = m.Normals[i0].Mul(data.Barycentric[0]).
			Add(m.Normals[i1].Mul(data.Barycentric[1])).
			Add(m.Normals[i2].Mul(data.Barycentric[2])).
			Normalize()
	} else {
		edge1 := m.Vertices[i1].Sub(m.Vertices[i0])
		edge2 := m.Vertices[i2].Sub(m.Vertices[i0])
		normal = edge1.Cross(edge2).Normalize()
	}

	if hit.FrontFace == FaceBack {
		return normal.Negate()
	}

	return normal
}

func (m *TriangleMesh) Bounds() reMath.Bounds3 {
	return m.bounds
}

// Transformed returns a copy of the mesh with the transform baked into its
// vertices and normals, for use as premultiplied geometry.
func (m *TriangleMesh) Transformed(matrix *reMath.Matrix) (*TriangleMesh, error) {
	if matrix == nil {
		return m, nil
	}

	vertices := make([]reMath.Point3, len(m.Vertices))
	for i, vertex := range m.Vertices {
		vertices[i] = matrix.MulPoint(vertex)
	}

	var normals []reMath.Vec3
	if len(m.Normals) != 0 {
		normals = make([]reMath.Vec3, len(m.Normals))
		for i, normal := range m.Normals {
			normals[i] = matrix.InverseMulVectorTransposed(normal).Normalize()
		}
	}

	return NewTriangleMesh(m.Name, vertices, normals, m.Indices)
}
