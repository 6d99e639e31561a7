package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ray-engine/core"
	reMath "ray-engine/math"
	"ray-engine/trace"
)

// collectHits traces one ray against one shape in world space and returns
// every admissible hit in distance order.
func collectHits(t *testing.T, shape Shape, ray reMath.Ray) []*trace.HitContext {
	t.Helper()

	var hits []*trace.HitContext
	tracer := trace.NewRayTracer()

	traceCb := func(_ any, tester *trace.HitTester, _ reMath.Ray) error {
		return tester.TestWorldGeometry(intersectShape, shape, shape)
	}
	process := func(_ any, hit *trace.HitContext) error {
		copied := *hit
		hits = append(hits, &copied)
		return nil
	}

	require.NoError(t, tracer.TraceAllHits(ray, 0, traceCb, nil, process, nil))
	return hits
}

func TestSphereValidation(t *testing.T) {
	_, err := NewSphere(reMath.NewPoint3(math.NaN(), 0, 0), 1)
	assert.Equal(t, core.InvalidArgument(0), err)

	_, err = NewSphere(reMath.NewPoint3(0, 0, 0), 0)
	assert.Equal(t, core.InvalidArgument(1), err)

	_, err = NewSphere(reMath.NewPoint3(0, 0, 0), -2)
	assert.Equal(t, core.InvalidArgument(1), err)
}

func TestSphereTwoHits(t *testing.T) {
	sphere, err := NewSphere(reMath.NewPoint3(0, 0, 0), 1)
	require.NoError(t, err)

	ray := reMath.NewRay(reMath.NewPoint3(-3, 0, 0), reMath.NewVec3(1, 0, 0))
	hits := collectHits(t, sphere, ray)

	require.Len(t, hits, 2)
	assert.InDelta(t, 2.0, hits[0].Distance, 1e-9)
	assert.InDelta(t, 4.0, hits[1].Distance, 1e-9)
	assert.Equal(t, FaceFront, hits[0].FrontFace)
	assert.Equal(t, FaceBack, hits[1].FrontFace)
}

func TestSphereMiss(t *testing.T) {
	sphere, err := NewSphere(reMath.NewPoint3(0, 0, 0), 1)
	require.NoError(t, err)

	ray := reMath.NewRay(reMath.NewPoint3(-3, 5, 0), reMath.NewVec3(1, 0, 0))
	assert.Empty(t, collectHits(t, sphere, ray))
}

func TestSphereNormal(t *testing.T) {
	sphere, err := NewSphere(reMath.NewPoint3(0, 0, 0), 2)
	require.NoError(t, err)

	front := &trace.HitContext{FrontFace: FaceFront}
	normal := sphere.Normal(front, reMath.NewPoint3(2, 0, 0))
	assert.Equal(t, reMath.NewVec3(1, 0, 0), normal)

	back := &trace.HitContext{FrontFace: FaceBack}
	normal = sphere.Normal(back, reMath.NewPoint3(2, 0, 0))
	assert.Equal(t, reMath.NewVec3(-1, 0, 0), normal)
}

func TestSphereBounds(t *testing.T) {
	sphere, err := NewSphere(reMath.NewPoint3(1, 2, 3), 2)
	require.NoError(t, err)

	bounds := sphere.Bounds()
	assert.Equal(t, reMath.NewPoint3(-1, 0, 1), bounds.Min)
	assert.Equal(t, reMath.NewPoint3(3, 4, 5), bounds.Max)
}

func TestMeshSingleTriangle(t *testing.T) {
	mesh, err := NewTriangleMesh("tri",
		[]reMath.Point3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		nil,
		[]uint32{0, 1, 2})
	require.NoError(t, err)

	ray := reMath.NewRay(reMath.NewPoint3(0.25, 0.25, 5), reMath.NewVec3(0, 0, -1))
	hits := collectHits(t, mesh, ray)

	require.Len(t, hits, 1)
	assert.InDelta(t, 5.0, hits[0].Distance, 1e-9)

	data, ok := DecodeTriangleData(hits[0].AdditionalData)
	require.True(t, ok)
	assert.Equal(t, [3]uint32{0, 1, 2}, data.VertexIndices)
	assert.InDelta(t, 0.5, data.Barycentric[0], 1e-9)
	assert.InDelta(t, 0.25, data.Barycentric[1], 1e-9)
	assert.InDelta(t, 0.25, data.Barycentric[2], 1e-9)
}

func TestMeshMissesOutsideTriangle(t *testing.T) {
	mesh, err := NewTriangleMesh("tri",
		[]reMath.Point3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		nil,
		[]uint32{0, 1, 2})
	require.NoError(t, err)

	ray := reMath.NewRay(reMath.NewPoint3(0.9, 0.9, 5), reMath.NewVec3(0, 0, -1))
	assert.Empty(t, collectHits(t, mesh, ray))
}

func TestMeshInterpolatedNormal(t *testing.T) {
	mesh, err := NewTriangleMesh("tri",
		[]reMath.Point3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[]reMath.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		[]uint32{0, 1, 2})
	require.NoError(t, err)

	ray := reMath.NewRay(reMath.NewPoint3(0.25, 0.25, 5), reMath.NewVec3(0, 0, -1))
	hits := collectHits(t, mesh, ray)
	require.Len(t, hits, 1)

	normal := mesh.Normal(hits[0], reMath.NewPoint3(0.25, 0.25, 0))
	assert.InDelta(t, 0.0, normal.X, 1e-9)
	assert.InDelta(t, 0.0, normal.Y, 1e-9)
	assert.InDelta(t, 1.0, math.Abs(normal.Z), 1e-9)
}

func TestMeshValidation(t *testing.T) {
	_, err := NewTriangleMesh("empty", nil, nil, []uint32{0, 1, 2})
	assert.Equal(t, core.InvalidArgument(1), err)

	vertices := []reMath.Point3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}

	_, err = NewTriangleMesh("bad-indices", vertices, nil, []uint32{0, 1})
	assert.Equal(t, core.InvalidArgument(3), err)

	_, err = NewTriangleMesh("oob", vertices, nil, []uint32{0, 1, 7})
	assert.Equal(t, core.InvalidArgument(3), err)

	_, err = NewTriangleMesh("bad-normals", vertices,
		[]reMath.Vec3{{0, 0, 1}}, []uint32{0, 1, 2})
	assert.Equal(t, core.InvalidArgumentCombination(0), err)
}

func TestCubeMeshTraced(t *testing.T) {
	cube, err := CreateCubeMesh(2)
	require.NoError(t, err)

	// Offset from the face centers so the ray crosses exactly one
	// triangle per face instead of a shared diagonal.
	ray := reMath.NewRay(reMath.NewPoint3(0.2, 0.3, 5), reMath.NewVec3(0, 0, -1))
	hits := collectHits(t, cube, ray)

	// Front face at z = 1 and back face at z = -1.
	require.Len(t, hits, 2)
	assert.InDelta(t, 4.0, hits[0].Distance, 1e-9)
	assert.InDelta(t, 6.0, hits[1].Distance, 1e-9)
}

func TestGroupConcatenatesChildren(t *testing.T) {
	near, err := NewSphere(reMath.NewPoint3(0, 0, 0), 1)
	require.NoError(t, err)
	far, err := NewSphere(reMath.NewPoint3(0, 0, -10), 1)
	require.NoError(t, err)

	group := NewGroup(near, far)

	ray := reMath.NewRay(reMath.NewPoint3(0, 0, 5), reMath.NewVec3(0, 0, -1))
	hits := collectHits(t, group, ray)

	require.Len(t, hits, 4)
	assert.InDelta(t, 4.0, hits[0].Distance, 1e-9)
	assert.InDelta(t, 6.0, hits[1].Distance, 1e-9)
	assert.InDelta(t, 14.0, hits[2].Distance, 1e-9)
	assert.InDelta(t, 16.0, hits[3].Distance, 1e-9)
}

func TestGroupEmptyMiss(t *testing.T) {
	sphere, err := NewSphere(reMath.NewPoint3(100, 0, 0), 1)
	require.NoError(t, err)

	group := NewGroup(sphere)

	ray := reMath.NewRay(reMath.NewPoint3(0, 0, 5), reMath.NewVec3(0, 0, -1))
	assert.Empty(t, collectHits(t, group, ray))
}

func TestGroupChildErrorPropagates(t *testing.T) {
	boom := errors.New("child failed")
	group := NewGroup(failingShape{err: boom})

	tracer := trace.NewRayTracer()
	traceCb := func(_ any, tester *trace.HitTester, _ reMath.Ray) error {
		return tester.TestWorldGeometry(intersectShape, group, nil)
	}
	process := func(_ any, _ *trace.HitContext) error { return nil }

	ray := reMath.NewRay(reMath.NewPoint3(0, 0, 5), reMath.NewVec3(0, 0, -1))
	err := tracer.TraceClosestHit(ray, 0, traceCb, nil, process, nil)
	assert.ErrorIs(t, err, boom)
}

type failingShape struct {
	err error
}

func (f failingShape) Intersect(_ reMath.Ray, _ *trace.HitAllocator) (*trace.Hit, error) {
	return nil, f.err
}

func (f failingShape) Normal(_ *trace.HitContext, _ reMath.Point3) reMath.Vec3 {
	return reMath.Vec3Up
}

func (f failingShape) Bounds() reMath.Bounds3 {
	return reMath.NewBounds3()
}

func TestMeshTransformedBakesMatrix(t *testing.T) {
	mesh, err := NewTriangleMesh("tri",
		[]reMath.Point3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[]reMath.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		[]uint32{0, 1, 2})
	require.NoError(t, err)

	transform, err := reMath.NewTranslation(10, 0, 0)
	require.NoError(t, err)

	baked, err := mesh.Transformed(transform)
	require.NoError(t, err)

	assert.Equal(t, reMath.NewPoint3(10, 0, 0), baked.Vertices[0])
	assert.Equal(t, reMath.NewVec3(0, 0, 1), baked.Normals[0])
}
