package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reMath "ray-engine/math"
	"ray-engine/trace"
)

func TestSceneTraceFindsClosestNode(t *testing.T) {
	near, err := NewSphere(reMath.NewPoint3(0, 0, 0), 1)
	require.NoError(t, err)
	far, err := NewSphere(reMath.NewPoint3(0, 0, -10), 1)
	require.NoError(t, err)

	sceneGraph := NewScene()
	nearNode := NewNode("near", near)
	farNode := NewNode("far", far)
	sceneGraph.AddNode(farNode)
	sceneGraph.AddNode(nearNode)

	tracer := trace.NewRayTracer()

	var hitNode *Node
	process := func(_ any, hit *trace.HitContext) error {
		hitNode = hit.Data.(*Node)
		return nil
	}

	ray := reMath.NewRay(reMath.NewPoint3(0, 0, 5), reMath.NewVec3(0, 0, -1))
	require.NoError(t, tracer.TraceClosestHit(ray, 0, sceneGraph.Trace, nil, process, nil))

	assert.Same(t, nearNode, hitNode)
	assert.Equal(t, 4.0, tracer.FarthestHitAllowed())
}

func TestSceneTransformedNode(t *testing.T) {
	sphere, err := NewSphere(reMath.NewPoint3(0, 0, 0), 1)
	require.NoError(t, err)

	transform, err := reMath.NewTranslation(0, 0, -10)
	require.NoError(t, err)

	sceneGraph := NewScene()
	node := NewNode("moved", sphere)
	node.ModelToWorld = transform
	sceneGraph.AddNode(node)

	tracer := trace.NewRayTracer()

	var model, world reMath.Point3
	process := func(_ any, _ *trace.HitContext, _ *reMath.Matrix, modelHitPoint, worldHitPoint reMath.Point3) error {
		model = modelHitPoint
		world = worldHitPoint
		return nil
	}

	ray := reMath.NewRay(reMath.NewPoint3(0, 0, 5), reMath.NewVec3(0, 0, -1))
	require.NoError(t, tracer.TraceClosestHitWithCoordinates(ray, 0,
		sceneGraph.Trace, nil, process, nil))

	// World hit on the near side of the moved sphere, model hit on the
	// unit sphere.
	assert.InDelta(t, -9.0, world.Z, 1e-9)
	assert.InDelta(t, 1.0, model.Z, 1e-9)
}

func TestSceneBoundsPruneDoesNotChangeResult(t *testing.T) {
	// A shape far off to the side must not affect the hit on axis even
	// though both are dispatched through the same traversal.
	center, err := NewSphere(reMath.NewPoint3(0, 0, 0), 1)
	require.NoError(t, err)
	side, err := NewSphere(reMath.NewPoint3(500, 0, 0), 1)
	require.NoError(t, err)

	sceneGraph := NewScene()
	sceneGraph.AddNode(NewNode("center", center))
	sceneGraph.AddNode(NewNode("side", side))

	tracer := trace.NewRayTracer()
	process := func(_ any, _ *trace.HitContext) error { return nil }

	ray := reMath.NewRay(reMath.NewPoint3(0, 0, 5), reMath.NewVec3(0, 0, -1))
	require.NoError(t, tracer.TraceClosestHit(ray, 0, sceneGraph.Trace, nil, process, nil))

	assert.Equal(t, 4.0, tracer.FarthestHitAllowed())
}

func TestNodeWorldBounds(t *testing.T) {
	sphere, err := NewSphere(reMath.NewPoint3(0, 0, 0), 1)
	require.NoError(t, err)

	transform, err := reMath.NewTranslation(5, 0, 0)
	require.NoError(t, err)

	node := NewNode("moved", sphere)
	node.ModelToWorld = transform

	bounds := node.WorldBounds()
	assert.Equal(t, reMath.NewPoint3(4, -1, -1), bounds.Min)
	assert.Equal(t, reMath.NewPoint3(6, 1, 1), bounds.Max)
}

func TestNodeWorldNormal(t *testing.T) {
	sphere, err := NewSphere(reMath.NewPoint3(0, 0, 0), 1)
	require.NoError(t, err)

	// Non-uniform scale bends normals by the inverse transpose.
	transform, err := reMath.NewScale(2, 1, 1)
	require.NoError(t, err)

	node := NewNode("scaled", sphere)
	node.ModelToWorld = transform

	normal := node.WorldNormal(reMath.NewVec3(1, 1, 0).Normalize())
	assert.InDelta(t, normal.Length(), 1.0, 1e-9)
	assert.Less(t, normal.X, normal.Y)
}
