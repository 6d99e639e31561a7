package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reMath "ray-engine/math"
	"ray-engine/sampler"
)

func testCamera(t *testing.T) *Camera {
	t.Helper()

	camera, err := NewCamera(
		reMath.NewPoint3(0, 0, 5),
		reMath.NewPoint3(0, 0, 0),
		reMath.Vec3Up,
		math.Pi/2,
		1.0,
		0.1,
		100.0,
	)
	require.NoError(t, err)
	return camera
}

func centerSample() sampler.Sample {
	return sampler.Sample{
		PixelU:  0.5,
		PixelV:  0.5,
		DPixelU: 1.0 / 64.0,
		DPixelV: 1.0 / 64.0,
	}
}

func TestCameraCenterRayPointsAtTarget(t *testing.T) {
	camera := testCamera(t)

	differential := camera.GenerateRay(centerSample())

	origin := differential.Ray.Origin
	assert.InDelta(t, 0.0, origin.X, 1e-9)
	assert.InDelta(t, 0.0, origin.Y, 1e-9)
	assert.InDelta(t, 5.0, origin.Z, 1e-9)

	direction := differential.Ray.Direction.Normalize()
	assert.InDelta(t, 0.0, direction.X, 1e-9)
	assert.InDelta(t, 0.0, direction.Y, 1e-9)
	assert.InDelta(t, -1.0, direction.Z, 1e-9)
}

func TestCameraDifferentialsDiverge(t *testing.T) {
	camera := testCamera(t)

	differential := camera.GenerateRay(centerSample())
	require.True(t, differential.HasDifferentials)

	primary := differential.Ray.Direction.Normalize()
	rx := differential.RX.Direction.Normalize()
	ry := differential.RY.Direction.Normalize()

	// The x offset moves the direction in camera right, the y offset in
	// camera down (film v grows downward).
	assert.Greater(t, rx.X, primary.X)
	assert.InDelta(t, rx.Y, primary.Y, 1e-12)
	assert.Less(t, ry.Y, primary.Y)
}

func TestCameraEdgeRaysSpanFOV(t *testing.T) {
	camera := testCamera(t)

	left := camera.GenerateRay(sampler.Sample{PixelU: 0.0, PixelV: 0.5})
	right := camera.GenerateRay(sampler.Sample{PixelU: 1.0, PixelV: 0.5})

	// 90 degree field of view: edge directions at 45 degrees off axis.
	leftDirection := left.Ray.Direction.Normalize()
	rightDirection := right.Ray.Direction.Normalize()

	assert.InDelta(t, -math.Sqrt(0.5), leftDirection.X, 1e-6)
	assert.InDelta(t, math.Sqrt(0.5), rightDirection.X, 1e-6)
}

func TestCameraValidation(t *testing.T) {
	_, err := NewCamera(
		reMath.NewPoint3(math.NaN(), 0, 0),
		reMath.NewPoint3(0, 0, 0),
		reMath.Vec3Up,
		1, 1, 0.1, 100)
	assert.Error(t, err)

	_, err = NewCamera(
		reMath.NewPoint3(0, 0, 5),
		reMath.NewPoint3(0, 0, 0),
		reMath.Vec3Up,
		0, 1, 0.1, 100)
	assert.Error(t, err)

	_, err = NewCamera(
		reMath.NewPoint3(0, 0, 5),
		reMath.NewPoint3(0, 0, 0),
		reMath.Vec3Up,
		1, -1, 0.1, 100)
	assert.Error(t, err)
}

func TestCameraOrbitKeepsDistance(t *testing.T) {
	camera := testCamera(t)

	before := camera.Position.Sub(camera.Target).Length()
	require.NoError(t, camera.Orbit(reMath.Vec3Up, math.Pi/2))
	after := camera.Position.Sub(camera.Target).Length()

	assert.InDelta(t, before, after, 1e-9)
	assert.InDelta(t, 5.0, camera.Position.X, 1e-9)
	assert.InDelta(t, 0.0, camera.Position.Z, 1e-6)
}
