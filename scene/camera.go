package scene

import (
	"math"

	"ray-engine/core"
	reMath "ray-engine/math"
	"ray-engine/sampler"
)

// Camera is a pinhole camera. Rays are generated by unprojecting film
// points through the inverse of a perspective frustum and mapping them to
// world space with the camera-to-world transform.
type Camera struct {
	Position reMath.Point3
	Target   reMath.Point3
	Up       reMath.Vec3
	FOV      float64
	Aspect   float64
	Near     float64
	Far      float64

	projection    *reMath.Matrix
	cameraToWorld *reMath.Matrix
}

func NewCamera(
	position reMath.Point3,
	target reMath.Point3,
	up reMath.Vec3,
	fov float64,
	aspect float64,
	near float64,
	far float64,
) (*Camera, error) {
	if !position.Validate() {
		return nil, core.InvalidArgument(0)
	}

	if !target.Validate() {
		return nil, core.InvalidArgument(1)
	}

	if !up.Validate() {
		return nil, core.InvalidArgument(2)
	}

	if !(fov > 0 && fov < math.Pi) {
		return nil, core.InvalidArgument(3)
	}

	if !(aspect > 0) || math.IsInf(aspect, 0) || math.IsNaN(aspect) {
		return nil, core.InvalidArgument(4)
	}

	camera := &Camera{
		Position: position,
		Target:   target,
		Up:       up,
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}

	if err := camera.updateMatrices(); err != nil {
		return nil, err
	}

	return camera, nil
}

func (c *Camera) updateMatrices() error {
	halfHeight := c.Near * math.Tan(c.FOV*0.5)
	halfWidth := halfHeight * c.Aspect

	projection, err := reMath.NewFrustum(-halfWidth,
		halfWidth,
		-halfHeight,
		halfHeight,
		c.Near,
		c.Far)

	if err != nil {
		return err
	}

	// Right-handed look-at basis; the camera looks down its negative z.
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward)

	cameraToWorld, err := reMath.NewMatrix([4][4]float64{
		{right.X, up.X, -forward.X, c.Position.X},
		{right.Y, up.Y, -forward.Y, c.Position.Y},
		{right.Z, up.Z, -forward.Z, c.Position.Z},
		{0, 0, 0, 1},
	})

	if err != nil {
		return err
	}

	c.projection = projection
	c.cameraToWorld = cameraToWorld

	return nil
}

// Orbit rotates the camera position about the target around the given axis
// and rebuilds the cached transforms.
func (c *Camera) Orbit(axis reMath.Vec3, angle float64) error {
	rotation := reMath.QuaternionFromAxisAngle(axis, angle)
	offset := c.Position.Sub(c.Target)
	c.Position = c.Target.Add(rotation.RotateVector(offset))
	return c.updateMatrices()
}

// unproject maps a film point in [0,1)^2 to a camera-space point on the
// near plane.
func (c *Camera) unproject(u, v float64) reMath.Point3 {
	ndc := reMath.NewPoint3(2.0*u-1.0, 1.0-2.0*v, -1.0)
	return c.projection.InverseMulPoint(ndc)
}

// GenerateRay builds the world-space ray differential for one camera
// sample. The offset rays sit one pixel sub-area away on the film plane.
func (c *Camera) GenerateRay(sample sampler.Sample) reMath.RayDifferential {
	origin := reMath.NewPoint3(0, 0, 0)

	primary := reMath.NewRay(origin, c.unproject(sample.PixelU, sample.PixelV).Sub(origin))
	rx := reMath.NewRay(origin, c.unproject(sample.PixelU+sample.DPixelU, sample.PixelV).Sub(origin))
	ry := reMath.NewRay(origin, c.unproject(sample.PixelU, sample.PixelV+sample.DPixelV).Sub(origin))

	differential := reMath.NewRayDifferential(primary, rx, ry)

	return c.cameraToWorld.MulRayDifferential(differential)
}
