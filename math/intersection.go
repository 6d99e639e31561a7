package math

// NormalCoordinateSpace names the coordinate space a surface normal was
// reported in.
type NormalCoordinateSpace int

const (
	NormalModelSpace NormalCoordinateSpace = iota
	NormalWorldSpace
)

// Intersection holds the model and world coordinates of a hit point and, if
// the incoming rays carried differentials, the screen-space derivatives of
// the hit point in both spaces.
type Intersection struct {
	ModelHitPoint  Point3
	WorldHitPoint  Point3
	ModelDpDx      Vec3
	ModelDpDy      Vec3
	WorldDpDx      Vec3
	WorldDpDy      Vec3
	HasDerivatives bool
}

// NewIntersection reconstructs the hit point from matching model and world
// ray differentials, a surface normal, and the hit distance. Derivatives are
// found by intersecting the offset rays with the tangent plane of the hit;
// when the normal is perpendicular to an offset direction the derivatives
// are suppressed rather than left infinite.
func NewIntersection(
	modelRay RayDifferential,
	worldRay RayDifferential,
	normal Vec3,
	space NormalCoordinateSpace,
	distance float64,
) Intersection {
	var result Intersection
	result.ModelHitPoint = modelRay.Ray.Endpoint(distance)
	result.WorldHitPoint = worldRay.Ray.Endpoint(distance)

	if !modelRay.HasDifferentials {
		return result
	}

	var differential *RayDifferential
	var hitPoint Point3
	if space == NormalModelSpace {
		differential = &modelRay
		hitPoint = result.ModelHitPoint
	} else {
		differential = &worldRay
		hitPoint = result.WorldHitPoint
	}

	planeDistance := normal.Dot(hitPoint.Vec3())

	tx := -(normal.Dot(differential.RX.Origin.Vec3()) - planeDistance) /
		normal.Dot(differential.RX.Direction)

	if !isFinite(tx) {
		return result
	}

	ty := -(normal.Dot(differential.RY.Origin.Vec3()) - planeDistance) /
		normal.Dot(differential.RY.Direction)

	if !isFinite(ty) {
		return result
	}

	result.ModelDpDx = modelRay.RX.Endpoint(tx).Sub(result.ModelHitPoint)
	result.ModelDpDy = modelRay.RY.Endpoint(ty).Sub(result.ModelHitPoint)
	result.WorldDpDx = worldRay.RX.Endpoint(tx).Sub(result.WorldHitPoint)
	result.WorldDpDy = worldRay.RY.Endpoint(ty).Sub(result.WorldHitPoint)
	result.HasDerivatives = true

	return result
}
