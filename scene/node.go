package scene

import (
	"ray-engine/core"
	reMath "ray-engine/math"
)

// Node places a shape in the world. The transform may be nil for shapes
// defined directly in world coordinates; Premultiplied marks shapes whose
// transform is already baked into their geometric data but still needed for
// coordinate reconstruction.
type Node struct {
	Name          string
	Shape         Shape
	ModelToWorld  *reMath.Matrix
	Premultiplied bool
	Albedo        core.Color
}

func NewNode(name string, shape Shape) *Node {
	return &Node{
		Name:   name,
		Shape:  shape,
		Albedo: core.ColorWhite,
	}
}

// WorldBounds returns the node's bounding box in world coordinates by
// transforming the corners of the model-space box.
func (n *Node) WorldBounds() reMath.Bounds3 {
	modelBounds := n.Shape.Bounds()
	if n.ModelToWorld == nil || n.Premultiplied {
		return modelBounds
	}

	bounds := reMath.NewBounds3()
	for i := 0; i < 8; i++ {
		corner := reMath.Point3{X: modelBounds.Min.X, Y: modelBounds.Min.Y, Z: modelBounds.Min.Z}
		if i&1 != 0 {
			corner.X = modelBounds.Max.X
		}
		if i&2 != 0 {
			corner.Y = modelBounds.Max.Y
		}
		if i&4 != 0 {
			corner.Z = modelBounds.Max.Z
		}
		bounds = bounds.Extend(n.ModelToWorld.MulPoint(corner))
	}

	return bounds
}

// WorldNormal maps a model-space normal through the inverse transpose of
// the node's transform.
func (n *Node) WorldNormal(modelNormal reMath.Vec3) reMath.Vec3 {
	if n.ModelToWorld == nil {
		return modelNormal
	}
	return n.ModelToWorld.InverseMulVectorTransposed(modelNormal).Normalize()
}
