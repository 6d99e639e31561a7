package scene

import (
	reMath "ray-engine/math"
	"ray-engine/trace"
)

// Scene is a flat list of placed shapes. It implements the tracing core's
// scene traversal contract: every node is dispatched through the tester in
// the coordinate regime its placement calls for, with a world-space
// bounding-box reject against the tightening distance bound in between.
type Scene struct {
	Nodes []*Node
}

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) AddNode(node *Node) {
	s.Nodes = append(s.Nodes, node)
}

// Trace matches trace.TraceCallback with the scene itself as context.
func (s *Scene) Trace(_ any, tester *trace.HitTester, ray reMath.Ray) error {
	limit := tester.FarthestHitAllowed()

	for _, node := range s.Nodes {
		if !node.WorldBounds().IntersectRay(ray, limit) {
			continue
		}

		var err error
		limit, err = tester.TestGeometryWithLimit(intersectShape,
			node.Shape,
			node,
			node.ModelToWorld,
			node.Premultiplied)

		if err != nil {
			return err
		}
	}

	return nil
}
