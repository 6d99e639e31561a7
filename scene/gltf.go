package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	reMath "ray-engine/math"
)

// LoadGLTF opens a .glb or .gltf file and returns one triangle mesh per
// mesh primitive. Materials, textures, and the node hierarchy are ignored;
// placement is the caller's concern through scene nodes.
func LoadGLTF(path string) ([]*TriangleMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	var meshes []*TriangleMesh
	for _, gm := range doc.Meshes {
		for primIdx, prim := range gm.Primitives {
			mesh, err := loadGLTFPrimitive(doc, gm.Name, primIdx, prim)
			if err != nil {
				return nil, fmt.Errorf("gltf mesh %q primitive %d: %w", gm.Name, primIdx, err)
			}
			meshes = append(meshes, mesh)
		}
	}

	if len(meshes) == 0 {
		return nil, fmt.Errorf("no geometry found in %q", path)
	}

	return meshes, nil
}

// loadGLTFPrimitive converts one glTF mesh primitive into a TriangleMesh.
func loadGLTFPrimitive(
	doc *gltf.Document,
	meshName string,
	primIdx int,
	prim *gltf.Primitive,
) (*TriangleMesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var rawNormals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		rawNormals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}

	vertices := make([]reMath.Point3, len(positions))
	for i, p := range positions {
		vertices[i] = reMath.NewPoint3(float64(p[0]), float64(p[1]), float64(p[2]))
	}

	var normals []reMath.Vec3
	if len(rawNormals) == len(positions) {
		normals = make([]reMath.Vec3, len(rawNormals))
		for i, n := range rawNormals {
			normals[i] = reMath.NewVec3(float64(n[0]), float64(n[1]), float64(n[2]))
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	return NewTriangleMesh(name, vertices, normals, indices)
}
