package scene

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ray-engine/core"
	reMath "ray-engine/math"
	"ray-engine/sampler"
)

// Config is the YAML scene description consumed by the demo binary.
type Config struct {
	Width           int          `yaml:"width"`
	Height          int          `yaml:"height"`
	SamplesPerPixel uint32       `yaml:"samples_per_pixel"`
	Sampler         string       `yaml:"sampler"`
	MinimumDistance float64      `yaml:"minimum_distance"`
	Camera          CameraConfig `yaml:"camera"`
	Nodes           []NodeConfig `yaml:"nodes"`

	dir string
}

type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	Up       [3]float64 `yaml:"up"`
	FOV      float64    `yaml:"fov"`
}

type RotateConfig struct {
	Axis  [3]float64 `yaml:"axis"`
	Angle float64    `yaml:"angle"`
}

type SphereConfig struct {
	Center [3]float64 `yaml:"center"`
	Radius float64    `yaml:"radius"`
}

type NodeConfig struct {
	Name          string        `yaml:"name"`
	Sphere        *SphereConfig `yaml:"sphere"`
	Cube          *float64      `yaml:"cube"`
	Plane         *[2]float64   `yaml:"plane"`
	GLTF          string        `yaml:"gltf"`
	Translate     *[3]float64   `yaml:"translate"`
	Rotate        *RotateConfig `yaml:"rotate"`
	Scale         *[3]float64   `yaml:"scale"`
	Premultiplied bool          `yaml:"premultiplied"`
	Albedo        *[3]float32   `yaml:"albedo"`
}

// LoadConfig reads and validates a YAML scene description. Relative glTF
// paths resolve against the config file's directory.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	config := &Config{
		Width:           640,
		Height:          480,
		SamplesPerPixel: 16,
		Sampler:         "halton",
		MinimumDistance: 1e-3,
		Camera: CameraConfig{
			Position: [3]float64{0, 1, 5},
			Up:       [3]float64{0, 1, 0},
			FOV:      60,
		},
	}

	if err := yaml.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("config %q: image dimensions must be positive", path)
	}

	if config.SamplesPerPixel == 0 {
		return nil, fmt.Errorf("config %q: samples_per_pixel must be positive", path)
	}

	config.dir = filepath.Dir(path)

	return config, nil
}

// NewSequence builds the low-discrepancy sequence the config names.
func (c *Config) NewSequence() (sampler.Sequence, error) {
	switch c.Sampler {
	case "", "halton":
		return sampler.NewHaltonSequence(), nil
	case "sobol":
		return sampler.NewSobolSequence()
	default:
		return nil, fmt.Errorf("unknown sampler %q", c.Sampler)
	}
}

// BuildCamera constructs the camera for the configured image dimensions.
func (c *Config) BuildCamera() (*Camera, error) {
	aspect := float64(c.Width) / float64(c.Height)
	return NewCamera(
		reMath.NewPoint3(c.Camera.Position[0], c.Camera.Position[1], c.Camera.Position[2]),
		reMath.NewPoint3(c.Camera.Target[0], c.Camera.Target[1], c.Camera.Target[2]),
		reMath.NewVec3(c.Camera.Up[0], c.Camera.Up[1], c.Camera.Up[2]),
		c.Camera.FOV*math.Pi/180.0,
		aspect,
		0.1,
		1000.0,
	)
}

// BuildScene instantiates every configured node.
func (c *Config) BuildScene() (*Scene, error) {
	result := NewScene()

	for i, nodeConfig := range c.Nodes {
		shapes, err := nodeConfig.buildShapes(c.dir)
		if err != nil {
			return nil, fmt.Errorf("node %d (%s): %w", i, nodeConfig.Name, err)
		}

		transform, err := nodeConfig.buildTransform()
		if err != nil {
			return nil, fmt.Errorf("node %d (%s): %w", i, nodeConfig.Name, err)
		}

		premultiplied := nodeConfig.Premultiplied && transform != nil
		if premultiplied {
			for j, shape := range shapes {
				mesh, ok := shape.(*TriangleMesh)
				if !ok {
					return nil, fmt.Errorf("node %d (%s): only meshes can be premultiplied", i, nodeConfig.Name)
				}
				baked, err := mesh.Transformed(transform)
				if err != nil {
					return nil, fmt.Errorf("node %d (%s): %w", i, nodeConfig.Name, err)
				}
				shapes[j] = baked
			}
		}

		shape := shapes[0]
		if len(shapes) > 1 {
			shape = NewGroup(shapes...)
		}

		node := NewNode(nodeConfig.Name, shape)
		node.ModelToWorld = transform
		node.Premultiplied = premultiplied
		if nodeConfig.Albedo != nil {
			node.Albedo = core.Color{
				R: nodeConfig.Albedo[0],
				G: nodeConfig.Albedo[1],
				B: nodeConfig.Albedo[2],
				A: 1,
			}
		}

		result.AddNode(node)
	}

	return result, nil
}

func (n *NodeConfig) buildShapes(dir string) ([]Shape, error) {
	switch {
	case n.Sphere != nil:
		sphere, err := NewSphere(
			reMath.NewPoint3(n.Sphere.Center[0], n.Sphere.Center[1], n.Sphere.Center[2]),
			n.Sphere.Radius)
		if err != nil {
			return nil, fmt.Errorf("sphere: %w", err)
		}
		return []Shape{sphere}, nil

	case n.Cube != nil:
		cube, err := CreateCubeMesh(*n.Cube)
		if err != nil {
			return nil, fmt.Errorf("cube: %w", err)
		}
		return []Shape{cube}, nil

	case n.Plane != nil:
		plane, err := CreatePlaneMesh(n.Plane[0], n.Plane[1])
		if err != nil {
			return nil, fmt.Errorf("plane: %w", err)
		}
		return []Shape{plane}, nil

	case n.GLTF != "":
		path := n.GLTF
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		meshes, err := LoadGLTF(path)
		if err != nil {
			return nil, err
		}
		shapes := make([]Shape, len(meshes))
		for i, mesh := range meshes {
			shapes[i] = mesh
		}
		return shapes, nil

	default:
		return nil, fmt.Errorf("no shape specified")
	}
}

func (n *NodeConfig) buildTransform() (*reMath.Matrix, error) {
	var transform *reMath.Matrix

	if n.Scale != nil {
		scale, err := reMath.NewScale(n.Scale[0], n.Scale[1], n.Scale[2])
		if err != nil {
			return nil, fmt.Errorf("scale: %w", err)
		}
		transform = scale
	}

	if n.Rotate != nil {
		rotate, err := reMath.NewRotation(
			n.Rotate.Angle*math.Pi/180.0,
			n.Rotate.Axis[0],
			n.Rotate.Axis[1],
			n.Rotate.Axis[2])
		if err != nil {
			return nil, fmt.Errorf("rotate: %w", err)
		}
		transform = reMath.MatrixProduct(rotate, transform)
	}

	if n.Translate != nil {
		translate, err := reMath.NewTranslation(
			n.Translate[0],
			n.Translate[1],
			n.Translate[2])
		if err != nil {
			return nil, fmt.Errorf("translate: %w", err)
		}
		transform = reMath.MatrixProduct(translate, transform)
	}

	return transform, nil
}
