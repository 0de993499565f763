// Package scene holds the node tree built from a layout pass. A Scene is the
// frame context shared by every viewport: the coordinator writes it between
// frames and renderers only read it.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/voxelsplace/shipvox/voxel"
)

// DefaultCubeSize is the edge length of a rendered cube, leaving a small gap
// between neighbours.
const DefaultCubeSize = 0.9

// Mesh is one rendered cube.
type Mesh struct {
	Geometry *Geometry
	Material int
	Faces    int // exposed face bits, see voxel.FacePosX
}

// Exposed reports whether any face of the mesh is visible.
func (m *Mesh) Exposed() bool { return m.Faces != 0 }

// Node is a transform in the tree. Translations accumulate from the root.
type Node struct {
	Name        string
	Translation mgl64.Vec3
	Children    []*Node
	Mesh        *Mesh
}

// Add appends child nodes.
func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Clear drops every child.
func (n *Node) Clear() {
	n.Children = nil
}

// Scene owns the grid collection root, the shared box geometry and the materials.
type Scene struct {
	Root      *Node
	Box       *Geometry
	Materials []Material

	meshes int
}

// New returns an empty scene. A nil materials slice selects DefaultMaterials.
func New(cubeSize float64, materials []Material) *Scene {
	if cubeSize <= 0 {
		cubeSize = DefaultCubeSize
	}
	if len(materials) == 0 {
		materials = DefaultMaterials()
	}
	return &Scene{
		Root:      &Node{Name: "grid collection"},
		Box:       NewBox(cubeSize),
		Materials: materials,
	}
}

// Build replaces the tree with the engine's placements: one node per layout
// pass and grid group, one per grid and one mesh per cube. The root carries
// the engine's centering translation. The new tree is swapped in only once it
// is complete.
func (s *Scene) Build(e *voxel.Engine) {
	root := &Node{Name: s.Root.Name, Translation: e.Translation()}

	var group, grid *Node
	prev := voxel.Placement{Pass: -1}
	placements := e.Placements()
	for i := range placements {
		p := &placements[i]
		if group == nil || p.Pass != prev.Pass || p.Group != prev.Group {
			group = &Node{Name: fmt.Sprintf("group %d.%d", p.Pass, p.Group), Translation: p.Origin}
			root.Add(group)
			grid = nil
		}
		if grid == nil || p.Grid != prev.Grid {
			local := mgl64.Vec3{float64(p.Local[0]), float64(p.Local[1]), float64(p.Local[2])}
			grid = &Node{
				Name:        fmt.Sprintf("grid %d.%d.%d", p.Pass, p.Group, p.Grid),
				Translation: p.World.Sub(local).Sub(p.Origin),
			}
			group.Add(grid)
		}
		grid.Add(&Node{
			Translation: mgl64.Vec3{float64(p.Local[0]), float64(p.Local[1]), float64(p.Local[2])},
			Mesh: &Mesh{
				Geometry: s.Box,
				Material: p.Material,
				Faces:    e.ExposedFaces(i),
			},
		})
		prev = *p
	}

	s.Root = root
	s.meshes = len(placements)
}

// Clear empties the tree.
func (s *Scene) Clear() {
	s.Root = &Node{Name: s.Root.Name}
	s.meshes = 0
}

// MeshCount returns the number of meshes in the tree.
func (s *Scene) MeshCount() int {
	return s.meshes
}

// Material returns material i, falling back to the first one.
func (s *Scene) Material(i int) Material {
	if i < 0 || i >= len(s.Materials) {
		return s.Materials[0]
	}
	return s.Materials[i]
}

// Walk visits every mesh depth first with its accumulated world position.
func (s *Scene) Walk(fn func(world mgl64.Vec3, m *Mesh)) {
	walk(s.Root, mgl64.Vec3{}, fn)
}

func walk(n *Node, parent mgl64.Vec3, fn func(world mgl64.Vec3, m *Mesh)) {
	pos := parent.Add(n.Translation)
	if n.Mesh != nil {
		fn(pos, n.Mesh)
	}
	for _, c := range n.Children {
		walk(c, pos, fn)
	}
}
