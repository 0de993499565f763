package ship

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultBoxSize is the checkerboard brick size used when a group omits boxParams.size.
const DefaultBoxSize = 2

// BoxParams holds the checkerboard parameters shared by every grid of a group.
type BoxParams struct {
	Size    float64
	OffsetX float64
	OffsetY float64
	OffsetZ float64
}

// Grid is a rectangular lattice of unit cubes placed at Offset inside its group.
// CenterX is descriptive metadata carried through parsing and Marshal; layout
// does not read it, so a centred grid must say so through Offset.
type Grid struct {
	Name    string
	Offset  mgl64.Vec3
	CenterX bool
	SizeX   int
	SizeY   int
	SizeZ   int
}

// Volume is the number of cubes the grid expands into.
func (g *Grid) Volume() int {
	return g.SizeX * g.SizeY * g.SizeZ
}

// GridGroup groups grids that share a world position and checkerboard parameters,
// e.g. the repeated segments of a caterpillar.
type GridGroup struct {
	Name      string
	Position  mgl64.Vec3
	Grids     []Grid
	BoxParams BoxParams
}

// Info is the normalized ship description. It is built once per load and
// replaced wholesale on reload.
type Info struct {
	ShipName   string
	HangarSize string
	CargoSize  float64
	CanLand    bool
	Groups     []GridGroup
}

// GridIndexes locates a grid while iterating. GridIndex 0 marks the first grid of a group.
type GridIndexes struct {
	GroupIndex int
	GridIndex  int
}

// IterateGrids calls fn for every grid of every group, in input order.
func (s *Info) IterateGrids(fn func(grid *Grid, group *GridGroup, idx GridIndexes)) {
	for gi := range s.Groups {
		group := &s.Groups[gi]
		for i := range group.Grids {
			fn(&group.Grids[i], group, GridIndexes{GroupIndex: gi, GridIndex: i})
		}
	}
}

// GridCount returns the number of grids across all groups.
func (s *Info) GridCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Grids)
	}
	return n
}

// VoxelCount returns the number of cubes a layout pass will generate. The
// product is unchecked; voxel.Validate bounds it before layout.
func (s *Info) VoxelCount() int {
	n := 0
	s.IterateGrids(func(grid *Grid, _ *GridGroup, _ GridIndexes) {
		n += grid.Volume()
	})
	return n
}

// Summary is the overlay text shown on the main viewport.
func (s *Info) Summary() string {
	return fmt.Sprintf("ship name: %s | hangar size: %s | cargo size: %g | landable: %t",
		s.ShipName, s.HangarSize, s.CargoSize, s.CanLand)
}
