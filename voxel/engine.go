package voxel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/voxelsplace/shipvox/ship"
)

// Placement is one unit cube generated by a layout pass.
type Placement struct {
	Pass     int        // layout call since the last Clear that produced it
	Group    int        // index of the grid group in the ship description
	Grid     int        // index of the grid inside its group
	Local    [3]int     // lattice coordinate inside the grid
	Origin   mgl64.Vec3 // group position
	World    mgl64.Vec3 // group position + grid offset + Local, before centering
	Material int

	dims [3]int
}

// MaxVoxels caps the cubes a single ship description may expand into.
const MaxVoxels = 1 << 24

// Options tunes a layout engine.
type Options struct {
	// CubeExtent is the rendered edge length of a cube. Half of it pads the
	// bounding box; zero keeps the box tight around the lattice positions.
	CubeExtent float64
}

// Engine expands ship descriptions into cube placements and keeps the
// bounding box and centering translation of everything laid out so far.
// Layout appends; call Clear first for a fresh rebuild.
type Engine struct {
	opts        Options
	passes      int
	placements  []Placement
	raw         Box
	bounds      Box
	translation mgl64.Vec3
}

// NewEngine returns an empty engine.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:   opts,
		raw:    EmptyBox(),
		bounds: EmptyBox(),
	}
}

// Clear drops every placement and resets bounds and translation.
func (e *Engine) Clear() {
	e.placements = e.placements[:0]
	e.passes = 0
	e.raw = EmptyBox()
	e.bounds = EmptyBox()
	e.translation = mgl64.Vec3{}
}

// Validate checks a ship description against the layout preconditions
// without generating anything. Grid volumes are summed with overflow checks
// and the total is capped at MaxVoxels.
func Validate(info *ship.Info) error {
	total := 0
	for gi, group := range info.Groups {
		size := group.BoxParams.Size
		if size == 0 || math.IsNaN(size) || math.IsInf(size, 0) {
			return fmt.Errorf("%w: group %d (%s): boxParams.size %v", ErrConfiguration, gi, group.Name, size)
		}
		for i, g := range group.Grids {
			if g.SizeX < 1 || g.SizeY < 1 || g.SizeZ < 1 {
				return fmt.Errorf("%w: group %d grid %d (%s): size %dx%dx%d",
					ErrConfiguration, gi, i, g.Name, g.SizeX, g.SizeY, g.SizeZ)
			}
			n, ok := volume(g.SizeX, g.SizeY, g.SizeZ)
			if !ok || n > MaxVoxels-total {
				return fmt.Errorf("%w: group %d grid %d (%s): more than %d voxels",
					ErrConfiguration, gi, i, g.Name, MaxVoxels)
			}
			total += n
		}
	}
	return nil
}

// volume multiplies positive dimensions, false once the product exceeds MaxVoxels.
func volume(dims ...int) (int, bool) {
	n := 1
	for _, d := range dims {
		if d > MaxVoxels/n {
			return 0, false
		}
		n *= d
	}
	return n, true
}

// Layout appends the cubes of every grid of info, then recomputes the bounding
// box and recenters. Nothing is appended when info fails validation.
func (e *Engine) Layout(info *ship.Info) error {
	if err := Validate(info); err != nil {
		return err
	}

	out := make([]Placement, 0, info.VoxelCount())
	var err error
	info.IterateGrids(func(grid *ship.Grid, group *ship.GridGroup, idx ship.GridIndexes) {
		if err != nil {
			return
		}
		origin := group.Position.Add(grid.Offset)
		offset := mgl64.Vec3{group.BoxParams.OffsetX, group.BoxParams.OffsetY, group.BoxParams.OffsetZ}
		dims := [3]int{grid.SizeX, grid.SizeY, grid.SizeZ}

		for i, n := 0, grid.Volume(); i < n; i++ {
			local := LatticePosition(i, grid.SizeX, grid.SizeY)
			material, cerr := Classify(group.BoxParams.Size, local, offset)
			if cerr != nil {
				err = cerr
				return
			}
			out = append(out, Placement{
				Pass:     e.passes,
				Group:    idx.GroupIndex,
				Grid:     idx.GridIndex,
				Local:    local,
				Origin:   group.Position,
				World:    origin.Add(mgl64.Vec3{float64(local[0]), float64(local[1]), float64(local[2])}),
				Material: material,
				dims:     dims,
			})
		}
	})
	if err != nil {
		return err
	}

	e.placements = append(e.placements, out...)
	e.passes++
	for i := range out {
		e.raw = e.raw.Expand(out[i].World)
	}
	e.Center()
	return nil
}

// Center recomputes the root translation that shifts the collection towards the
// origin: the negative half size, rounded to the nearest integer, plus half a
// voxel. It depends only on the box size, so calling it repeatedly is stable.
func (e *Engine) Center() mgl64.Vec3 {
	if e.raw.IsEmpty() {
		e.translation = mgl64.Vec3{}
		e.bounds = EmptyBox()
		return e.translation
	}
	box := e.raw.Pad(e.opts.CubeExtent / 2)
	size := box.Size()
	for i := 0; i < 3; i++ {
		e.translation[i] = roundHalfUp(-size[i]/2) + 0.5
	}
	e.bounds = box.Translate(e.translation)
	return e.translation
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Placements returns the cubes laid out so far. The slice must not be modified.
func (e *Engine) Placements() []Placement {
	return e.placements
}

// Passes returns how many successful Layout calls happened since the last Clear.
func (e *Engine) Passes() int {
	return e.passes
}

// Len returns the number of placements.
func (e *Engine) Len() int {
	return len(e.placements)
}

// Bounds returns the bounding box in the centered frame.
func (e *Engine) Bounds() Box {
	return e.bounds
}

// Translation returns the root translation applied by the last Center call.
func (e *Engine) Translation() mgl64.Vec3 {
	return e.translation
}

// CenteredPosition returns the world position of placement i after centering.
func (e *Engine) CenteredPosition(i int) mgl64.Vec3 {
	return e.placements[i].World.Add(e.translation)
}
