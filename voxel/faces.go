package voxel

// Face bits, one per axis direction.
const (
	FacePosX = 1 << iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

type dirSpec struct {
	face   int
	normal [3]int
}

var directions = []dirSpec{
	{FacePosX, [3]int{1, 0, 0}},
	{FaceNegX, [3]int{-1, 0, 0}},
	{FacePosY, [3]int{0, 1, 0}},
	{FaceNegY, [3]int{0, -1, 0}},
	{FacePosZ, [3]int{0, 0, 1}},
	{FaceNegZ, [3]int{0, 0, -1}},
}

// occupied reports whether lattice position p lies inside a full grid of the given dims.
func occupied(dims, p [3]int) bool {
	for i := 0; i < 3; i++ {
		if p[i] < 0 || p[i] >= dims[i] {
			return false
		}
	}
	return true
}

// ExposedFaces returns the face bits of placement i that have no neighbour in
// the same grid. Grids are always completely filled, so only cubes on the
// grid's hull have exposed faces.
func (e *Engine) ExposedFaces(i int) int {
	p := e.placements[i]
	faces := 0
	for _, dir := range directions {
		adj := [3]int{p.Local[0] + dir.normal[0], p.Local[1] + dir.normal[1], p.Local[2] + dir.normal[2]}
		if !occupied(p.dims, adj) {
			faces |= dir.face
		}
	}
	return faces
}

// Exposed reports whether any face of placement i can be seen.
func (e *Engine) Exposed(i int) bool {
	return e.ExposedFaces(i) != 0
}

// ExposedCount returns how many placements have at least one exposed face.
func (e *Engine) ExposedCount() int {
	n := 0
	for i := range e.placements {
		if e.Exposed(i) {
			n++
		}
	}
	return n
}
