package scene

import "github.com/go-gl/mathgl/mgl64"

// Geometry is an axis-aligned box primitive centred on its node.
type Geometry struct {
	Size    float64
	corners [8]mgl64.Vec3
}

// BoxEdges lists the corner index pairs of the twelve box edges.
var BoxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// NewBox returns a cube with the given edge length.
func NewBox(size float64) *Geometry {
	g := &Geometry{Size: size}
	h := size / 2
	for i := range g.corners {
		g.corners[i] = mgl64.Vec3{sign(i&1, h), sign(i&2, h), sign(i&4, h)}
	}
	return g
}

func sign(bit int, h float64) float64 {
	if bit != 0 {
		return h
	}
	return -h
}

// Corners returns the eight corners relative to the box centre. Bit 0 of the
// index selects +X, bit 1 +Y, bit 2 +Z.
func (g *Geometry) Corners() [8]mgl64.Vec3 {
	return g.corners
}
