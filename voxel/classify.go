package voxel

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrConfiguration reports parameters that would make layout or framing produce
// garbage (zero brick size, empty grid dimensions, unusable camera setups).
var ErrConfiguration = errors.New("invalid configuration")

// Material indexes produced by Classify.
const (
	MaterialBase   = 0
	MaterialAccent = 1
	MaterialCount  = 2
)

// LatticePosition returns the lattice coordinate of cube i (0-based) in a grid that is
// sizeX wide and sizeY tall. X increments fastest, then Y, then Z; X uses the
// "box number mod sizeX minus one" walk with the wrap to sizeX-1.
func LatticePosition(i, sizeX, sizeY int) [3]int {
	boxNumber := i + 1
	x := boxNumber%sizeX - 1
	if x < 0 {
		x = sizeX - 1
	}
	rowsCompleted := i / sizeX
	return [3]int{
		x,
		rowsCompleted % sizeY,
		i / (sizeX * sizeY),
	}
}

// Classify picks the material of the cube at pos for a checkerboard with bricks
// cubeSize voxels wide. The Z brick index is folded into the Y comparison so the
// pattern shifts from one Z layer of bricks to the next.
func Classify(cubeSize float64, pos [3]int, offset mgl64.Vec3) (int, error) {
	if cubeSize == 0 || math.IsNaN(cubeSize) || math.IsInf(cubeSize, 0) {
		return 0, fmt.Errorf("%w: checkerboard size %v", ErrConfiguration, cubeSize)
	}
	tx := floorDiv(float64(pos[0])+offset[0], cubeSize)
	ty := floorDiv(float64(pos[1])+offset[1], cubeSize)
	tz := floorDiv(float64(pos[2])+offset[2], cubeSize)

	zMod := floorMod(tz, cubeSize)
	xMod := floorMod(tx, cubeSize)
	yMod := floorMod(ty+zMod, cubeSize)
	if xMod == yMod {
		return MaterialAccent, nil
	}
	return MaterialBase, nil
}

func floorDiv(a, b float64) float64 {
	return math.Floor(a / b)
}

// floorMod takes the sign of the divisor, so -1 mod 2 is 1.
func floorMod(a, b float64) float64 {
	return a - b*math.Floor(a/b)
}
