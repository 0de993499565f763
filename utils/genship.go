package utils

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/voxelsplace/shipvox/ship"
)

var hangarSizes = []string{"S", "M", "L", "XL"}

// generateShip builds a caterpillar-like ship: segments placed one after the
// other along Z, each with a few grids and its own checkerboard parameters.
func generateShip(name string, r *rand.Rand) *ship.Info {
	info := &ship.Info{
		ShipName:   name,
		HangarSize: hangarSizes[r.Intn(len(hangarSizes))],
		CargoSize:  float64(8 * (1 + r.Intn(128))),
		CanLand:    r.Intn(4) != 0,
	}
	z := 0.0
	segments := 1 + r.Intn(4)
	for s := 0; s < segments; s++ {
		group := ship.GridGroup{
			Name:     fmt.Sprintf("segment %d", s),
			Position: mgl64.Vec3{0, 0, z},
			BoxParams: ship.BoxParams{
				Size:    float64(1 + r.Intn(4)),
				OffsetX: float64(r.Intn(3) - 1),
				OffsetY: float64(r.Intn(3) - 1),
				OffsetZ: float64(r.Intn(3) - 1),
			},
		}
		depth := 0
		grids := 1 + r.Intn(3)
		for g := 0; g < grids; g++ {
			grid := ship.Grid{
				Name:  fmt.Sprintf("grid %d", g),
				SizeX: 1 + r.Intn(8),
				SizeY: 1 + r.Intn(6),
				SizeZ: 1 + r.Intn(6),
			}
			// stack grids on top of each other, centred on X through the offset
			grid.Offset = mgl64.Vec3{-float64(grid.SizeX / 2), float64(g * 2), 0}
			grid.CenterX = true
			depth = max(depth, grid.SizeZ)
			group.Grids = append(group.Grids, grid)
		}
		info.Groups = append(info.Groups, group)
		z += float64(depth + 1)
	}
	return info
}

// RunGenerateShips writes amount random ship descriptions named
// ship_0.json..ship_(amount-1).json to outDir, zstd compressed (.json.zst)
// when compress is set.
func RunGenerateShips(amount int, outDir string, compress bool) error {
	return RunGenerateShipsSeed(uint64(time.Now().UnixNano()), amount, outDir, compress)
}

// RunGenerateShipsSeed is RunGenerateShips with a fixed base seed.
func RunGenerateShipsSeed(baseSeed uint64, amount int, outDir string, compress bool) error {
	if amount < 0 {
		amount = 0
	}
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	for i := 0; i < amount; i++ {
		// derive a seed per file using a Weyl-like progression (unsigned math)
		const weyl = uint64(0x9e3779b97f4a7c15)
		seed := baseSeed ^ (uint64(i)+1)*weyl
		r := rand.New(rand.NewSource(int64(seed & 0x7fffffffffffffff)))

		info := generateShip(fmt.Sprintf("ship %d", i), r)
		data, err := ship.Marshal(info)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("ship_%d.json", i)
		if compress {
			if data, err = ship.Compress(data); err != nil {
				return err
			}
			name += ".zst"
		}
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
	}
	return nil
}
