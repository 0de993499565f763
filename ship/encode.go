package ship

import (
	"encoding/json"

	"github.com/klauspost/compress/zstd"
)

// Marshal writes info in the flat JSON shape Parse reads.
func Marshal(info *Info) ([]byte, error) {
	canLand := info.CanLand
	raw := jsonShipInfo{
		ShipName:   info.ShipName,
		HangarSize: info.HangarSize,
		CargoSize:  info.CargoSize,
		CanLand:    &canLand,
		GridInfo:   make([]jsonGridGroup, 0, len(info.Groups)),
	}
	for _, g := range info.Groups {
		size := g.BoxParams.Size
		group := jsonGridGroup{
			Name:      g.Name,
			PositionX: g.Position[0],
			PositionY: g.Position[1],
			PositionZ: g.Position[2],
			Grids:     make([]jsonGrid, 0, len(g.Grids)),
			BoxParams: &jsonBoxParams{
				Size:    &size,
				OffsetX: g.BoxParams.OffsetX,
				OffsetY: g.BoxParams.OffsetY,
				OffsetZ: g.BoxParams.OffsetZ,
			},
		}
		for _, grid := range g.Grids {
			group.Grids = append(group.Grids, jsonGrid{
				Name:    grid.Name,
				OffsetX: grid.Offset[0],
				OffsetY: grid.Offset[1],
				OffsetZ: grid.Offset[2],
				CenterX: grid.CenterX,
				SizeX:   float64(grid.SizeX),
				SizeY:   float64(grid.SizeY),
				SizeZ:   float64(grid.SizeZ),
			})
		}
		raw.GridInfo = append(raw.GridInfo, group)
	}
	return json.MarshalIndent(raw, "", "  ")
}

// Compress wraps data in a zstd frame.
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, err
	}
	out := enc.EncodeAll(data, nil)
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return out, nil
}
