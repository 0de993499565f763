package ship

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrMalformedInput reports a ship description that is not valid JSON or is
// missing required fields (shipName, gridInfo, grid dimensions).
var ErrMalformedInput = errors.New("malformed ship description")

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

type jsonBoxParams struct {
	Size    *float64 `json:"size"`
	OffsetX float64  `json:"offsetX"`
	OffsetY float64  `json:"offsetY"`
	OffsetZ float64  `json:"offsetZ"`
}

type jsonGrid struct {
	Name    string  `json:"name"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	OffsetZ float64 `json:"offsetZ"`
	CenterX bool    `json:"centerX"`
	SizeX   float64 `json:"sizeX"`
	SizeY   float64 `json:"sizeY"`
	SizeZ   float64 `json:"sizeZ"`
}

type jsonGridGroup struct {
	Name      string         `json:"name"`
	PositionX float64        `json:"positionX"`
	PositionY float64        `json:"positionY"`
	PositionZ float64        `json:"positionZ"`
	Grids     []jsonGrid     `json:"grids"`
	BoxParams *jsonBoxParams `json:"boxParams"`
}

type jsonShipInfo struct {
	ShipName   string          `json:"shipName"`
	HangarSize string          `json:"hangarSize"`
	CargoSize  float64         `json:"cargoSize"`
	CanLand    *bool           `json:"canLand"`
	GridInfo   []jsonGridGroup `json:"gridInfo"`
}

// Load reads a ship description from disk. Files compressed with zstd
// (".zst" suffix or zstd frame magic) are decompressed first.
func Load(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".zst") && !IsCompressed(data) {
		return nil, fmt.Errorf("%s: %w: missing zstd frame", path, ErrMalformedInput)
	}
	info, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

// IsCompressed reports whether data starts with a zstd frame.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// Decode parses plain or zstd compressed JSON.
func Decode(data []byte) (*Info, error) {
	if IsCompressed(data) {
		var err error
		if data, err = decompress(data); err != nil {
			return nil, err
		}
	}
	return Parse(data)
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrMalformedInput, err)
	}
	return out, nil
}

// Parse validates a JSON ship description and normalizes it into an Info.
func Parse(data []byte) (*Info, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return nil, fmt.Errorf("%w: %s", ErrMalformedInput, describe(ve))
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	var raw jsonShipInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return raw.normalize()
}

// describe picks the deepest cause so the message points at the offending field.
func describe(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, ve.Message)
}

func (j *jsonShipInfo) normalize() (*Info, error) {
	info := &Info{
		ShipName:   j.ShipName,
		HangarSize: j.HangarSize,
		CargoSize:  j.CargoSize,
		CanLand:    true,
		Groups:     make([]GridGroup, 0, len(j.GridInfo)),
	}
	if j.CanLand != nil {
		info.CanLand = *j.CanLand
	}
	for gi, g := range j.GridInfo {
		group, err := g.normalize(gi)
		if err != nil {
			return nil, err
		}
		info.Groups = append(info.Groups, group)
	}
	return info, nil
}

// gridSize converts a JSON dimension. The schema only guarantees a whole
// number, so 2.0 is accepted and values beyond int32 are rejected.
func gridSize(v float64, gi, i int, axis string) (int, error) {
	if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: /gridInfo/%d/grids/%d/size%s: %v is not a grid dimension",
			ErrMalformedInput, gi, i, axis, v)
	}
	return int(v), nil
}

func (j *jsonGridGroup) normalize(gi int) (GridGroup, error) {
	group := GridGroup{
		Name:      j.Name,
		Position:  mgl64.Vec3{j.PositionX, j.PositionY, j.PositionZ},
		Grids:     make([]Grid, 0, len(j.Grids)),
		BoxParams: BoxParams{Size: DefaultBoxSize},
	}
	if bp := j.BoxParams; bp != nil {
		if bp.Size != nil {
			group.BoxParams.Size = *bp.Size
		}
		group.BoxParams.OffsetX = bp.OffsetX
		group.BoxParams.OffsetY = bp.OffsetY
		group.BoxParams.OffsetZ = bp.OffsetZ
	}
	for i, g := range j.Grids {
		grid := Grid{
			Name:    g.Name,
			Offset:  mgl64.Vec3{g.OffsetX, g.OffsetY, g.OffsetZ},
			CenterX: g.CenterX,
		}
		var err error
		if grid.SizeX, err = gridSize(g.SizeX, gi, i, "X"); err != nil {
			return GridGroup{}, err
		}
		if grid.SizeY, err = gridSize(g.SizeY, gi, i, "Y"); err != nil {
			return GridGroup{}, err
		}
		if grid.SizeZ, err = gridSize(g.SizeZ, gi, i, "Z"); err != nil {
			return GridGroup{}, err
		}
		group.Grids = append(group.Grids, grid)
	}
	return group, nil
}
