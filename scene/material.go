package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// Material is a flat colour, 0xRRGGBB.
type Material struct {
	Name  string
	Color uint32
}

// RGB splits the colour into its channels.
func (m Material) RGB() (r, g, b uint8) {
	return uint8(m.Color >> 16), uint8(m.Color >> 8), uint8(m.Color)
}

// DefaultMaterials returns the base and accent materials of the checkerboard,
// indexed by voxel.MaterialBase and voxel.MaterialAccent.
func DefaultMaterials() []Material {
	return []Material{
		{Name: "base", Color: 0xffffff},
		{Name: "accent", Color: 0xaaaaaa},
	}
}

// ParseColor accepts "#rrggbb", "0xrrggbb" or "rrggbb".
func ParseColor(s string) (uint32, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if len(h) != 6 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}
