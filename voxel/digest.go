package voxel

import (
	"encoding/binary"
	"math"

	xxhash "github.com/cespare/xxhash/v2"
)

// Digest hashes every placement (lattice position, world position, material)
// and the centering translation. Two layouts with the same digest render
// identically.
func (e *Engine) Digest() uint64 {
	h := xxhash.New()
	buf := make([]byte, 0, 64)
	for _, p := range e.placements {
		buf = buf[:0]
		for _, v := range p.Local {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(v)))
		}
		for _, v := range p.World {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
		buf = append(buf, byte(p.Material))
		_, _ = h.Write(buf)
	}
	buf = buf[:0]
	for _, v := range e.translation {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}
