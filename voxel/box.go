package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned bounding box. The zero value is not empty; use EmptyBox.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// EmptyBox returns a box that contains nothing and grows on the first Expand.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// Expand grows the box to include p.
func (b Box) Expand(p mgl64.Vec3) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Pad grows the box by d on every side.
func (b Box) Pad(d float64) Box {
	if b.IsEmpty() {
		return b
	}
	pad := mgl64.Vec3{d, d, d}
	return Box{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// Translate moves the box by v.
func (b Box) Translate(v mgl64.Vec3) Box {
	if b.IsEmpty() {
		return b
	}
	return Box{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

// Size returns the box extent per axis, zero for an empty box.
func (b Box) Size() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the box midpoint, the origin for an empty box.
func (b Box) Center() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}
