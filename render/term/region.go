// Package term renders viewports into rectangular regions of a terminal
// screen. Every cell holds two vertically stacked pixels drawn with an upper
// half block, so one pixel is roughly square on common terminal fonts.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// overlayRows is the number of text rows at the top of a region.
const overlayRows = 1

// Region is a rectangle of the screen used by one viewport. It implements
// render.Surface.
type Region struct {
	screen  tcell.Screen
	x, y    int
	w, h    int
	overlay string
}

// NewRegion returns a region of s with its top left cell at (x, y).
func NewRegion(s tcell.Screen, x, y, w, h int) *Region {
	r := &Region{screen: s}
	r.SetBounds(x, y, w, h)
	return r
}

// SetBounds moves and resizes the region, in cells.
func (r *Region) SetBounds(x, y, w, h int) {
	r.x, r.y = x, y
	r.w, r.h = max(w, 0), max(h, 0)
}

// Bounds returns position and size in cells.
func (r *Region) Bounds() (x, y, w, h int) {
	return r.x, r.y, r.w, r.h
}

// Size returns the drawable area in pixels, excluding the overlay row.
func (r *Region) Size() (int, int) {
	if r.w == 0 || r.h <= overlayRows {
		return 0, 0
	}
	return r.w, 2 * (r.h - overlayRows)
}

// SetOverlay replaces the overlay text. It is drawn on the next render.
func (r *Region) SetOverlay(text string) {
	r.overlay = text
}

// Overlay returns the current overlay text.
func (r *Region) Overlay() string {
	return r.overlay
}

func (r *Region) drawOverlay(style tcell.Style) {
	if r.h == 0 {
		return
	}
	runes := []rune(r.overlay)
	for i := 0; i < r.w; i++ {
		ch := ' '
		if i < len(runes) {
			ch = runes[i]
		}
		r.screen.SetContent(r.x+i, r.y, ch, nil, style)
	}
}

// Tile splits a w×h cell area into n regions laid out on a near square grid,
// row by row. The last row stretches its regions to fill the width.
func Tile(s tcell.Screen, w, h, n int) []*Region {
	regions := make([]*Region, n)
	for i := range regions {
		regions[i] = &Region{screen: s}
	}
	Retile(regions, w, h)
	return regions
}

// Retile recomputes region bounds after the screen was resized.
func Retile(regions []*Region, w, h int) {
	n := len(regions)
	if n == 0 {
		return
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	for i, r := range regions {
		row, col := i/cols, i%cols
		inRow := cols
		if row == rows-1 {
			inRow = n - row*cols
		}
		x0, x1 := col*w/inRow, (col+1)*w/inRow
		y0, y1 := row*h/rows, (row+1)*h/rows
		r.SetBounds(x0, y0, x1-x0, y1-y0)
	}
}
