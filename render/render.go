// Package render defines the services the viewport coordinator renders through.
package render

import (
	"errors"

	"github.com/voxelsplace/shipvox/camera"
	"github.com/voxelsplace/shipvox/scene"
)

// ErrZeroSize is returned when a render target has no area.
var ErrZeroSize = errors.New("render target has zero size")

// Renderer draws a scene through a camera into its own target.
type Renderer interface {
	Render(sc *scene.Scene, cam *camera.State) error
	SetOutputSize(w, h int)
	Size() (w, h int)
}

// Surface is the presentation area of a viewport.
type Surface interface {
	// Size returns the drawable area in pixels.
	Size() (w, h int)
	// SetOverlay replaces the text shown on top of the viewport.
	SetOverlay(text string)
}

// Aspect returns w/h, or 0 when the area is empty.
func Aspect(w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 0
	}
	return float64(w) / float64(h)
}
