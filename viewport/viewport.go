// Package viewport coordinates layout, framing and rendering for a set of
// viewports sharing one scene.
package viewport

import (
	"fmt"

	"github.com/voxelsplace/shipvox/camera"
	"github.com/voxelsplace/shipvox/orbit"
	"github.com/voxelsplace/shipvox/render"
)

// Viewport is one camera looking at the shared scene. Only its camera state
// and the lazily attached controls change after construction.
type Viewport struct {
	Name     string
	Main     bool
	Setup    camera.Setup
	Camera   camera.State
	Surface  render.Surface
	Renderer render.Renderer
	Controls *orbit.Control

	cancel func()
}

// New validates setup and returns a viewport with a default camera.
func New(name string, main bool, setup camera.Setup, surface render.Surface, renderer render.Renderer) (*Viewport, error) {
	if err := setup.Validate(); err != nil {
		return nil, fmt.Errorf("viewport %q: %w", name, err)
	}
	if surface == nil || renderer == nil {
		return nil, fmt.Errorf("viewport %q: missing surface or renderer", name)
	}
	return &Viewport{
		Name:     name,
		Main:     main,
		Setup:    setup,
		Camera:   camera.NewState(setup.Type),
		Surface:  surface,
		Renderer: renderer,
	}, nil
}

// attachControls creates the orbit controls on first use.
func (v *Viewport) attachControls() {
	if v.Setup.UseControls && v.Controls == nil {
		v.Controls = orbit.Attach(&v.Camera)
		v.Controls.Update()
	}
}

func (v *Viewport) aimer() camera.Aimer {
	if v.Controls == nil {
		return nil
	}
	return v.Controls
}

// Label is the overlay text of a non-main viewport.
func (v *Viewport) Label() string {
	return v.Name
}
