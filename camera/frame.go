package camera

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/voxelsplace/shipvox/voxel"
)

// Aimer recomputes a camera's orientation after its target or position changed.
// *orbit.Control implements it.
type Aimer interface {
	SetTarget(target mgl64.Vec3)
	Update()
}

// Setup holds the per-viewport framing inputs.
type Setup struct {
	Type        Type
	Preset      Preset
	UseControls bool
}

// Validate rejects setups that cannot produce an orientation.
func (s Setup) Validate() error {
	if s.Preset.IsZero() {
		return fmt.Errorf("%w: no camera position", ErrConfiguration)
	}
	if _, ok := s.Preset.Orientation(); !ok && !s.UseControls {
		return fmt.Errorf("%w: camera position %s has no fixed orientation and needs controls", ErrConfiguration, s.Preset)
	}
	return nil
}

// Distance returns how far from the box center the camera is placed.
func Distance(t Type, size mgl64.Vec3) float64 {
	if t == Orthographic {
		return math.Max(size[0], math.Max(size[1], size[2])) + 5
	}
	return math.Ceil(math.Max(size[0]*4, math.Max(size[1]*4, size[2])) * 0.6)
}

// Frame places the camera so the whole box is visible from the setup's preset.
// st is left untouched when the setup is invalid.
func Frame(st *State, setup Setup, bounds voxel.Box, aim Aimer) error {
	if err := setup.Validate(); err != nil {
		return err
	}
	if setup.UseControls && aim == nil {
		return fmt.Errorf("%w: controls requested but none attached", ErrConfiguration)
	}

	center := bounds.Center()
	size := bounds.Size()

	st.Type = setup.Type
	st.Distance = Distance(setup.Type, size)
	dir := setup.Preset.Direction()
	st.Position = center.Add(mgl64.Vec3{st.Distance * dir[0], st.Distance * dir[1], st.Distance * dir[2]})
	st.Target = center

	if setup.Type == Orthographic {
		UpdateOrthoSize(st, setup.Preset, bounds, st.Aspect)
	}

	if setup.UseControls {
		aim.SetTarget(center)
		aim.Update()
		return nil
	}
	if q, ok := setup.Preset.Orientation(); ok {
		st.Orientation = q
	}
	return nil
}

// UpdateOrthoSize recomputes the orthographic size from the box and the
// extents from size and aspect.
func UpdateOrthoSize(st *State, preset Preset, bounds voxel.Box, aspect float64) {
	st.OrthoSize = DefaultOrthoSize
	if preset != Equal {
		size := bounds.Size()
		m := 0.0
		for _, axis := range preset.ZeroAxes() {
			m = math.Max(m, size[axis])
		}
		st.OrthoSize = m + 2
	}
	st.Aspect = aspect
	st.applyOrthoExtents()
}

// SetAspect handles a resize: the framing size stays, only the aspect and the
// extents derived from it change.
func SetAspect(st *State, aspect float64) {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		return
	}
	st.Aspect = aspect
	st.applyOrthoExtents()
}
