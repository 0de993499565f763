package camera

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/voxelsplace/shipvox/voxel"
)

// ErrConfiguration is the same sentinel the layout engine uses, so callers
// only need one errors.Is check for bad configuration.
var ErrConfiguration = voxel.ErrConfiguration

// Scene defaults.
const (
	DefaultFOV       = 50.0
	DefaultNear      = 0.1
	DefaultFar       = 2000.0
	DefaultOrthoSize = 20.0
)

// Type selects the projection.
type Type int

const (
	Perspective Type = iota
	Orthographic
)

func (t Type) String() string {
	switch t {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (t Type) MarshalText() ([]byte, error) {
	if t != Perspective && t != Orthographic {
		return nil, fmt.Errorf("%w: unknown camera type %d", ErrConfiguration, int(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "perspective":
		*t = Perspective
	case "orthographic", "ortho":
		*t = Orthographic
	default:
		return fmt.Errorf("%w: unknown camera type %q", ErrConfiguration, string(b))
	}
	return nil
}

// State is the mutable camera of one viewport. Only the framing functions and
// the orbit controls write to it.
type State struct {
	Type        Type
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Target      mgl64.Vec3
	Distance    float64

	FOV    float64 // vertical, degrees
	Aspect float64
	Near   float64
	Far    float64

	// orthographic extents
	OrthoSize float64
	Left      float64
	Right     float64
	Top       float64
	Bottom    float64
}

// NewState returns a camera at the origin looking down -Z with the scene defaults.
func NewState(t Type) State {
	st := State{
		Type:        t,
		Orientation: mgl64.QuatIdent(),
		FOV:         DefaultFOV,
		Aspect:      1,
		Near:        DefaultNear,
		Far:         DefaultFar,
		OrthoSize:   DefaultOrthoSize,
	}
	st.applyOrthoExtents()
	return st
}

func (st *State) applyOrthoExtents() {
	st.Left = -st.OrthoSize * st.Aspect / 2
	st.Right = st.OrthoSize * st.Aspect / 2
	st.Top = st.OrthoSize / 2
	st.Bottom = -st.OrthoSize / 2
}

// ViewMatrix returns the world-to-camera transform.
func (st *State) ViewMatrix() mgl64.Mat4 {
	rot := st.Orientation.Normalize().Inverse().Mat4()
	return rot.Mul4(mgl64.Translate3D(-st.Position[0], -st.Position[1], -st.Position[2]))
}

// ProjectionMatrix returns the camera-to-clip transform for the current type.
func (st *State) ProjectionMatrix() mgl64.Mat4 {
	if st.Type == Orthographic {
		return mgl64.Ortho(st.Left, st.Right, st.Bottom, st.Top, st.Near, st.Far)
	}
	return mgl64.Perspective(mgl64.DegToRad(st.FOV), st.Aspect, st.Near, st.Far)
}

// ViewProjection returns ProjectionMatrix * ViewMatrix.
func (st *State) ViewProjection() mgl64.Mat4 {
	return st.ProjectionMatrix().Mul4(st.ViewMatrix())
}

// Forward returns the direction the camera looks at.
func (st *State) Forward() mgl64.Vec3 {
	return st.Orientation.Normalize().Rotate(mgl64.Vec3{0, 0, -1})
}
