package camera

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Preset is a named viewing direction. FRONT, SIDE and TOP also carry a fixed
// orientation; EQUAL does not and needs orbit controls to aim the camera.
type Preset struct {
	name        string
	direction   mgl64.Vec3
	orientation *mgl64.Quat
}

func fixed(q mgl64.Quat) *mgl64.Quat { return &q }

var (
	Front = Preset{name: "FRONT", direction: mgl64.Vec3{0, 0, 1}, orientation: fixed(mgl64.QuatIdent())}
	// Euler(0, 90°, 0)
	Side = Preset{name: "SIDE", direction: mgl64.Vec3{1, 0, 0}, orientation: fixed(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}))}
	// Euler(-90°, 0, 0)
	Top   = Preset{name: "TOP", direction: mgl64.Vec3{0, 1, 0}, orientation: fixed(mgl64.QuatRotate(-math.Pi/2, mgl64.Vec3{1, 0, 0}))}
	Equal = Preset{name: "EQUAL", direction: mgl64.Vec3{1, 1, 1}}
)

// Presets lists every known preset.
var Presets = []Preset{Front, Side, Top, Equal}

// ParsePreset looks a preset up by name, ignoring case.
func ParsePreset(name string) (Preset, error) {
	for _, p := range Presets {
		if strings.EqualFold(p.name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: unknown camera position %q", ErrConfiguration, name)
}

func (p Preset) String() string {
	if p.name == "" {
		return "NONE"
	}
	return p.name
}

// IsZero reports whether p is the zero value rather than a known preset.
func (p Preset) IsZero() bool { return p.name == "" }

// Direction returns the unnormalized direction from the target to the camera.
func (p Preset) Direction() mgl64.Vec3 { return p.direction }

// Orientation returns the fixed orientation, if the preset defines one.
func (p Preset) Orientation() (mgl64.Quat, bool) {
	if p.orientation == nil {
		return mgl64.Quat{}, false
	}
	return *p.orientation, true
}

// ZeroAxes returns the axes along which the direction has no component. These
// are the axes perpendicular to the view and determine orthographic framing.
func (p Preset) ZeroAxes() []int {
	var axes []int
	for i, v := range p.direction {
		if v == 0 {
			axes = append(axes, i)
		}
	}
	return axes
}

func (p Preset) MarshalText() ([]byte, error) {
	if p.IsZero() {
		return nil, fmt.Errorf("%w: empty camera position", ErrConfiguration)
	}
	return []byte(p.name), nil
}

func (p *Preset) UnmarshalText(b []byte) error {
	v, err := ParsePreset(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
