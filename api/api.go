package api

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/voxelsplace/shipvox/camera"
	"github.com/voxelsplace/shipvox/config"
	"github.com/voxelsplace/shipvox/scene"
	"github.com/voxelsplace/shipvox/ship"
	"github.com/voxelsplace/shipvox/viewport"
	"github.com/voxelsplace/shipvox/voxel"
)

// LayoutReport summarizes one layout pass.
type LayoutReport struct {
	ShipName    string     `json:"shipName"`
	Summary     string     `json:"summary"`
	Groups      int        `json:"groups"`
	Grids       int        `json:"grids"`
	Voxels      int        `json:"voxels"`
	Accent      int        `json:"accent"`
	Exposed     int        `json:"exposed"`
	Min         [3]float64 `json:"min"`
	Max         [3]float64 `json:"max"`
	Size        [3]float64 `json:"size"`
	Translation [3]float64 `json:"translation"`
	Digest      string     `json:"digest"`
}

// CameraReport is the framed camera of one viewport.
type CameraReport struct {
	Name        string     `json:"name"`
	Main        bool       `json:"main"`
	Type        string     `json:"type"`
	Position    string     `json:"position"`
	Controls    bool       `json:"controls"`
	Overlay     string     `json:"overlay"`
	Eye         [3]float64 `json:"eye"`
	Target      [3]float64 `json:"target"`
	Orientation [4]float64 `json:"orientation"` // w, x, y, z
	Distance    float64    `json:"distance"`
	Aspect      float64    `json:"aspect"`
	FOV         float64    `json:"fov,omitempty"`
	OrthoSize   float64    `json:"orthoSize,omitempty"`
	Left        float64    `json:"left,omitempty"`
	Right       float64    `json:"right,omitempty"`
	Top         float64    `json:"top,omitempty"`
	Bottom      float64    `json:"bottom,omitempty"`
}

// LayoutBytes lays out a JSON (optionally zstd compressed) ship description.
func LayoutBytes(data []byte, opts voxel.Options) (*LayoutReport, error) {
	info, err := ship.Decode(data)
	if err != nil {
		return nil, err
	}
	return Layout(info, opts)
}

// Layout runs a fresh layout pass over info.
func Layout(info *ship.Info, opts voxel.Options) (*LayoutReport, error) {
	e := voxel.NewEngine(opts)
	if err := e.Layout(info); err != nil {
		return nil, err
	}
	return NewLayoutReport(info, e), nil
}

// NewLayoutReport describes the current state of e.
func NewLayoutReport(info *ship.Info, e *voxel.Engine) *LayoutReport {
	r := &LayoutReport{
		ShipName:    info.ShipName,
		Summary:     info.Summary(),
		Groups:      len(info.Groups),
		Grids:       info.GridCount(),
		Voxels:      e.Len(),
		Exposed:     e.ExposedCount(),
		Translation: e.Translation(),
		Digest:      fmt.Sprintf("%016x", e.Digest()),
	}
	for _, p := range e.Placements() {
		if p.Material == voxel.MaterialAccent {
			r.Accent++
		}
	}
	if b := e.Bounds(); !b.IsEmpty() {
		r.Min, r.Max = b.Min, b.Max
	}
	r.Size = e.Bounds().Size()
	return r
}

// FrameBytes frames a ship for a viewport list (YAML, nil for the default
// four views) on surfaces of w×h pixels.
func FrameBytes(data, viewportsYAML []byte, w, h int, opts voxel.Options) ([]CameraReport, error) {
	info, err := ship.Decode(data)
	if err != nil {
		return nil, err
	}
	defs := config.DefaultViewports()
	if len(viewportsYAML) > 0 {
		if defs, err = config.ParseViewports(viewportsYAML); err != nil {
			return nil, err
		}
	}
	return Frame(info, defs, w, h, opts)
}

// Frame lays info out and frames every viewport without rendering anything.
func Frame(info *ship.Info, defs []config.ViewportDef, w, h int, opts voxel.Options) ([]CameraReport, error) {
	surfaces := make([]*fixedSurface, len(defs))
	vps := make([]*viewport.Viewport, len(defs))
	for i, d := range defs {
		surfaces[i] = &fixedSurface{w: w, h: h}
		vp, err := viewport.New(d.Name, d.Main, d.Setup(), surfaces[i], &nopRenderer{})
		if err != nil {
			return nil, err
		}
		vps[i] = vp
	}

	coord := viewport.NewCoordinator(nil, scene.New(0, nil), opts, zerolog.Nop(), vps...)
	if err := coord.Load(info, true); err != nil {
		return nil, err
	}

	out := make([]CameraReport, len(vps))
	for i, vp := range vps {
		out[i] = newCameraReport(vp, surfaces[i].overlay)
	}
	return out, nil
}

func newCameraReport(vp *viewport.Viewport, overlay string) CameraReport {
	st := &vp.Camera
	q := st.Orientation
	r := CameraReport{
		Name:        vp.Name,
		Main:        vp.Main,
		Type:        st.Type.String(),
		Position:    vp.Setup.Preset.String(),
		Controls:    vp.Setup.UseControls,
		Overlay:     overlay,
		Eye:         st.Position,
		Target:      st.Target,
		Orientation: [4]float64{q.W, q.V[0], q.V[1], q.V[2]},
		Distance:    st.Distance,
		Aspect:      st.Aspect,
	}
	if st.Type == camera.Orthographic {
		r.OrthoSize = st.OrthoSize
		r.Left, r.Right, r.Top, r.Bottom = st.Left, st.Right, st.Top, st.Bottom
	} else {
		r.FOV = st.FOV
	}
	return r
}

type fixedSurface struct {
	w, h    int
	overlay string
}

func (s *fixedSurface) Size() (int, int)       { return s.w, s.h }
func (s *fixedSurface) SetOverlay(text string) { s.overlay = text }

// nopRenderer only tracks its output size; framing needs no pixels.
type nopRenderer struct{ w, h int }

func (r *nopRenderer) Render(*scene.Scene, *camera.State) error { return nil }
func (r *nopRenderer) SetOutputSize(w, h int)                   { r.w, r.h = w, h }
func (r *nopRenderer) Size() (int, int)                         { return r.w, r.h }
