package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelsplace/shipvox/camera"
	"github.com/voxelsplace/shipvox/render"
	"github.com/voxelsplace/shipvox/scene"
	"github.com/voxelsplace/shipvox/ship"
	"github.com/voxelsplace/shipvox/voxel"
)

var (
	_ render.Surface  = (*Region)(nil)
	_ render.Renderer = (*Renderer)(nil)
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func singleCube(t *testing.T) (*scene.Scene, voxel.Box) {
	t.Helper()
	e := voxel.NewEngine(voxel.Options{})
	require.NoError(t, e.Layout(&ship.Info{Groups: []ship.GridGroup{{
		BoxParams: ship.BoxParams{Size: ship.DefaultBoxSize},
		Grids:     []ship.Grid{{SizeX: 1, SizeY: 1, SizeZ: 1}},
	}}}))
	sc := scene.New(0, nil)
	sc.Build(e)
	return sc, e.Bounds()
}

func fg(t *testing.T, s tcell.Screen, x, y int) (rune, tcell.Color) {
	t.Helper()
	ch, _, style, _ := s.GetContent(x, y)
	f, _, _ := style.Decompose()
	return ch, f
}

func TestRender_SingleCube(t *testing.T) {
	s := newScreen(t, 20, 11)
	region := NewRegion(s, 0, 0, 20, 11)
	r := NewRenderer(region)
	w, h := region.Size()
	require.Equal(t, 20, w)
	require.Equal(t, 20, h)
	r.SetOutputSize(w, h)

	sc, bounds := singleCube(t)
	cam := camera.NewState(camera.Orthographic)
	require.NoError(t, camera.Frame(&cam, camera.Setup{Type: camera.Orthographic, Preset: camera.Front}, bounds, nil))
	require.Equal(t, 2.0, cam.OrthoSize)

	region.SetOverlay("front")
	require.NoError(t, r.Render(sc, &cam))

	ch, c := fg(t, s, 10, 1+5)
	assert.Equal(t, upperHalf, ch)
	assert.Equal(t, rgb(0xaaaaaa), c)

	_, c = fg(t, s, 0, 1)
	assert.Equal(t, rgb(0x000000), c)

	for i, want := range "front" {
		got, _, _, _ := s.GetContent(i, 0)
		assert.Equal(t, want, got)
	}
	got, _, _, _ := s.GetContent(6, 0)
	assert.Equal(t, ' ', got)
}

func TestRender_BehindCameraIsSkipped(t *testing.T) {
	s := newScreen(t, 10, 6)
	region := NewRegion(s, 0, 0, 10, 6)
	r := NewRenderer(region)
	r.SetOutputSize(region.Size())

	sc, _ := singleCube(t)
	cam := camera.NewState(camera.Perspective)
	// looking down -Z from behind the cube
	cam.Position = [3]float64{0.5, 0.5, -10}
	require.NoError(t, r.Render(sc, &cam))

	for y := 1; y < 6; y++ {
		for x := 0; x < 10; x++ {
			_, c := fg(t, s, x, y)
			assert.Equal(t, rgb(0x000000), c)
		}
	}
}

func TestRender_ZeroSize(t *testing.T) {
	s := newScreen(t, 10, 10)
	sc, _ := singleCube(t)
	cam := camera.NewState(camera.Perspective)

	flat := NewRegion(s, 0, 0, 10, 1)
	r := NewRenderer(flat)
	r.SetOutputSize(flat.Size())
	assert.ErrorIs(t, r.Render(sc, &cam), render.ErrZeroSize)

	region := NewRegion(s, 0, 0, 10, 10)
	r = NewRenderer(region)
	assert.ErrorIs(t, r.Render(sc, &cam), render.ErrZeroSize, "no output size set")
}

func TestRender_StaysInsideRegion(t *testing.T) {
	s := newScreen(t, 20, 10)
	s.Fill('.', tcell.StyleDefault)
	right := NewRegion(s, 10, 0, 10, 10)
	r := NewRenderer(right)
	r.SetOutputSize(right.Size())

	sc, bounds := singleCube(t)
	cam := camera.NewState(camera.Perspective)
	require.NoError(t, camera.Frame(&cam, camera.Setup{Preset: camera.Front}, bounds, nil))
	require.NoError(t, r.Render(sc, &cam))

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			ch, _, _, _ := s.GetContent(x, y)
			assert.Equal(t, '.', ch, "cell %d,%d", x, y)
		}
	}
}

func TestTile(t *testing.T) {
	s := newScreen(t, 80, 24)
	regions := Tile(s, 80, 24, 4)
	require.Len(t, regions, 4)

	var got [][4]int
	for _, r := range regions {
		x, y, w, h := r.Bounds()
		got = append(got, [4]int{x, y, w, h})
	}
	assert.Equal(t, [][4]int{{0, 0, 40, 12}, {40, 0, 40, 12}, {0, 12, 40, 12}, {40, 12, 40, 12}}, got)

	regions = Tile(s, 90, 20, 3)
	x, y, w, h := regions[2].Bounds()
	assert.Equal(t, [4]int{0, 10, 90, 10}, [4]int{x, y, w, h})

	Retile(regions, 0, 0)
	w, h = regions[0].Size()
	assert.Zero(t, w)
	assert.Zero(t, h)
}
