package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelsplace/shipvox/ship"
	"github.com/voxelsplace/shipvox/voxel"
)

func twoGroups() *ship.Info {
	return &ship.Info{
		ShipName: "pair",
		Groups: []ship.GridGroup{
			{
				Position:  mgl64.Vec3{0, 0, 4},
				BoxParams: ship.BoxParams{Size: 2},
				Grids: []ship.Grid{
					{SizeX: 2, SizeY: 1, SizeZ: 1},
					{Offset: mgl64.Vec3{0, 2, 0}, SizeX: 1, SizeY: 1, SizeZ: 1},
				},
			},
			{
				BoxParams: ship.BoxParams{Size: 2},
				Grids:     []ship.Grid{{SizeX: 3, SizeY: 3, SizeZ: 3}},
			},
		},
	}
}

func TestBuild_Hierarchy(t *testing.T) {
	e := voxel.NewEngine(voxel.Options{})
	require.NoError(t, e.Layout(twoGroups()))

	sc := New(0, nil)
	sc.Build(e)

	assert.Equal(t, e.Translation(), sc.Root.Translation)
	require.Len(t, sc.Root.Children, 2)
	g0 := sc.Root.Children[0]
	assert.Equal(t, mgl64.Vec3{0, 0, 4}, g0.Translation)
	require.Len(t, g0.Children, 2)
	assert.Len(t, g0.Children[0].Children, 2)
	assert.Equal(t, mgl64.Vec3{0, 2, 0}, g0.Children[1].Translation)
	assert.Len(t, sc.Root.Children[1].Children[0].Children, 27)
	assert.Equal(t, 30, sc.MeshCount())
}

func TestWalk_MatchesCenteredPositions(t *testing.T) {
	e := voxel.NewEngine(voxel.Options{})
	require.NoError(t, e.Layout(twoGroups()))
	sc := New(0, nil)
	sc.Build(e)

	var got []mgl64.Vec3
	var mats []int
	sc.Walk(func(world mgl64.Vec3, m *Mesh) {
		got = append(got, world)
		mats = append(mats, m.Material)
		assert.Same(t, sc.Box, m.Geometry)
	})
	require.Len(t, got, e.Len())
	for i, p := range e.Placements() {
		assert.Equal(t, e.CenteredPosition(i), got[i])
		assert.Equal(t, p.Material, mats[i])
	}
}

func TestBuild_AppendedPassesGetOwnGroups(t *testing.T) {
	e := voxel.NewEngine(voxel.Options{})
	require.NoError(t, e.Layout(twoGroups()))
	require.NoError(t, e.Layout(twoGroups()))

	sc := New(0, nil)
	sc.Build(e)
	assert.Len(t, sc.Root.Children, 4)
	assert.Equal(t, 60, sc.MeshCount())

	e.Clear()
	require.NoError(t, e.Layout(twoGroups()))
	sc.Build(e)
	assert.Len(t, sc.Root.Children, 2)
	assert.Equal(t, 30, sc.MeshCount())

	sc.Clear()
	assert.Empty(t, sc.Root.Children)
	assert.Equal(t, "grid collection", sc.Root.Name)
}

func TestBuild_ExposedFaces(t *testing.T) {
	e := voxel.NewEngine(voxel.Options{})
	require.NoError(t, e.Layout(&ship.Info{Groups: []ship.GridGroup{{
		BoxParams: ship.BoxParams{Size: 2},
		Grids:     []ship.Grid{{SizeX: 3, SizeY: 3, SizeZ: 3}},
	}}}))
	sc := New(0, nil)
	sc.Build(e)

	hidden := 0
	sc.Walk(func(_ mgl64.Vec3, m *Mesh) {
		if !m.Exposed() {
			hidden++
		}
	})
	assert.Equal(t, 1, hidden)
}

func TestMaterials(t *testing.T) {
	sc := New(0, nil)
	assert.Equal(t, uint32(0xffffff), sc.Material(voxel.MaterialBase).Color)
	assert.Equal(t, uint32(0xaaaaaa), sc.Material(voxel.MaterialAccent).Color)
	assert.Equal(t, uint32(0xffffff), sc.Material(7).Color)

	r, g, b := Material{Color: 0x102030}.RGB()
	assert.Equal(t, []uint8{0x10, 0x20, 0x30}, []uint8{r, g, b})

	for _, in := range []string{"#ff8800", "0xff8800", "FF8800"} {
		c, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, uint32(0xff8800), c)
	}
	_, err := ParseColor("#fff")
	assert.Error(t, err)
	_, err = ParseColor("zzzzzz")
	assert.Error(t, err)
}

func TestNewBox(t *testing.T) {
	g := NewBox(2)
	c := g.Corners()
	assert.Equal(t, mgl64.Vec3{-1, -1, -1}, c[0])
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, c[7])
	for _, e := range BoxEdges {
		d := c[e[0]].Sub(c[e[1]])
		assert.InDelta(t, 2, d.Len(), 1e-12)
	}
	assert.Equal(t, DefaultCubeSize, New(0, nil).Box.Size)
}
