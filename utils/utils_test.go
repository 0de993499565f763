package utils

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelsplace/shipvox/config"
	"github.com/voxelsplace/shipvox/ship"
	"github.com/voxelsplace/shipvox/voxel"
)

const slab = `{
  "shipName": "Slab",
  "hangarSize": "L",
  "cargoSize": 64,
  "canLand": true,
  "gridInfo": [{"grids": [{"sizeX": 11, "sizeY": 5, "sizeZ": 7}]}]
}`

func writeShip(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRunLayout(t *testing.T) {
	path := writeShip(t, "slab.json", []byte(slab))

	var out bytes.Buffer
	require.NoError(t, RunLayout(path, voxel.Options{}, &out))

	got := out.String()
	assert.Contains(t, got, "ship name: Slab | hangar size: L | cargo size: 64 | landable: true")
	assert.Contains(t, got, "voxels: 385")
	assert.Contains(t, got, "digest: ")
}

func TestRunLayout_Errors(t *testing.T) {
	var out bytes.Buffer
	err := RunLayout(filepath.Join(t.TempDir(), "missing.json"), voxel.Options{}, &out)
	assert.Error(t, err)

	path := writeShip(t, "bad.json", []byte(`{"shipName": 7}`))
	err = RunLayout(path, voxel.Options{}, &out)
	assert.ErrorIs(t, err, ship.ErrMalformedInput)
	assert.Empty(t, out.String())
}

func TestRunFrame_DefaultViewports(t *testing.T) {
	path := writeShip(t, "slab.json", []byte(slab))

	var out bytes.Buffer
	require.NoError(t, RunFrame(path, "", 200, 100, voxel.Options{}, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "VIEWPORT"))
	for i, name := range []string{"main", "front", "side", "top"} {
		assert.True(t, strings.HasPrefix(lines[i+1], name), lines[i+1])
	}
	assert.Contains(t, lines[1], "perspective")
	assert.Contains(t, lines[2], "orthographic")
}

func TestRunFrame_ViewportsFile(t *testing.T) {
	path := writeShip(t, "slab.json", []byte(slab))
	views := writeShip(t, "views.yaml", []byte("viewports:\n  - name: plan\n    camera: orthographic\n    position: TOP\n"))

	var out bytes.Buffer
	require.NoError(t, RunFrame(path, views, 100, 100, voxel.Options{}, &out))
	assert.Contains(t, out.String(), "plan")
	assert.NotContains(t, out.String(), "main")

	bad := writeShip(t, "bad.yaml", []byte("viewports:\n  - name: iso\n    position: EQUAL\n"))
	err := RunFrame(path, bad, 100, 100, voxel.Options{}, &out)
	assert.ErrorIs(t, err, voxel.ErrConfiguration)
}

func TestRunDigest(t *testing.T) {
	plain := writeShip(t, "slab.json", []byte(slab))
	packed, err := ship.Compress([]byte(slab))
	require.NoError(t, err)
	compressed := writeShip(t, "slab.json.zst", packed)

	var out bytes.Buffer
	require.NoError(t, RunDigest([]string{plain, compressed}, voxel.Options{}, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	a, b := strings.Fields(lines[0]), strings.Fields(lines[1])
	require.Len(t, a, 3)
	require.Len(t, b, 3)
	assert.Equal(t, a[0], b[0])
	assert.Equal(t, "385", a[1])
	assert.Equal(t, "slab.json", a[2])
	assert.Equal(t, "slab.json.zst", b[2])
}

func TestRunDigest_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, RunDigest(nil, voxel.Options{}, &out))

	plain := writeShip(t, "slab.json", []byte(slab))
	err := RunDigest([]string{plain, filepath.Join(t.TempDir(), "missing.json")}, voxel.Options{}, &out)
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRunGenerateShipsSeed(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()
	require.NoError(t, RunGenerateShipsSeed(42, 3, dirA, false))
	require.NoError(t, RunGenerateShipsSeed(42, 3, dirB, false))

	for i := 0; i < 3; i++ {
		name := "ship_" + string(rune('0'+i)) + ".json"
		a, err := os.ReadFile(filepath.Join(dirA, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dirB, name))
		require.NoError(t, err)
		assert.Equal(t, a, b, "same seed must give the same ship")

		info, err := ship.Load(filepath.Join(dirA, name))
		require.NoError(t, err)
		assert.NotEmpty(t, info.Groups)
		e := voxel.NewEngine(voxel.Options{})
		require.NoError(t, e.Layout(info))
		assert.Equal(t, info.VoxelCount(), e.Len())
	}
}

func TestRunGenerateShipsSeed_Compressed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, RunGenerateShipsSeed(7, 2, dir, true))

	matches, err := filepath.Glob(filepath.Join(dir, "*.json.zst"))
	require.NoError(t, err)
	require.Len(t, matches, 2)

	var out bytes.Buffer
	require.NoError(t, RunDigest(matches, voxel.Options{}, &out))
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 2)
}

func TestRunView_KeysAndQuit(t *testing.T) {
	path := writeShip(t, "slab.json", []byte(slab))
	cfg, err := config.Load("")
	require.NoError(t, err)

	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(60, 20)
	defer s.Fini()

	done := make(chan error, 1)
	go func() { done <- runView(context.Background(), s, path, cfg, zerolog.Nop()) }()

	s.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, '+', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("viewer did not quit")
	}

	cells, w, _ := s.GetContents()
	var top strings.Builder
	for x := 0; x < w; x++ {
		top.WriteString(string(cells[x].Runes))
	}
	assert.Contains(t, top.String(), "ship name: Slab")
}

func TestRunView_ContextCancel(t *testing.T) {
	path := writeShip(t, "slab.json", []byte(slab))
	cfg, err := config.Load("")
	require.NoError(t, err)

	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(40, 12)
	defer s.Fini()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, runView(ctx, s, path, cfg, zerolog.Nop()))
}

func TestRunView_BadShip(t *testing.T) {
	path := writeShip(t, "bad.json", []byte(`{}`))
	cfg, err := config.Load("")
	require.NoError(t, err)

	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	defer s.Fini()

	assert.ErrorIs(t, runView(context.Background(), s, path, cfg, zerolog.Nop()), ship.ErrMalformedInput)
}
