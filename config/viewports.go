package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/voxelsplace/shipvox/camera"
	"github.com/voxelsplace/shipvox/voxel"
)

// ViewportDef describes one viewport.
type ViewportDef struct {
	Name     string        `yaml:"name"`
	Main     bool          `yaml:"main"`
	Camera   camera.Type   `yaml:"camera"`
	Position camera.Preset `yaml:"position"`
	Controls bool          `yaml:"controls"`
}

// Setup returns the framing inputs of the viewport.
func (d ViewportDef) Setup() camera.Setup {
	return camera.Setup{Type: d.Camera, Preset: d.Position, UseControls: d.Controls}
}

type viewportsFile struct {
	Viewports []ViewportDef `yaml:"viewports"`
}

// DefaultViewports returns the four-view layout: an orbiting perspective main
// view and fixed orthographic front, side and top views.
func DefaultViewports() []ViewportDef {
	return []ViewportDef{
		{Name: "main", Main: true, Camera: camera.Perspective, Position: camera.Equal, Controls: true},
		{Name: "front", Camera: camera.Orthographic, Position: camera.Front},
		{Name: "side", Camera: camera.Orthographic, Position: camera.Side},
		{Name: "top", Camera: camera.Orthographic, Position: camera.Top},
	}
}

// LoadViewports reads a viewport list from a YAML file. An empty path returns
// DefaultViewports.
func LoadViewports(path string) ([]ViewportDef, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultViewports(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseViewports(b)
}

// ParseViewports decodes and validates a YAML viewport list.
func ParseViewports(b []byte) ([]ViewportDef, error) {
	var f viewportsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("viewports.yaml: %w", err)
	}
	if err := ValidateViewports(f.Viewports); err != nil {
		return nil, fmt.Errorf("viewports.yaml: %w", err)
	}
	return f.Viewports, nil
}

// ValidateViewports requires at least one viewport, unique names, at most one
// main viewport and a valid setup for each.
func ValidateViewports(defs []ViewportDef) error {
	if len(defs) == 0 {
		return fmt.Errorf("%w: no viewports", voxel.ErrConfiguration)
	}
	seen := make(map[string]bool, len(defs))
	mains := 0
	for i, d := range defs {
		if d.Name == "" {
			return fmt.Errorf("%w: viewport %d has no name", voxel.ErrConfiguration, i)
		}
		if seen[d.Name] {
			return fmt.Errorf("%w: duplicate viewport %q", voxel.ErrConfiguration, d.Name)
		}
		seen[d.Name] = true
		if d.Main {
			mains++
		}
		if err := d.Setup().Validate(); err != nil {
			return fmt.Errorf("viewport %q: %w", d.Name, err)
		}
	}
	if mains > 1 {
		return fmt.Errorf("%w: %d main viewports", voxel.ErrConfiguration, mains)
	}
	return nil
}
