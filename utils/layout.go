package utils

import (
	"fmt"
	"io"

	"github.com/voxelsplace/shipvox/api"
	"github.com/voxelsplace/shipvox/ship"
	"github.com/voxelsplace/shipvox/voxel"
)

// RunLayout loads a ship file, lays it out and prints the result.
func RunLayout(inPath string, opts voxel.Options, out io.Writer) error {
	info, err := ship.Load(inPath)
	if err != nil {
		return fmt.Errorf("load ship: %w", err)
	}
	r, err := api.Layout(info, opts)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	fmt.Fprintln(out, r.Summary)
	fmt.Fprintf(out, "groups: %d  grids: %d  voxels: %d  accent: %d  exposed: %d\n",
		r.Groups, r.Grids, r.Voxels, r.Accent, r.Exposed)
	fmt.Fprintf(out, "bounds: %v .. %v  size: %v\n", r.Min, r.Max, r.Size)
	fmt.Fprintf(out, "translation: %v\n", r.Translation)
	fmt.Fprintf(out, "digest: %s\n", r.Digest)
	return nil
}
