package utils

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/voxelsplace/shipvox/api"
	"github.com/voxelsplace/shipvox/config"
	"github.com/voxelsplace/shipvox/ship"
	"github.com/voxelsplace/shipvox/voxel"
)

// RunFrame frames a ship for every viewport of viewportsPath (empty for the
// default views) on w×h pixel surfaces and prints the camera states.
func RunFrame(inPath, viewportsPath string, w, h int, opts voxel.Options, out io.Writer) error {
	info, err := ship.Load(inPath)
	if err != nil {
		return fmt.Errorf("load ship: %w", err)
	}
	defs, err := config.LoadViewports(viewportsPath)
	if err != nil {
		return fmt.Errorf("load viewports: %w", err)
	}
	cams, err := api.Frame(info, defs, w, h, opts)
	if err != nil {
		return fmt.Errorf("frame: %w", err)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VIEWPORT\tTYPE\tPOSITION\tEYE\tTARGET\tDISTANCE\tPROJECTION")
	for _, c := range cams {
		proj := fmt.Sprintf("fov=%g aspect=%.3f", c.FOV, c.Aspect)
		if c.Type == "orthographic" {
			proj = fmt.Sprintf("size=%g l=%g r=%g t=%g b=%g", c.OrthoSize, c.Left, c.Right, c.Top, c.Bottom)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%v\t%v\t%g\t%s\n", c.Name, c.Type, c.Position, c.Eye, c.Target, c.Distance, proj)
	}
	return tw.Flush()
}
