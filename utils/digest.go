package utils

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/voxelsplace/shipvox/api"
	"github.com/voxelsplace/shipvox/ship"
	"github.com/voxelsplace/shipvox/voxel"
)

// RunDigest lays out every input file in parallel and prints one layout
// digest per file, in input order. The first failing file aborts the run.
func RunDigest(inputFiles []string, opts voxel.Options, out io.Writer) error {
	if len(inputFiles) == 0 {
		return fmt.Errorf("no ship files provided")
	}
	type item struct {
		report *api.LayoutReport
		err    error
	}
	items := make([]item, len(inputFiles))

	var wg sync.WaitGroup
	for i := range inputFiles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			info, err := ship.Load(inputFiles[i])
			if err != nil {
				items[i].err = err
				return
			}
			r, err := api.Layout(info, opts)
			if err != nil {
				items[i].err = fmt.Errorf("%s: %w", inputFiles[i], err)
				return
			}
			items[i].report = r
		}(i)
	}
	wg.Wait()

	for _, it := range items {
		if it.err != nil {
			return it.err
		}
	}
	for i, it := range items {
		fmt.Fprintf(out, "%s  %8d  %s\n", it.report.Digest, it.report.Voxels, filepath.Base(inputFiles[i]))
	}
	return nil
}
