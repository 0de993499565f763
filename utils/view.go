package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/voxelsplace/shipvox/config"
	"github.com/voxelsplace/shipvox/render/term"
	"github.com/voxelsplace/shipvox/scene"
	"github.com/voxelsplace/shipvox/ship"
	"github.com/voxelsplace/shipvox/viewport"
	"github.com/voxelsplace/shipvox/voxel"
)

const (
	orbitStep = 5.0
	zoomStep  = 1.1
)

// RunView opens the ship in an interactive terminal viewer until the user
// quits. The logger must not write to the terminal.
func RunView(path string, cfg config.Config, log zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	return runView(context.Background(), screen, path, cfg, log)
}

func runView(ctx context.Context, screen tcell.Screen, path string, cfg config.Config, log zerolog.Logger) error {
	info, err := ship.Load(path)
	if err != nil {
		return fmt.Errorf("load ship: %w", err)
	}
	defs, err := config.LoadViewports(cfg.ViewportsFile)
	if err != nil {
		return fmt.Errorf("load viewports: %w", err)
	}
	materials, err := cfg.SceneMaterials()
	if err != nil {
		return err
	}

	w, h := screen.Size()
	regions := term.Tile(screen, w, h, len(defs))
	vps := make([]*viewport.Viewport, len(defs))
	for i, d := range defs {
		r := term.NewRenderer(regions[i])
		r.SetBackground(cfg.BackgroundColor())
		if vps[i], err = viewport.New(d.Name, d.Main, d.Setup(), regions[i], r); err != nil {
			return err
		}
	}

	driver := viewport.NewTickDriver(cfg.FPS, log)
	driver.OnTick(screen.Show)
	coord := viewport.NewCoordinator(driver, scene.New(cfg.CubeSize, materials),
		voxel.Options{CubeExtent: cfg.CubeExtent}, log, vps...)
	if err := coord.Start(info); err != nil {
		return err
	}
	defer coord.Close()
	driver.Tick()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return waitDriver(done)
		case ev, ok := <-events:
			if !ok {
				cancel()
				return waitDriver(done)
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				w, h := ev.Size()
				driver.Do(func() {
					term.Retile(regions, w, h)
					screen.Clear()
					coord.Resize()
				})
			case *tcell.EventKey:
				if handleKey(ev, path, driver, coord, log) {
					cancel()
					return waitDriver(done)
				}
			}
		}
	}
}

// handleKey applies a key press and reports whether the viewer should quit.
func handleKey(ev *tcell.EventKey, path string, driver viewport.Driver, coord *viewport.Coordinator, log zerolog.Logger) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		orbitControls(driver, coord, -orbitStep, 0)
	case tcell.KeyRight:
		orbitControls(driver, coord, orbitStep, 0)
	case tcell.KeyUp:
		orbitControls(driver, coord, 0, -orbitStep)
	case tcell.KeyDown:
		orbitControls(driver, coord, 0, orbitStep)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'r', 'R':
			info, err := ship.Load(path)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("reload failed")
				return false
			}
			driver.Do(func() {
				if err := coord.Load(info, true); err != nil {
					log.Warn().Err(err).Str("path", path).Msg("reload failed")
				}
			})
		case '+', '=':
			zoomControls(driver, coord, 1/zoomStep)
		case '-', '_':
			zoomControls(driver, coord, zoomStep)
		}
	}
	return false
}

func orbitControls(driver viewport.Driver, coord *viewport.Coordinator, azimuth, polar float64) {
	driver.Do(func() {
		for _, v := range coord.Viewports() {
			if v.Controls != nil {
				v.Controls.Orbit(azimuth, polar)
			}
		}
	})
}

func zoomControls(driver viewport.Driver, coord *viewport.Coordinator, factor float64) {
	driver.Do(func() {
		for _, v := range coord.Viewports() {
			if v.Controls != nil {
				v.Controls.Zoom(factor)
			}
		}
	})
}

func waitDriver(done <-chan error) error {
	err := <-done
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
