package viewport

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/voxelsplace/shipvox/camera"
	"github.com/voxelsplace/shipvox/render"
	"github.com/voxelsplace/shipvox/scene"
	"github.com/voxelsplace/shipvox/ship"
	"github.com/voxelsplace/shipvox/voxel"
)

// Coordinator owns the viewports, the layout engine and the scene. Load, Resize
// and Close mutate shared state and must run between frames, i.e. before
// Start or from Driver.Do.
type Coordinator struct {
	log       zerolog.Logger
	driver    Driver
	opts      voxel.Options
	engine    *voxel.Engine
	scene     *scene.Scene
	info      *ship.Info
	viewports []*Viewport
	started   bool
}

// NewCoordinator wires viewports to a driver and a scene.
func NewCoordinator(driver Driver, sc *scene.Scene, opts voxel.Options, log zerolog.Logger, viewports ...*Viewport) *Coordinator {
	return &Coordinator{
		log:       log,
		driver:    driver,
		opts:      opts,
		engine:    voxel.NewEngine(opts),
		scene:     sc,
		viewports: viewports,
	}
}

// Start attaches controls, loads info and then registers one render task per
// viewport. Nothing is registered when the first load fails.
func (c *Coordinator) Start(info *ship.Info) error {
	if c.started {
		return errors.New("coordinator already started")
	}
	for _, v := range c.viewports {
		v.attachControls()
	}
	if err := c.Load(info, false); err != nil {
		return err
	}
	for _, v := range c.viewports {
		v.cancel = c.driver.Register(v.Name, c.renderTask(v))
	}
	c.started = true
	return nil
}

func (c *Coordinator) renderTask(v *Viewport) TaskFunc {
	return func() error {
		if err := v.Renderer.Render(c.scene, &v.Camera); err != nil {
			return fmt.Errorf("render %s: %w", v.Name, err)
		}
		return nil
	}
}

// Load lays info out, rebuilds the scene, frames every viewport, resizes and
// refreshes the overlays. With rerender the previous placements are dropped
// first, otherwise the new ship is added to them. On error the previous
// model stays in place untouched.
func (c *Coordinator) Load(info *ship.Info, rerender bool) error {
	if info == nil {
		return errors.New("load: no ship")
	}
	start := time.Now()
	for _, v := range c.viewports {
		if err := v.Setup.Validate(); err != nil {
			return fmt.Errorf("viewport %q: %w", v.Name, err)
		}
		if v.Setup.UseControls && v.Controls == nil {
			v.attachControls()
		}
	}

	engine := c.engine
	if rerender {
		engine = voxel.NewEngine(c.opts)
	}
	if err := engine.Layout(info); err != nil {
		return fmt.Errorf("layout %s: %w", info.ShipName, err)
	}

	c.engine = engine
	c.info = info
	c.scene.Build(engine)

	bounds := engine.Bounds()
	for _, v := range c.viewports {
		// setups were validated above, framing cannot fail here
		if err := camera.Frame(&v.Camera, v.Setup, bounds, v.aimer()); err != nil {
			return fmt.Errorf("frame %s: %w", v.Name, err)
		}
	}
	c.Resize()
	c.refreshOverlays()

	c.log.Info().
		Str("ship", info.ShipName).
		Int("voxels", engine.Len()).
		Int("exposed", engine.ExposedCount()).
		Str("digest", fmt.Sprintf("%016x", engine.Digest())).
		Bool("rerender", rerender).
		Dur("duration", time.Since(start)).
		Msg("ship loaded")
	return nil
}

// Resize runs the size pass: output sizes and camera aspects follow the
// surfaces. Framing is left alone.
func (c *Coordinator) Resize() {
	for _, v := range c.viewports {
		w, h := v.Surface.Size()
		v.Renderer.SetOutputSize(w, h)
		aspect := render.Aspect(w, h)
		if aspect == 0 {
			c.log.Debug().Str("viewport", v.Name).Int("w", w).Int("h", h).Msg("viewport has no area")
			continue
		}
		camera.SetAspect(&v.Camera, aspect)
	}
}

func (c *Coordinator) refreshOverlays() {
	for _, v := range c.viewports {
		if v.Main {
			v.Surface.SetOverlay(c.info.Summary())
		} else {
			v.Surface.SetOverlay(v.Label())
		}
	}
}

// Close removes every render task.
func (c *Coordinator) Close() {
	for _, v := range c.viewports {
		if v.cancel != nil {
			v.cancel()
			v.cancel = nil
		}
	}
	c.started = false
}

// Viewports returns the managed viewports.
func (c *Coordinator) Viewports() []*Viewport { return c.viewports }

// Engine returns the engine holding the current placements.
func (c *Coordinator) Engine() *voxel.Engine { return c.engine }

// Scene returns the shared scene.
func (c *Coordinator) Scene() *scene.Scene { return c.scene }

// Info returns the last successfully loaded ship.
func (c *Coordinator) Info() *ship.Info { return c.info }
