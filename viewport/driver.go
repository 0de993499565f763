package viewport

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voxelsplace/shipvox/logging"
)

// TaskFunc renders one frame of one viewport.
type TaskFunc func() error

// Driver schedules per-viewport render tasks.
type Driver interface {
	// Register adds a task run once per tick. The returned func removes it.
	Register(name string, fn TaskFunc) (cancel func())
	// Do runs fn between frames, before the next round of tasks.
	Do(fn func())
}

type task struct {
	name    string
	fn      TaskFunc
	lastErr string
}

// TickDriver runs every registered task once per tick on a single goroutine.
// Tasks run in no particular order. A failing task is logged and does not
// keep the others from running.
type TickDriver struct {
	log      zerolog.Logger
	sampled  zerolog.Logger
	interval time.Duration

	mu      sync.Mutex
	nextID  int
	tasks   map[int]*task
	pending []func()
	after   []func()
}

// NewTickDriver returns a driver ticking fps times per second.
func NewTickDriver(fps int, log zerolog.Logger) *TickDriver {
	if fps <= 0 {
		fps = 30
	}
	return &TickDriver{
		log:      log,
		sampled:  logging.Sampled(log),
		interval: time.Second / time.Duration(fps),
		tasks:    make(map[int]*task),
	}
}

// Register implements Driver.
func (d *TickDriver) Register(name string, fn TaskFunc) func() {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.tasks[id] = &task{name: name, fn: fn}
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.tasks, id)
			d.mu.Unlock()
		})
	}
}

// Do implements Driver.
func (d *TickDriver) Do(fn func()) {
	d.mu.Lock()
	d.pending = append(d.pending, fn)
	d.mu.Unlock()
}

// OnTick adds a hook run after every round of tasks, e.g. to present the screen.
func (d *TickDriver) OnTick(fn func()) {
	d.mu.Lock()
	d.after = append(d.after, fn)
	d.mu.Unlock()
}

// Len returns the number of registered tasks.
func (d *TickDriver) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tasks)
}

// Tick runs pending Do funcs, then every task, then the OnTick hooks.
func (d *TickDriver) Tick() {
	d.mu.Lock()
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()
	for _, fn := range pending {
		fn()
	}

	d.mu.Lock()
	tasks := make([]*task, 0, len(d.tasks))
	for _, t := range d.tasks {
		tasks = append(tasks, t)
	}
	after := d.after
	d.mu.Unlock()

	for _, t := range tasks {
		d.run(t)
	}
	for _, fn := range after {
		fn()
	}
}

func (d *TickDriver) run(t *task) {
	err := t.fn()
	if err == nil {
		if t.lastErr != "" {
			d.log.Info().Str("viewport", t.name).Msg("render recovered")
			t.lastErr = ""
		}
		return
	}
	d.sampled.Debug().Err(err).Str("viewport", t.name).Msg("render failed")
	// a persistent failure is logged once, not on every frame
	if msg := err.Error(); msg != t.lastErr {
		d.log.Warn().Err(err).Str("viewport", t.name).Msg("render failed")
		t.lastErr = msg
	}
}

// Run ticks until ctx is done.
func (d *TickDriver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Tick()
		}
	}
}
