package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/voxelsplace/shipvox/camera"
	"github.com/voxelsplace/shipvox/render"
	"github.com/voxelsplace/shipvox/scene"
)

const upperHalf = '▀'

// Renderer rasterizes exposed cubes of a scene into a Region. Each cube is
// drawn as the screen rectangle covering its projected corners, depth tested
// at its centre.
type Renderer struct {
	region     *Region
	background uint32
	overlay    tcell.Style

	w, h  int
	color []uint32
	depth []float64
}

// NewRenderer returns a renderer drawing into region. Call SetOutputSize
// before the first render.
func NewRenderer(region *Region) *Renderer {
	return &Renderer{
		region:     region,
		background: 0x000000,
		overlay:    tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	}
}

// SetBackground changes the clear colour, 0xRRGGBB.
func (r *Renderer) SetBackground(c uint32) {
	r.background = c
}

// SetOutputSize resizes the pixel buffers.
func (r *Renderer) SetOutputSize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == r.w && h == r.h {
		return
	}
	r.w, r.h = w, h
	r.color = make([]uint32, w*h)
	r.depth = make([]float64, w*h)
}

// Size returns the pixel buffer size.
func (r *Renderer) Size() (int, int) {
	return r.w, r.h
}

// Render draws sc through cam and writes the result and the overlay into the
// region. The screen still needs a Show to become visible.
func (r *Renderer) Render(sc *scene.Scene, cam *camera.State) error {
	if r.w == 0 || r.h == 0 {
		return render.ErrZeroSize
	}
	if sw, sh := r.region.Size(); sw == 0 || sh == 0 {
		return render.ErrZeroSize
	}

	for i := range r.color {
		r.color[i] = r.background
		r.depth[i] = math.Inf(1)
	}

	vp := cam.ViewProjection()
	sc.Walk(func(world mgl64.Vec3, m *scene.Mesh) {
		if !m.Exposed() {
			return
		}
		r.rasterize(vp, world, m, sc.Material(m.Material).Color)
	})

	r.region.drawOverlay(r.overlay)
	r.flush()
	return nil
}

func (r *Renderer) rasterize(vp mgl64.Mat4, world mgl64.Vec3, m *scene.Mesh, color uint32) {
	center, ok := project(vp, world)
	if !ok || center[2] < -1 || center[2] > 1 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range m.Geometry.Corners() {
		p, ok := project(vp, world.Add(c))
		if !ok {
			return
		}
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}

	// NDC to pixels, y down
	fw, fh := float64(r.w), float64(r.h)
	x0 := int(math.Floor((minX + 1) / 2 * fw))
	x1 := int(math.Ceil((maxX+1)/2*fw)) - 1
	y0 := int(math.Floor((1 - maxY) / 2 * fh))
	y1 := int(math.Ceil((1-minY)/2*fh)) - 1
	x1, y1 = max(x1, x0), max(y1, y0)
	if x1 < 0 || y1 < 0 || x0 >= r.w || y0 >= r.h {
		return
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, r.w-1), min(y1, r.h-1)

	z := center[2]
	for y := y0; y <= y1; y++ {
		row := y * r.w
		for x := x0; x <= x1; x++ {
			if z < r.depth[row+x] {
				r.depth[row+x] = z
				r.color[row+x] = color
			}
		}
	}
}

// project returns normalized device coordinates, false behind the camera.
func project(vp mgl64.Mat4, p mgl64.Vec3) (mgl64.Vec3, bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return mgl64.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip[3]), true
}

func (r *Renderer) flush() {
	reg := r.region
	rows := min(r.h/2, reg.h-overlayRows)
	cols := min(r.w, reg.w)
	for cy := 0; cy < rows; cy++ {
		top := r.color[(2*cy)*r.w:]
		bottom := r.color[(2*cy+1)*r.w:]
		for cx := 0; cx < cols; cx++ {
			style := tcell.StyleDefault.Foreground(rgb(top[cx])).Background(rgb(bottom[cx]))
			reg.screen.SetContent(reg.x+cx, reg.y+overlayRows+cy, upperHalf, nil, style)
		}
	}
}

func rgb(c uint32) tcell.Color {
	return tcell.NewRGBColor(int32(c>>16&0xff), int32(c>>8&0xff), int32(c&0xff))
}
