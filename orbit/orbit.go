// Package orbit aims a camera at a target and moves it around that target.
package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/voxelsplace/shipvox/camera"
)

const (
	minPolar    = 1e-3
	minDistance = 0.1
)

var (
	worldUp  = mgl64.Vec3{0, 1, 0}
	fallback = mgl64.Vec3{0, 0, -1}
)

// Control keeps a camera pointed at its target.
type Control struct {
	st     *camera.State
	target mgl64.Vec3
}

// Attach binds a control to a camera state. The state's current target is kept.
func Attach(st *camera.State) *Control {
	return &Control{st: st, target: st.Target}
}

// Target returns the point the camera orbits around.
func (c *Control) Target() mgl64.Vec3 {
	return c.target
}

// SetTarget changes the orbit center. Call Update to re-aim.
func (c *Control) SetTarget(target mgl64.Vec3) {
	c.target = target
	c.st.Target = target
}

// Update points the camera at the target with +Y up.
func (c *Control) Update() {
	offset := c.st.Position.Sub(c.target)
	dist := offset.Len()
	if dist == 0 {
		return
	}
	up := worldUp
	if math.Abs(offset.Normalize().Dot(worldUp)) > 1-1e-9 {
		up = fallback
	}
	view := mgl64.LookAtV(c.st.Position, c.target, up)
	c.st.Orientation = mgl64.Mat4ToQuat(view).Inverse().Normalize()
	c.st.Distance = dist
}

// Orbit rotates the camera around the target by the given azimuth and polar
// deltas in degrees, keeping the distance. The polar angle is clamped so the
// camera never flips over a pole.
func (c *Control) Orbit(azimuth, polar float64) {
	offset := c.st.Position.Sub(c.target)
	r := offset.Len()
	if r == 0 {
		return
	}
	theta := math.Atan2(offset[0], offset[2]) + mgl64.DegToRad(azimuth)
	phi := math.Acos(mgl64.Clamp(offset[1]/r, -1, 1)) - mgl64.DegToRad(polar)
	phi = mgl64.Clamp(phi, minPolar, math.Pi-minPolar)

	c.st.Position = c.target.Add(mgl64.Vec3{
		r * math.Sin(phi) * math.Sin(theta),
		r * math.Cos(phi),
		r * math.Sin(phi) * math.Cos(theta),
	})
	c.Update()
}

// Zoom scales the distance to the target. Factors below 1 move closer.
func (c *Control) Zoom(factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	offset := c.st.Position.Sub(c.target)
	r := offset.Len()
	if r == 0 {
		return
	}
	nr := math.Max(r*factor, minDistance)
	c.st.Position = c.target.Add(offset.Mul(nr / r))
	c.Update()
}
