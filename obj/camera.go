package obj

import (
	"github.com/jakecoffman/cp"
)

// Camera is the world-space viewport the simulation is seen through. It
// follows a target and stays inside the world bounds.
type Camera struct {
	PosX float64
	PosY float64

	viewW float64
	viewH float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64
}

// NewCamera creates a camera showing viewW x viewH world units.
func NewCamera(viewW, viewH float64) *Camera {
	return &Camera{viewW: viewW, viewH: viewH, PosX: viewW / 2, PosY: viewH / 2}
}

// SetViewSize updates the world-space size of the view.
func (c *Camera) SetViewSize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c.viewW = w
	c.viewH = h
	c.clampToWorld()
}

// SetWorldBounds sets the world pixel dimensions for clamping camera position.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) ViewSize() (float64, float64) {
	return c.viewW, c.viewH
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() cp.Vector {
	return cp.Vector{X: c.PosX - c.viewW/2, Y: c.PosY - c.viewH/2}
}

// Viewport is the world-space box of the view.
func (c *Camera) Viewport() cp.BB {
	return cp.NewBBForExtents(c.Middle(), c.viewW/2, c.viewH/2)
}

// Middle is the world point at the centre of the view.
func (c *Camera) Middle() cp.Vector {
	return cp.Vector{X: c.PosX, Y: c.PosY}
}

// OutOfScreen reports whether pos falls outside the view.
func (c *Camera) OutOfScreen(pos cp.Vector) bool {
	if c == nil {
		return false
	}
	return !c.Viewport().ContainsVect(pos)
}

// ViewToWorld converts a point in view coordinates to world coordinates.
func (c *Camera) ViewToWorld(p cp.Vector) cp.Vector {
	return c.ViewTopLeft().Add(p)
}

// Update centres the camera on target, clamped to the world bounds.
func (c *Camera) Update(target cp.Vector) {
	if c == nil {
		return
	}
	c.PosX = target.X
	c.PosY = target.Y
	c.clampToWorld()
}

func (c *Camera) clampToWorld() {
	halfW := c.viewW / 2.0
	halfH := c.viewH / 2.0
	if c.worldW > 0 {
		minX := halfW
		maxX := c.worldW - halfW
		if maxX < minX {
			// world smaller than view: center on world
			c.PosX = c.worldW / 2.0
		} else {
			c.PosX = clamp(c.PosX, minX, maxX)
		}
	}

	if c.worldH > 0 {
		minY := halfH
		maxY := c.worldH - halfH
		if maxY < minY {
			c.PosY = c.worldH / 2.0
		} else {
			c.PosY = clamp(c.PosY, minY, maxY)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
