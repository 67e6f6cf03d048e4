package window

import "github.com/charmbracelet/harmonica"

// cursorTrail is a ring that chases the pointer on a spring, lagging
// behind the dot drawn at the pointer itself.
type cursorTrail struct {
	spring   harmonica.Spring
	x, y     float64
	vx, vy   float64
	visible  bool
	anchored bool
}

func newCursorTrail(tps int) *cursorTrail {
	return &cursorTrail{spring: harmonica.NewSpring(harmonica.FPS(tps), 6.0, 1.0)}
}

// follow steps the ring towards (tx, ty). The first call after the pointer
// comes back snaps the ring into place.
func (c *cursorTrail) follow(tx, ty float64) {
	c.visible = true
	if !c.anchored {
		c.x, c.y, c.vx, c.vy = tx, ty, 0, 0
		c.anchored = true
		return
	}
	c.x, c.vx = c.spring.Update(c.x, c.vx, tx)
	c.y, c.vy = c.spring.Update(c.y, c.vy, ty)
}

func (c *cursorTrail) hide() {
	c.visible = false
	c.anchored = false
}
