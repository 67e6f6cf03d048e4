package particles

import (
	"math"
	"math/rand"
)

// Particle is a single point in the field.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity
	Size   float64 // Radius, fixed at creation
}

// Speed returns the velocity magnitude.
func (p *Particle) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

func newParticle(rng *rand.Rand, o *Options) Particle {
	return Particle{
		X:    rng.Float64() * o.Width,
		Y:    rng.Float64() * o.Height,
		VX:   (rng.Float64()*2 - 1) * o.MaxInitialSpeed,
		VY:   (rng.Float64()*2 - 1) * o.MaxInitialSpeed,
		Size: o.MinSize + rng.Float64()*(o.MaxSize-o.MinSize),
	}
}

// repel pushes p away from the pointer, falling off linearly to zero at
// the pointer radius.
func (p *Particle) repel(ptr Pointer, strength float64) {
	dx := ptr.X - p.X
	dy := ptr.Y - p.Y
	d := math.Sqrt(dx*dx + dy*dy)
	if d >= ptr.Radius {
		return
	}
	force := (ptr.Radius - d) / ptr.Radius
	angle := math.Atan2(dy, dx)
	p.VX -= math.Cos(angle) * force * strength
	p.VY -= math.Sin(angle) * force * strength
}

// move integrates one tick inside a width x height box, flipping the
// velocity sign on any axis that ended up out of bounds.
func (p *Particle) move(width, height, damping float64) {
	p.X += p.VX
	p.Y += p.VY

	if p.X < 0 || p.X > width {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > height {
		p.VY = -p.VY
	}

	p.VX *= damping
	p.VY *= damping

	if !finite(p.VX) {
		p.VX = 0
	}
	if !finite(p.VY) {
		p.VY = 0
	}
}
