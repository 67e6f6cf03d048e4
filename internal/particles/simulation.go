// Package particles implements the constellation field: drifting points
// pushed away by the pointer and linked by fading lines when close.
package particles

import (
	"math/rand"
	"time"
)

// Simulation holds the particle field state. It is not safe for
// concurrent use; drive it from a single goroutine (see Loop).
type Simulation struct {
	opts      Options
	particles []Particle
	rng       *rand.Rand
	drift     *driftField
	edges     edgeFinder
	tick      uint64
}

// NewSimulation validates opts and populates the field.
func NewSimulation(opts Options) (*Simulation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Simulation{
		opts: opts,
		rng:  rand.New(rand.NewSource(seed)),
	}
	if opts.Drift > 0 {
		s.drift = newDriftField(seed, opts.Drift, opts.DriftScale)
	}
	s.Respawn()
	return s, nil
}

// Options returns the configuration including the current bounds.
func (s *Simulation) Options() Options {
	return s.opts
}

// Size returns the current bounds.
func (s *Simulation) Size() (w, h float64) {
	return s.opts.Width, s.opts.Height
}

// Tick returns the number of updates performed.
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// Len returns the population size.
func (s *Simulation) Len() int {
	return len(s.particles)
}

// Particles returns a copy of the population.
func (s *Simulation) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// SetParticles replaces the population with a copy of ps.
func (s *Simulation) SetParticles(ps []Particle) {
	s.particles = append(s.particles[:0], ps...)
}

// Respawn regenerates the whole population for the current bounds.
func (s *Simulation) Respawn() {
	s.particles = s.particles[:0]
	for i := 0; i < s.opts.Count; i++ {
		s.particles = append(s.particles, newParticle(s.rng, &s.opts))
	}
}

// Resize changes the bounds. Existing positions are kept as they are;
// anything now outside reflects back in on its next move.
func (s *Simulation) Resize(width, height float64) {
	if width < 0 || !finite(width) {
		width = 0
	}
	if height < 0 || !finite(height) {
		height = 0
	}
	if width == s.opts.Width && height == s.opts.Height {
		return
	}
	s.opts.Width, s.opts.Height = width, height
	if s.opts.RespawnOnResize {
		s.Respawn()
	}
}

// Update advances every particle by one tick.
func (s *Simulation) Update(ptr Pointer) {
	push := ptr.active()
	for i := range s.particles {
		p := &s.particles[i]
		if push {
			p.repel(ptr, s.opts.PointerForce)
		}
		if s.drift != nil {
			s.drift.push(p)
		}
		p.move(s.opts.Width, s.opts.Height, s.opts.Damping)
	}
	if s.drift != nil {
		s.drift.advance()
	}
	s.tick++
}

// Draw clears dst and renders the particles followed by their links.
func (s *Simulation) Draw(dst Surface) {
	dst.Clear()

	dot := paintOf(s.opts.Color, s.opts.ParticleAlpha)
	for i := range s.particles {
		p := &s.particles[i]
		dst.FillCircle(p.X, p.Y, p.Size, dot)
	}

	s.EachEdge(func(e Edge) {
		a, b := &s.particles[e.I], &s.particles[e.J]
		dst.StrokeLine(a.X, a.Y, b.X, b.Y, s.opts.LineWidth, paintOf(s.opts.Color, e.Opacity))
	})
}

// Frame runs one full tick against dst: pick up its size, update, draw.
func (s *Simulation) Frame(dst Surface, ptr Pointer) {
	s.Resize(dst.Size())
	s.Update(ptr)
	s.Draw(dst)
}

// EachEdge calls fn for every linked pair of the current positions.
func (s *Simulation) EachEdge(fn func(Edge)) {
	s.edges.each(s.particles, s.opts.LinkDistance, s.opts.Partition, fn)
}

// Edges collects the current links.
func (s *Simulation) Edges() []Edge {
	var out []Edge
	s.EachEdge(func(e Edge) { out = append(out, e) })
	return out
}
