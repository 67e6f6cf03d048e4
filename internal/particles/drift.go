package particles

import (
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	driftAlpha = 2.0
	driftBeta  = 2.0
	driftOct   = 3
	driftStep  = 0.01
)

// driftField is a slowly evolving Perlin flow field.
type driftField struct {
	noise    *perlin.Perlin
	strength float64
	scale    float64
	t        float64
}

func newDriftField(seed int64, strength, scale float64) *driftField {
	return &driftField{
		noise:    perlin.NewPerlin(driftAlpha, driftBeta, driftOct, seed),
		strength: strength,
		scale:    scale,
	}
}

func (f *driftField) push(p *Particle) {
	n := f.noise.Noise3D(p.X*f.scale, p.Y*f.scale, f.t)
	angle := n * 2 * math.Pi
	p.VX += math.Cos(angle) * f.strength
	p.VY += math.Sin(angle) * f.strength
}

func (f *driftField) advance() {
	f.t += driftStep
}
