package particles

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// Defaults give the classic constellation look.
const (
	DefaultCount           = 80
	DefaultPointerRadius   = 150.0
	DefaultPointerForce    = 0.2
	DefaultLinkDistance    = 120.0
	DefaultDamping         = 0.99
	DefaultMaxInitialSpeed = 0.25
	DefaultMinSize         = 1.0
	DefaultMaxSize         = 3.0
	DefaultLineWidth       = 0.5
	DefaultParticleAlpha   = 0.8
	DefaultDriftScale      = 0.005

	// gridThreshold is the population size above which PartitionAuto
	// switches from the all-pairs pass to grid buckets.
	gridThreshold = 256
)

// DefaultColor is rgb(102, 126, 234).
var DefaultColor = color.RGBA{R: 102, G: 126, B: 234, A: 255}

// ErrInvalidOptions is wrapped by every validation failure.
var ErrInvalidOptions = errors.New("invalid particle options")

// Partition selects how the edge pass finds close pairs.
type Partition int

const (
	PartitionAuto Partition = iota
	PartitionPairs
	PartitionGrid
)

func (p Partition) String() string {
	switch p {
	case PartitionAuto:
		return "auto"
	case PartitionPairs:
		return "pairs"
	case PartitionGrid:
		return "grid"
	default:
		return "unknown"
	}
}

// ParsePartition accepts "auto", "pairs" or "grid".
func ParsePartition(s string) (Partition, error) {
	switch s {
	case "", "auto":
		return PartitionAuto, nil
	case "pairs":
		return PartitionPairs, nil
	case "grid":
		return PartitionGrid, nil
	}
	return PartitionAuto, fmt.Errorf("partition %q: %w", s, ErrInvalidOptions)
}

// Options configures a Simulation.
type Options struct {
	Width, Height float64
	Count         int

	PointerRadius   float64
	PointerForce    float64
	LinkDistance    float64
	Damping         float64
	MaxInitialSpeed float64
	MinSize         float64
	MaxSize         float64

	Color         color.RGBA
	ParticleAlpha float64
	LineWidth     float64

	// Drift > 0 adds a Perlin flow field on top of the base motion.
	Drift      float64
	DriftScale float64

	Partition       Partition
	RespawnOnResize bool

	// Seed 0 seeds from the clock.
	Seed int64
}

// DefaultOptions returns the stock configuration for a width x height surface.
func DefaultOptions(width, height float64) Options {
	return Options{
		Width:           width,
		Height:          height,
		Count:           DefaultCount,
		PointerRadius:   DefaultPointerRadius,
		PointerForce:    DefaultPointerForce,
		LinkDistance:    DefaultLinkDistance,
		Damping:         DefaultDamping,
		MaxInitialSpeed: DefaultMaxInitialSpeed,
		MinSize:         DefaultMinSize,
		MaxSize:         DefaultMaxSize,
		Color:           DefaultColor,
		ParticleAlpha:   DefaultParticleAlpha,
		LineWidth:       DefaultLineWidth,
		DriftScale:      DefaultDriftScale,
	}
}

// Validate reports the first out-of-range field.
func (o Options) Validate() error {
	switch {
	case o.Count < 0:
		return fmt.Errorf("particle count %d is negative: %w", o.Count, ErrInvalidOptions)
	case !finite(o.Width) || !finite(o.Height) || o.Width < 0 || o.Height < 0:
		return fmt.Errorf("surface size %gx%g: %w", o.Width, o.Height, ErrInvalidOptions)
	case !(o.PointerRadius > 0) || !finite(o.PointerRadius):
		return fmt.Errorf("pointer radius %g must be positive: %w", o.PointerRadius, ErrInvalidOptions)
	case !finite(o.PointerForce):
		return fmt.Errorf("pointer force %g: %w", o.PointerForce, ErrInvalidOptions)
	case !(o.LinkDistance > 0) || !finite(o.LinkDistance):
		return fmt.Errorf("link distance %g must be positive: %w", o.LinkDistance, ErrInvalidOptions)
	case !(o.Damping > 0 && o.Damping <= 1):
		return fmt.Errorf("damping %g outside (0,1]: %w", o.Damping, ErrInvalidOptions)
	case !(o.MaxInitialSpeed >= 0) || !finite(o.MaxInitialSpeed):
		return fmt.Errorf("initial speed %g: %w", o.MaxInitialSpeed, ErrInvalidOptions)
	case !(o.MinSize >= 0) || !finite(o.MaxSize) || o.MinSize > o.MaxSize:
		return fmt.Errorf("size range [%g,%g): %w", o.MinSize, o.MaxSize, ErrInvalidOptions)
	case !(o.ParticleAlpha >= 0 && o.ParticleAlpha <= 1):
		return fmt.Errorf("particle alpha %g outside [0,1]: %w", o.ParticleAlpha, ErrInvalidOptions)
	case !(o.LineWidth >= 0) || !finite(o.LineWidth):
		return fmt.Errorf("line width %g: %w", o.LineWidth, ErrInvalidOptions)
	case !(o.Drift >= 0) || !finite(o.Drift):
		return fmt.Errorf("drift %g: %w", o.Drift, ErrInvalidOptions)
	case o.Drift > 0 && !(o.DriftScale > 0):
		return fmt.Errorf("drift scale %g must be positive: %w", o.DriftScale, ErrInvalidOptions)
	case o.Partition < PartitionAuto || o.Partition > PartitionGrid:
		return fmt.Errorf("partition %d: %w", o.Partition, ErrInvalidOptions)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
