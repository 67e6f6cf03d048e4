package particles

import (
	"math"
	"sort"
)

// Edge links two particles closer than the link distance. I < J always.
type Edge struct {
	I, J     int
	Distance float64
	Opacity  float64
}

// cell is a grid bucket coordinate. Particles may overshoot the surface
// by a frame, so coordinates can be negative.
type cell struct{ x, y int }

// edgeFinder reuses its buckets between frames.
type edgeFinder struct {
	bins map[cell][]int
}

func (f *edgeFinder) each(ps []Particle, maxDist float64, mode Partition, fn func(Edge)) {
	if len(ps) < 2 {
		return
	}
	if mode == PartitionAuto {
		mode = PartitionPairs
		if len(ps) > gridThreshold {
			mode = PartitionGrid
		}
	}
	if mode == PartitionGrid {
		f.grid(ps, maxDist, fn)
		return
	}
	pairs(ps, maxDist, fn)
}

func link(ps []Particle, i, j int, maxDist float64) (Edge, bool) {
	dx := ps[i].X - ps[j].X
	dy := ps[i].Y - ps[j].Y
	d := math.Sqrt(dx*dx + dy*dy)
	if !(d < maxDist) {
		return Edge{}, false
	}
	return Edge{I: i, J: j, Distance: d, Opacity: 1 - d/maxDist}, true
}

// pairs checks every unordered pair once.
func pairs(ps []Particle, maxDist float64, fn func(Edge)) {
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if e, ok := link(ps, i, j, maxDist); ok {
				fn(e)
			}
		}
	}
}

// grid buckets particles into maxDist-sized cells and only compares each
// particle against its own and the 8 neighbouring cells. Output order
// matches pairs.
func (f *edgeFinder) grid(ps []Particle, maxDist float64, fn func(Edge)) {
	if f.bins == nil {
		f.bins = make(map[cell][]int)
	}
	for k, bin := range f.bins {
		f.bins[k] = bin[:0]
	}
	for i := range ps {
		k := cellOf(ps[i], maxDist)
		f.bins[k] = append(f.bins[k], i)
	}

	var near []int
	for i := range ps {
		c := cellOf(ps[i], maxDist)
		near = near[:0]
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, j := range f.bins[cell{c.x + dx, c.y + dy}] {
					if j > i {
						near = append(near, j)
					}
				}
			}
		}
		sort.Ints(near)
		for _, j := range near {
			if e, ok := link(ps, i, j, maxDist); ok {
				fn(e)
			}
		}
	}
}

func cellOf(p Particle, size float64) cell {
	x, y := math.Floor(p.X/size), math.Floor(p.Y/size)
	if !finite(x) || !finite(y) {
		return cell{}
	}
	return cell{int(x), int(y)}
}
