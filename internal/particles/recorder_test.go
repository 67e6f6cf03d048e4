package particles

import (
	"math"
	"testing"
)

type opKind int

const (
	opClear opKind = iota
	opCircle
	opLine
)

type op struct {
	kind           opKind
	x0, y0, x1, y1 float64
	r, width       float64
	paint          Paint
}

// recorder is a Surface that remembers every draw call.
type recorder struct {
	w, h     float64
	ops      []op
	presents int
}

func newRecorder(w, h float64) *recorder {
	return &recorder{w: w, h: h}
}

func (r *recorder) Size() (float64, float64) { return r.w, r.h }

func (r *recorder) Clear() {
	r.ops = append(r.ops[:0], op{kind: opClear})
}

func (r *recorder) FillCircle(x, y, rad float64, p Paint) {
	r.ops = append(r.ops, op{kind: opCircle, x0: x, y0: y, r: rad, paint: p})
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, p Paint) {
	r.ops = append(r.ops, op{kind: opLine, x0: x0, y0: y0, x1: x1, y1: y1, width: width, paint: p})
}

func (r *recorder) Present() { r.presents++ }

func (r *recorder) count(k opKind) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == k {
			n++
		}
	}
	return n
}

func (r *recorder) lines() []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == opLine {
			out = append(out, o)
		}
	}
	return out
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// testOptions returns deterministic defaults for a w x h surface.
func testOptions(w, h float64, n int) Options {
	o := DefaultOptions(w, h)
	o.Count = n
	o.Seed = 42
	return o
}

func mustSim(t testing.TB, o Options) *Simulation {
	t.Helper()
	s, err := NewSimulation(o)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	return s
}
