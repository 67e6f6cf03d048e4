package particles

import "sync"

// Pointer is a per-frame snapshot of the pointer state.
type Pointer struct {
	X, Y    float64
	Present bool
	Radius  float64
}

// NoPointer is the snapshot used when nothing is hovering the surface.
var NoPointer = Pointer{}

// active reports whether the pointer can push particles this frame.
func (p Pointer) active() bool {
	return p.Present && finite(p.X) && finite(p.Y) && p.Radius > 0 && finite(p.Radius)
}

// PointerSource hands out pointer snapshots.
type PointerSource interface {
	Snapshot() Pointer
}

// PointerTracker holds the live pointer state written by event handlers.
// It is safe for use from several goroutines.
type PointerTracker struct {
	mu      sync.Mutex
	x, y    float64
	present bool
	radius  float64
}

// NewPointerTracker returns a tracker with no pointer present.
func NewPointerTracker(radius float64) *PointerTracker {
	return &PointerTracker{radius: radius}
}

// Move records a pointer position.
func (t *PointerTracker) Move(x, y float64) {
	t.mu.Lock()
	t.x, t.y = x, y
	t.present = true
	t.mu.Unlock()
}

// Leave marks the pointer as gone from the surface.
func (t *PointerTracker) Leave() {
	t.mu.Lock()
	t.present = false
	t.mu.Unlock()
}

func (t *PointerTracker) Snapshot() Pointer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.present {
		return Pointer{Radius: t.radius}
	}
	return Pointer{X: t.x, Y: t.y, Present: true, Radius: t.radius}
}
