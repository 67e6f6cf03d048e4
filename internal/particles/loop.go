package particles

import (
	"context"
	"sync"
	"time"
)

// Loop drives a Simulation against a Surface, one Frame per tick.
// All simulation and surface access happens on the goroutine calling Run;
// other goroutines hand work over with Do.
type Loop struct {
	sim     *Simulation
	surface Surface
	pointer PointerSource

	mu    sync.Mutex
	queue []func(*Simulation)

	stop     chan struct{}
	stopOnce sync.Once
	frames   uint64
}

// NewLoop wires sim to surface with pointer as the input source. A nil
// pointer source means the pointer is never present.
func NewLoop(sim *Simulation, surface Surface, pointer PointerSource) *Loop {
	return &Loop{
		sim:     sim,
		surface: surface,
		pointer: pointer,
		stop:    make(chan struct{}),
	}
}

// Do queues fn to run on the loop goroutine before the next frame.
func (l *Loop) Do(fn func(*Simulation)) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
}

// Stop ends Run. It is safe to call more than once and from any goroutine.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Done is closed once Stop has been called.
func (l *Loop) Done() <-chan struct{} {
	return l.stop
}

// Frames returns the number of frames rendered. Only meaningful from the
// loop goroutine or after Run has returned.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Run renders one frame for every value received from ticks. It returns
// nil after Stop or when ticks is closed, and ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			l.Step()
		}
	}
}

// Step drains queued work and renders a single frame.
func (l *Loop) Step() {
	l.mu.Lock()
	queued := l.queue
	l.queue = nil
	l.mu.Unlock()
	for _, fn := range queued {
		fn(l.sim)
	}

	ptr := NoPointer
	if l.pointer != nil {
		ptr = l.pointer.Snapshot()
	}
	l.sim.Frame(l.surface, ptr)
	if p, ok := l.surface.(Presenter); ok {
		p.Present()
	}
	l.frames++
}
