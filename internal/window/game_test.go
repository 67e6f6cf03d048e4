package window

import (
	"errors"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/particle-field-go/internal/log"
	"github.com/olivierh59500/particle-field-go/internal/particles"
)

type fakeInput struct {
	x, y    int
	focused bool
	pressed map[ebiten.Key]bool
}

func (f *fakeInput) input() input {
	return input{
		cursor:  func() (int, int) { return f.x, f.y },
		focused: func() bool { return f.focused },
		justPressed: func(k ebiten.Key) bool {
			hit := f.pressed[k]
			delete(f.pressed, k)
			return hit
		},
	}
}

func (f *fakeInput) press(k ebiten.Key) {
	if f.pressed == nil {
		f.pressed = make(map[ebiten.Key]bool)
	}
	f.pressed[k] = true
}

func newTestGame(t *testing.T, n int) (*Game, *fakeInput) {
	t.Helper()
	o := particles.DefaultOptions(200, 100)
	o.Count = n
	o.Seed = 1
	sim, err := particles.NewSimulation(o)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	g := NewGame(sim, Settings{TPS: 60, Cursor: true}, log.Discard())
	f := &fakeInput{x: -1, y: -1}
	g.in = f.input()
	return g, f
}

func TestUpdateTracksPointerInsideFocusedWindow(t *testing.T) {
	g, f := newTestGame(t, 0)
	f.x, f.y, f.focused = 50, 40, true
	if err := g.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p := g.pointer.Snapshot(); !p.Present || p.X != 50 || p.Y != 40 {
		t.Fatalf("pointer = %+v, want present at (50,40)", p)
	}
	if !g.cursor.visible {
		t.Fatal("cursor ring hidden while pointer present")
	}

	f.x = 500
	g.Update()
	if g.pointer.Snapshot().Present {
		t.Fatal("pointer outside window still present")
	}
	if g.cursor.visible {
		t.Fatal("cursor ring visible after pointer left")
	}

	f.x, f.focused = 50, false
	g.Update()
	if g.pointer.Snapshot().Present {
		t.Fatal("pointer present while window unfocused")
	}
}

func TestPauseStopsTicks(t *testing.T) {
	g, f := newTestGame(t, 5)
	g.Update()
	if g.sim.Tick() != 1 {
		t.Fatalf("ticks = %d, want 1", g.sim.Tick())
	}
	f.press(ebiten.KeySpace)
	g.Update()
	g.Update()
	if g.sim.Tick() != 1 {
		t.Fatalf("ticks = %d while paused, want 1", g.sim.Tick())
	}
	f.press(ebiten.KeySpace)
	g.Update()
	if g.sim.Tick() != 2 {
		t.Fatalf("ticks = %d after resume, want 2", g.sim.Tick())
	}
}

func TestEscapeAndStopTerminate(t *testing.T) {
	g, f := newTestGame(t, 1)
	f.press(ebiten.KeyEscape)
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update after escape = %v, want Termination", err)
	}

	g, _ = newTestGame(t, 1)
	g.Stop()
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update after Stop = %v, want Termination", err)
	}
}

func TestSaveKeyCallsSave(t *testing.T) {
	g, f := newTestGame(t, 1)
	calls := 0
	g.settings.Save = func() error { calls++; return errors.New("disk full") }
	f.press(ebiten.KeyS)
	if err := g.Update(); err != nil {
		t.Fatalf("save failure leaked out of Update: %v", err)
	}
	if calls != 1 {
		t.Fatalf("save called %d times, want 1", calls)
	}
}

func TestRespawnKeyKeepsPopulation(t *testing.T) {
	g, f := newTestGame(t, 12)
	before := g.sim.Particles()
	f.press(ebiten.KeyR)
	g.Update()
	after := g.sim.Particles()
	if len(after) != 12 {
		t.Fatalf("population = %d, want 12", len(after))
	}
	if before[0] == after[0] {
		t.Fatal("respawn left the first particle untouched")
	}
}

func TestLayoutResizesSimulation(t *testing.T) {
	g, _ := newTestGame(t, 3)
	w, h := g.Layout(640, 480)
	if w != 640 || h != 480 {
		t.Fatalf("Layout = %dx%d, want 640x480", w, h)
	}
	if sw, sh := g.sim.Size(); sw != 640 || sh != 480 {
		t.Fatalf("simulation size = %fx%f, want 640x480", sw, sh)
	}
}

func TestCursorTrailLagsThenSettles(t *testing.T) {
	c := newCursorTrail(60)
	c.follow(0, 0)
	if c.x != 0 || c.y != 0 {
		t.Fatalf("first follow should snap, got (%f,%f)", c.x, c.y)
	}
	c.follow(100, 50)
	if c.x <= 0 || c.x >= 100 {
		t.Fatalf("ring x = %f after one step, want strictly between 0 and 100", c.x)
	}
	for i := 0; i < 600; i++ {
		c.follow(100, 50)
	}
	if math.Abs(c.x-100) > 0.01 || math.Abs(c.y-50) > 0.01 {
		t.Fatalf("ring settled at (%f,%f), want (100,50)", c.x, c.y)
	}
	c.hide()
	c.follow(10, 10)
	if c.x != 10 || c.y != 10 {
		t.Fatalf("follow after hide should snap, got (%f,%f)", c.x, c.y)
	}
}

func TestMinimizedLayoutKeepsBounds(t *testing.T) {
	g, _ := newTestGame(t, 20)
	before := g.sim.Particles()
	w, h := g.Layout(0, 0)
	if w != 200 || h != 100 {
		t.Fatalf("Layout(0,0) = %dx%d, want last size 200x100", w, h)
	}
	if sw, sh := g.sim.Size(); sw != 200 || sh != 100 {
		t.Fatalf("simulation size = %fx%f, want 200x100 kept", sw, sh)
	}
	for i := 0; i < 500; i++ {
		g.Update()
	}
	after := g.sim.Particles()
	for i, p := range after {
		if p.X < -1 || p.X > 201 || p.Y < -1 || p.Y > 101 {
			t.Fatalf("particle %d at (%f,%f) stranded (started %+v)", i, p.X, p.Y, before[i])
		}
	}
}

func TestFirstUsableLayoutRepopulates(t *testing.T) {
	o := particles.DefaultOptions(0, 0)
	o.Count = 15
	o.Seed = 2
	sim, err := particles.NewSimulation(o)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	g := NewGame(sim, Settings{TPS: 60}, log.Discard())
	if w, h := g.Layout(0, 0); w != 1 || h != 1 {
		t.Fatalf("Layout(0,0) on empty game = %dx%d, want 1x1", w, h)
	}
	g.Layout(300, 200)
	for i, p := range sim.Particles() {
		if p.X < 0 || p.X >= 300 || p.Y < 0 || p.Y >= 200 {
			t.Fatalf("particle %d at (%f,%f) outside 300x200", i, p.X, p.Y)
		}
	}
}

func TestCursorUsesParticleColour(t *testing.T) {
	g, _ := newTestGame(t, 0)
	dot, ring := g.cursorPaints()
	c := particles.DefaultColor
	if dot.R != c.R || dot.G != c.G || dot.B != c.B || dot.Alpha != 0.8 {
		t.Fatalf("dot paint = %+v", dot)
	}
	if ring.R != c.R || ring.Alpha != 0.5 {
		t.Fatalf("ring paint = %+v", ring)
	}
}

func TestStopFromAnotherGoroutine(t *testing.T) {
	g, _ := newTestGame(t, 1)
	done := make(chan struct{})
	go func() {
		g.Stop()
		close(done)
	}()
	<-done
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update = %v, want Termination", err)
	}
}
