// Package terminal runs the particle field inside a terminal via tcell.
package terminal

import (
	"context"
	"errors"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/particle-field-go/internal/log"
	"github.com/olivierh59500/particle-field-go/internal/particles"
)

// Host owns the tcell screen and the frame loop.
type Host struct {
	screen  tcell.Screen
	surface *Surface
	sim     *particles.Simulation
	pointer *particles.PointerTracker
	loop    *particles.Loop
	fps     int
	log     *log.Logger
}

// New initializes screen and binds sim to it. A simulation built for other
// bounds is resized to the screen and repopulated, so no particle starts
// outside the grid.
func New(screen tcell.Screen, sim *particles.Simulation, fps int, background color.RGBA, logger *log.Logger) (*Host, error) {
	if fps <= 0 {
		return nil, errors.New("terminal: fps must be positive")
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	screen.Clear()

	h := &Host{
		screen:  screen,
		surface: NewSurface(screen, background),
		sim:     sim,
		pointer: particles.NewPointerTracker(sim.Options().PointerRadius),
		fps:     fps,
		log:     logger,
	}
	if w, ht := h.surface.Size(); !sameSize(sim, w, ht) {
		sim.Resize(w, ht)
		sim.Respawn()
	}
	h.loop = particles.NewLoop(sim, h.surface, h.pointer)
	return h, nil
}

func sameSize(sim *particles.Simulation, w, h float64) bool {
	sw, sh := sim.Size()
	return sw == w && sh == h
}

// Run renders until ctx is cancelled or Stop is called, then releases the
// terminal.
func (h *Host) Run(ctx context.Context) error {
	defer h.screen.Fini()

	go h.pollEvents()

	ticker := time.NewTicker(time.Second / time.Duration(h.fps))
	defer ticker.Stop()

	cols, rows := h.screen.Size()
	h.log.Infof("terminal %dx%d cells, %d particles at %d fps", cols, rows, h.sim.Len(), h.fps)
	err := h.loop.Run(ctx, ticker.C)
	h.log.Infof("stopped after %d frames", h.loop.Frames())
	return err
}

// Stop ends Run.
func (h *Host) Stop() {
	h.loop.Stop()
}

// pollEvents feeds terminal events to the host until the screen is
// finalized.
func (h *Host) pollEvents() {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		h.handleEvent(ev)
	}
}

func (h *Host) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.pointer.Move((float64(x)+0.5)*CellWidth, (float64(y)+0.5)*CellHeight)
	case *tcell.EventFocus:
		if !ev.Focused {
			h.pointer.Leave()
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		if cols <= 0 || rows <= 0 {
			h.log.Warnf("terminal resized to %dx%d cells, nothing will be visible", cols, rows)
		} else {
			h.log.Debugf("resize to %dx%d cells", cols, rows)
		}
		h.loop.Do(func(*particles.Simulation) {
			h.surface.Resize(cols, rows)
			h.screen.Sync()
		})
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			h.Stop()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			h.Stop()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			h.loop.Do(func(sim *particles.Simulation) {
				sim.Respawn()
				h.log.Debugf("respawned %d particles", sim.Len())
			})
		}
	}
}
