// Package window runs the particle field in a desktop window via ebiten.
package window

import (
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particle-field-go/internal/log"
	"github.com/olivierh59500/particle-field-go/internal/particles"
)

// input is the slice of ebiten input the game reads. Tests swap it out.
type input struct {
	cursor      func() (int, int)
	focused     func() bool
	justPressed func(ebiten.Key) bool
}

var ebitenInput = input{
	cursor:      ebiten.CursorPosition,
	focused:     ebiten.IsFocused,
	justPressed: inpututil.IsKeyJustPressed,
}

// Settings are the host-level knobs that are not simulation options.
type Settings struct {
	Title      string
	TPS        int
	Background color.RGBA
	ShowHUD    bool
	Cursor     bool
	// Save is called when the user presses S. Nil disables saving.
	Save func() error
}

// Game implements ebiten.Game on top of a particles.Simulation.
type Game struct {
	sim      *particles.Simulation
	pointer  *particles.PointerTracker
	cursor   *cursorTrail
	settings Settings
	log      *log.Logger
	in       input

	surface surface
	width   int
	height  int
	paused  bool
	stopped atomic.Bool
}

// NewGame wraps sim for ebiten.
func NewGame(sim *particles.Simulation, settings Settings, logger *log.Logger) *Game {
	if settings.TPS <= 0 {
		settings.TPS = ebiten.DefaultTPS
	}
	w, h := sim.Size()
	return &Game{
		sim:      sim,
		pointer:  particles.NewPointerTracker(sim.Options().PointerRadius),
		cursor:   newCursorTrail(settings.TPS),
		settings: settings,
		log:      logger,
		in:       ebitenInput,
		surface:  surface{background: settings.Background},
		width:    int(w),
		height:   int(h),
	}
}

// Run opens the window and blocks until it is closed or Stop is called.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(g.settings.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.settings.TPS)
	if g.settings.Cursor {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	g.log.Infof("window %dx%d, %d particles", g.width, g.height, g.sim.Len())
	return ebiten.RunGame(g)
}

// Stop ends the game loop on the next update. It may be called from any
// goroutine.
func (g *Game) Stop() {
	g.stopped.Store(true)
}

// Update is called each tick by ebiten.
func (g *Game) Update() error {
	if g.stopped.Load() {
		g.log.Infof("stopping after %d ticks", g.sim.Tick())
		return ebiten.Termination
	}
	g.handleInput()
	if g.stopped.Load() {
		return ebiten.Termination
	}

	ptr := g.pointer.Snapshot()
	if g.settings.Cursor {
		if ptr.Present {
			g.cursor.follow(ptr.X, ptr.Y)
		} else {
			g.cursor.hide()
		}
	}
	if g.paused {
		return nil
	}
	g.sim.Update(ptr)
	return nil
}

func (g *Game) handleInput() {
	mx, my := g.in.cursor()
	if g.in.focused() && mx >= 0 && my >= 0 && mx < g.width && my < g.height {
		g.pointer.Move(float64(mx), float64(my))
	} else {
		g.pointer.Leave()
	}

	if g.in.justPressed(ebiten.KeyEscape) {
		g.Stop()
		return
	}
	if g.in.justPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if g.in.justPressed(ebiten.KeyR) {
		g.sim.Respawn()
		g.log.Debugf("respawned %d particles", g.sim.Len())
	}
	if g.in.justPressed(ebiten.KeyH) {
		g.settings.ShowHUD = !g.settings.ShowHUD
	}
	if g.in.justPressed(ebiten.KeyS) && g.settings.Save != nil {
		if err := g.settings.Save(); err != nil {
			g.log.Errorf("save config: %v", err)
		} else {
			g.log.Infof("config saved")
		}
	}
}

// Draw is called each frame by ebiten.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.dst = screen
	g.sim.Draw(&g.surface)

	if g.settings.Cursor && g.cursor.visible {
		ptr := g.pointer.Snapshot()
		dot, ring := g.cursorPaints()
		if ptr.Present {
			vector.DrawFilledCircle(screen, float32(ptr.X), float32(ptr.Y), 4, dot.NRGBA(), true)
		}
		vector.StrokeCircle(screen, float32(g.cursor.x), float32(g.cursor.y), 18, 1.5, ring.NRGBA(), true)
	}

	if g.settings.ShowHUD {
		ebitenutil.DebugPrintAt(screen, g.hud(), 8, 8)
	}
}

// cursorPaints tints the cursor dot and its ring with the particle colour.
func (g *Game) cursorPaints() (dot, ring particles.Paint) {
	c := g.sim.Options().Color
	dot = particles.Paint{R: c.R, G: c.G, B: c.B, Alpha: 0.8}
	ring = particles.Paint{R: c.R, G: c.G, B: c.B, Alpha: 0.5}
	return dot, ring
}

func (g *Game) hud() string {
	state := "running"
	if g.paused {
		state = "paused"
	}
	return fmt.Sprintf("TPS %.1f  FPS %.1f\nparticles %d  links %d\n%s  [space] pause [r] respawn [s] save [h] hud",
		ebiten.ActualTPS(), ebiten.ActualFPS(), g.sim.Len(), len(g.sim.Edges()), state)
}

// Layout follows the window size so the field always covers it. A
// minimized window reports no area; the field keeps its last bounds then
// instead of collapsing every particle outside a zero-size box.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		if g.width <= 0 || g.height <= 0 {
			return 1, 1
		}
		return g.width, g.height
	}
	if g.width <= 0 || g.height <= 0 {
		g.log.Debugf("first usable size %dx%d, repopulating", outsideWidth, outsideHeight)
		g.width, g.height = outsideWidth, outsideHeight
		g.sim.Resize(float64(outsideWidth), float64(outsideHeight))
		g.sim.Respawn()
		return outsideWidth, outsideHeight
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.log.Debugf("resize %dx%d -> %dx%d", g.width, g.height, outsideWidth, outsideHeight)
		g.width, g.height = outsideWidth, outsideHeight
		g.sim.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
