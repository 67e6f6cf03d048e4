package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivierh59500/particle-field-go/internal/particles"
)

// Each terminal cell stands for a CellWidth x CellHeight block of
// simulation pixels, roughly the aspect ratio of a monospace glyph.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

const (
	glyphDot   = '•'
	glyphLarge = '●'
	glyphLink  = '·'
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellLink
	cellDot
)

type cell struct {
	kind  cellKind
	glyph rune
	fg    colorful.Color
	alpha float64
}

// Surface rasterizes particles and links into terminal cells and writes
// them to a tcell screen on Present.
type Surface struct {
	screen     tcell.Screen
	cols, rows int
	cells      []cell
	background colorful.Color
}

// NewSurface sizes a surface to the screen's current dimensions.
func NewSurface(screen tcell.Screen, background color.RGBA) *Surface {
	bg, _ := colorful.MakeColor(background)
	s := &Surface{screen: screen, background: bg}
	s.Resize(screen.Size())
	return s
}

// Resize sets the grid dimensions in cells.
func (s *Surface) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]cell, cols*rows)
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.cols) * CellWidth, float64(s.rows) * CellHeight
}

func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = cell{}
	}
}

// toCell maps simulation coordinates to a cell, which may lie outside
// the grid.
func toCell(x, y float64) (int, int) {
	return clampCell(math.Floor(x / CellWidth)), clampCell(math.Floor(y / CellHeight))
}

func clampCell(v float64) int {
	const limit = 1 << 16
	if v < -limit {
		return -limit
	}
	if v > limit {
		return limit
	}
	return int(v)
}

func (s *Surface) at(cx, cy int) *cell {
	if cx < 0 || cy < 0 || cx >= s.cols || cy >= s.rows {
		return nil
	}
	return &s.cells[cy*s.cols+cx]
}

func paintColor(p particles.Paint) colorful.Color {
	return colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
}

func (s *Surface) FillCircle(x, y, r float64, p particles.Paint) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	c := s.at(toCell(x, y))
	if c == nil {
		return
	}
	glyph := glyphDot
	if r >= 2 {
		glyph = glyphLarge
	}
	if c.kind == cellDot && c.alpha > p.Alpha {
		return
	}
	*c = cell{kind: cellDot, glyph: glyph, fg: paintColor(p), alpha: p.Alpha}
}

// StrokeLine walks the cells between the endpoints. Links never cover a
// particle and a stronger link wins over a fainter one.
func (s *Surface) StrokeLine(x0, y0, x1, y1, _ float64, p particles.Paint) {
	if math.IsNaN(x0 + y0 + x1 + y1) {
		return
	}
	ax, ay := toCell(x0, y0)
	bx, by := toCell(x1, y1)
	fg := paintColor(p)
	bresenham(ax, ay, bx, by, func(cx, cy int) {
		c := s.at(cx, cy)
		if c == nil || c.kind == cellDot {
			return
		}
		if c.kind == cellLink && c.alpha >= p.Alpha {
			return
		}
		*c = cell{kind: cellLink, glyph: glyphLink, fg: fg, alpha: p.Alpha}
	})
}

// Present copies the cell buffer to the screen and shows it.
func (s *Surface) Present() {
	bg := toTcell(s.background)
	base := tcell.StyleDefault.Background(bg)
	for cy := 0; cy < s.rows; cy++ {
		for cx := 0; cx < s.cols; cx++ {
			c := s.cells[cy*s.cols+cx]
			if c.kind == cellEmpty {
				s.screen.SetContent(cx, cy, ' ', nil, base)
				continue
			}
			fg := s.background.BlendRgb(c.fg, c.alpha).Clamped()
			s.screen.SetContent(cx, cy, c.glyph, nil, base.Foreground(toTcell(fg)))
		}
	}
	s.screen.Show()
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
