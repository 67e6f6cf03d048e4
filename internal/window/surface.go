package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particle-field-go/internal/particles"
)

// surface draws onto the ebiten screen of the current frame.
type surface struct {
	dst        *ebiten.Image
	background color.Color
}

func (s *surface) Size() (float64, float64) {
	b := s.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *surface) Clear() {
	s.dst.Fill(s.background)
}

func (s *surface) FillCircle(x, y, r float64, p particles.Paint) {
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), p.NRGBA(), true)
}

func (s *surface) StrokeLine(x0, y0, x1, y1, width float64, p particles.Paint) {
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), p.NRGBA(), true)
}
