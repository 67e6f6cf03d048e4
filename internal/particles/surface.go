package particles

import "image/color"

// Paint is a colour with a separate opacity in [0,1].
type Paint struct {
	R, G, B uint8
	Alpha   float64
}

// NRGBA converts p to a non-premultiplied colour.
func (p Paint) NRGBA() color.NRGBA {
	a := p.Alpha
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: uint8(a*255 + 0.5)}
}

func paintOf(c color.RGBA, alpha float64) Paint {
	return Paint{R: c.R, G: c.G, B: c.B, Alpha: alpha}
}

// Surface is anything the simulation can draw on.
type Surface interface {
	Size() (w, h float64)
	Clear()
	FillCircle(x, y, r float64, p Paint)
	StrokeLine(x0, y0, x1, y1, width float64, p Paint)
}

// Presenter is implemented by surfaces that buffer a frame and need an
// explicit flush once it is complete.
type Presenter interface {
	Present()
}
