package drag

import (
	"math"

	"github.com/javiermolinar/poolboard/internal/geometry"
)

// Limits bounds the zoom scale.
type Limits struct {
	MinScale float64
	MaxScale float64
	Step     float64
}

// DefaultLimits matches the board's zoom controls.
func DefaultLimits() Limits {
	return Limits{MinScale: 0.2, MaxScale: 4, Step: 0.1}
}

// Clamp limits scale to [MinScale, MaxScale].
func (l Limits) Clamp(scale float64) float64 {
	return geometry.ClampFloat(scale, l.MinScale, l.MaxScale)
}

// Transform maps canvas units to screen units:
// screen = canvas*Scale + (X, Y).
type Transform struct {
	X, Y  float64
	Scale float64
}

// Identity is the transform at scale 1 with no pan.
func Identity() Transform {
	return Transform{Scale: 1}
}

func (t Transform) scale() float64 {
	if t.Scale <= 0 {
		return 1
	}
	return t.Scale
}

// ScreenToCanvas converts a screen point to canvas units.
func (t Transform) ScreenToCanvas(p geometry.Point) geometry.Point {
	s := t.scale()
	return geometry.Point{X: (p.X - t.X) / s, Y: (p.Y - t.Y) / s}
}

// CanvasToScreen converts a canvas point to screen units.
func (t Transform) CanvasToScreen(p geometry.Point) geometry.Point {
	s := t.scale()
	return geometry.Point{X: p.X*s + t.X, Y: p.Y*s + t.Y}
}

// CanvasRectToScreen converts a canvas rectangle to screen units.
func (t Transform) CanvasRectToScreen(r geometry.Rect) geometry.Rect {
	p := t.CanvasToScreen(r.Min())
	s := t.scale()
	return geometry.Rect{X: p.X, Y: p.Y, W: r.W * s, H: r.H * s}
}

// Pan returns t shifted by (dx, dy) screen units.
func (t Transform) Pan(dx, dy float64) Transform {
	t.X += dx
	t.Y += dy
	return t
}

// ZoomAt returns t rescaled to scale, clamped by l, keeping the canvas point
// under focal (screen units) fixed.
func (t Transform) ZoomAt(scale float64, focal geometry.Point, l Limits) Transform {
	anchor := t.ScreenToCanvas(focal)
	next := l.Clamp(scale)
	// keep repeated steps on round values
	next = math.Round(next*1000) / 1000
	return Transform{
		X:     focal.X - anchor.X*next,
		Y:     focal.Y - anchor.Y*next,
		Scale: next,
	}
}

// CenterOn returns a transform at the current scale that puts the centre of
// r (canvas units) in the middle of a viewport of the given screen size.
func (t Transform) CenterOn(r geometry.Rect, viewportW, viewportH float64) Transform {
	s := t.scale()
	c := r.Center()
	return Transform{
		X:     viewportW/2 - c.X*s,
		Y:     viewportH/2 - c.Y*s,
		Scale: s,
	}
}

// Visible returns the part of the canvas shown in a viewport of the given
// screen size.
func (t Transform) Visible(viewportW, viewportH float64) geometry.Rect {
	s := t.scale()
	return geometry.Rect{X: -t.X / s, Y: -t.Y / s, W: viewportW / s, H: viewportH / s}
}
