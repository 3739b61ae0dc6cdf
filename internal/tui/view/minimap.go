package view

import (
	"math"

	"github.com/javiermolinar/poolboard/internal/geometry"
)

// MiniMapInner is the part of a framed mini-map area the overview is
// projected into.
func MiniMapInner(area CellRect) CellRect {
	return CellRect{X: area.X + 1, Y: area.Y + 1, W: area.W - 2, H: area.H - 2}
}

// DrawMiniMap draws a frame around area and the layout inside it. Pools are
// filled blocks and the viewport is a dotted outline. Viewport edges that
// fall outside the frame are not drawn.
func DrawMiniMap(c *Canvas, area CellRect, layout geometry.MiniMapLayout, frameStyle, poolStyle, viewStyle int) {
	if area.W < 3 || area.H < 3 || layout.Size <= 0 {
		return
	}
	drawFrame(c, area, frameStyle)

	inner := MiniMapInner(area)
	sx := float64(inner.W) / layout.Size
	sy := float64(inner.H) / layout.Size
	toCells := func(r geometry.Rect) CellRect {
		x0 := int(math.Floor(r.X * sx))
		y0 := int(math.Floor(r.Y * sy))
		x1 := int(math.Ceil((r.X + r.W) * sx))
		y1 := int(math.Ceil((r.Y + r.H) * sy))
		return CellRect{X: inner.X + x0, Y: inner.Y + y0, W: max(1, x1-x0), H: max(1, y1-y0)}
	}
	for _, p := range layout.Pools {
		c.Fill(inner.Intersect(toCells(p)), '█', poolStyle)
	}

	vr := toCells(layout.Viewport)
	v := inner.Intersect(vr)
	if v.Empty() {
		return
	}
	if vr.Y == v.Y {
		c.Fill(CellRect{X: v.X, Y: v.Y, W: v.W, H: 1}, '┄', viewStyle)
	}
	if vr.Y+vr.H == v.Y+v.H {
		c.Fill(CellRect{X: v.X, Y: v.Y + v.H - 1, W: v.W, H: 1}, '┄', viewStyle)
	}
	if vr.X == v.X {
		c.Fill(CellRect{X: v.X, Y: v.Y, W: 1, H: v.H}, '┆', viewStyle)
	}
	if vr.X+vr.W == v.X+v.W {
		c.Fill(CellRect{X: v.X + v.W - 1, Y: v.Y, W: 1, H: v.H}, '┆', viewStyle)
	}
}

func drawFrame(c *Canvas, r CellRect, style int) {
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	c.Fill(CellRect{X: r.X + 1, Y: r.Y, W: r.W - 2, H: 1}, '─', style)
	c.Fill(CellRect{X: r.X + 1, Y: bottom, W: r.W - 2, H: 1}, '─', style)
	c.Fill(CellRect{X: r.X, Y: r.Y + 1, W: 1, H: r.H - 2}, '│', style)
	c.Fill(CellRect{X: right, Y: r.Y + 1, W: 1, H: r.H - 2}, '│', style)
	for _, corner := range []struct {
		x, y int
		r    rune
	}{{r.X, r.Y, '╭'}, {right, r.Y, '╮'}, {r.X, bottom, '╰'}, {right, bottom, '╯'}} {
		c.Fill(CellRect{X: corner.x, Y: corner.y, W: 1, H: 1}, corner.r, style)
	}
}
