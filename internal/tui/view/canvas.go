package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Canvas is a fixed-size grid of terminal cells. Each cell holds one rune and
// the index of a registered style. Later draws overwrite earlier ones.
type Canvas struct {
	w, h   int
	runes  []rune
	style  []int
	styles []lipgloss.Style
}

// NewCanvas returns a w x h canvas filled with spaces in base style.
func NewCanvas(w, h int, base lipgloss.Style) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{
		w:      w,
		h:      h,
		runes:  make([]rune, w*h),
		style:  make([]int, w*h),
		styles: []lipgloss.Style{base},
	}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

// Size returns the canvas width and height in cells.
func (c *Canvas) Size() (int, int) {
	return c.w, c.h
}

// Style registers s and returns its index for Fill and Text.
func (c *Canvas) Style(s lipgloss.Style) int {
	c.styles = append(c.styles, s)
	return len(c.styles) - 1
}

// CellRect is a rectangle in cell units. It may extend past the canvas.
type CellRect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r CellRect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of r and o, or the zero rect.
func (r CellRect) Intersect(o CellRect) CellRect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return CellRect{}
	}
	return CellRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether r covers no cells.
func (r CellRect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Clip returns the part of r inside the canvas.
func (c *Canvas) Clip(r CellRect) CellRect {
	return r.Intersect(CellRect{W: c.w, H: c.h})
}

// Fill paints r with ch in style.
func (c *Canvas) Fill(r CellRect, ch rune, style int) {
	r = c.Clip(r)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			i := y*c.w + x
			c.runes[i] = ch
			c.style[i] = style
		}
	}
}

// Restyle changes the style of r and keeps its runes.
func (c *Canvas) Restyle(r CellRect, style int) {
	r = c.Clip(r)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.style[y*c.w+x] = style
		}
	}
}

// Text writes s at (x, y), truncated to maxW cells. Wide runes are replaced
// so every rune occupies one cell.
func (c *Canvas) Text(x, y int, s string, maxW int, style int) {
	if y < 0 || y >= c.h || maxW <= 0 {
		return
	}
	s = ansi.Truncate(ansi.Strip(s), maxW, "…")
	for _, r := range s {
		if ansi.StringWidth(string(r)) != 1 {
			r = '?'
		}
		if x >= c.w {
			return
		}
		if x >= 0 {
			i := y*c.w + x
			c.runes[i] = r
			c.style[i] = style
		}
		x++
	}
}

// Render returns the canvas as styled lines joined by newlines. Runs of
// cells sharing a style are rendered together.
func (c *Canvas) Render() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= c.w; x++ {
			i := y*c.w + x
			if x < c.w && c.style[i] == c.style[y*c.w+start] {
				continue
			}
			run := string(c.runes[y*c.w+start : y*c.w+x])
			b.WriteString(c.styles[c.style[y*c.w+start]].Render(run))
			start = x
		}
	}
	return b.String()
}

// Plain returns the canvas text without styles. Tests use it.
func (c *Canvas) Plain() string {
	lines := make([]string, c.h)
	for y := range lines {
		lines[y] = string(c.runes[y*c.w : (y+1)*c.w])
	}
	return strings.Join(lines, "\n")
}
