// Package geometry maps schedule time onto canvas space.
//
// All functions are total: they never fail and never clamp. Callers that feed
// results back into the schedule clamp into [0, 1440) and into the pool's
// visible hour range themselves.
package geometry

import "math"

const (
	// SnapMinutes is the quantization applied to every user-driven time edit.
	SnapMinutes = 15
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440
	// SlotsPerDay is the number of SnapMinutes intervals in a day.
	SlotsPerDay = MinutesPerDay / SnapMinutes
)

// Grid holds the canvas dimensions every pool is drawn with.
// Units are absolute canvas units (pixels at zoom 1).
type Grid struct {
	HourRowHeight    float64 // height of one hour row
	DayColumnWidth   float64 // width of one active-day column
	HourLabelWidth   float64 // width of the hour label gutter
	HeaderHeight     float64 // pool header (title + day names)
	MinWidthBuffer   float64 // width added to the gutter when a pool has no active days
	PlacementOffset  float64 // diagonal offset used when a new pool collides
	WhiteboardWidth  float64
	WhiteboardHeight float64
	DefaultStartHour int
	DefaultEndHour   int
}

// DefaultGrid returns the dimensions used by the board.
func DefaultGrid() Grid {
	return Grid{
		HourRowHeight:    60,
		DayColumnWidth:   200,
		HourLabelWidth:   60,
		HeaderHeight:     40,
		MinWidthBuffer:   50,
		PlacementOffset:  30,
		WhiteboardWidth:  20000,
		WhiteboardHeight: 20000,
		DefaultStartHour: 8,
		DefaultEndHour:   18,
	}
}

// SnapToGrid rounds value to the nearest multiple of SnapMinutes.
func SnapToGrid(value float64) float64 {
	return SnapTo(value, SnapMinutes)
}

// SnapTo rounds value to the nearest multiple of interval.
// A non-positive interval returns value unchanged.
func SnapTo(value float64, interval int) float64 {
	if interval <= 0 {
		return value
	}
	iv := float64(interval)
	return math.Round(value/iv) * iv
}

// FloorTo rounds value down to a multiple of interval.
func FloorTo(value float64, interval int) float64 {
	if interval <= 0 {
		return value
	}
	iv := float64(interval)
	return math.Floor(value/iv) * iv
}

// MinutesToPixels converts a minute span to canvas units.
func (g Grid) MinutesToPixels(minutes float64) float64 {
	return minutes * (g.rowHeight() / 60)
}

// PixelsToMinutes converts canvas units to a minute span.
func (g Grid) PixelsToMinutes(px float64) float64 {
	return px * 60 / g.rowHeight()
}

func (g Grid) rowHeight() float64 {
	if g.HourRowHeight <= 0 {
		return 60
	}
	return g.HourRowHeight
}

// ClientPointerToAbsoluteMinutes converts a pointer offset measured from the
// top of a pool's hour area (screen units) into snapped minutes from midnight.
func (g Grid) ClientPointerToAbsoluteMinutes(pointerOffsetWithinColumn, zoomScale float64, startHour int) int {
	return g.PointerToMinutes(pointerOffsetWithinColumn, 0, zoomScale, startHour)
}

// PointerToMinutes composes the pointer pipeline in order:
// subtract the grab offset, divide by zoom, add the visible-start-hour
// offset, snap to SnapMinutes.
func (g Grid) PointerToMinutes(pointerOffset, grabOffset, zoomScale float64, startHour int) int {
	if zoomScale <= 0 {
		zoomScale = 1
	}
	canvasOffset := (pointerOffset - grabOffset) / zoomScale
	minutes := float64(startHour*60) + g.PixelsToMinutes(canvasOffset)
	return int(SnapToGrid(minutes))
}

// PoolSize returns the bounding box size of a pool with dayCount active days
// showing the hours [startHour, endHour).
func (g Grid) PoolSize(dayCount, startHour, endHour int) (width, height float64) {
	width = g.HourLabelWidth + float64(dayCount)*g.DayColumnWidth
	if dayCount <= 0 {
		width = g.HourLabelWidth + g.MinWidthBuffer
	}
	hours := max(1, endHour-startHour)
	height = float64(hours)*g.HourRowHeight + g.HeaderHeight
	return width, height
}

// DefaultPoolPosition is the position of a pool with no stored coordinates,
// laid out three per row by list index.
func (g Grid) DefaultPoolPosition(index int) Point {
	return Point{
		X: float64(index%3)*850 + 50,
		Y: float64(index/3)*500 + 50,
	}
}

// WhiteboardCenter returns the centre of the whiteboard content area.
func (g Grid) WhiteboardCenter() Point {
	return Point{X: g.WhiteboardWidth / 2, Y: g.WhiteboardHeight / 2}
}

// ColumnOffset returns the x offset of the dayIndex-th active column from the
// pool's left edge.
func (g Grid) ColumnOffset(dayIndex int) float64 {
	return g.HourLabelWidth + float64(dayIndex)*g.DayColumnWidth
}

// MinuteOffset returns the y offset of minute from the pool's top edge when the
// pool shows hours starting at startHour.
func (g Grid) MinuteOffset(minute, startHour int) float64 {
	return g.HeaderHeight + g.MinutesToPixels(float64(minute-startHour*60))
}

// ClampInt limits v to [lo, hi]. When hi < lo, lo wins.
func ClampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ClampFloat limits v to [lo, hi]. When hi < lo, lo wins.
func ClampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
