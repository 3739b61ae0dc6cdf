// Package drop resolves which target a dragged element is over and tracks
// the lifecycle of a single drag.
package drop

import (
	"fmt"

	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/schedule"
)

// TargetKind tags a drop target.
type TargetKind string

const (
	// TargetInterval is one 15-minute cell of a pool day column.
	TargetInterval TargetKind = "pool-day-interval"
	// TargetBank is the course bank. Dropping a session here deletes it.
	TargetBank TargetKind = "bank"
	// TargetWhiteboard is the board background outside every pool.
	TargetWhiteboard TargetKind = "whiteboard"
)

// Space is the coordinate frame a zone rectangle is expressed in.
type Space int

const (
	// SpaceScreen zones do not move with pan and zoom (the bank panel).
	SpaceScreen Space = iota
	// SpaceCanvas zones are in absolute canvas units (pool cells).
	SpaceCanvas
)

// Zone is a droppable region.
type Zone struct {
	Kind        TargetKind
	Space       Space
	Rect        geometry.Rect
	PoolID      string
	Day         schedule.Weekday
	StartMinute int
}

// Target is a resolved drop target. Point is the reference point in canvas
// units; it is used to place drops on the whiteboard.
type Target struct {
	Kind        TargetKind
	PoolID      string
	Day         schedule.Weekday
	StartMinute int
	Point       geometry.Point
}

func (t Target) String() string {
	if t.Kind == TargetInterval {
		return fmt.Sprintf("%s(%s %s %d)", t.Kind, t.PoolID, t.Day, t.StartMinute)
	}
	return string(t.Kind)
}

// BuildZones returns one canvas-space zone per 15-minute interval per active
// day per pool. Columns follow week order. Pools are positioned by their
// stored coordinates or by list index.
func BuildZones(pools []schedule.Pool, g geometry.Grid) []Zone {
	var zones []Zone
	cell := g.MinutesToPixels(geometry.SnapMinutes)
	for i, p := range pools {
		pos := p.Position(g, i)
		start, end := visibleHours(p, g)
		for col, day := range p.Weekdays() {
			x := pos.X + g.ColumnOffset(col)
			for m := start * 60; m < end*60; m += geometry.SnapMinutes {
				zones = append(zones, Zone{
					Kind:        TargetInterval,
					Space:       SpaceCanvas,
					Rect:        geometry.Rect{X: x, Y: pos.Y + g.MinuteOffset(m, start), W: g.DayColumnWidth, H: cell},
					PoolID:      p.ID,
					Day:         day,
					StartMinute: m,
				})
			}
		}
	}
	return zones
}

// visibleHours clamps a pool's hour range to [0,23] and [start+1,24].
func visibleHours(p schedule.Pool, g geometry.Grid) (start, end int) {
	start, end = p.HourRange(g)
	start = geometry.ClampInt(start, 0, 23)
	end = geometry.ClampInt(end, start+1, 24)
	return start, end
}
