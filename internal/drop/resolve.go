package drop

import (
	"math"

	"github.com/javiermolinar/poolboard/internal/drag"
	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/schedule"
)

// Resolver finds the drop target under a dragged element. Zones are fixed at
// construction; build a new resolver when pools change.
type Resolver struct {
	grid  geometry.Grid
	pools []schedule.Pool
	zones []Zone

	bank     geometry.Rect
	hasBank  bool
	board    geometry.Rect
	hasBoard bool
}

// NewResolver builds interval zones for pools.
func NewResolver(g geometry.Grid, pools []schedule.Pool) *Resolver {
	return &Resolver{
		grid:  g,
		pools: pools,
		zones: BuildZones(pools, g),
	}
}

// WithBank sets the bank panel rectangle in screen units.
func (r *Resolver) WithBank(rect geometry.Rect) *Resolver {
	r.bank = rect
	r.hasBank = true
	return r
}

// WithBoard limits the whiteboard catch-all to rect in screen units. Without
// it every point outside the bank and the pools is on the whiteboard.
func (r *Resolver) WithBoard(rect geometry.Rect) *Resolver {
	r.board = rect
	r.hasBoard = true
	return r
}

// Zones returns the interval zones.
func (r *Resolver) Zones() []Zone {
	return r.zones
}

// ReferencePoint is the point of a dragged rectangle used for resolution:
// the middle of its top edge, so the chosen interval is where the block's
// start lands.
func ReferencePoint(dragged geometry.Rect) geometry.Point {
	return dragged.TopCenter()
}

// Resolve returns the target under the reference point of dragged (screen
// units). The bank wins over the canvas, pool intervals win over the
// whiteboard. ok is false when the point is outside every zone.
func (r *Resolver) Resolve(dragged geometry.Rect, t drag.Transform) (Target, bool) {
	ref := ReferencePoint(dragged)
	if r.hasBank && r.bank.Contains(ref) {
		return Target{Kind: TargetBank, Point: t.ScreenToCanvas(ref)}, true
	}
	if r.hasBoard && !r.board.Contains(ref) {
		return Target{}, false
	}

	p := t.ScreenToCanvas(ref)
	if z, ok := r.zoneAt(p); ok {
		return Target{
			Kind:        TargetInterval,
			PoolID:      z.PoolID,
			Day:         z.Day,
			StartMinute: z.StartMinute,
			Point:       p,
		}, true
	}
	return Target{Kind: TargetWhiteboard, Point: p}, true
}

// zoneAt returns the interval zone containing p (canvas units). When pools
// overlap the later pool in the list wins, matching draw order.
func (r *Resolver) zoneAt(p geometry.Point) (Zone, bool) {
	for i := len(r.zones) - 1; i >= 0; i-- {
		if r.zones[i].Rect.Contains(p) {
			return r.zones[i], true
		}
	}
	return Zone{}, false
}

// NearestPlacement resolves a whiteboard drop at p (canvas units) onto the
// pool whose top-left anchor is closest. The column is the nearest active
// day by x; the start is clamped so a block of duration minutes fits the
// pool's hours, then snapped to snap minutes. Pools with no active days are
// skipped. ok is false when no pool can take the drop.
func NearestPlacement(pools []schedule.Pool, g geometry.Grid, p geometry.Point, duration, snap int) (Target, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, pool := range pools {
		if len(pool.Days) == 0 {
			continue
		}
		if d := geometry.Distance(p, pool.Position(g, i)); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Target{}, false
	}

	pool := pools[best]
	pos := pool.Position(g, best)
	days := pool.Weekdays()

	col := int(math.Floor((p.X - pos.X - g.HourLabelWidth) / g.DayColumnWidth))
	col = geometry.ClampInt(col, 0, len(days)-1)

	start, end := visibleHours(pool, g)
	lo, hi := start*60, end*60-duration
	if hi < lo {
		hi = lo
	}
	raw := float64(start*60) + g.PixelsToMinutes(p.Y-pos.Y-g.HeaderHeight)
	minute := geometry.ClampInt(int(math.Round(raw)), lo, hi)
	minute = geometry.ClampInt(int(geometry.SnapTo(float64(minute), snap)), lo, hi)

	return Target{
		Kind:        TargetInterval,
		PoolID:      pool.ID,
		Day:         days[col],
		StartMinute: minute,
		Point:       p,
	}, true
}
