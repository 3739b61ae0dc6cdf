package drop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/poolboard/internal/drag"
	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/schedule"
)

func testPool(id string, x, y float64, start, end int, days ...schedule.Weekday) schedule.Pool {
	p := schedule.Pool{ID: id, Title: id, X: &x, Y: &y, StartHour: &start, EndHour: &end}
	for _, d := range days {
		p.Days = append(p.Days, schedule.PoolDay{ID: id + string(d), PoolID: id, Day: d})
	}
	return p
}

// p1 sits at (100,200) with Monday and Wednesday columns showing 8:00-10:00.
// Monday spans x [160,360), Wednesday [360,560); 8:00 is at y 240.
func fixturePools() []schedule.Pool {
	return []schedule.Pool{
		testPool("p1", 100, 200, 8, 10, schedule.Wednesday, schedule.Monday),
		testPool("p2", 3000, 3000, 7, 20, schedule.Tuesday),
	}
}

func TestBuildZones(t *testing.T) {
	g := geometry.DefaultGrid()
	zones := BuildZones(fixturePools(), g)

	// p1: 2 days * 8 cells, p2: 1 day * 52 cells
	require.Len(t, zones, 16+52)

	first := zones[0]
	assert.Equal(t, TargetInterval, first.Kind)
	assert.Equal(t, SpaceCanvas, first.Space)
	assert.Equal(t, schedule.Monday, first.Day, "columns follow week order")
	assert.Equal(t, 480, first.StartMinute)
	assert.Equal(t, geometry.Rect{X: 160, Y: 240, W: 200, H: 15}, first.Rect)

	wed := zones[8]
	assert.Equal(t, schedule.Wednesday, wed.Day)
	assert.Equal(t, 360.0, wed.Rect.X)

	last := zones[15]
	assert.Equal(t, 585, last.StartMinute)
	assert.Equal(t, 240+105.0, last.Rect.Y)

	for _, z := range zones {
		assert.Zero(t, z.StartMinute%geometry.SnapMinutes)
	}
}

func TestBuildZonesUsesDefaultPositionAndClampsHours(t *testing.T) {
	g := geometry.DefaultGrid()
	start, end := 22, 30
	p := schedule.Pool{ID: "p", StartHour: &start, EndHour: &end,
		Days: []schedule.PoolDay{{Day: schedule.Friday}}}

	zones := BuildZones([]schedule.Pool{p}, g)
	require.Len(t, zones, 8)
	assert.Equal(t, 50+g.HourLabelWidth, zones[0].Rect.X)
	assert.Equal(t, 22*60+105, zones[7].StartMinute)
}

func TestResolveUsesTopCenterThroughTransform(t *testing.T) {
	g := geometry.DefaultGrid()
	r := NewResolver(g, fixturePools())
	tr := drag.Transform{X: -100, Y: -50, Scale: 2}

	// canvas (260, 305) is Monday 9:05 -> interval 9:00
	dragged := geometry.Rect{X: 370, Y: 560, W: 100, H: 240}
	target, ok := r.Resolve(dragged, tr)
	require.True(t, ok)
	assert.Equal(t, TargetInterval, target.Kind)
	assert.Equal(t, "p1", target.PoolID)
	assert.Equal(t, schedule.Monday, target.Day)
	assert.Equal(t, 540, target.StartMinute)
	assert.Equal(t, geometry.Point{X: 260, Y: 305}, target.Point)
}

func TestResolveIgnoresRestOfRectangle(t *testing.T) {
	g := geometry.DefaultGrid()
	r := NewResolver(g, fixturePools())

	// the block overlaps Monday heavily but its top edge centre is on the
	// pool header, above the first interval
	dragged := geometry.Rect{X: 160, Y: 230, W: 200, H: 200}
	target, ok := r.Resolve(dragged, drag.Identity())
	require.True(t, ok)
	assert.Equal(t, TargetWhiteboard, target.Kind)
}

func TestResolveBankBeatsCanvas(t *testing.T) {
	g := geometry.DefaultGrid()
	r := NewResolver(g, fixturePools()).WithBank(geometry.Rect{X: 0, Y: 0, W: 300, H: 1000})

	// top centre (260, 250) is inside both the bank and Monday
	target, ok := r.Resolve(geometry.Rect{X: 210, Y: 250, W: 100, H: 60}, drag.Identity())
	require.True(t, ok)
	assert.Equal(t, TargetBank, target.Kind)
}

func TestResolveOutsideBoard(t *testing.T) {
	g := geometry.DefaultGrid()
	r := NewResolver(g, fixturePools()).WithBoard(geometry.Rect{X: 0, Y: 0, W: 800, H: 600})

	_, ok := r.Resolve(geometry.Rect{X: 900, Y: 10, W: 20, H: 20}, drag.Identity())
	assert.False(t, ok)

	target, ok := r.Resolve(geometry.Rect{X: 600, Y: 10, W: 20, H: 20}, drag.Identity())
	require.True(t, ok)
	assert.Equal(t, TargetWhiteboard, target.Kind)
}

func TestNearestPlacement(t *testing.T) {
	g := geometry.DefaultGrid()
	pools := fixturePools()

	tests := []struct {
		name     string
		point    geometry.Point
		duration int
		wantDay  schedule.Weekday
		wantMin  int
	}{
		{name: "right of pool picks last column, clamps to start", point: geometry.Point{X: 700, Y: 150}, duration: 60, wantDay: schedule.Wednesday, wantMin: 480},
		{name: "left of columns picks first column", point: geometry.Point{X: 150, Y: 280}, duration: 60, wantDay: schedule.Monday, wantMin: 510},
		{name: "below pool clamps so block fits", point: geometry.Point{X: 200, Y: 900}, duration: 60, wantDay: schedule.Monday, wantMin: 540},
		{name: "odd duration stays inside hours", point: geometry.Point{X: 200, Y: 900}, duration: 45, wantDay: schedule.Monday, wantMin: 555},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, ok := NearestPlacement(pools, g, tt.point, tt.duration, 30)
			require.True(t, ok)
			assert.Equal(t, "p1", target.PoolID)
			assert.Equal(t, tt.wantDay, target.Day)
			assert.Equal(t, tt.wantMin, target.StartMinute)
		})
	}

	target, ok := NearestPlacement(pools, g, geometry.Point{X: 2900, Y: 2900}, 60, 30)
	require.True(t, ok)
	assert.Equal(t, "p2", target.PoolID)
	assert.Equal(t, 420, target.StartMinute)
}

func TestNearestPlacementSkipsEmptyPools(t *testing.T) {
	g := geometry.DefaultGrid()
	empty := testPool("empty", 0, 0, 8, 18)

	_, ok := NearestPlacement([]schedule.Pool{empty}, g, geometry.Point{}, 60, 30)
	assert.False(t, ok)
	_, ok = NearestPlacement(nil, g, geometry.Point{}, 60, 30)
	assert.False(t, ok)

	far := testPool("far", 5000, 5000, 8, 18, schedule.Monday)
	target, ok := NearestPlacement([]schedule.Pool{empty, far}, g, geometry.Point{}, 60, 30)
	require.True(t, ok)
	assert.Equal(t, "far", target.PoolID)
}
