package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/schedule"
)

func TestStartAndEndDrag(t *testing.T) {
	s := NewStore(DefaultLimits(), nil)
	require.False(t, s.Dragging())

	s.StartDragOperation(BankItem("c1", 60), geometry.Point{X: 4, Y: 2})
	require.True(t, s.Dragging())
	assert.False(t, s.CanStartMove())
	assert.True(t, s.CanPanZoom(), "session drags do not suspend pan")

	item, ok := s.Item()
	require.True(t, ok)
	assert.Equal(t, KindBankBlock, item.Kind)
	assert.Equal(t, 60, item.Duration())
	assert.Equal(t, geometry.Point{X: 4, Y: 2}, s.Grab())

	_, ok = s.Pointer()
	assert.False(t, ok)
	s.MovePointer(geometry.Point{X: 10, Y: 20})
	p, ok := s.Pointer()
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 10, Y: 20}, p)

	s.EndDragOperation()
	assert.False(t, s.Dragging())
	_, ok = s.Item()
	assert.False(t, ok)
	_, ok = s.Pointer()
	assert.False(t, ok)
	assert.True(t, s.CanStartMove())
}

func TestPoolDragSuspendsPanZoomUntilEnd(t *testing.T) {
	s := NewStore(DefaultLimits(), nil)
	s.StartDragOperation(PoolItem("p1"), geometry.Point{})

	assert.True(t, s.PoolDragging())
	assert.False(t, s.CanPanZoom())
	assert.False(t, s.Pan(10, 10))
	assert.False(t, s.ZoomIn(geometry.Point{}))
	assert.False(t, s.CenterOn(geometry.Rect{W: 10, H: 10}, 100, 100))
	assert.Equal(t, Identity(), s.Transform())

	// cancel path uses the same teardown
	s.EndDragOperation()
	assert.False(t, s.PoolDragging())
	assert.True(t, s.Pan(10, 10))
	assert.Equal(t, 10.0, s.Transform().X)
}

func TestMovePointerIgnoredWhenIdle(t *testing.T) {
	s := NewStore(DefaultLimits(), nil)
	s.MovePointer(geometry.Point{X: 1, Y: 1})
	_, ok := s.Pointer()
	assert.False(t, ok)
}

func TestResizeBlocksMove(t *testing.T) {
	s := NewStore(DefaultLimits(), nil)
	require.True(t, s.StartResize("s1", 540))
	assert.False(t, s.CanStartMove())
	assert.False(t, s.StartResize("s2", 600))

	id, end, ok := s.Resizing()
	assert.True(t, ok)
	assert.Equal(t, "s1", id)
	assert.Equal(t, 540, end)

	s.EndResize()
	assert.True(t, s.CanStartMove())
}

func TestEndDragOperationClearsResize(t *testing.T) {
	s := NewStore(DefaultLimits(), nil)
	s.StartResize("s1", 540)
	s.EndDragOperation()
	_, _, ok := s.Resizing()
	assert.False(t, ok)
}

func TestZoomClampsToLimits(t *testing.T) {
	s := NewStore(DefaultLimits(), nil)
	for range 100 {
		s.ZoomIn(geometry.Point{})
	}
	assert.Equal(t, 4.0, s.Scale())
	for range 100 {
		s.ZoomOut(geometry.Point{})
	}
	assert.Equal(t, 0.2, s.Scale())

	s.UpdateScale(10)
	assert.Equal(t, 4.0, s.Scale())

	require.True(t, s.ResetView())
	assert.Equal(t, Identity(), s.Transform())
}

func TestInvalidLimitsFallBack(t *testing.T) {
	s := NewStore(Limits{MinScale: 0}, nil)
	assert.Equal(t, DefaultLimits(), s.Limits())
}

func TestSessionItemCopiesSession(t *testing.T) {
	se := schedule.Session{ID: "s", CourseID: "c", PoolID: "p", Day: schedule.Monday, Start: 480, End: 540}
	item := SessionItem(se)
	se.Start = 0

	assert.Equal(t, KindGridCourse, item.Kind)
	assert.Equal(t, "p", item.PoolID)
	assert.Equal(t, 480, item.Session.Start)
	assert.Equal(t, 60, item.Duration())
	assert.Equal(t, "grid-course(s)", item.String())
	assert.Equal(t, 0, PoolItem("p").Duration())
}
