package drag

import (
	"go.uber.org/zap"

	"github.com/javiermolinar/poolboard/internal/geometry"
)

// Store is the drag and viewport coordination state. It is owned by the UI
// event loop and is not safe for concurrent use.
type Store struct {
	item     *Item
	dragging bool
	grab     geometry.Point // pointer offset from the dragged element's top-left, screen units
	pointer  *geometry.Point

	transform    Transform
	limits       Limits
	poolDragging bool

	resizing       bool
	resizeSession  string
	resizeOriginal int // end minute when the resize started

	log *zap.Logger
}

// NewStore returns an idle store with the identity transform.
func NewStore(limits Limits, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	if limits.MinScale <= 0 || limits.MaxScale < limits.MinScale {
		limits = DefaultLimits()
	}
	return &Store{transform: Identity(), limits: limits, log: log}
}

// StartDragOperation marks a drag as active. grab is the pointer's offset from
// the dragged element's top-left corner in screen units. Dragging a pool
// suspends pan and zoom until the drag ends.
func (s *Store) StartDragOperation(item Item, grab geometry.Point) {
	s.item = &item
	s.dragging = true
	s.grab = grab
	s.pointer = nil
	if item.Kind == KindPoolCanvas {
		s.poolDragging = true
	}
	s.log.Debug("drag started", zap.Stringer("item", item), zap.Float64("grab_x", grab.X), zap.Float64("grab_y", grab.Y))
}

// MovePointer records the latest pointer position in screen units.
func (s *Store) MovePointer(p geometry.Point) {
	if !s.dragging {
		return
	}
	s.pointer = &p
}

// EndDragOperation clears every drag and suspension flag. It is used for
// drops and for every cancel path.
func (s *Store) EndDragOperation() {
	if s.dragging || s.poolDragging || s.resizing {
		s.log.Debug("drag ended")
	}
	s.item = nil
	s.dragging = false
	s.grab = geometry.Point{}
	s.pointer = nil
	s.poolDragging = false
	s.resizing = false
	s.resizeSession = ""
	s.resizeOriginal = 0
}

// Dragging reports whether a drag is in flight.
func (s *Store) Dragging() bool {
	return s.dragging
}

// Item returns the dragged payload.
func (s *Store) Item() (Item, bool) {
	if s.item == nil {
		return Item{}, false
	}
	return *s.item, true
}

// Grab returns the grab offset recorded at drag start.
func (s *Store) Grab() geometry.Point {
	return s.grab
}

// Pointer returns the last pointer position seen during the drag.
func (s *Store) Pointer() (geometry.Point, bool) {
	if s.pointer == nil {
		return geometry.Point{}, false
	}
	return *s.pointer, true
}

// PoolDragging reports whether pan and zoom are suspended for a pool move.
func (s *Store) PoolDragging() bool {
	return s.poolDragging
}

// CanPanZoom reports whether canvas pan and zoom input should be handled.
func (s *Store) CanPanZoom() bool {
	return !s.poolDragging
}

// CanStartMove reports whether a new move drag may begin.
func (s *Store) CanStartMove() bool {
	return !s.dragging && !s.resizing
}

// StartResize suspends move drags while the end edge of a session is dragged.
func (s *Store) StartResize(sessionID string, originalEnd int) bool {
	if s.dragging || s.resizing {
		return false
	}
	s.resizing = true
	s.resizeSession = sessionID
	s.resizeOriginal = originalEnd
	s.log.Debug("resize started", zap.String("session_id", sessionID), zap.Int("end", originalEnd))
	return true
}

// Resizing returns the session being resized and its end at resize start.
func (s *Store) Resizing() (sessionID string, originalEnd int, ok bool) {
	return s.resizeSession, s.resizeOriginal, s.resizing
}

// EndResize clears the resize mode.
func (s *Store) EndResize() {
	s.resizing = false
	s.resizeSession = ""
	s.resizeOriginal = 0
}

// Transform returns the current canvas transform.
func (s *Store) Transform() Transform {
	return s.transform
}

// Scale returns the current zoom scale.
func (s *Store) Scale() float64 {
	return s.transform.scale()
}

// Limits returns the zoom bounds.
func (s *Store) Limits() Limits {
	return s.limits
}

// UpdateScale sets the zoom scale without moving the origin. It is the
// mutator the canvas calls when its own zoom changes.
func (s *Store) UpdateScale(scale float64) {
	s.transform.Scale = s.limits.Clamp(scale)
}

// SetTransform replaces the transform, clamping its scale. Ignored while a
// pool is dragged.
func (s *Store) SetTransform(t Transform) bool {
	if !s.CanPanZoom() {
		return false
	}
	t.Scale = s.limits.Clamp(t.scale())
	s.transform = t
	return true
}

// Pan shifts the canvas by (dx, dy) screen units.
func (s *Store) Pan(dx, dy float64) bool {
	if !s.CanPanZoom() {
		return false
	}
	s.transform = s.transform.Pan(dx, dy)
	return true
}

// ZoomIn steps the scale up around focal.
func (s *Store) ZoomIn(focal geometry.Point) bool {
	return s.ZoomTo(s.transform.scale()+s.limits.Step, focal)
}

// ZoomOut steps the scale down around focal.
func (s *Store) ZoomOut(focal geometry.Point) bool {
	return s.ZoomTo(s.transform.scale()-s.limits.Step, focal)
}

// ZoomTo sets the scale around focal.
func (s *Store) ZoomTo(scale float64, focal geometry.Point) bool {
	if !s.CanPanZoom() {
		return false
	}
	s.transform = s.transform.ZoomAt(scale, focal, s.limits)
	return true
}

// ResetView restores the identity transform clamped to the limits.
func (s *Store) ResetView() bool {
	return s.SetTransform(Identity())
}

// CenterOn moves the view so r (canvas units) is centred in the viewport.
func (s *Store) CenterOn(r geometry.Rect, viewportW, viewportH float64) bool {
	if !s.CanPanZoom() {
		return false
	}
	s.transform = s.transform.CenterOn(r, viewportW, viewportH)
	return true
}
