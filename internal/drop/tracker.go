package drop

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/javiermolinar/poolboard/internal/drag"
	"github.com/javiermolinar/poolboard/internal/geometry"
)

// Tracker errors.
var (
	ErrDragInProgress = errors.New("a drag is already in progress")
	ErrNotDragging    = errors.New("no drag in progress")
)

// State is the lifecycle phase of a drag.
type State int

const (
	Idle State = iota
	Dragging
	Dropped
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Dropped:
		return "dropped"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result describes a finished drag. When Matched is false the drop landed
// outside every zone and nothing should change.
type Result struct {
	DragID  string
	Item    drag.Item
	Target  Target
	Matched bool
	// OriginalDuration is the dragged session length captured at start.
	OriginalDuration int
	// Delta is the pointer movement between start and drop in screen units.
	Delta geometry.Point
	// CanvasDelta is Delta divided by the zoom scale at drop time.
	CanvasDelta geometry.Point
}

// Tracker runs the idle -> dragging -> dropped|cancelled -> idle lifecycle
// on top of a drag.Store. Every exit path calls EndDragOperation.
type Tracker struct {
	drags    *drag.Store
	resolver *Resolver
	log      *zap.Logger
	newID    func() string

	state   State
	last    State
	dragID  string
	item    drag.Item
	size    geometry.Point // dragged element size, screen units
	origin  geometry.Point // pointer at start
	over    Target
	hasOver bool
	dur     int
}

// NewTracker returns an idle tracker.
func NewTracker(drags *drag.Store, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{drags: drags, log: log, newID: uuid.NewString}
}

// State returns the current phase.
func (t *Tracker) State() State {
	return t.state
}

// LastOutcome returns how the previous drag ended (Dropped or Cancelled), or
// Idle if none has finished yet.
func (t *Tracker) LastOutcome() State {
	return t.last
}

// Start begins a drag of item whose element occupies elem (screen units)
// with the pointer at pointer. resolver supplies the zones for this drag.
func (t *Tracker) Start(item drag.Item, elem geometry.Rect, pointer geometry.Point, resolver *Resolver) error {
	if t.state == Dragging || t.drags.Dragging() {
		return ErrDragInProgress
	}
	if item.Kind != drag.KindPoolCanvas && !t.drags.CanStartMove() {
		return ErrDragInProgress
	}

	t.state = Dragging
	t.dragID = t.newID()
	t.item = item
	t.size = geometry.Point{X: elem.W, Y: elem.H}
	t.origin = pointer
	t.resolver = resolver
	t.hasOver = false
	t.dur = item.Duration()

	t.drags.StartDragOperation(item, pointer.Sub(elem.Min()))
	t.log.Debug("drop tracking started",
		zap.String("drag_id", t.dragID),
		zap.Stringer("item", item),
		zap.Int("duration", t.dur))
	return nil
}

// Move updates the pointer and returns the target currently under the
// dragged element.
func (t *Tracker) Move(pointer geometry.Point) (Target, bool, error) {
	if t.state != Dragging {
		return Target{}, false, ErrNotDragging
	}
	t.drags.MovePointer(pointer)
	t.over, t.hasOver = t.resolve(pointer)
	return t.over, t.hasOver, nil
}

// Over returns the last target seen by Move.
func (t *Tracker) Over() (Target, bool) {
	return t.over, t.hasOver
}

// DraggedRect returns where the dragged element is drawn for pointer.
func (t *Tracker) DraggedRect(pointer geometry.Point) geometry.Rect {
	return geometry.RectAt(pointer.Sub(t.drags.Grab()), t.size.X, t.size.Y)
}

func (t *Tracker) resolve(pointer geometry.Point) (Target, bool) {
	if t.item.Kind == drag.KindPoolCanvas || t.resolver == nil {
		return Target{}, false
	}
	return t.resolver.Resolve(t.DraggedRect(pointer), t.drags.Transform())
}

// Drop ends the drag at pointer and returns what was dropped where.
func (t *Tracker) Drop(pointer geometry.Point) (Result, error) {
	if t.state != Dragging {
		return Result{}, ErrNotDragging
	}
	res := Result{
		DragID:           t.dragID,
		Item:             t.item,
		OriginalDuration: t.dur,
		Delta:            pointer.Sub(t.origin),
	}
	res.CanvasDelta = res.Delta.Scale(1 / t.drags.Scale())
	if t.item.Kind == drag.KindPoolCanvas {
		res.Matched = true
	} else {
		res.Target, res.Matched = t.resolve(pointer)
	}

	t.finish(Dropped)
	t.log.Debug("drop",
		zap.String("drag_id", res.DragID),
		zap.Stringer("item", res.Item),
		zap.Bool("matched", res.Matched),
		zap.Stringer("target", res.Target))
	return res, nil
}

// Cancel abandons the drag. It is safe to call when idle so that stray
// cancel events never leave the canvas suspended.
func (t *Tracker) Cancel() {
	if t.state != Dragging {
		t.drags.EndDragOperation()
		return
	}
	t.log.Debug("drag cancelled", zap.String("drag_id", t.dragID))
	t.finish(Cancelled)
}

func (t *Tracker) finish(outcome State) {
	t.state = outcome
	t.drags.EndDragOperation()
	t.last = outcome
	t.state = Idle
	t.item = drag.Item{}
	t.resolver = nil
	t.hasOver = false
	t.over = Target{}
	t.dur = 0
	t.dragID = ""
}
