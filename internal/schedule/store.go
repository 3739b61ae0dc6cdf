package schedule

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/palette"
)

// Action names carried by events and history entries.
const (
	ActionAddPool       = "addPool"
	ActionRemovePool    = "removePool"
	ActionPoolDays      = "updatePoolDays"
	ActionPoolPosition  = "updatePoolPosition"
	ActionPoolTimeRange = "updatePoolTimeRange"
	ActionReorderPools  = "reorderPools"
	ActionAddCourse     = "addCourse"
	ActionUpdateCourse  = "updateCourse"
	ActionRemoveCourse  = "removeCourse"
	ActionCreateSession = "createSession"
	ActionUpdateSession = "updateSession"
	ActionDeleteSession = "deleteSession"
	ActionUndo          = "undo"
	ActionRedo          = "redo"
	ActionLoad          = "load"
)

// Event is delivered to subscribers after every state change.
type Event struct {
	Action string
	// Recorded is true when the change created an undo step.
	Recorded bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for mutation traces.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHistoryLimit caps the number of undoable actions.
func WithHistoryLimit(n int) Option {
	return func(s *Store) { s.historyLimit = n }
}

// WithGrid sets the canvas dimensions used for pool placement.
func WithGrid(g geometry.Grid) Option {
	return func(s *Store) { s.grid = g }
}

// WithIDGenerator replaces the uuid generator. Tests use it for stable ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

type subscriber struct {
	id int
	fn func(Event)
}

// Store holds pools, courses and sessions with linear undo/redo.
type Store struct {
	grid         geometry.Grid
	state        State
	history      *history
	historyLimit int
	newID        func() string
	log          *zap.Logger

	subs    []subscriber
	nextSub int
}

// New creates a store whose base state is a copy of initial.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		grid:         geometry.DefaultGrid(),
		historyLimit: DefaultHistoryLimit,
		newID:        uuid.NewString,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = initial.Clone()
	s.history = newHistory(s.state, s.historyLimit)
	return s
}

// Grid returns the canvas dimensions the store places pools with.
func (s *Store) Grid() geometry.Grid {
	return s.grid
}

// Subscribe registers fn for change events and returns a function that
// removes it.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

func (s *Store) notify(ev Event) {
	for _, sub := range slices.Clone(s.subs) {
		sub.fn(ev)
	}
}

// record pushes an undo step and notifies subscribers.
func (s *Store) record(action string) {
	s.history.push(action, s.state)
	s.notify(Event{Action: action, Recorded: true})
}

// touch folds an unrecorded change into the current snapshot so undoing the
// next action does not revert it.
func (s *Store) touch(action string) {
	s.history.amend(s.state)
	s.notify(Event{Action: action})
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	return s.state.Clone()
}

// Load replaces the state and clears history. The loaded state becomes the
// new undo base.
func (s *Store) Load(st State) {
	s.state = st.Clone()
	s.history = newHistory(s.state, s.historyLimit)
	s.log.Debug("state loaded",
		zap.Int("pools", len(s.state.Pools)),
		zap.Int("courses", len(s.state.Courses)),
		zap.Int("sessions", len(s.state.Sessions)))
	s.notify(Event{Action: ActionLoad})
}

// --- pools ---

// AddPool creates a pool with the default hour range at a position that does
// not overlap any existing pool and returns its id.
func (s *Store) AddPool(title, location string, days []Weekday) string {
	id := s.newID()
	days = slices.Clone(days)
	SortWeekdays(days)
	days = slices.Compact(days)

	pos := s.newPoolPosition(len(days))
	start, end := s.grid.DefaultStartHour, s.grid.DefaultEndHour
	pool := Pool{
		ID:        id,
		Title:     title,
		Location:  location,
		Days:      s.poolDays(id, days),
		StartHour: &start,
		EndHour:   &end,
		X:         &pos.X,
		Y:         &pos.Y,
	}
	s.state.Pools = append(s.state.Pools, pool)
	s.log.Debug("pool added",
		zap.String("pool_id", id),
		zap.String("title", title),
		zap.Int("days", len(days)),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y))
	s.record(ActionAddPool)
	return id
}

// newPoolPosition starts from a rectangle centred on the whiteboard and,
// while it collides, moves it right of the first pool it overlaps, offset
// diagonally. x increases on every step so the loop ends.
func (s *Store) newPoolPosition(dayCount int) geometry.Point {
	g := s.grid
	w, h := g.PoolSize(dayCount, g.DefaultStartHour, g.DefaultEndHour)
	c := g.WhiteboardCenter()
	pos := geometry.Point{X: c.X - w/2, Y: c.Y - h/2}

	for range len(s.state.Pools) + 1 {
		candidate := geometry.RectAt(pos, w, h)
		collided := false
		for i, p := range s.state.Pools {
			b := p.Bounds(g, i)
			if candidate.Overlaps(b) {
				pos = geometry.Point{X: b.X + b.W + g.PlacementOffset, Y: b.Y + g.PlacementOffset}
				collided = true
				break
			}
		}
		if !collided {
			return pos
		}
	}
	return pos
}

func (s *Store) poolDays(poolID string, days []Weekday) []PoolDay {
	out := make([]PoolDay, 0, len(days))
	for _, d := range days {
		out = append(out, PoolDay{ID: s.newID(), PoolID: poolID, Day: d})
	}
	return out
}

// RemovePool deletes a pool and every session on it.
func (s *Store) RemovePool(id string) {
	i := s.poolIndex(id)
	if i < 0 {
		return
	}
	s.state.Pools = slices.Delete(s.state.Pools, i, i+1)
	before := len(s.state.Sessions)
	s.state.Sessions = slices.DeleteFunc(s.state.Sessions, func(se Session) bool { return se.PoolID == id })
	s.log.Debug("pool removed",
		zap.String("pool_id", id),
		zap.Int("sessions_removed", before-len(s.state.Sessions)))
	s.record(ActionRemovePool)
}

// UpdatePoolDays replaces the active days with fresh day entries. Sessions
// on days that are no longer active are kept.
func (s *Store) UpdatePoolDays(id string, days []Weekday) {
	i := s.poolIndex(id)
	if i < 0 {
		return
	}
	days = slices.Clone(days)
	SortWeekdays(days)
	days = slices.Compact(days)
	s.state.Pools[i].Days = s.poolDays(id, days)
	s.log.Debug("pool days updated", zap.String("pool_id", id), zap.Int("days", len(days)))
	s.touch(ActionPoolDays)
}

// UpdatePoolPosition moves a pool. No collision check is made.
func (s *Store) UpdatePoolPosition(id string, x, y float64) {
	i := s.poolIndex(id)
	if i < 0 {
		return
	}
	s.state.Pools[i].X = &x
	s.state.Pools[i].Y = &y
	s.log.Debug("pool moved", zap.String("pool_id", id), zap.Float64("x", x), zap.Float64("y", y))
	s.touch(ActionPoolPosition)
}

// UpdatePoolTimeRange sets the visible hours. Callers clamp the values.
func (s *Store) UpdatePoolTimeRange(id string, startHour, endHour int) {
	i := s.poolIndex(id)
	if i < 0 {
		return
	}
	s.state.Pools[i].StartHour = &startHour
	s.state.Pools[i].EndHour = &endHour
	s.log.Debug("pool hours updated",
		zap.String("pool_id", id),
		zap.Int("start_hour", startHour),
		zap.Int("end_hour", endHour))
	s.touch(ActionPoolTimeRange)
}

// ReorderPools moves the pool activeID to the index currently held by overID.
func (s *Store) ReorderPools(activeID, overID string) {
	from, to := s.poolIndex(activeID), s.poolIndex(overID)
	if from < 0 || to < 0 || from == to {
		return
	}
	p := s.state.Pools[from]
	s.state.Pools = slices.Delete(s.state.Pools, from, from+1)
	s.state.Pools = slices.Insert(s.state.Pools, to, p)
	s.log.Debug("pools reordered", zap.String("pool_id", activeID), zap.Int("from", from), zap.Int("to", to))
	s.record(ActionReorderPools)
}

// --- courses ---

// AddCourse appends a course and returns its id. An empty color picks the
// next palette entry.
func (s *Store) AddCourse(name string, totalHours float64, color string) string {
	if color == "" {
		color = palette.Color(len(s.state.Courses))
	}
	id := s.newID()
	s.state.Courses = append(s.state.Courses, Course{
		ID:         id,
		Name:       name,
		TotalHours: totalHours,
		Color:      color,
	})
	s.log.Debug("course added", zap.String("course_id", id), zap.String("name", name), zap.Float64("hours", totalHours))
	s.record(ActionAddCourse)
	return id
}

// UpdateCourse merges the non-nil fields of patch.
func (s *Store) UpdateCourse(id string, patch CoursePatch) {
	i := s.courseIndex(id)
	if i < 0 {
		return
	}
	c := s.state.Courses[i]
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.TotalHours != nil {
		c.TotalHours = *patch.TotalHours
	}
	if patch.Color != nil {
		c.Color = *patch.Color
	}
	if c == s.state.Courses[i] {
		return
	}
	s.state.Courses[i] = c
	s.log.Debug("course updated", zap.String("course_id", id))
	s.record(ActionUpdateCourse)
}

// RemoveCourse deletes a course and all of its sessions.
func (s *Store) RemoveCourse(id string) {
	i := s.courseIndex(id)
	if i < 0 {
		return
	}
	s.state.Courses = slices.Delete(s.state.Courses, i, i+1)
	before := len(s.state.Sessions)
	s.state.Sessions = slices.DeleteFunc(s.state.Sessions, func(se Session) bool { return se.CourseID == id })
	s.log.Debug("course removed",
		zap.String("course_id", id),
		zap.Int("sessions_removed", before-len(s.state.Sessions)))
	s.record(ActionRemoveCourse)
}

// --- sessions ---

// CreateSession appends a session and returns its id. Overlapping sessions
// on the same pool and day are allowed.
func (s *Store) CreateSession(courseID, poolID string, day Weekday, start, end int) string {
	id := s.newID()
	s.state.Sessions = append(s.state.Sessions, Session{
		ID:       id,
		CourseID: courseID,
		PoolID:   poolID,
		Day:      day,
		Start:    start,
		End:      end,
	})
	s.log.Debug("session created",
		zap.String("session_id", id),
		zap.String("course_id", courseID),
		zap.String("pool_id", poolID),
		zap.String("day", string(day)),
		zap.Int("start", start),
		zap.Int("end", end))
	s.record(ActionCreateSession)
	return id
}

// UpdateSession merges the non-nil fields of patch.
func (s *Store) UpdateSession(id string, patch SessionPatch) {
	i := s.sessionIndex(id)
	if i < 0 {
		return
	}
	se := s.state.Sessions[i]
	if patch.CourseID != nil {
		se.CourseID = *patch.CourseID
	}
	if patch.PoolID != nil {
		se.PoolID = *patch.PoolID
	}
	if patch.Day != nil {
		se.Day = *patch.Day
	}
	if patch.Start != nil {
		se.Start = *patch.Start
	}
	if patch.End != nil {
		se.End = *patch.End
	}
	if se == s.state.Sessions[i] {
		return
	}
	s.state.Sessions[i] = se
	s.log.Debug("session updated",
		zap.String("session_id", id),
		zap.String("pool_id", se.PoolID),
		zap.String("day", string(se.Day)),
		zap.Int("start", se.Start),
		zap.Int("end", se.End))
	s.record(ActionUpdateSession)
}

// DeleteSession removes a session.
func (s *Store) DeleteSession(id string) {
	i := s.sessionIndex(id)
	if i < 0 {
		return
	}
	s.state.Sessions = slices.Delete(s.state.Sessions, i, i+1)
	s.log.Debug("session deleted", zap.String("session_id", id))
	s.record(ActionDeleteSession)
}

// --- history ---

// Undo restores the state before the last recorded action.
func (s *Store) Undo() bool {
	st, action, ok := s.history.undo()
	if !ok {
		return false
	}
	s.state = st
	s.log.Debug("undo", zap.String("action", action))
	s.notify(Event{Action: ActionUndo})
	return true
}

// Redo reapplies the last undone action.
func (s *Store) Redo() bool {
	st, action, ok := s.history.redo()
	if !ok {
		return false
	}
	s.state = st
	s.log.Debug("redo", zap.String("action", action))
	s.notify(Event{Action: ActionRedo})
	return true
}

// CanUndo reports whether Undo would change anything.
func (s *Store) CanUndo() bool {
	return s.history.canUndo()
}

// CanRedo reports whether Redo would change anything.
func (s *Store) CanRedo() bool {
	return s.history.canRedo()
}

// UndoDepth is the number of times Undo would succeed in a row.
func (s *Store) UndoDepth() int {
	return s.history.index
}

// RedoDepth is the number of times Redo would succeed in a row.
func (s *Store) RedoDepth() int {
	return len(s.history.entries) - 1 - s.history.index
}

// History returns the recorded action names, oldest first.
func (s *Store) History() []string {
	return s.history.actions()
}

func (s *Store) poolIndex(id string) int {
	return slices.IndexFunc(s.state.Pools, func(p Pool) bool { return p.ID == id })
}

func (s *Store) courseIndex(id string) int {
	return slices.IndexFunc(s.state.Courses, func(c Course) bool { return c.ID == id })
}

func (s *Store) sessionIndex(id string) int {
	return slices.IndexFunc(s.state.Sessions, func(se Session) bool { return se.ID == id })
}
