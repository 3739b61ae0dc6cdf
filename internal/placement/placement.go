// Package placement turns a finished drop into exactly one schedule mutation.
package placement

import (
	"go.uber.org/zap"

	"github.com/javiermolinar/poolboard/internal/drag"
	"github.com/javiermolinar/poolboard/internal/drop"
	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/schedule"
)

const (
	// DefaultSessionMinutes is the length of a session created from the bank.
	DefaultSessionMinutes = 60
	// FallbackSnapMinutes is the grid whiteboard drops are snapped to.
	FallbackSnapMinutes = 30

	rememberedDrags = 256
)

// Action is the mutation a commit performed.
type Action string

const (
	ActionNone     Action = "none"
	ActionCreate   Action = "create"
	ActionMove     Action = "move"
	ActionDelete   Action = "delete"
	ActionMovePool Action = "movePool"
	ActionResize   Action = "resize"
)

// Outcome reports what Commit did.
type Outcome struct {
	Action    Action
	SessionID string
	PoolID    string
	Day       schedule.Weekday
	Start     int
	End       int
	// Duplicate is set when the drag id was already committed.
	Duplicate bool
}

// Config holds the committer's tunables.
type Config struct {
	DefaultSessionMinutes int
	FallbackSnapMinutes   int
}

// DefaultConfig returns the board defaults.
func DefaultConfig() Config {
	return Config{
		DefaultSessionMinutes: DefaultSessionMinutes,
		FallbackSnapMinutes:   FallbackSnapMinutes,
	}
}

// Committer applies drop results to a schedule store.
type Committer struct {
	store *schedule.Store
	cfg   Config
	log   *zap.Logger

	seen  map[string]struct{}
	order []string
}

// NewCommitter returns a committer writing to store.
func NewCommitter(store *schedule.Store, cfg Config, log *zap.Logger) *Committer {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.DefaultSessionMinutes <= 0 {
		cfg.DefaultSessionMinutes = DefaultSessionMinutes
	}
	if cfg.FallbackSnapMinutes <= 0 {
		cfg.FallbackSnapMinutes = FallbackSnapMinutes
	}
	return &Committer{
		store: store,
		cfg:   cfg,
		log:   log,
		seen:  make(map[string]struct{}),
	}
}

// Commit applies res. Unmatched drops, drops on pools or sessions that no
// longer exist and repeated drag ids change nothing.
func (c *Committer) Commit(res drop.Result) Outcome {
	if res.DragID != "" {
		if _, ok := c.seen[res.DragID]; ok {
			c.log.Debug("duplicate drop ignored", zap.String("drag_id", res.DragID))
			return Outcome{Action: ActionNone, Duplicate: true}
		}
	}

	out := c.apply(res)
	if res.DragID != "" {
		c.remember(res.DragID)
	}
	c.log.Debug("drop committed",
		zap.String("drag_id", res.DragID),
		zap.String("action", string(out.Action)),
		zap.String("session_id", out.SessionID),
		zap.String("pool_id", out.PoolID),
		zap.Int("start", out.Start),
		zap.Int("end", out.End))
	return out
}

func (c *Committer) apply(res drop.Result) Outcome {
	none := Outcome{Action: ActionNone}
	if !res.Matched {
		return none
	}

	if res.Item.Kind == drag.KindPoolCanvas {
		return c.movePool(res.Item.PoolID, res.CanvasDelta)
	}

	target := res.Target
	switch target.Kind {
	case drop.TargetBank:
		if res.Item.Kind != drag.KindGridCourse || res.Item.Session == nil {
			return none
		}
		if _, err := c.store.Session(res.Item.Session.ID); err != nil {
			return none
		}
		c.store.DeleteSession(res.Item.Session.ID)
		return Outcome{Action: ActionDelete, SessionID: res.Item.Session.ID}

	case drop.TargetWhiteboard:
		placed, ok := drop.NearestPlacement(c.store.Pools(), c.store.Grid(), target.Point,
			c.duration(res), c.cfg.FallbackSnapMinutes)
		if !ok {
			return none
		}
		target = placed
	}

	if target.Kind != drop.TargetInterval {
		return none
	}
	return c.place(res, target)
}

func (c *Committer) duration(res drop.Result) int {
	if res.Item.Kind == drag.KindBankBlock {
		return c.cfg.DefaultSessionMinutes
	}
	if res.OriginalDuration > 0 {
		return res.OriginalDuration
	}
	if d := res.Item.Duration(); d > 0 {
		return d
	}
	return c.cfg.DefaultSessionMinutes
}

func (c *Committer) place(res drop.Result, target drop.Target) Outcome {
	none := Outcome{Action: ActionNone}
	pool, err := c.store.Pool(target.PoolID)
	if err != nil {
		return none
	}

	duration := c.duration(res)
	start, end := ClampInterval(pool, c.store.Grid(), target.StartMinute, duration)

	switch res.Item.Kind {
	case drag.KindBankBlock:
		if _, err := c.store.Course(res.Item.CourseID); err != nil {
			return none
		}
		id := c.store.CreateSession(res.Item.CourseID, pool.ID, target.Day, start, end)
		return Outcome{Action: ActionCreate, SessionID: id, PoolID: pool.ID, Day: target.Day, Start: start, End: end}

	case drag.KindGridCourse:
		if res.Item.Session == nil {
			return none
		}
		id := res.Item.Session.ID
		if _, err := c.store.Session(id); err != nil {
			return none
		}
		c.store.UpdateSession(id, schedule.SessionPatch{
			PoolID: &pool.ID,
			Day:    &target.Day,
			Start:  &start,
			End:    &end,
		})
		return Outcome{Action: ActionMove, SessionID: id, PoolID: pool.ID, Day: target.Day, Start: start, End: end}
	}
	return none
}

func (c *Committer) movePool(poolID string, delta geometry.Point) Outcome {
	if delta == (geometry.Point{}) {
		return Outcome{Action: ActionNone}
	}
	i := c.store.PoolIndex(poolID)
	if i < 0 {
		return Outcome{Action: ActionNone}
	}
	pool, err := c.store.Pool(poolID)
	if err != nil {
		return Outcome{Action: ActionNone}
	}
	pos := pool.Position(c.store.Grid(), i).Add(delta)
	c.store.UpdatePoolPosition(poolID, pos.X, pos.Y)
	return Outcome{Action: ActionMovePool, PoolID: poolID}
}

func (c *Committer) remember(id string) {
	c.seen[id] = struct{}{}
	c.order = append(c.order, id)
	if len(c.order) > rememberedDrags {
		delete(c.seen, c.order[0])
		c.order = c.order[1:]
	}
}

// ClampInterval snaps start to the 15-minute grid and clamps it so that a
// block of duration minutes fits inside the pool's visible hours and the day.
func ClampInterval(pool schedule.Pool, g geometry.Grid, start, duration int) (int, int) {
	if duration <= 0 {
		duration = geometry.SnapMinutes
	}
	startHour, endHour := pool.HourRange(g)
	lo := geometry.ClampInt(startHour*60, 0, geometry.MinutesPerDay-geometry.SnapMinutes)
	hi := geometry.ClampInt(endHour*60, lo+geometry.SnapMinutes, geometry.MinutesPerDay) - duration
	if hi < lo {
		hi = lo
	}
	start = int(geometry.SnapToGrid(float64(start)))
	start = geometry.ClampInt(start, lo, hi)
	end := min(start+duration, geometry.MinutesPerDay)
	return start, end
}
