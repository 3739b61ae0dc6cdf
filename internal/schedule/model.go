// Package schedule is the authoritative store of pools, courses and sessions.
//
// All mutations go through Store methods so that undo history and
// subscribers stay consistent. The store is not safe for concurrent use; it
// is owned by the goroutine running the UI event loop or a CLI command.
package schedule

import (
	"slices"

	"github.com/javiermolinar/poolboard/internal/geometry"
)

// PoolDay is one active weekday of a pool.
type PoolDay struct {
	ID     string  `json:"id"`
	PoolID string  `json:"poolId"`
	Day    Weekday `json:"day"`
}

// Pool is a schedulable resource with active days and a visible hour window.
type Pool struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	Days      []PoolDay `json:"days"`
	StartHour *int      `json:"startHour,omitempty"`
	EndHour   *int      `json:"endHour,omitempty"`
	X         *float64  `json:"x,omitempty"`
	Y         *float64  `json:"y,omitempty"`
}

// HourRange returns the visible hours, falling back to the grid defaults.
func (p Pool) HourRange(g geometry.Grid) (start, end int) {
	start, end = g.DefaultStartHour, g.DefaultEndHour
	if p.StartHour != nil {
		start = *p.StartHour
	}
	if p.EndHour != nil {
		end = *p.EndHour
	}
	return start, end
}

// Weekdays returns the active days in week order.
func (p Pool) Weekdays() []Weekday {
	days := make([]Weekday, 0, len(p.Days))
	for _, d := range p.Days {
		if !slices.Contains(days, d.Day) {
			days = append(days, d.Day)
		}
	}
	SortWeekdays(days)
	return days
}

// HasDay reports whether day is active on the pool.
func (p Pool) HasDay(day Weekday) bool {
	return slices.ContainsFunc(p.Days, func(d PoolDay) bool { return d.Day == day })
}

// ColumnIndex returns the column of day among the pool's active days, or -1.
func (p Pool) ColumnIndex(day Weekday) int {
	return slices.Index(p.Weekdays(), day)
}

// Position returns the stored canvas position or the default for index.
func (p Pool) Position(g geometry.Grid, index int) geometry.Point {
	if p.X != nil && p.Y != nil {
		return geometry.Point{X: *p.X, Y: *p.Y}
	}
	return g.DefaultPoolPosition(index)
}

// Size returns the pool's bounding box dimensions.
func (p Pool) Size(g geometry.Grid) (width, height float64) {
	start, end := p.HourRange(g)
	return g.PoolSize(len(p.Weekdays()), start, end)
}

// Bounds returns the pool rectangle in canvas units. index is the pool's
// position in the list, used when no position is stored.
func (p Pool) Bounds(g geometry.Grid, index int) geometry.Rect {
	w, h := p.Size(g)
	return geometry.RectAt(p.Position(g, index), w, h)
}

func (p Pool) clone() Pool {
	c := p
	c.Days = slices.Clone(p.Days)
	c.StartHour = clonePtr(p.StartHour)
	c.EndHour = clonePtr(p.EndHour)
	c.X = clonePtr(p.X)
	c.Y = clonePtr(p.Y)
	return c
}

// Course is an activity with a total hour budget.
type Course struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	TotalHours float64 `json:"totalHours"`
	Color      string  `json:"color"`
}

// Session is one scheduled occurrence of a course on a pool and day.
// Start and End are minutes from midnight.
type Session struct {
	ID       string  `json:"id"`
	CourseID string  `json:"courseId"`
	PoolID   string  `json:"poolId"`
	Day      Weekday `json:"day"`
	Start    int     `json:"start"`
	End      int     `json:"end"`
}

// Duration returns End - Start in minutes.
func (s Session) Duration() int {
	return s.End - s.Start
}

// CoursePatch holds the fields UpdateCourse merges. Nil fields are left alone.
type CoursePatch struct {
	Name       *string
	TotalHours *float64
	Color      *string
}

// SessionPatch holds the fields UpdateSession merges. Nil fields are left alone.
type SessionPatch struct {
	CourseID *string
	PoolID   *string
	Day      *Weekday
	Start    *int
	End      *int
}

// State is a full copy of the three collections.
type State struct {
	Pools    []Pool    `json:"pools"`
	Courses  []Course  `json:"courses"`
	Sessions []Session `json:"sessions"`
}

// Clone returns a deep copy of st.
func (st State) Clone() State {
	out := State{
		Pools:    make([]Pool, len(st.Pools)),
		Courses:  slices.Clone(st.Courses),
		Sessions: slices.Clone(st.Sessions),
	}
	for i, p := range st.Pools {
		out.Pools[i] = p.clone()
	}
	if out.Courses == nil {
		out.Courses = []Course{}
	}
	if out.Sessions == nil {
		out.Sessions = []Session{}
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
