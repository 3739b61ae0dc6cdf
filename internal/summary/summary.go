// Package summary builds the course budget and pool usage report.
package summary

import (
	"math"
	"strconv"

	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/schedule"
)

// AllScheduled is the bank label for a course with no hours left.
const AllScheduled = "All hours scheduled"

// CourseLine is the budget state of one course.
type CourseLine struct {
	Course           schedule.Course
	Sessions         int
	ScheduledMinutes int
	// RemainingHours is negative when the course is over-scheduled.
	RemainingHours float64
}

// RemainingBlocks is the number of whole hour blocks still available to drag
// from the bank.
func (c CourseLine) RemainingBlocks() int {
	if c.RemainingHours <= 0 {
		return 0
	}
	return int(math.Floor(c.RemainingHours))
}

// Done reports whether the whole budget is scheduled.
func (c CourseLine) Done() bool {
	return c.RemainingHours <= 0
}

// Over reports whether more time is scheduled than budgeted.
func (c CourseLine) Over() bool {
	return c.RemainingHours < 0
}

// DayLine is the usage of one pool column.
type DayLine struct {
	Day      schedule.Weekday
	Sessions int
	Minutes  int
}

// PoolLine is the usage of one pool.
type PoolLine struct {
	Pool schedule.Pool
	Days []DayLine
	// OpenMinutes is the pool's daily opening time times its active days.
	OpenMinutes int
	Minutes     int
	// Hidden counts sessions on days the pool no longer offers.
	Hidden int
}

// Utilization returns scheduled over open minutes in [0, +inf).
func (p PoolLine) Utilization() float64 {
	if p.OpenMinutes == 0 {
		return 0
	}
	return float64(p.Minutes) / float64(p.OpenMinutes)
}

// Summary aggregates the whole board.
type Summary struct {
	Courses          []CourseLine
	Pools            []PoolLine
	BudgetMinutes    int
	ScheduledMinutes int
}

// Summarize builds a report from a board snapshot.
func Summarize(st schedule.State, g geometry.Grid) *Summary {
	s := &Summary{}

	byCourse := make(map[string]*CourseLine, len(st.Courses))
	s.Courses = make([]CourseLine, len(st.Courses))
	for i, c := range st.Courses {
		s.Courses[i] = CourseLine{Course: c}
		byCourse[c.ID] = &s.Courses[i]
		s.BudgetMinutes += int(math.Round(c.TotalHours * 60))
	}

	type dayKey struct {
		pool string
		day  schedule.Weekday
	}
	byDay := make(map[dayKey]*DayLine)
	byPool := make(map[string]*PoolLine, len(st.Pools))
	s.Pools = make([]PoolLine, len(st.Pools))
	for i, p := range st.Pools {
		start, end := p.HourRange(g)
		days := p.Weekdays()
		line := PoolLine{Pool: p, Days: make([]DayLine, len(days)), OpenMinutes: (end - start) * 60 * len(days)}
		for j, d := range days {
			line.Days[j] = DayLine{Day: d}
		}
		s.Pools[i] = line
		byPool[p.ID] = &s.Pools[i]
		for j := range s.Pools[i].Days {
			byDay[dayKey{p.ID, days[j]}] = &s.Pools[i].Days[j]
		}
	}

	for _, se := range st.Sessions {
		if c, ok := byCourse[se.CourseID]; ok {
			c.Sessions++
			c.ScheduledMinutes += se.Duration()
		}
		s.ScheduledMinutes += se.Duration()

		p, ok := byPool[se.PoolID]
		if !ok {
			continue
		}
		d, ok := byDay[dayKey{se.PoolID, se.Day}]
		if !ok {
			p.Hidden++
			continue
		}
		d.Sessions++
		d.Minutes += se.Duration()
		p.Minutes += se.Duration()
	}

	for i := range s.Courses {
		c := &s.Courses[i]
		c.RemainingHours = c.Course.TotalHours - float64(c.ScheduledMinutes)/60
	}

	return s
}

// Course returns the line for a course id.
func (s *Summary) Course(id string) (CourseLine, bool) {
	for _, c := range s.Courses {
		if c.Course.ID == id {
			return c, true
		}
	}
	return CourseLine{}, false
}

// BankLabel is the text shown next to a course in the bank.
func BankLabel(c CourseLine) string {
	if c.Done() {
		return AllScheduled
	}
	if c.RemainingBlocks() == 1 {
		return "1 block left"
	}
	return strconv.Itoa(c.RemainingBlocks()) + " blocks left"
}
