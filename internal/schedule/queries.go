package schedule

import (
	"fmt"
	"slices"

	"github.com/javiermolinar/poolboard/internal/geometry"
)

// Pools returns the pools in list order.
func (s *Store) Pools() []Pool {
	out := make([]Pool, len(s.state.Pools))
	for i, p := range s.state.Pools {
		out[i] = p.clone()
	}
	return out
}

// Courses returns the courses in creation order.
func (s *Store) Courses() []Course {
	return slices.Clone(s.state.Courses)
}

// Sessions returns every session.
func (s *Store) Sessions() []Session {
	return slices.Clone(s.state.Sessions)
}

// Pool looks up a pool by id.
func (s *Store) Pool(id string) (Pool, error) {
	i := s.poolIndex(id)
	if i < 0 {
		return Pool{}, fmt.Errorf("%w: %s", ErrPoolNotFound, id)
	}
	return s.state.Pools[i].clone(), nil
}

// PoolIndex returns the position of a pool in the list, or -1.
func (s *Store) PoolIndex(id string) int {
	return s.poolIndex(id)
}

// PoolBounds returns the canvas rectangle of a pool.
func (s *Store) PoolBounds(id string) (geometry.Rect, error) {
	i := s.poolIndex(id)
	if i < 0 {
		return geometry.Rect{}, fmt.Errorf("%w: %s", ErrPoolNotFound, id)
	}
	return s.state.Pools[i].Bounds(s.grid, i), nil
}

// Course looks up a course by id.
func (s *Store) Course(id string) (Course, error) {
	i := s.courseIndex(id)
	if i < 0 {
		return Course{}, fmt.Errorf("%w: %s", ErrCourseNotFound, id)
	}
	return s.state.Courses[i], nil
}

// Session looks up a session by id.
func (s *Store) Session(id string) (Session, error) {
	i := s.sessionIndex(id)
	if i < 0 {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s.state.Sessions[i], nil
}

// SessionsForPoolDay returns the sessions on a pool and day ordered by start.
func (s *Store) SessionsForPoolDay(poolID string, day Weekday) []Session {
	var out []Session
	for _, se := range s.state.Sessions {
		if se.PoolID == poolID && se.Day == day {
			out = append(out, se)
		}
	}
	slices.SortStableFunc(out, func(a, b Session) int { return a.Start - b.Start })
	return out
}

// SessionsForCourse returns the sessions of a course.
func (s *Store) SessionsForCourse(courseID string) []Session {
	var out []Session
	for _, se := range s.state.Sessions {
		if se.CourseID == courseID {
			out = append(out, se)
		}
	}
	return out
}

// ScheduledMinutesForCourse sums the duration of a course's sessions.
// Over-scheduling is allowed, so the result may exceed the course budget.
func (s *Store) ScheduledMinutesForCourse(courseID string) int {
	total := 0
	for _, se := range s.state.Sessions {
		if se.CourseID == courseID {
			total += se.Duration()
		}
	}
	return total
}

// RemainingHours returns the course budget minus scheduled time. The value is
// negative when a course is over-scheduled.
func (s *Store) RemainingHours(courseID string) (float64, error) {
	c, err := s.Course(courseID)
	if err != nil {
		return 0, err
	}
	return c.TotalHours - float64(s.ScheduledMinutesForCourse(courseID))/60, nil
}
