package schedule

import "errors"

// Lookup errors. Mutators never return these; they treat a missing id as a
// no-op.
var (
	ErrPoolNotFound    = errors.New("pool not found")
	ErrCourseNotFound  = errors.New("course not found")
	ErrSessionNotFound = errors.New("session not found")
)

// Input errors.
var (
	ErrInvalidWeekday = errors.New("invalid weekday")
)
