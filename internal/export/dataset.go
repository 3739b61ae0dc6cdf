// Package export renders the board as CSV, PDF or JSON timetables.
package export

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/javiermolinar/poolboard/internal/clock"
	"github.com/javiermolinar/poolboard/internal/schedule"
	"github.com/javiermolinar/poolboard/internal/summary"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// ParseFormat accepts a format name, case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatPDF, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Timetable column headers.
const (
	ColPool     = "Pool"
	ColLocation = "Location"
	ColDay      = "Day"
	ColStart    = "Start"
	ColEnd      = "End"
	ColCourse   = "Course"
	ColDuration = "Duration"
)

// Budget column headers.
const (
	ColHours     = "Hours"
	ColScheduled = "Scheduled"
	ColRemaining = "Remaining"
	ColSessions  = "Sessions"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
	// Colors holds an optional fill colour per row, keyed by row index.
	Colors map[int]string
}

// Timetable lists every session ordered by pool, day and start time.
// Sessions whose pool or course is missing are skipped.
func Timetable(st schedule.State) Dataset {
	poolOrder := make(map[string]int, len(st.Pools))
	pools := make(map[string]schedule.Pool, len(st.Pools))
	for i, p := range st.Pools {
		poolOrder[p.ID] = i
		pools[p.ID] = p
	}
	courses := make(map[string]schedule.Course, len(st.Courses))
	for _, c := range st.Courses {
		courses[c.ID] = c
	}

	sessions := slices.Clone(st.Sessions)
	slices.SortStableFunc(sessions, func(a, b schedule.Session) int {
		return cmp.Or(
			cmp.Compare(poolOrder[a.PoolID], poolOrder[b.PoolID]),
			cmp.Compare(a.Day.Index(), b.Day.Index()),
			cmp.Compare(a.Start, b.Start),
		)
	})

	data := Dataset{
		Headers: []string{ColPool, ColLocation, ColDay, ColStart, ColEnd, ColCourse, ColDuration},
		Colors:  make(map[int]string),
	}
	for _, se := range sessions {
		p, okPool := pools[se.PoolID]
		c, okCourse := courses[se.CourseID]
		if !okPool || !okCourse {
			continue
		}
		data.Colors[len(data.Rows)] = c.Color
		data.Rows = append(data.Rows, map[string]string{
			ColPool:     p.Title,
			ColLocation: p.Location,
			ColDay:      string(se.Day),
			ColStart:    clock.Format(se.Start),
			ColEnd:      clock.Format(se.End),
			ColCourse:   c.Name,
			ColDuration: clock.Duration(se.Duration()),
		})
	}
	return data
}

// Budget lists scheduled and remaining hours per course.
func Budget(s *summary.Summary) Dataset {
	data := Dataset{
		Headers: []string{ColCourse, ColHours, ColScheduled, ColRemaining, ColSessions},
		Colors:  make(map[int]string),
	}
	for i, c := range s.Courses {
		data.Colors[i] = c.Course.Color
		data.Rows = append(data.Rows, map[string]string{
			ColCourse:    c.Course.Name,
			ColHours:     formatHours(c.Course.TotalHours),
			ColScheduled: clock.Duration(c.ScheduledMinutes),
			ColRemaining: formatHours(c.RemainingHours),
			ColSessions:  fmt.Sprintf("%d", c.Sessions),
		})
	}
	return data
}

func formatHours(h float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", h), "0"), ".") + "h"
}
