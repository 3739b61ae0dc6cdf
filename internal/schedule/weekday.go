package schedule

import (
	"fmt"
	"slices"
	"strings"
)

// Weekday is an English day name as stored on pool days and sessions.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Week lists the days in display order.
var Week = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the position of d in Week, or -1.
func (d Weekday) Index() int {
	return slices.Index(Week, d)
}

// Valid reports whether d is one of the seven day names.
func (d Weekday) Valid() bool {
	return d.Index() >= 0
}

// Short returns the three-letter abbreviation ("Mon").
func (d Weekday) Short() string {
	if len(d) < 3 {
		return string(d)
	}
	return string(d[:3])
}

// ParseWeekday accepts a full day name or any prefix of at least three
// letters, case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if len(v) >= 3 {
		for _, d := range Week {
			if strings.HasPrefix(strings.ToLower(string(d)), v) {
				return d, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// ParseWeekdays parses a comma separated list such as "mon,wed,fri".
// Duplicates are dropped and the result is in week order.
func ParseWeekdays(s string) ([]Weekday, error) {
	var days []Weekday
	for part := range strings.SplitSeq(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(days, d) {
			days = append(days, d)
		}
	}
	SortWeekdays(days)
	return days, nil
}

// SortWeekdays orders days Monday first.
func SortWeekdays(days []Weekday) {
	slices.SortFunc(days, func(a, b Weekday) int {
		return a.Index() - b.Index()
	})
}
