// Package clock converts between minutes-from-midnight and clock text.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is 24 hours * 60 minutes.
const MinutesPerDay = 1440

var (
	// ErrInvalidTime is returned when a clock string cannot be parsed.
	ErrInvalidTime = errors.New("time must be in HH:MM format")
	// ErrInvalidHourRange is returned when an hour range is not "HH-HH".
	ErrInvalidHourRange = errors.New("hours must look like 8-18")
)

// Format converts minutes since midnight to "HH:MM".
// Values are clamped to [0, 1440]; 1440 renders as "24:00" so a session
// ending at midnight keeps a readable end label.
func Format(m int) string {
	if m < 0 {
		m = 0
	}
	if m > MinutesPerDay {
		m = MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Range formats a start/end pair as "HH:MM-HH:MM".
func Range(start, end int) string {
	return Format(start) + "-" + Format(end)
}

// Parse converts "HH:MM", "H:MM" or a bare hour ("8") to minutes since midnight.
// "24:00" is accepted as the end of the day.
func Parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidTime
	}

	hourPart, minPart, hasColon := strings.Cut(s, ":")
	if !hasColon {
		minPart = "00"
	}
	if len(minPart) != 2 || len(hourPart) == 0 || len(hourPart) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hours, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	mins, err := strconv.Atoi(minPart)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	if hours < 0 || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	total := hours*60 + mins
	if total > MinutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return total, nil
}

// HourLabel renders an hour of the day as "12am", "8am", "1pm".
func HourLabel(hour int) string {
	hour = ((hour % 24) + 24) % 24
	switch {
	case hour == 0:
		return "12am"
	case hour < 12:
		return fmt.Sprintf("%dam", hour)
	case hour == 12:
		return "12pm"
	default:
		return fmt.Sprintf("%dpm", hour-12)
	}
}

// Duration renders a minute count as "1h30m", "45m" or "2h".
func Duration(m int) string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	h, rest := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%s%dm", sign, rest)
	case rest == 0:
		return fmt.Sprintf("%s%dh", sign, h)
	default:
		return fmt.Sprintf("%s%dh%02dm", sign, h, rest)
	}
}

// ParseHourRange parses whole opening hours such as "8-18" or "07-20".
// It only checks the syntax and the [0,24] bounds; callers validate the order.
func ParseHourRange(s string) (start, end int, err error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHourRange, s)
	}
	start, err = strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHourRange, s)
	}
	end, err = strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHourRange, s)
	}
	if start < 0 || start > 24 || end < 0 || end > 24 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHourRange, s)
	}
	return start, end, nil
}
