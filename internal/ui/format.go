package ui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/poolboard/internal/clock"
	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/schedule"
	"github.com/javiermolinar/poolboard/internal/summary"
)

// nameWidth is the column width for pool and course names.
const nameWidth = 24

// truncate shortens s to width cells with an ellipsis.
func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

// pad truncates s and fills it to width cells.
func pad(s string, width int) string {
	s = truncate(s, width)
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// rule prints a horizontal line no wider than the terminal.
func rule(w io.Writer, width int) {
	fmt.Fprintln(w, strings.Repeat("─", min(width, termWidth())))
}

// formatBudget renders scheduled/total with the state colour.
func formatBudget(c summary.CourseLine) string {
	total := int(math.Round(c.Course.TotalHours * 60))
	text := fmt.Sprintf("%s/%s", clock.Duration(c.ScheduledMinutes), clock.Duration(total))
	switch {
	case c.Over():
		return formatOver(text)
	case c.Done():
		return formatDone(text)
	default:
		return text
	}
}

// formatRemaining is the bank label, or how far over budget a course is.
func formatRemaining(c summary.CourseLine) string {
	if c.Over() {
		over := int(math.Round(-c.RemainingHours * 60))
		return formatOver("over by " + clock.Duration(over))
	}
	if c.Done() {
		return formatDone(summary.BankLabel(c))
	}
	return formatMuted(summary.BankLabel(c))
}

// formatDays lists active days as short names.
func formatDays(days []schedule.Weekday) string {
	if len(days) == 0 {
		return formatMuted("no days")
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.Short()
	}
	return strings.Join(names, ",")
}

// PrintCourses prints the bank: one line per course with its budget.
func PrintCourses(w io.Writer, sum *summary.Summary) {
	for i, c := range sum.Courses {
		fmt.Fprintf(w, "  %2d %s %s  %-9s %s\n",
			i+1,
			formatSwatch(c.Course.Color),
			pad(c.Course.Name, nameWidth),
			formatBudget(c),
			formatRemaining(c))
	}
}

// PrintPools prints one line per pool with its days, hours and usage.
func PrintPools(w io.Writer, st schedule.State, sum *summary.Summary, g geometry.Grid) {
	for i, p := range st.Pools {
		start, end := p.HourRange(g)
		line := sum.Pools[i]
		fmt.Fprintf(w, "  %2d %s %-12s %s  %-20s %3.0f%%\n",
			i+1,
			formatPool(pad(p.Title, nameWidth)),
			truncate(p.Location, 12),
			clock.Range(start*60, end*60),
			formatDays(p.Weekdays()),
			line.Utilization()*100)
		if line.Hidden > 0 {
			fmt.Fprintf(w, "     %s\n", formatMuted(fmt.Sprintf("%d sessions on days the pool no longer runs", line.Hidden)))
		}
	}
}

// PrintSessions prints sessions grouped by pool and day, in timetable order.
func PrintSessions(w io.Writer, st schedule.State, sessions []schedule.Session) {
	pools := make(map[string]schedule.Pool, len(st.Pools))
	for _, p := range st.Pools {
		pools[p.ID] = p
	}
	courses := make(map[string]schedule.Course, len(st.Courses))
	for _, c := range st.Courses {
		courses[c.ID] = c
	}

	var current string
	for _, se := range sessions {
		p, okPool := pools[se.PoolID]
		c, okCourse := courses[se.CourseID]
		if !okPool || !okCourse {
			continue
		}
		group := p.ID + "/" + string(se.Day)
		if group != current {
			if current != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "=== %s · %s ===\n", formatPool(p.Title), se.Day)
			current = group
		}
		day := ""
		if !p.HasDay(se.Day) {
			day = formatMuted("  (hidden day)")
		}
		fmt.Fprintf(w, "  %s  %s  %s %s  %s%s\n",
			formatMuted(shortID(se.ID)),
			clock.Range(se.Start, se.End),
			formatSwatch(c.Color),
			pad(c.Name, nameWidth),
			formatMuted(clock.Duration(se.Duration())),
			day)
	}
}

// PrintSummary prints the budget report.
func PrintSummary(w io.Writer, sum *summary.Summary) {
	fmt.Fprintf(w, "\n  %s\n", formatHeader("COURSES"))
	rule(w, 74)
	for _, c := range sum.Courses {
		fmt.Fprintf(w, "  %s %s  %-9s %2d sessions  %s\n",
			formatSwatch(c.Course.Color),
			pad(c.Course.Name, nameWidth),
			formatBudget(c),
			c.Sessions,
			formatRemaining(c))
	}

	fmt.Fprintf(w, "\n  %s\n", formatHeader("POOLS"))
	rule(w, 74)
	for _, p := range sum.Pools {
		fmt.Fprintf(w, "  %s  %-7s %3.0f%% of open time\n",
			formatPool(pad(p.Pool.Title, nameWidth)),
			clock.Duration(p.Minutes),
			p.Utilization()*100)
		for _, d := range p.Days {
			if d.Sessions == 0 {
				continue
			}
			fmt.Fprintf(w, "      %s  %-7s %s\n",
				d.Day.Short(),
				clock.Duration(d.Minutes),
				formatMuted(fmt.Sprintf("%d sessions", d.Sessions)))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Scheduled %s of %s budgeted\n",
		formatHeader(clock.Duration(sum.ScheduledMinutes)),
		clock.Duration(sum.BudgetMinutes))
}
