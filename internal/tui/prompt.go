package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/poolboard/internal/clock"
	"github.com/javiermolinar/poolboard/internal/forms"
	"github.com/javiermolinar/poolboard/internal/palette"
	"github.com/javiermolinar/poolboard/internal/schedule"
	"github.com/javiermolinar/poolboard/internal/tui/input"
)

// ErrUnknownCommand is returned for prompt lines that name no command.
var ErrUnknownCommand = errors.New("unknown command")

// runPrompt executes one prompt line.
func (m Model) runPrompt(line string) (tea.Model, tea.Cmd) {
	name, args, err := input.Parse(line)
	if err != nil {
		return m.withError(err)
	}
	if name == "" || name == "/" {
		return m, nil
	}

	var (
		status string
		save   bool
	)
	switch name {
	case "/course":
		status, err = m.promptCourse(args)
	case "/pool":
		status, err = m.promptPool(args)
	case "/hours":
		status, err = m.promptHours(args)
	case "/days":
		status, err = m.promptDays(args)
	case "/rmpool":
		status, err = m.promptRemovePool(args)
	case "/rmcourse":
		status, err = m.promptRemoveCourse(args)
	case "/recolor":
		status, err = m.promptRecolor(args)
	case "/color":
		status, save, err = m.promptColor(args)
	case "/uncolor":
		status, save, err = m.promptUncolor(args)
	default:
		err = fmt.Errorf("%w %s", ErrUnknownCommand, name)
	}
	if err != nil {
		return m.withError(err)
	}
	cmds := []tea.Cmd{m.setStatus(status)}
	if save {
		cmds = append(cmds, m.saveColors())
	}
	return m, tea.Batch(cmds...)
}

func usage(name string) error {
	for _, cmd := range input.Commands {
		if cmd.Name == name {
			return fmt.Errorf("usage: %s %s", cmd.Name, cmd.Usage)
		}
	}
	return fmt.Errorf("%w %s", ErrUnknownCommand, name)
}

func (m Model) promptCourse(args []string) (string, error) {
	if len(args) < 2 || len(args) > 3 {
		return "", usage("/course")
	}
	hours, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return "", fmt.Errorf("hours %q is not a number", args[1])
	}
	form := forms.Course{Name: strings.TrimSpace(args[0]), TotalHours: hours}
	if len(args) == 3 {
		if form.Color, err = palette.Normalize(args[2]); err != nil {
			return "", err
		}
	}
	if err := m.validator.Check(form); err != nil {
		return "", err
	}
	m.store.AddCourse(form.Name, form.TotalHours, form.Color)
	return fmt.Sprintf("Added course %s (%s)", form.Name, clock.Duration(int(hours*60))), nil
}

func (m Model) promptPool(args []string) (string, error) {
	if len(args) < 3 || len(args) > 4 {
		return "", usage("/pool")
	}
	days, err := schedule.ParseWeekdays(args[2])
	if err != nil {
		return "", err
	}
	g := m.store.Grid()
	form := forms.Pool{
		Title:     strings.TrimSpace(args[0]),
		Location:  strings.TrimSpace(args[1]),
		Days:      days,
		StartHour: g.DefaultStartHour,
		EndHour:   g.DefaultEndHour,
	}
	custom := len(args) == 4
	if custom {
		if form.StartHour, form.EndHour, err = clock.ParseHourRange(args[3]); err != nil {
			return "", err
		}
	}
	if err := m.validator.Check(form); err != nil {
		return "", err
	}

	id := m.store.AddPool(form.Title, form.Location, form.Days)
	if custom {
		m.store.UpdatePoolTimeRange(id, form.StartHour, form.EndHour)
	}
	if i := m.store.PoolIndex(id); i >= 0 {
		m.centerOnPool(i)
	}
	return "Added pool " + form.Title, nil
}

func (m Model) promptHours(args []string) (string, error) {
	if len(args) != 2 {
		return "", usage("/hours")
	}
	pool, err := m.poolArg(args[0])
	if err != nil {
		return "", err
	}
	var form forms.Hours
	if form.StartHour, form.EndHour, err = clock.ParseHourRange(args[1]); err != nil {
		return "", err
	}
	if err := m.validator.Check(form); err != nil {
		return "", err
	}
	m.store.UpdatePoolTimeRange(pool.ID, form.StartHour, form.EndHour)
	return fmt.Sprintf("%s open %s", pool.Title, clock.Range(form.StartHour*60, form.EndHour*60)), nil
}

func (m Model) promptDays(args []string) (string, error) {
	if len(args) != 2 {
		return "", usage("/days")
	}
	pool, err := m.poolArg(args[0])
	if err != nil {
		return "", err
	}
	days, err := schedule.ParseWeekdays(args[1])
	if err != nil {
		return "", err
	}
	m.store.UpdatePoolDays(pool.ID, days)
	return fmt.Sprintf("%s runs %d days", pool.Title, len(days)), nil
}

func (m Model) promptRemovePool(args []string) (string, error) {
	if len(args) != 1 {
		return "", usage("/rmpool")
	}
	pool, err := m.poolArg(args[0])
	if err != nil {
		return "", err
	}
	m.store.RemovePool(pool.ID)
	return "Removed pool " + pool.Title, nil
}

func (m Model) promptRemoveCourse(args []string) (string, error) {
	if len(args) != 1 {
		return "", usage("/rmcourse")
	}
	course, err := m.courseArg(args[0])
	if err != nil {
		return "", err
	}
	m.store.RemoveCourse(course.ID)
	return "Removed course " + course.Name, nil
}

// promptRecolor accepts a hex colour or a 1-based index into the picker.
func (m Model) promptRecolor(args []string) (string, error) {
	if len(args) != 2 {
		return "", usage("/recolor")
	}
	course, err := m.courseArg(args[0])
	if err != nil {
		return "", err
	}
	color := args[1]
	if n, err := strconv.Atoi(color); err == nil {
		choices := m.custom.Choices()
		if n < 1 || n > len(choices) {
			return "", fmt.Errorf("colour %d is not in the picker (1-%d)", n, len(choices))
		}
		color = choices[n-1]
	}
	if color, err = palette.Normalize(color); err != nil {
		return "", err
	}
	m.store.UpdateCourse(course.ID, schedule.CoursePatch{Color: &color})
	return fmt.Sprintf("%s is now %s", course.Name, color), nil
}

func (m Model) promptColor(args []string) (string, bool, error) {
	if len(args) != 1 {
		return "", false, usage("/color")
	}
	added, err := m.custom.Add(args[0])
	if err != nil {
		return "", false, err
	}
	if !added {
		return "Colour already in the picker", false, nil
	}
	return fmt.Sprintf("Added colour %d", len(m.custom.Choices())), true, nil
}

func (m Model) promptUncolor(args []string) (string, bool, error) {
	if len(args) != 1 {
		return "", false, usage("/uncolor")
	}
	if palette.IsBuiltin(args[0]) {
		return "", false, errors.New("built-in colours cannot be removed")
	}
	if !m.custom.Remove(args[0]) {
		return "Colour not in the picker", false, nil
	}
	return "Removed colour", true, nil
}

// poolArg resolves a 1-based pool number.
func (m Model) poolArg(s string) (schedule.Pool, error) {
	pools := m.store.Pools()
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(pools) {
		return schedule.Pool{}, fmt.Errorf("no pool %q", s)
	}
	return pools[n-1], nil
}

// courseArg resolves a 1-based course number.
func (m Model) courseArg(s string) (schedule.Course, error) {
	courses := m.store.Courses()
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(courses) {
		return schedule.Course{}, fmt.Errorf("no course %q", s)
	}
	return courses[n-1], nil
}
