package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/poolboard/internal/config"
	"github.com/javiermolinar/poolboard/internal/drag"
	"github.com/javiermolinar/poolboard/internal/drop"
	"github.com/javiermolinar/poolboard/internal/palette"
	"github.com/javiermolinar/poolboard/internal/schedule"
)

// With the identity transform one cell is 20x15 screen units, so the pool
// at (0,0) covers columns 0-12. Its header takes body rows 0-2 and 08:00 is
// body row 3. The bank starts at column 90 of a 120 column terminal and its
// first entry is on body rows 2-3. Terminal row = body row + 1.
func testState() schedule.State {
	return schedule.State{
		Pools: []schedule.Pool{{
			ID:        "pool-1",
			Title:     "Main Pool",
			Location:  "Building A",
			Days:      []schedule.PoolDay{{ID: "pd-1", PoolID: "pool-1", Day: schedule.Monday}},
			StartHour: schedule.Ptr(8),
			EndHour:   schedule.Ptr(18),
			X:         schedule.Ptr(0.0),
			Y:         schedule.Ptr(0.0),
		}},
		Courses: []schedule.Course{
			{ID: "course-1", Name: "Bronze", TotalHours: 2, Color: "#ef4444"},
		},
	}
}

func newTestModel(t *testing.T, st schedule.State) Model {
	t.Helper()
	n := 0
	store := schedule.New(st, schedule.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
	m := New(store, config.Default())
	t.Cleanup(m.zones.Close)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !m.drags.SetTransform(drag.Identity()) {
		t.Fatal("SetTransform refused")
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func dragMouse(t *testing.T, m Model, fromX, fromY, toX, toY int) Model {
	t.Helper()
	m = update(t, m, press(fromX, fromY))
	m = update(t, m, motion(toX, toY))
	return update(t, m, release(toX, toY))
}

func TestBankDropCreatesSession(t *testing.T) {
	m := newTestModel(t, testState())

	m = update(t, m, press(95, 3))
	if m.tracker.State() != drop.Dragging {
		t.Fatalf("state after bank press = %v, want dragging", m.tracker.State())
	}
	if m.drags.CanStartMove() {
		t.Fatal("a second drag could start while one is active")
	}
	m = update(t, m, motion(5, 4))
	if target, ok := m.tracker.Over(); !ok || target.Kind != drop.TargetInterval || target.StartMinute != 480 {
		t.Fatalf("Over() = %+v, %v; want interval at 480", target, ok)
	}
	m = update(t, m, release(5, 4))

	sessions := m.store.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	se := sessions[0]
	if se.PoolID != "pool-1" || se.Day != schedule.Monday || se.Start != 480 || se.End != 540 {
		t.Errorf("session = %+v, want pool-1 Monday 480-540", se)
	}
	if m.store.ScheduledMinutesForCourse("course-1") != 60 {
		t.Errorf("scheduled = %d, want 60", m.store.ScheduledMinutesForCourse("course-1"))
	}
	if !strings.HasPrefix(m.statusMsg, "Added Bronze to Main Pool") {
		t.Errorf("status = %q", m.statusMsg)
	}
	if m.tracker.State() != drop.Idle || !m.drags.CanPanZoom() {
		t.Error("drag state not reset after drop")
	}
}

func TestSessionMoveKeepsDuration(t *testing.T) {
	m := newTestModel(t, testState())
	id := m.store.CreateSession("course-1", "pool-1", schedule.Monday, 480, 540)

	m = dragMouse(t, m, 5, 5, 5, 9)

	se, err := m.store.Session(id)
	if err != nil {
		t.Fatal(err)
	}
	if se.Start != 540 || se.End != 600 {
		t.Errorf("session = %d-%d, want 540-600", se.Start, se.End)
	}
}

func TestSessionDropOnBankDeletes(t *testing.T) {
	m := newTestModel(t, testState())
	m.store.CreateSession("course-1", "pool-1", schedule.Monday, 480, 540)

	m = update(t, m, press(5, 5))
	m = update(t, m, motion(95, 5))
	if !strings.Contains(m.View(), "Drop here to remove") {
		t.Error("bank does not show the remove hint while a session is over it")
	}
	m = update(t, m, release(95, 5))

	if n := len(m.store.Sessions()); n != 0 {
		t.Errorf("sessions = %d, want 0", n)
	}
}

func TestDropOutsideBoardIsNoop(t *testing.T) {
	m := newTestModel(t, testState())
	id := m.store.CreateSession("course-1", "pool-1", schedule.Monday, 480, 540)
	history := len(m.store.History())

	// the toolbar row is outside both the board and the bank
	m = dragMouse(t, m, 5, 5, 5, 0)

	se, err := m.store.Session(id)
	if err != nil {
		t.Fatal(err)
	}
	if se.Start != 480 || se.End != 540 {
		t.Errorf("session moved to %d-%d", se.Start, se.End)
	}
	if len(m.store.History()) != history {
		t.Error("a no-op drop was recorded in history")
	}
}

func TestResizeBottomEdge(t *testing.T) {
	m := newTestModel(t, testState())
	id := m.store.CreateSession("course-1", "pool-1", schedule.Monday, 480, 540)

	m = update(t, m, press(5, 7))
	if m.resize == nil {
		t.Fatal("press on the bottom row did not start a resize")
	}
	m = update(t, m, motion(5, 9))
	if m.resize.end != 570 {
		t.Errorf("preview end = %d, want 570", m.resize.end)
	}
	m = update(t, m, release(5, 9))

	se, err := m.store.Session(id)
	if err != nil {
		t.Fatal(err)
	}
	if se.End != 570 {
		t.Errorf("end = %d, want 570", se.End)
	}
	if m.resize != nil {
		t.Error("resize still active after release")
	}
	if _, _, ok := m.drags.Resizing(); ok {
		t.Error("drag store still resizing")
	}
}

func TestPoolHeaderDragMovesPool(t *testing.T) {
	m := newTestModel(t, testState())

	m = update(t, m, press(5, 2))
	if !m.drags.PoolDragging() {
		t.Fatal("header press did not start a pool drag")
	}
	if m.drags.CanPanZoom() {
		t.Error("pan and zoom allowed while a pool is dragged")
	}
	m = update(t, m, runes("+"))
	if m.drags.Scale() != 1 {
		t.Errorf("zoom changed during pool drag: %v", m.drags.Scale())
	}
	m = update(t, m, release(10, 3))

	pool, err := m.store.Pool("pool-1")
	if err != nil {
		t.Fatal(err)
	}
	if *pool.X != 100 || *pool.Y != 15 {
		t.Errorf("pool at (%v, %v), want (100, 15)", *pool.X, *pool.Y)
	}
	if !m.drags.CanPanZoom() {
		t.Error("pan and zoom still suspended after the drop")
	}
}

func TestEscCancelsDrag(t *testing.T) {
	m := newTestModel(t, testState())
	m = update(t, m, press(5, 2))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.tracker.State() != drop.Idle || m.drags.Dragging() {
		t.Error("drag still active after esc")
	}
	if !m.drags.CanPanZoom() {
		t.Error("canvas left suspended after cancel")
	}
	if m.tracker.LastOutcome() != drop.Cancelled {
		t.Errorf("last outcome = %v, want cancelled", m.tracker.LastOutcome())
	}
}

func TestBlurCancelsDrag(t *testing.T) {
	m := newTestModel(t, testState())
	m = update(t, m, press(95, 3))
	m = update(t, m, tea.BlurMsg{})

	if m.busy() || !m.drags.CanPanZoom() {
		t.Error("drag survived losing focus")
	}
	if len(m.store.Sessions()) != 0 {
		t.Error("cancelled drag created a session")
	}
}

func TestPressDuringDragResetsStuckDrag(t *testing.T) {
	m := newTestModel(t, testState())
	m = update(t, m, press(5, 2))
	// release lost; the next press starts fresh on empty board
	m = update(t, m, press(50, 30))

	if m.drags.PoolDragging() {
		t.Error("pool drag left over from a lost release")
	}
	if m.pan == nil {
		t.Error("press on the empty board did not start a pan")
	}
}

func TestUndoRedoKeys(t *testing.T) {
	m := newTestModel(t, testState())
	m = dragMouse(t, m, 95, 3, 5, 4)
	if len(m.store.Sessions()) != 1 {
		t.Fatal("setup drop failed")
	}

	m = update(t, m, runes("u"))
	if len(m.store.Sessions()) != 0 {
		t.Error("undo did not remove the session")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if len(m.store.Sessions()) != 1 {
		t.Error("redo did not restore the session")
	}
}

func TestPanAndZoomKeys(t *testing.T) {
	m := newTestModel(t, testState())

	m = update(t, m, runes("h"))
	if tr := m.drags.Transform(); tr.X != panStep*cellW {
		t.Errorf("pan X = %v, want %v", tr.X, panStep*cellW)
	}
	m = update(t, m, runes("+"))
	if m.drags.Scale() <= 1 {
		t.Errorf("scale = %v after zoom in", m.drags.Scale())
	}
	m = update(t, m, runes("0"))
	if m.drags.Scale() != initialScale {
		t.Errorf("scale = %v after reset, want %v", m.drags.Scale(), initialScale)
	}
}

func TestRightClickDeletesSession(t *testing.T) {
	m := newTestModel(t, testState())
	m.store.CreateSession("course-1", "pool-1", schedule.Monday, 480, 540)

	m = update(t, m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if len(m.store.Sessions()) != 0 {
		t.Error("right click did not remove the session")
	}
}

func TestRunPrompt(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr bool
		check   func(t *testing.T, m Model)
	}{
		{
			name: "add course",
			line: "/course Silver 3 #22C55E",
			check: func(t *testing.T, m Model) {
				courses := m.store.Courses()
				if len(courses) != 2 {
					t.Fatalf("courses = %d, want 2", len(courses))
				}
				if c := courses[1]; c.Name != "Silver" || c.TotalHours != 3 || c.Color != "#22c55e" {
					t.Errorf("course = %+v", c)
				}
			},
		},
		{
			name: "add pool with hours",
			line: `/pool "Lap Pool" Annex mon,wed 6-12`,
			check: func(t *testing.T, m Model) {
				pools := m.store.Pools()
				if len(pools) != 2 {
					t.Fatalf("pools = %d, want 2", len(pools))
				}
				p := pools[1]
				start, end := p.HourRange(m.store.Grid())
				if p.Title != "Lap Pool" || start != 6 || end != 12 || len(p.Days) != 2 {
					t.Errorf("pool = %+v %d-%d", p, start, end)
				}
			},
		},
		{
			name: "change hours",
			line: "/hours 1 9-17",
			check: func(t *testing.T, m Model) {
				p, _ := m.store.Pool("pool-1")
				if start, end := p.HourRange(m.store.Grid()); start != 9 || end != 17 {
					t.Errorf("hours = %d-%d, want 9-17", start, end)
				}
			},
		},
		{
			name: "change days",
			line: "/days 1 tue,thu",
			check: func(t *testing.T, m Model) {
				p, _ := m.store.Pool("pool-1")
				if p.HasDay(schedule.Monday) || !p.HasDay(schedule.Tuesday) || !p.HasDay(schedule.Thursday) {
					t.Errorf("days = %v", p.Weekdays())
				}
			},
		},
		{
			name: "recolor from picker",
			line: "/recolor 1 2",
			check: func(t *testing.T, m Model) {
				c, _ := m.store.Course("course-1")
				if c.Color != palette.Default[1] {
					t.Errorf("color = %q, want %q", c.Color, palette.Default[1])
				}
			},
		},
		{
			name: "remove course",
			line: "/rmcourse 1",
			check: func(t *testing.T, m Model) {
				if len(m.store.Courses()) != 0 {
					t.Error("course not removed")
				}
			},
		},
		{
			name: "add custom colour",
			line: "/color #123456",
			check: func(t *testing.T, m Model) {
				if got := m.custom.Colors(); len(got) != 1 || got[0] != "#123456" {
					t.Errorf("custom = %v", got)
				}
			},
		},
		{name: "invalid hours", line: "/hours 1 18-8", wantErr: true},
		{name: "zero budget", line: "/course Silver 0", wantErr: true},
		{name: "missing pool", line: "/rmpool 7", wantErr: true},
		{name: "bad colour", line: "/course Silver 2 #zzz", wantErr: true},
		{name: "unknown", line: "/nope", wantErr: true},
		{name: "usage", line: "/days 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, testState())
			next, _ := m.runPrompt(tt.line)
			m = next.(Model)
			if m.statusErr != tt.wantErr {
				t.Fatalf("statusErr = %v, want %v (status %q)", m.statusErr, tt.wantErr, m.statusMsg)
			}
			if tt.check != nil {
				tt.check(t, m)
			}
		})
	}
}

func TestPromptKeys(t *testing.T) {
	m := newTestModel(t, testState())

	m = update(t, m, runes("c"))
	if m.mode != ModePrompt || m.prompt.Value() != "/course " {
		t.Fatalf("mode = %v, value = %q", m.mode, m.prompt.Value())
	}
	m = update(t, m, runes("Gold 4"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != ModeBoard {
		t.Errorf("mode = %v after enter, want board", m.mode)
	}
	if len(m.store.Courses()) != 2 {
		t.Errorf("courses = %d, want 2", len(m.store.Courses()))
	}

	m = update(t, m, runes(":"))
	m = update(t, m, runes("ho"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.prompt.Value() != "/hours " {
		t.Errorf("tab completed to %q", m.prompt.Value())
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != ModeBoard {
		t.Error("esc did not close the prompt")
	}
}

func TestViewShowsBoard(t *testing.T) {
	m := newTestModel(t, testState())
	m.store.CreateSession("course-1", "pool-1", schedule.Monday, 480, 540)

	out := m.View()
	for _, want := range []string{"poolboard", "Main Pool", "Bronze", "Courses", "1h/2h"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = update(t, m, runes("?"))
	if !strings.Contains(m.View(), "Keys") {
		t.Error("help overlay not rendered")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, runes("s"))
	if !strings.Contains(m.View(), "Pools") {
		t.Error("summary overlay not rendered")
	}
}

func TestFooterCountsUndoSteps(t *testing.T) {
	m := newTestModel(t, testState())
	if out := m.View(); !strings.Contains(out, "0 undo steps") {
		t.Errorf("fresh board footer wrong:\n%s", lastLine(out))
	}

	m.store.CreateSession("course-1", "pool-1", schedule.Monday, 480, 540)
	m.store.CreateSession("course-1", "pool-1", schedule.Monday, 600, 660)
	if out := m.View(); !strings.Contains(out, "2 undo steps") {
		t.Errorf("footer after two actions wrong:\n%s", lastLine(out))
	}

	m.store.Undo()
	if out := m.View(); !strings.Contains(out, "1 undo steps") {
		t.Errorf("footer counts redo entries:\n%s", lastLine(out))
	}
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return lines[len(lines)-1]
}

func TestPoolTitleFitsHeader(t *testing.T) {
	p := schedule.Pool{Title: "Main Pool", Location: "Building A"}
	tests := []struct {
		width int
		want  string
	}{
		{40, "1 Main Pool · Building A"},
		{12, "1 Main Pool"},
		{11, "1 Main Pool"},
		{10, "Main Pool"},
		{5, "Main Pool"},
	}
	for _, tt := range tests {
		if got := poolTitle(p, 0, tt.width); got != tt.want {
			t.Errorf("poolTitle(width %d) = %q, want %q", tt.width, got, tt.want)
		}
	}
	if got := poolTitle(schedule.Pool{Title: "Lido"}, 2, 20); got != "3 Lido" {
		t.Errorf("poolTitle without location = %q", got)
	}
}

func TestViewBeforeSize(t *testing.T) {
	m := New(schedule.New(testState()), config.Default())
	defer m.zones.Close()
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q", got)
	}
}
