package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/poolboard/internal/clock"
	"github.com/javiermolinar/poolboard/internal/drag"
	"github.com/javiermolinar/poolboard/internal/drop"
	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/placement"
	"github.com/javiermolinar/poolboard/internal/summary"
	"github.com/javiermolinar/poolboard/internal/tui/view"
)

// handleMouseMsg handles mouse input.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeHelp, ModeSummary:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.mode = ModeBoard
		}
		return m, nil
	case ModePrompt:
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			return m.handleWheel(msg)
		case tea.MouseButtonLeft:
			return m.handlePress(msg)
		case tea.MouseButtonRight:
			return m.handleRightClick(msg)
		}
	case tea.MouseActionMotion:
		return m.handleMotion(msg)
	case tea.MouseActionRelease:
		return m.handleRelease(msg)
	}
	return m, nil
}

func (m Model) handleWheel(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	l := m.screenLayout()
	x, y := l.cell(msg.X, msg.Y)
	if !l.board.Contains(x, y) || !m.drags.CanPanZoom() {
		return m, nil
	}
	p := l.pointer(msg.X, msg.Y)
	if msg.Button == tea.MouseButtonWheelUp {
		m.drags.ZoomIn(p)
	} else {
		m.drags.ZoomOut(p)
	}
	return m, nil
}

func (m Model) handlePress(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// A press while a drag is still open means its release was lost.
	if m.busy() || m.pan != nil {
		m.cancelGesture()
	}

	if msg.Y < toolbarHeight {
		return m.handleToolbarClick(msg)
	}

	l := m.screenLayout()
	x, y := l.cell(msg.X, msg.Y)
	p := l.pointer(msg.X, msg.Y)
	m.dragStart = p

	if l.miniMap.Contains(x, y) {
		m.centerOnMiniMap(l, x, y)
		return m, nil
	}
	if l.bank.Contains(x, y) {
		return m.startBankDrag(l, y, p)
	}
	if !l.board.Contains(x, y) {
		return m, nil
	}

	b := m.boardLayout()
	if sc, ok := b.sessionAt(x, y); ok {
		if sc.onResizeHandle(y) {
			if m.drags.StartResize(sc.session.ID, sc.session.End) {
				m.resize = &resizeState{
					sessionID:   sc.session.ID,
					originalEnd: sc.session.End,
					startY:      p.Y,
					end:         sc.session.End,
				}
			}
			return m, nil
		}
		if err := m.tracker.Start(drag.SessionItem(sc.session), sc.screen, p, m.resolver(l)); err != nil {
			return m.withError(err)
		}
		return m, nil
	}
	if pc, ok := b.headerAt(x, y); ok {
		if err := m.tracker.Start(drag.PoolItem(pc.pool.ID), pc.screen, p, nil); err != nil {
			return m.withError(err)
		}
		return m, nil
	}
	if m.drags.CanPanZoom() {
		m.pan = &p
	}
	return m, nil
}

func (m Model) handleToolbarClick(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	for _, btn := range toolbarButtons {
		if !m.zones.Get(m.zoneID(btn.id)).InBounds(msg) {
			continue
		}
		switch btn.id {
		case "course":
			return m.openPrompt("/course ")
		case "pool":
			return m.openPrompt("/pool ")
		case "undo":
			return m.handleBoardKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
		case "redo":
			return m.handleBoardKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
		case "zoomout":
			m.drags.ZoomOut(m.boardCenter())
		case "zoomin":
			m.drags.ZoomIn(m.boardCenter())
		case "reset":
			m.drags.UpdateScale(initialScale)
			m.fitView()
		case "map":
			m.showMiniMap = !m.showMiniMap
		case "summary":
			m.mode = ModeSummary
		case "help":
			m.mode = ModeHelp
		}
		return m, nil
	}
	return m, nil
}

// centerOnMiniMap moves the view so the clicked mini-map cell is in the
// middle of the board.
func (m *Model) centerOnMiniMap(l screenLayout, x, y int) {
	layout := m.miniMapLayout(l, m.boardLayout())
	if layout.Scale <= 0 {
		return
	}
	inner := view.MiniMapInner(l.miniMap)
	if inner.Empty() {
		return
	}
	x = geometry.ClampInt(x, inner.X, inner.X+inner.W-1)
	y = geometry.ClampInt(y, inner.Y, inner.Y+inner.H-1)
	mx := (float64(x-inner.X) + 0.5) * layout.Size / float64(inner.W)
	my := (float64(y-inner.Y) + 0.5) * layout.Size / float64(inner.H)
	target := geometry.Point{
		X: layout.Bounds.X + mx/layout.Scale,
		Y: layout.Bounds.Y + my/layout.Scale,
	}
	vp := l.boardRect()
	m.drags.CenterOn(geometry.RectAt(target, 0, 0), vp.W, vp.H)
}

func (m Model) startBankDrag(l screenLayout, y int, p geometry.Point) (tea.Model, tea.Cmd) {
	if y < l.bank.Y+bankHeaderRows {
		return m, nil
	}
	i := (y - l.bank.Y - bankHeaderRows) / bankEntryRows
	if i >= l.bankEntryLimit() {
		return m, nil
	}
	sum := summary.Summarize(m.store.Snapshot(), m.store.Grid())
	if i >= len(sum.Courses) {
		return m, nil
	}
	line := sum.Courses[i]
	if line.Done() || line.Over() {
		return m.withStatus(fmt.Sprintf("%s is fully scheduled", line.Course.Name))
	}

	g := m.store.Grid()
	scale := m.drags.Scale()
	minutes := m.config.Placement().DefaultSessionMinutes
	w := g.DayColumnWidth * scale
	h := g.MinutesToPixels(float64(minutes)) * scale
	elem := geometry.Rect{X: p.X - w/2, Y: p.Y - cellH/2, W: w, H: h}
	if err := m.tracker.Start(drag.BankItem(line.Course.ID, minutes), elem, p, m.resolver(l)); err != nil {
		return m.withError(err)
	}
	return m, nil
}

func (m Model) resolver(l screenLayout) *drop.Resolver {
	return drop.NewResolver(m.store.Grid(), m.store.Pools()).
		WithBank(l.bankRect()).
		WithBoard(l.boardRect())
}

func (m Model) handleMotion(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	l := m.screenLayout()
	p := l.pointer(msg.X, msg.Y)

	switch {
	case m.tracker.State() == drop.Dragging:
		if _, _, err := m.tracker.Move(p); err != nil {
			m.log.Debug("drag move", zap.Error(err))
		}
	case m.resize != nil:
		se, err := m.store.Session(m.resize.sessionID)
		if err != nil {
			m.cancelGesture()
			return m, nil
		}
		dayEnd := geometry.MinutesPerDay
		if pool, err := m.store.Pool(se.PoolID); err == nil {
			_, endHour := pool.HourRange(m.store.Grid())
			dayEnd = endHour * 60
		}
		m.resize.end = placement.ResizedEnd(m.store.Grid(), se, dayEnd, m.resize.originalEnd, p.Y-m.resize.startY, m.drags.Scale())
	case m.pan != nil:
		d := p.Sub(*m.pan)
		m.drags.Pan(d.X, d.Y)
		m.pan = &p
	}
	return m, nil
}

func (m Model) handleRelease(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	l := m.screenLayout()
	p := l.pointer(msg.X, msg.Y)

	switch {
	case m.tracker.State() == drop.Dragging:
		res, err := m.tracker.Drop(p)
		if err != nil {
			return m.withError(err)
		}
		out := m.committer.Commit(res)
		return m.withStatus(m.describeOutcome(out))
	case m.resize != nil:
		r := *m.resize
		out := m.committer.Resize(r.sessionID, r.originalEnd, p.Y-r.startY, m.drags.Scale())
		m.drags.EndResize()
		m.resize = nil
		if out.Action == placement.ActionNone {
			return m, nil
		}
		return m.withStatus(m.describeOutcome(out))
	case m.pan != nil:
		m.pan = nil
	}
	return m, nil
}

func (m Model) handleRightClick(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.busy() {
		return m, nil
	}
	l := m.screenLayout()
	x, y := l.cell(msg.X, msg.Y)
	if !l.board.Contains(x, y) {
		return m, nil
	}
	sc, ok := m.boardLayout().sessionAt(x, y)
	if !ok {
		return m, nil
	}
	m.store.DeleteSession(sc.session.ID)
	return m.withStatus("Removed " + sc.course.Name + " " + clock.Range(sc.session.Start, sc.session.End))
}

// describeOutcome is the status line for a committed gesture.
func (m Model) describeOutcome(out placement.Outcome) string {
	courseName := ""
	poolName := out.PoolID
	if se, err := m.store.Session(out.SessionID); err == nil {
		if c, err := m.store.Course(se.CourseID); err == nil {
			courseName = c.Name
		}
	}
	if p, err := m.store.Pool(out.PoolID); err == nil {
		poolName = p.Title
	}
	where := fmt.Sprintf("%s %s %s", poolName, out.Day, clock.Range(out.Start, out.End))

	switch out.Action {
	case placement.ActionCreate:
		return fmt.Sprintf("Added %s to %s", courseName, where)
	case placement.ActionMove:
		return fmt.Sprintf("Moved %s to %s", courseName, where)
	case placement.ActionDelete:
		return "Removed session"
	case placement.ActionMovePool:
		return "Moved pool " + poolName
	case placement.ActionResize:
		return fmt.Sprintf("%s now ends at %s", courseName, clock.Format(out.End))
	default:
		if out.Duplicate {
			return "Drop already applied"
		}
		return "Drop cancelled"
	}
}
