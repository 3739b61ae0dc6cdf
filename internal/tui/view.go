package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/poolboard/internal/clock"
	"github.com/javiermolinar/poolboard/internal/drag"
	"github.com/javiermolinar/poolboard/internal/drop"
	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/placement"
	"github.com/javiermolinar/poolboard/internal/summary"
	"github.com/javiermolinar/poolboard/internal/tui/input"
	"github.com/javiermolinar/poolboard/internal/tui/view"
)

const defaultHelpText = "drag courses from the bank · drag a block's bottom row to resize · wheel zoom · : command · ? help · q quit"

// toolbarButtons are the clickable toolbar entries in display order.
var toolbarButtons = []struct {
	id, label string
}{
	{"course", "+ Course"},
	{"pool", "+ Pool"},
	{"undo", "Undo"},
	{"redo", "Redo"},
	{"zoomout", "−"},
	{"zoomin", "+"},
	{"reset", "Fit"},
	{"map", "Map"},
	{"summary", "Budget"},
	{"help", "?"},
}

// View renders the toolbar, the board with the bank, and the footer.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	l := m.screenLayout()
	b := m.boardLayout()
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderToolbar(),
		m.renderBody(l, b),
		view.RenderFooter(m.footerModel()),
	)

	switch m.mode {
	case ModeHelp:
		content = view.Overlay(content, m.renderHelp(), m.width, m.height, m.styles.ModalBgColor)
	case ModeSummary:
		content = view.Overlay(content, m.renderSummary(), m.width, m.height, m.styles.ModalBgColor)
	}
	return m.zones.Scan(content)
}

func (m Model) renderToolbar() string {
	s := m.styles
	parts := []string{s.ToolbarTitleStyle.Render("poolboard")}
	for _, btn := range toolbarButtons {
		parts = append(parts, m.zones.Mark(m.zoneID(btn.id), s.ToolbarButtonStyle.Render(btn.label)))
	}
	zoom := fmt.Sprintf(" %d%% ", int(math.Round(m.drags.Scale()*100)))
	parts = append(parts, s.ToolbarMutedStyle.Render(zoom))
	return view.Band(m.width, toolbarHeight, lipgloss.JoinHorizontal(lipgloss.Top, parts...), s.Palette().BgHighlight)
}

func (m Model) zoneID(name string) string {
	return m.zonePrefix + name
}

func (m Model) renderBody(l screenLayout, b boardLayout) string {
	c := view.NewCanvas(l.width, l.height, m.styles.BaseStyle)
	m.renderBoard(c, l, b)
	m.renderBank(c, l)
	if !l.miniMap.Empty() {
		m.renderMiniMap(c, l, b)
	}
	m.renderDrag(c, l, b)
	return c.Render()
}

func (m Model) renderBank(c *view.Canvas, l screenLayout) {
	if l.bank.Empty() {
		return
	}
	s := m.styles
	bankStyle := c.Style(s.BankStyle)
	titleStyle := c.Style(s.BankTitleStyle)
	labelStyle := c.Style(s.BankLabelStyle)
	doneStyle := c.Style(s.BankDoneStyle)
	overStyle := c.Style(s.BankOverStyle)

	c.Fill(l.bank, ' ', bankStyle)
	if target, ok := m.tracker.Over(); ok && target.Kind == drop.TargetBank && m.draggedSessionID() != "" {
		dropStyle := c.Style(s.BankDropStyle)
		c.Fill(view.CellRect{X: l.bank.X, Y: l.bank.Y, W: l.bank.W, H: 1}, ' ', dropStyle)
		c.Text(l.bank.X+1, l.bank.Y, "Drop here to remove", l.bank.W-2, dropStyle)
	} else {
		c.Text(l.bank.X+1, l.bank.Y, "Courses", l.bank.W-2, titleStyle)
	}

	sum := summary.Summarize(m.store.Snapshot(), m.store.Grid())
	limit := l.bankEntryLimit()
	for i, line := range sum.Courses {
		if i >= limit {
			c.Text(l.bank.X+1, l.bankEntryRect(i).Y, fmt.Sprintf("+%d more", len(sum.Courses)-i), l.bank.W-2, labelStyle)
			break
		}
		r := l.bankEntryRect(i)
		swatch := c.Style(s.CourseSwatchStyle(line.Course.Color))
		c.Text(r.X+1, r.Y, "■", 1, swatch)
		name := fmt.Sprintf("%d %s", i+1, line.Course.Name)
		budget := fmt.Sprintf("%s/%s", clock.Duration(line.ScheduledMinutes), clock.Duration(int(math.Round(line.Course.TotalHours*60))))
		c.Text(r.X+3, r.Y, name, r.W-4-len(budget)-1, bankStyle)
		c.Text(r.X+r.W-1-len(budget), r.Y, budget, len(budget), labelStyle)

		switch {
		case line.Over():
			over := clock.Duration(int(math.Round(-line.RemainingHours * 60)))
			c.Text(r.X+3, r.Y+1, "over by "+over, r.W-4, overStyle)
		case line.Done():
			c.Text(r.X+3, r.Y+1, summary.BankLabel(line), r.W-4, doneStyle)
		default:
			c.Text(r.X+3, r.Y+1, summary.BankLabel(line), r.W-4, labelStyle)
		}
	}
}

func (m Model) miniMapLayout(l screenLayout, b boardLayout) geometry.MiniMapLayout {
	rects := make([]geometry.Rect, len(b.pools))
	for i, pc := range b.pools {
		rects[i] = pc.bounds
	}
	vp := l.boardRect()
	return geometry.MiniMap(rects, m.drags.Transform().Visible(vp.W, vp.H), miniMapSize)
}

func (m Model) renderMiniMap(c *view.Canvas, l screenLayout, b boardLayout) {
	s := m.styles
	c.Text(l.miniMap.X, l.miniMap.Y-1, "Map", l.miniMap.W, c.Style(s.BankTitleStyle))
	frame := c.Style(s.MiniMapFrameStyle)
	c.Fill(l.miniMap, ' ', frame)
	view.DrawMiniMap(c, l.miniMap, m.miniMapLayout(l, b), frame, c.Style(s.MiniMapPoolStyle), c.Style(s.MiniMapViewStyle))
}

// renderDrag draws the drop preview and the dragged element on top of
// everything else.
func (m Model) renderDrag(c *view.Canvas, l screenLayout, b boardLayout) {
	if m.tracker.State() != drop.Dragging {
		return
	}
	item, ok := m.drags.Item()
	if !ok {
		return
	}
	pointer, ok := m.drags.Pointer()
	if !ok {
		pointer = m.dragStart
	}
	s := m.styles
	g := m.store.Grid()
	t := m.drags.Transform()

	if item.Kind == drag.KindPoolCanvas {
		r := toCells(m.tracker.DraggedRect(pointer))
		st := c.Style(s.PoolMoveStyle)
		c.Fill(view.CellRect{X: r.X, Y: r.Y, W: r.W, H: 1}.Intersect(l.board), '─', st)
		c.Fill(view.CellRect{X: r.X, Y: r.Y + r.H - 1, W: r.W, H: 1}.Intersect(l.board), '─', st)
		c.Fill(view.CellRect{X: r.X, Y: r.Y, W: 1, H: r.H}.Intersect(l.board), '│', st)
		c.Fill(view.CellRect{X: r.X + r.W - 1, Y: r.Y, W: 1, H: r.H}.Intersect(l.board), '│', st)
		if pc, ok := b.pool(item.PoolID); ok {
			m.boardText(c, l, r.X+1, r.Y, " "+pc.pool.Title+" ", r.W-2, st)
		}
		return
	}

	if target, ok := m.tracker.Over(); ok && target.Kind == drop.TargetInterval {
		if pc, ok := b.pool(target.PoolID); ok && pc.pool.HasDay(target.Day) {
			col := pc.pool.ColumnIndex(target.Day)
			start, end := placement.ClampInterval(pc.pool, g, target.StartMinute, m.dragDuration(item))
			pos := pc.pool.Position(g, pc.index)
			preview := toCells(t.CanvasRectToScreen(geometry.Rect{
				X: pos.X + g.ColumnOffset(col),
				Y: pos.Y + g.MinuteOffset(start, pc.startHour),
				W: g.DayColumnWidth,
				H: g.MinutesToPixels(float64(end - start)),
			})).Intersect(pc.body).Intersect(l.board)
			st := c.Style(s.DropTargetStyle)
			c.Restyle(preview, st)
			if !preview.Empty() {
				c.Text(preview.X+1, preview.Y, clock.Range(start, end), preview.W-1, st)
			}
		}
	}

	course, err := m.store.Course(item.CourseID)
	if err != nil {
		return
	}
	r := toCells(m.tracker.DraggedRect(pointer))
	st := c.Style(s.CourseGhostStyle(course.Color))
	c.Fill(r, ' ', st)
	c.Text(r.X+1, r.Y, course.Name, r.W-1, st)
}

// dragDuration is the length a drop of item would get.
func (m Model) dragDuration(item drag.Item) int {
	if item.Kind == drag.KindBankBlock {
		return m.config.Placement().DefaultSessionMinutes
	}
	if d := item.Duration(); d > 0 {
		return d
	}
	return m.config.Placement().DefaultSessionMinutes
}

func (m Model) footerModel() view.FooterModel {
	s := m.styles
	f := view.FooterModel{
		Width:       m.width,
		StatusText:  m.statusText(),
		HelpText:    defaultHelpText,
		StatusStyle: s.StatusStyle,
		HelpStyle:   s.HelpStyle,
		Bg:          s.Palette().Bg,
	}
	if m.statusErr {
		f.StatusStyle = s.ErrorStyle
	}
	if m.mode == ModePrompt {
		f.ShowPrompt = true
		f.PromptLine = s.PromptStyle.Render(m.prompt.View())
		f.HelpText = promptHint(m.prompt.Value())
	}
	return f
}

// statusText is the transient message, or what the board is doing.
func (m Model) statusText() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	if m.tracker.State() == drop.Dragging {
		item, _ := m.drags.Item()
		if item.Kind == drag.KindPoolCanvas {
			return "Moving pool · release to place · esc cancels"
		}
		target, ok := m.tracker.Over()
		switch {
		case !ok:
			return "Release outside the board to cancel"
		case target.Kind == drop.TargetBank:
			return "Release to remove from the schedule"
		case target.Kind == drop.TargetWhiteboard:
			return "Release to place on the nearest pool"
		default:
			name := target.PoolID
			if p, err := m.store.Pool(target.PoolID); err == nil {
				name = p.Title
			}
			return fmt.Sprintf("%s · %s %s", name, target.Day, clock.Format(target.StartMinute))
		}
	}
	if m.resize != nil {
		return "Resize to " + clock.Format(m.resize.end)
	}
	snap := m.store.Snapshot()
	return fmt.Sprintf("%d pools · %d courses · %d sessions · %d undo steps",
		len(snap.Pools), len(snap.Courses), len(snap.Sessions), m.store.UndoDepth())
}

// promptHint describes the command being typed.
func promptHint(value string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(value), " ")
	if strings.Contains(value, " ") {
		for _, cmd := range input.Commands {
			if cmd.Name == strings.ToLower(name) {
				return cmd.Name + " " + cmd.Usage + " · " + cmd.Description
			}
		}
		return "enter to run · esc to close"
	}
	matches := input.PromptMatchingCommands(value, input.Commands)
	if len(matches) == 0 {
		return "enter to run · esc to close"
	}
	names := make([]string, len(matches))
	for i, cmd := range matches {
		names[i] = cmd.Name
	}
	return "tab completes · " + strings.Join(names, " ")
}

var helpKeys = [][2]string{
	{"drag", "bank course onto a pool day"},
	{"drag block", "move a session"},
	{"drag bottom", "resize a session"},
	{"drag header", "move a pool"},
	{"right click", "remove a session"},
	{"wheel / + -", "zoom"},
	{"arrows hjkl", "pan"},
	{"0", "fit all pools"},
	{"o", "jump to the canvas origin"},
	{"1-9", "centre on a pool"},
	{"u / r", "undo / redo"},
	{"c / p", "add course / pool"},
	{": or /", "command prompt"},
	{"m", "toggle mini-map"},
	{"s", "budget summary"},
	{"y", "copy timetable as CSV"},
	{"esc", "cancel drag"},
	{"q", "quit"},
}

func (m Model) modalStyles() view.ModalStyles {
	s := m.styles
	return view.ModalStyles{
		Frame: s.ModalStyle,
		Title: s.ModalTitleStyle,
		Key:   s.ModalKeyStyle,
		Text:  s.ModalTextStyle,
		Hint:  s.ModalHintStyle,
	}
}

func (m Model) renderHelp() string {
	keys := view.ModalSection{Title: "Keys"}
	for _, k := range helpKeys {
		keys.Rows = append(keys.Rows, view.ModalRow{Key: k[0], Text: k[1]})
	}
	cmds := view.ModalSection{Title: "Commands"}
	for _, cmd := range input.Commands {
		cmds.Rows = append(cmds.Rows, view.ModalRow{Key: cmd.Name, Text: cmd.Usage})
	}
	return view.RenderModal([]view.ModalSection{keys, cmds}, "esc to close", m.modalStyles())
}

func (m Model) renderSummary() string {
	sum := summary.Summarize(m.store.Snapshot(), m.store.Grid())
	courses := view.ModalSection{Title: "Courses"}
	for _, c := range sum.Courses {
		state := summary.BankLabel(c)
		if c.Over() {
			state = "over by " + clock.Duration(int(math.Round(-c.RemainingHours*60)))
		}
		courses.Rows = append(courses.Rows, view.ModalRow{
			Key:  c.Course.Name,
			Text: fmt.Sprintf("%-7s %2d sessions  %s", clock.Duration(c.ScheduledMinutes), c.Sessions, state),
		})
	}
	pools := view.ModalSection{Title: "Pools"}
	for _, p := range sum.Pools {
		text := fmt.Sprintf("%-7s %3.0f%% used", clock.Duration(p.Minutes), p.Utilization()*100)
		if p.Hidden > 0 {
			text += fmt.Sprintf("  %d on hidden days", p.Hidden)
		}
		pools.Rows = append(pools.Rows, view.ModalRow{Key: p.Pool.Title, Text: text})
	}
	hint := fmt.Sprintf("%s of %s scheduled · esc to close",
		clock.Duration(sum.ScheduledMinutes), clock.Duration(sum.BudgetMinutes))
	return view.RenderModal([]view.ModalSection{courses, pools}, hint, m.modalStyles())
}
