package tui

import (
	"math"
	"strconv"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/poolboard/internal/clock"
	"github.com/javiermolinar/poolboard/internal/drag"
	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/schedule"
	"github.com/javiermolinar/poolboard/internal/tui/view"
)

// Screen units per terminal cell. At scale 1 one row is one 15-minute slot.
const (
	cellW = 20.0
	cellH = 15.0
)

const (
	toolbarHeight  = 1
	bankWidth      = 30
	minBoardWidth  = 20
	miniMapHeight  = 9
	miniMapSize    = 100.0
	bankEntryRows  = 2
	bankHeaderRows = 2
)

// screenLayout places the board, the bank and the mini-map in body cells.
// The body starts below the toolbar; the board sits at the body origin so
// board cells and body cells are the same.
type screenLayout struct {
	width, height int // body size
	board         view.CellRect
	bank          view.CellRect
	miniMap       view.CellRect
	bodyTop       int
}

func (m Model) screenLayout() screenLayout {
	footerH := m.footerModel().Height()
	h := max(0, m.height-toolbarHeight-footerH)
	bankW := bankWidth
	if m.width-bankW < minBoardWidth {
		bankW = max(0, m.width-minBoardWidth)
	}
	l := screenLayout{
		width:   m.width,
		height:  h,
		board:   view.CellRect{W: m.width - bankW, H: h},
		bank:    view.CellRect{X: m.width - bankW, W: bankW, H: h},
		bodyTop: toolbarHeight,
	}
	if m.showMiniMap && bankW > 4 && h > miniMapHeight+bankHeaderRows+bankEntryRows {
		l.miniMap = view.CellRect{X: l.bank.X + 1, Y: h - miniMapHeight, W: bankW - 2, H: miniMapHeight - 1}
	}
	return l
}

// cell converts a terminal position to body cells.
func (l screenLayout) cell(x, y int) (int, int) {
	return x, y - l.bodyTop
}

// pointer converts a terminal position to board screen units, at the centre
// of the cell.
func (l screenLayout) pointer(x, y int) geometry.Point {
	cx, cy := l.cell(x, y)
	return geometry.Point{
		X: float64(cx-l.board.X)*cellW + cellW/2,
		Y: float64(cy-l.board.Y)*cellH + cellH/2,
	}
}

func (l screenLayout) boardRect() geometry.Rect {
	return geometry.Rect{W: float64(l.board.W) * cellW, H: float64(l.board.H) * cellH}
}

func (l screenLayout) bankRect() geometry.Rect {
	return geometry.Rect{
		X: float64(l.bank.X-l.board.X) * cellW,
		Y: float64(l.bank.Y-l.board.Y) * cellH,
		W: float64(l.bank.W) * cellW,
		H: float64(l.bank.H) * cellH,
	}
}

// bankEntryRect is the body cell range of the i-th bank entry.
func (l screenLayout) bankEntryRect(i int) view.CellRect {
	return view.CellRect{X: l.bank.X, Y: l.bank.Y + bankHeaderRows + i*bankEntryRows, W: l.bank.W, H: bankEntryRows}
}

// bankEntryLimit is the number of entries that fit above the mini-map.
func (l screenLayout) bankEntryLimit() int {
	bottom := l.bank.Y + l.bank.H
	if !l.miniMap.Empty() {
		bottom = l.miniMap.Y - 1
	}
	return max(0, (bottom-l.bank.Y-bankHeaderRows)/bankEntryRows)
}

// toCells rounds a board screen rectangle to cells.
func toCells(r geometry.Rect) view.CellRect {
	x0 := int(math.Round(r.X / cellW))
	y0 := int(math.Round(r.Y / cellH))
	x1 := int(math.Round((r.X + r.W) / cellW))
	y1 := int(math.Round((r.Y + r.H) / cellH))
	return view.CellRect{X: x0, Y: y0, W: max(1, x1-x0), H: max(1, y1-y0)}
}

type poolCells struct {
	pool      schedule.Pool
	index     int
	bounds    geometry.Rect // canvas units
	screen    geometry.Rect
	rect      view.CellRect
	header    view.CellRect
	body      view.CellRect
	days      []schedule.Weekday
	startHour int
	endHour   int
	sessions  []sessionCells
}

type sessionCells struct {
	session schedule.Session
	course  schedule.Course
	screen  geometry.Rect
	rect    view.CellRect
}

// boardLayout is the board as drawn for the current transform. Hit tests
// read it so that what is clicked is what is on screen.
type boardLayout struct {
	pools []poolCells
}

func (m Model) boardLayout() boardLayout {
	g := m.store.Grid()
	t := m.drags.Transform()

	var b boardLayout
	for i, p := range m.store.Pools() {
		bounds := p.Bounds(g, i)
		screen := t.CanvasRectToScreen(bounds)
		pc := poolCells{
			pool:   p,
			index:  i,
			bounds: bounds,
			screen: screen,
			rect:   toCells(screen),
			days:   p.Weekdays(),
		}
		pc.startHour, pc.endHour = p.HourRange(g)
		pc.header = toCells(t.CanvasRectToScreen(geometry.Rect{X: bounds.X, Y: bounds.Y, W: bounds.W, H: g.HeaderHeight}))
		pc.body = pc.rect.Intersect(view.CellRect{
			X: pc.rect.X, Y: pc.header.Y + pc.header.H,
			W: pc.rect.W, H: pc.rect.Y + pc.rect.H - pc.header.Y - pc.header.H,
		})

		pos := p.Position(g, i)
		for col, day := range pc.days {
			for _, se := range m.store.SessionsForPoolDay(p.ID, day) {
				course, err := m.store.Course(se.CourseID)
				if err != nil {
					continue
				}
				end := se.End
				if m.resize != nil && m.resize.sessionID == se.ID {
					end = m.resize.end
				}
				canvas := geometry.Rect{
					X: pos.X + g.ColumnOffset(col),
					Y: pos.Y + g.MinuteOffset(se.Start, pc.startHour),
					W: g.DayColumnWidth,
					H: g.MinutesToPixels(float64(end - se.Start)),
				}
				sc := sessionCells{session: se, course: course, screen: t.CanvasRectToScreen(canvas)}
				sc.rect = toCells(sc.screen).Intersect(pc.body)
				if sc.rect.Empty() {
					continue
				}
				pc.sessions = append(pc.sessions, sc)
			}
		}
		b.pools = append(b.pools, pc)
	}
	return b
}

// sessionAt returns the topmost session block at body cell (x, y).
func (b boardLayout) sessionAt(x, y int) (sessionCells, bool) {
	for i := len(b.pools) - 1; i >= 0; i-- {
		pc := b.pools[i]
		if !pc.rect.Contains(x, y) {
			continue
		}
		for j := len(pc.sessions) - 1; j >= 0; j-- {
			if pc.sessions[j].rect.Contains(x, y) {
				return pc.sessions[j], true
			}
		}
		// the pool covers anything drawn below it
		return sessionCells{}, false
	}
	return sessionCells{}, false
}

// headerAt returns the pool whose header is at body cell (x, y).
func (b boardLayout) headerAt(x, y int) (poolCells, bool) {
	for i := len(b.pools) - 1; i >= 0; i-- {
		pc := b.pools[i]
		if !pc.rect.Contains(x, y) {
			continue
		}
		if pc.header.Contains(x, y) {
			return pc, true
		}
		return poolCells{}, false
	}
	return poolCells{}, false
}

func (b boardLayout) pool(id string) (poolCells, bool) {
	for _, pc := range b.pools {
		if pc.pool.ID == id {
			return pc, true
		}
	}
	return poolCells{}, false
}

// onResizeHandle reports whether y is the bottom row of a block tall enough
// to also be moved.
func (sc sessionCells) onResizeHandle(y int) bool {
	return sc.rect.H >= 2 && y == sc.rect.Y+sc.rect.H-1
}

// canvasUnion is the bounding box of every pool, or false with no pools.
func (b boardLayout) canvasUnion() (geometry.Rect, bool) {
	if len(b.pools) == 0 {
		return geometry.Rect{}, false
	}
	r := b.pools[0].bounds
	for _, pc := range b.pools[1:] {
		r = r.Union(pc.bounds)
	}
	return r, true
}

func (m Model) renderBoard(c *view.Canvas, l screenLayout, b boardLayout) {
	s := m.styles
	bodyStyle := c.Style(s.PoolBodyStyle)
	gridStyle := c.Style(s.PoolGridStyle)
	hourStyle := c.Style(s.HourLabelStyle)
	headerStyle := c.Style(s.PoolHeaderStyle)
	dayStyle := c.Style(s.PoolDayStyle)
	resizeStyle := c.Style(s.ResizeStyle)

	g := m.store.Grid()
	t := m.drags.Transform()
	dragged := m.draggedSessionID()

	for _, pc := range b.pools {
		r := pc.rect.Intersect(l.board)
		if r.Empty() {
			continue
		}
		c.Fill(r, ' ', bodyStyle)

		pos := pc.pool.Position(g, pc.index)
		gutter := max(1, int(math.Round(g.HourLabelWidth*t.Scale/cellW)))
		for h := pc.startHour; h < pc.endHour; h++ {
			y := int(math.Round(t.CanvasToScreen(geometry.Point{Y: pos.Y + g.MinuteOffset(h*60, pc.startHour)}).Y / cellH))
			if !pc.body.Contains(pc.body.X, y) {
				continue
			}
			c.Fill(view.CellRect{X: pc.rect.X + gutter, Y: y, W: pc.rect.W - gutter, H: 1}.Intersect(l.board), '┄', gridStyle)
			label := clock.HourLabel(h)
			if len(label) > gutter {
				label = strconv.Itoa(h)
			}
			c.Text(pc.rect.X, y, label, min(gutter, l.board.X+l.board.W-pc.rect.X), hourStyle)
		}

		colX := make([]int, len(pc.days))
		for col := range pc.days {
			colX[col] = int(math.Round(t.CanvasToScreen(geometry.Point{X: pos.X + g.ColumnOffset(col)}).X / cellW))
			c.Fill(view.CellRect{X: colX[col], Y: pc.body.Y, W: 1, H: pc.body.H}.Intersect(l.board), '│', gridStyle)
		}
		if len(pc.days) == 0 {
			c.Text(pc.rect.X+gutter, pc.body.Y, "no days", pc.rect.W-gutter, hourStyle)
		}

		c.Fill(pc.header.Intersect(l.board), ' ', headerStyle)
		m.boardText(c, l, pc.header.X+1, pc.header.Y, poolTitle(pc.pool, pc.index, pc.header.W-1), pc.header.W-1, headerStyle)
		if pc.header.H >= 2 {
			colW := max(1, int(math.Round(g.DayColumnWidth*t.Scale/cellW)))
			for col, day := range pc.days {
				name := string(day)
				if colW < len(name)+1 {
					name = day.Short()
				}
				m.boardText(c, l, colX[col]+1, pc.header.Y+pc.header.H-1, name, colW-1, dayStyle)
			}
		}

		for _, sc := range pc.sessions {
			var st int
			if sc.session.ID == dragged {
				st = c.Style(s.CourseGhostStyle(sc.course.Color))
			} else {
				st = c.Style(s.CourseStyle(sc.course.Color))
			}
			c.Fill(sc.rect.Intersect(l.board), ' ', st)
			m.boardText(c, l, sc.rect.X+1, sc.rect.Y, sc.course.Name, sc.rect.W-1, st)
			end := sc.session.End
			if m.resize != nil && m.resize.sessionID == sc.session.ID {
				end = m.resize.end
				c.Restyle(view.CellRect{X: sc.rect.X, Y: sc.rect.Y + sc.rect.H - 1, W: sc.rect.W, H: 1}.Intersect(l.board), resizeStyle)
			}
			if sc.rect.H >= 2 {
				m.boardText(c, l, sc.rect.X+1, sc.rect.Y+1, clock.Range(sc.session.Start, end), sc.rect.W-1, st)
			}
		}
	}
}

// poolTitle returns the longest header that fits in width cells, dropping the
// location and then the list number before the title itself is truncated.
func poolTitle(p schedule.Pool, index, width int) string {
	numbered := strconv.Itoa(index+1) + " " + p.Title
	candidates := []string{numbered, p.Title}
	if p.Location != "" {
		candidates = append([]string{numbered + " · " + p.Location}, candidates...)
	}
	for _, c := range candidates {
		if ansi.StringWidth(c) <= width {
			return c
		}
	}
	return p.Title
}

// boardText writes text clipped to the board area.
func (m Model) boardText(c *view.Canvas, l screenLayout, x, y int, s string, maxW, style int) {
	if !l.board.Contains(l.board.X, y) {
		return
	}
	if x < l.board.X {
		return
	}
	maxW = min(maxW, l.board.X+l.board.W-x)
	c.Text(x, y, s, maxW, style)
}

func (m Model) draggedSessionID() string {
	item, ok := m.drags.Item()
	if !ok || item.Kind != drag.KindGridCourse || item.Session == nil {
		return ""
	}
	return item.Session.ID
}
