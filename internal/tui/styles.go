package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/poolboard/internal/palette"
	"github.com/javiermolinar/poolboard/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Base background for the whole screen
	BaseStyle lipgloss.Style

	// Toolbar
	ToolbarStyle       lipgloss.Style
	ToolbarTitleStyle  lipgloss.Style
	ToolbarButtonStyle lipgloss.Style
	ToolbarMutedStyle  lipgloss.Style

	// Pools
	PoolHeaderStyle lipgloss.Style
	PoolDayStyle    lipgloss.Style
	PoolBodyStyle   lipgloss.Style
	PoolGridStyle   lipgloss.Style
	HourLabelStyle  lipgloss.Style
	PoolMoveStyle   lipgloss.Style

	// Drag feedback
	DropTargetStyle lipgloss.Style
	ResizeStyle     lipgloss.Style

	// Bank panel
	BankStyle         lipgloss.Style
	BankTitleStyle    lipgloss.Style
	BankLabelStyle    lipgloss.Style
	BankDoneStyle     lipgloss.Style
	BankOverStyle     lipgloss.Style
	BankDropStyle     lipgloss.Style
	MiniMapPoolStyle  lipgloss.Style
	MiniMapViewStyle  lipgloss.Style
	MiniMapFrameStyle lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style
	HintStyle   lipgloss.Style

	// Help modal
	ModalBgColor     lipgloss.Color
	ModalStyle       lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalKeyStyle    lipgloss.Style
	ModalTextStyle   lipgloss.Style
	ModalHintStyle   lipgloss.Style
	PromptInputStyle lipgloss.Style

	courseCache map[string]lipgloss.Style
	ghostCache  map[string]lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{
		palette:     p,
		courseCache: make(map[string]lipgloss.Style),
		ghostCache:  make(map[string]lipgloss.Style),
	}

	s.BaseStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.Bg)

	s.ToolbarStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgHighlight)

	s.ToolbarTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.BgHighlight).
		Padding(0, 1)

	s.ToolbarButtonStyle = lipgloss.NewStyle().
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Padding(0, 1).
		MarginBackground(p.BgHighlight).
		MarginRight(1)

	s.ToolbarMutedStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.BgHighlight)

	s.PoolHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnPool).
		Background(p.Pool)

	s.PoolDayStyle = lipgloss.NewStyle().
		Foreground(p.TextOnPool).
		Background(p.Pool)

	s.PoolBodyStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.PoolBody)

	s.PoolGridStyle = lipgloss.NewStyle().
		Foreground(p.Grid).
		Background(p.PoolBody)

	s.HourLabelStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.PoolBody)

	s.PoolMoveStyle = lipgloss.NewStyle().
		Foreground(p.Pool).
		Background(p.Bg)

	s.DropTargetStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnDropTarget).
		Background(p.DropTarget)

	s.ResizeStyle = lipgloss.NewStyle().
		Foreground(p.TextOnWarning).
		Background(p.Warning)

	s.BankStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgHighlight)

	s.BankTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.BgHighlight)

	s.BankLabelStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.BgHighlight)

	s.BankDoneStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(p.FgMuted).
		Background(p.BgHighlight)

	s.BankOverStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Warning).
		Background(p.BgHighlight)

	s.BankDropStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnWarning).
		Background(p.Warning)

	s.MiniMapPoolStyle = lipgloss.NewStyle().
		Foreground(p.Pool).
		Background(p.Bg)

	s.MiniMapViewStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Bg)

	s.MiniMapFrameStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Bg).
		Padding(0, 1)

	s.ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Warning).
		Background(p.Bg).
		Padding(0, 1)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg).
		Padding(0, 1)

	s.PromptStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgSelection).
		Padding(0, 1)

	s.HintStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.BgSelection)

	s.PromptInputStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgSelection)

	s.ModalBgColor = p.Modal.Bg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Modal.Border).
		BorderBackground(p.Modal.Bg).
		Background(p.Modal.Bg).
		Foreground(p.Modal.Text).
		Padding(1, 2)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Modal.Highlight).
		Background(p.Modal.Bg)

	s.ModalKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Modal.Text).
		Background(p.Modal.Bg)

	s.ModalTextStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Text).
		Background(p.Modal.Bg)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Muted).
		Background(p.Modal.Bg)

	return s
}

// Palette returns the colours the styles were built from.
func (s *Styles) Palette() *theme.Palette {
	return s.palette
}

// CourseStyle returns the block style for a course colour.
func (s *Styles) CourseStyle(hex string) lipgloss.Style {
	hex = courseHex(hex)
	if st, ok := s.courseCache[hex]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Foreground(s.palette.CourseText(hex)).
		Background(s.palette.CourseBg(hex))
	s.courseCache[hex] = st
	return st
}

// CourseGhostStyle returns the faded style drawn under the pointer while a
// course block is dragged.
func (s *Styles) CourseGhostStyle(hex string) lipgloss.Style {
	hex = courseHex(hex)
	if st, ok := s.ghostCache[hex]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Italic(true).
		Foreground(s.palette.Fg).
		Background(s.palette.CourseGhost(hex))
	s.ghostCache[hex] = st
	return st
}

// CourseSwatchStyle is the coloured square in front of a bank entry.
func (s *Styles) CourseSwatchStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(courseHex(hex))).
		Background(s.palette.BgHighlight)
}

func courseHex(hex string) string {
	if n, err := palette.Normalize(hex); err == nil {
		return n
	}
	return palette.Fallback
}
