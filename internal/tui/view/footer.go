package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterModel contains content and styles for rendering the footer.
type FooterModel struct {
	Width       int
	StatusText  string
	HelpText    string
	PromptLine  string
	ShowPrompt  bool
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	Bg          lipgloss.Color
}

// Height returns the number of lines RenderFooter produces.
func (f FooterModel) Height() int {
	if f.ShowPrompt {
		return 3
	}
	return 2
}

// RenderFooter renders the optional prompt, then status and help lines.
func RenderFooter(f FooterModel) string {
	s := ""
	if f.ShowPrompt {
		s += footerLine(f.Width, lipgloss.NewStyle(), f.PromptLine) + "\n"
	}
	s += footerLine(f.Width, f.StatusStyle, f.StatusText) + "\n"
	s += footerLine(f.Width, f.HelpStyle, f.HelpText)
	return Band(f.Width, f.Height(), s, f.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	style = style.Width(contentWidth)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return style.Render(content)
}
