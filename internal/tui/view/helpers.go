package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Band returns exactly height lines of width cells. Short lines are padded
// with bg, long lines are cut and missing lines are blank.
func Band(width, height int, content string, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	pad := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(content, "\n")
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		switch w := lipgloss.Width(line); {
		case w > width:
			line = ansi.Cut(line, 0, width)
		case w < width:
			line += pad.Render(strings.Repeat(" ", width-w))
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// ModalRow is one aligned key and description line.
type ModalRow struct {
	Key  string
	Text string
}

// ModalSection is a titled group of rows.
type ModalSection struct {
	Title string
	Rows  []ModalRow
}

// ModalStyles are the styles a board modal is drawn with.
type ModalStyles struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Key   lipgloss.Style
	Text  lipgloss.Style
	Hint  lipgloss.Style
}

// RenderModal lays out sections one after another with the key column as
// wide as the widest key, then the hint line, inside the frame.
func RenderModal(sections []ModalSection, hint string, st ModalStyles) string {
	keyW := 0
	for _, sec := range sections {
		for _, r := range sec.Rows {
			keyW = max(keyW, ansi.StringWidth(r.Key))
		}
	}
	key := st.Key.Width(keyW + 2)

	var lines []string
	for i, sec := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, st.Title.Render(sec.Title), "")
		for _, r := range sec.Rows {
			lines = append(lines, key.Render(r.Key)+st.Text.Render(r.Text))
		}
	}
	if hint != "" {
		lines = append(lines, "", st.Hint.Render(hint))
	}
	return st.Frame.Render(strings.Join(lines, "\n"))
}

// Overlay centres modal over base. A modal taller than the screen loses
// rows above its last line so the bottom border and hint stay visible.
func Overlay(base, modal string, width, height int, bg lipgloss.Color) string {
	rows := strings.Split(modal, "\n")
	if len(rows) > height && height > 0 {
		keep := rows[len(rows)-min(2, height):]
		rows = append(rows[:height-len(keep):height-len(keep)], keep...)
	}
	modalW := 0
	for _, r := range rows {
		modalW = max(modalW, lipgloss.Width(r))
	}
	if modalW == 0 || height <= 0 {
		return base
	}
	modalW = min(modalW, width)
	top := max(0, (height-len(rows))/2)
	left := max(0, (width-modalW)/2)

	bgSeq := backgroundSeq(bg)
	canvas := strings.Split(Band(width, height, base, ""), "\n")
	for i, r := range rows {
		y := top + i
		if y >= len(canvas) {
			break
		}
		r = Band(modalW, 1, r, bg)
		r = keepBackground(r, bgSeq) + ansi.ResetStyle
		line := canvas[y]
		canvas[y] = ansi.Cut(line, 0, left) + r + ansi.Cut(line, left+modalW, width)
	}
	return strings.Join(canvas, "\n")
}

// keepBackground restores the modal background after every reset inside a
// styled line so the modal has no holes.
func keepBackground(line, bgSeq string) string {
	if bgSeq == "" {
		return line
	}
	for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
		line = strings.ReplaceAll(line, reset, reset+bgSeq)
	}
	return line
}

func backgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}
