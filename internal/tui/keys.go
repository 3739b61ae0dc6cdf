package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/poolboard/internal/tui/commands"
	"github.com/javiermolinar/poolboard/internal/tui/input"
)

// panStep is how far one arrow key moves the board, in cells.
const panStep = 4

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		m.cancelGesture()
		return m, tea.Quit
	}
	// Mode-specific handling
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeHelp, ModeSummary:
		return m.handleModalKeys(msg)
	default:
		return m.handleBoardKeys(msg)
	}
}

// handleBoardKeys handles keys while the board has focus.
func (m Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "esc" {
		if m.cancelGesture() {
			return m.withStatus("Drag cancelled")
		}
		return m, nil
	}
	if key == "q" {
		m.cancelGesture()
		return m, tea.Quit
	}
	// Everything below would change what a running drag points at.
	if m.busy() {
		return m, nil
	}

	switch key {
	// History
	case "u", "ctrl+z":
		if m.store.Undo() {
			return m.withStatus("Undone")
		}
		return m.withStatus("Nothing to undo")
	case "r", "ctrl+y":
		if m.store.Redo() {
			return m.withStatus("Redone")
		}
		return m.withStatus("Nothing to redo")

	// View
	case "+", "=":
		m.drags.ZoomIn(m.boardCenter())
	case "-", "_":
		m.drags.ZoomOut(m.boardCenter())
	case "0":
		m.drags.UpdateScale(initialScale)
		m.fitView()
	case "o":
		m.drags.ResetView()
	case "h", "left":
		m.drags.Pan(panStep*cellW, 0)
	case "l", "right":
		m.drags.Pan(-panStep*cellW, 0)
	case "k", "up":
		m.drags.Pan(0, panStep*cellH)
	case "j", "down":
		m.drags.Pan(0, -panStep*cellH)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if !m.centerOnPool(int(key[0] - '1')) {
			return m.withStatus("No pool " + key)
		}
	case "m":
		m.showMiniMap = !m.showMiniMap

	// Panels
	case "?":
		m.mode = ModeHelp
	case "s":
		m.mode = ModeSummary
	case "y":
		return m, commands.CopyTimetable(m.store.Snapshot())

	// Prompt
	case ":", "/":
		return m.openPrompt("/")
	case "c":
		return m.openPrompt("/course ")
	case "p":
		return m.openPrompt("/pool ")
	}
	return m, nil
}

func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter", "?", "s":
		m.mode = ModeBoard
	}
	return m, nil
}

func (m Model) openPrompt(value string) (tea.Model, tea.Cmd) {
	m.mode = ModePrompt
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	cmd := m.prompt.Focus()
	return m, cmd
}

func (m Model) closePrompt() Model {
	m.mode = ModeBoard
	m.prompt.Blur()
	m.prompt.SetValue("")
	return m
}

// handlePromptKeys handles keys in prompt mode.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closePrompt(), nil
	case "tab":
		if completed, ok := input.PromptAutocomplete(m.prompt.Value(), input.Commands); ok {
			m.prompt.SetValue(completed)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "enter":
		line := m.prompt.Value()
		m = m.closePrompt()
		return m.runPrompt(line)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}
