package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/poolboard/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.centered {
			m.fitView()
			m.centered = true
		}
		return m, nil

	case tea.BlurMsg:
		// a release outside the window never arrives
		if m.cancelGesture() {
			return m.withStatus("Drag cancelled")
		}
		return m, nil

	case commands.ErrMsg:
		return m.withError(msg.Err)

	case commands.StatusMsgCmd:
		return m.withStatus(msg.Msg)

	case commands.ColorsSavedMsg:
		return m.withStatus(fmt.Sprintf("Saved %d custom colours", msg.Count))

	case commands.ClearStatusMsg:
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	// Handle prompt input when in prompt mode
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}
