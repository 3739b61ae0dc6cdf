// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/poolboard/internal/export"
	"github.com/javiermolinar/poolboard/internal/schedule"
)

// saveTimeout bounds background writes.
const saveTimeout = 5 * time.Second

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ColorsSavedMsg is sent after the custom colour list is written.
type ColorsSavedMsg struct {
	Count int
}

// ColorSaver persists the custom colour list.
type ColorSaver interface {
	SaveColors(ctx context.Context, colors []string) error
}

// SaveColors writes colors in the background.
func SaveColors(saver ColorSaver, colors []string) tea.Cmd {
	colors = append([]string(nil), colors...)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := saver.SaveColors(ctx, colors); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving colors: %w", err)}
		}
		return ColorsSavedMsg{Count: len(colors)}
	}
}

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// CopyTimetable renders the board as CSV and copies it to the clipboard.
func CopyTimetable(st schedule.State) tea.Cmd {
	return func() tea.Msg {
		data := export.Timetable(st)
		out, err := export.CSV(data)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if err := clipboardWrite(string(out)); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: fmt.Sprintf("Copied %d sessions to clipboard", len(data.Rows))}
	}
}

// Status returns a command that shows msg in the status line.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
