package ui

import (
	"os"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Pools: bold cyan
	colorPool = color.New(color.FgCyan, color.Bold)

	// Budget fully scheduled: green
	colorDone = color.New(color.FgGreen)

	// Over budget: red to make it pop
	colorOver = color.New(color.FgRed, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// isTerminal reports whether stdout is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatPool formats a pool title.
func formatPool(s string) string {
	return colorPool.Sprint(s)
}

// formatDone formats a fully scheduled budget.
func formatDone(s string) string {
	return colorDone.Sprint(s)
}

// formatOver formats an over-scheduled budget.
func formatOver(s string) string {
	return colorOver.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatSwatch renders a block in the course colour.
func formatSwatch(hex string) string {
	c, err := colorful.Hex(hex)
	if color.NoColor || err != nil {
		return "■"
	}
	r, g, b := c.RGB255()
	return color.RGB(int(r), int(g), int(b)).Sprint("■")
}
