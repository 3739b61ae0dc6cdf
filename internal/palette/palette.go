// Package palette holds the course colour palette and the user's custom colours.
package palette

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for strings that are not #rrggbb or #rgb.
var ErrInvalidColor = errors.New("color must be a hex value like #ef4444")

// Default is the fixed palette new courses cycle through.
var Default = []string{
	"#ef4444",
	"#f97316",
	"#f59e0b",
	"#10b981",
	"#06b6d4",
	"#6366f1",
	"#8b5cf6",
	"#ec4899",
}

// Fallback is used when a course has no colour.
const Fallback = "#4f46e5"

// Color returns the palette entry for the n-th course.
func Color(n int) string {
	if n < 0 {
		n = -n
	}
	return Default[n%len(Default)]
}

// Normalize parses a hex colour and returns it as lowercase #rrggbb.
func Normalize(hex string) (string, error) {
	s := strings.TrimSpace(hex)
	if s == "" {
		return "", ErrInvalidColor
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return "", fmt.Errorf("%q: %w", hex, ErrInvalidColor)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%q: %w", hex, ErrInvalidColor)
	}
	return c.Hex(), nil
}

// IsBuiltin reports whether hex is one of the Default entries.
func IsBuiltin(hex string) bool {
	n, err := Normalize(hex)
	if err != nil {
		return false
	}
	return slices.Contains(Default, n)
}

// ContrastText returns black or white, whichever reads better on top of hex.
// Invalid colours are treated as the fallback colour.
func ContrastText(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(Fallback)
	}
	// YIQ brightness on 0..255 channels
	r, g, b := c.RGB255()
	yiq := (int(r)*299 + int(g)*587 + int(b)*114) / 1000
	if yiq >= 128 {
		return "#000000"
	}
	return "#ffffff"
}
