package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Grid        lipgloss.Color
	Pool        lipgloss.Color
	DropTarget  lipgloss.Color
	Warning     lipgloss.Color

	// PoolBody is the pool interior, a faint tint of Pool over Bg.
	PoolBody lipgloss.Color

	TextOnAccent     lipgloss.Color
	TextOnPool       lipgloss.Color
	TextOnDropTarget lipgloss.Color
	TextOnWarning    lipgloss.Color

	Modal ModalColors

	bg, fg string
	light  bool
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg        lipgloss.Color
	Border    lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	modal := t.Modal()
	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Grid:        lipgloss.Color(t.Grid),
		Pool:        lipgloss.Color(t.Pool),
		DropTarget:  lipgloss.Color(t.DropTarget),
		Warning:     lipgloss.Color(t.Warning),

		PoolBody: lipgloss.Color(blendColors(t.Bg, t.Pool, 0.08)),

		TextOnAccent:     lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnPool:       lipgloss.Color(chooseTextColor(t.Pool, t.Bg, t.Fg)),
		TextOnDropTarget: lipgloss.Color(chooseTextColor(t.DropTarget, t.Bg, t.Fg)),
		TextOnWarning:    lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:        lipgloss.Color(modal.BaseBg),
			Border:    adaptiveColor(modal.ModalBorder),
			Text:      adaptiveColor(modal.TextPrimary),
			Muted:     adaptiveColor(modal.TextMuted),
			Highlight: adaptiveColor(modal.Highlight),
		},

		bg:    t.Bg,
		fg:    t.Fg,
		light: isLightTheme(t.Bg),
	}
}

// Light reports whether the theme has a light background.
func (p *Palette) Light() bool {
	return p.light
}

// CourseBg returns the block background for a course colour: toned down on
// dark themes, lightened on light themes.
func (p *Palette) CourseBg(hex string) lipgloss.Color {
	if p.light {
		return lipgloss.Color(blendColors(hex, p.bg, 0.35))
	}
	return lipgloss.Color(blendColors(hex, p.bg, 0.25))
}

// CourseGhost is the faded block drawn under the pointer while dragging.
func (p *Palette) CourseGhost(hex string) lipgloss.Color {
	return lipgloss.Color(blendColors(hex, p.bg, 0.6))
}

// CourseText returns the readable text colour on CourseBg(hex).
func (p *Palette) CourseText(hex string) lipgloss.Color {
	return lipgloss.Color(chooseTextColor(string(p.CourseBg(hex)), "#ffffff", "#000000"))
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

func parse(hex string) (colorful.Color, bool) {
	c, err := colorful.Hex(hex)
	return c, err == nil
}

// blendColors mixes a towards b by ratio in RGB space. Invalid input returns a.
func blendColors(a, b string, ratio float64) string {
	ca, okA := parse(a)
	cb, okB := parse(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Max(0, math.Min(1, ratio))
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}

func adaptiveColor(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Dark:  hex,
		Light: hex,
	}
}

func chooseTextColor(bg, lightText, darkText string) string {
	lightContrast := contrastRatio(bg, lightText)
	darkContrast := contrastRatio(bg, darkText)
	if lightContrast >= darkContrast {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// relativeLuminance is the WCAG luminance of hex, 0 for invalid input.
func relativeLuminance(hex string) float64 {
	c, ok := parse(hex)
	if !ok {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
