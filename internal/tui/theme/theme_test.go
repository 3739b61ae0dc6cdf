package theme

import (
	"testing"
)

func TestEveryThemeLoadsCompletely(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q): %v", name, err)
			}
			if th.Name != name {
				t.Errorf("Name = %q, want %q", th.Name, name)
			}
			for field, hex := range map[string]string{
				"Bg":          th.Bg,
				"Fg":          th.Fg,
				"Accent":      th.Accent,
				"Grid":        th.Grid,
				"Pool":        th.Pool,
				"DropTarget":  th.DropTarget,
				"Warning":     th.Warning,
				"BaseBg":      th.BaseBg,
				"ModalBorder": th.ModalBorder,
				"TextPrimary": th.TextPrimary,
				"TextMuted":   th.TextMuted,
				"Highlight":   th.Highlight,
			} {
				if len(hex) != 7 || hex[0] != '#' {
					t.Errorf("%s = %q, want #rrggbb", field, hex)
				}
			}
		})
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	for _, name := range []string{"", "nonexistent", "MOCHA"} {
		th, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th.Name != DefaultName {
			t.Errorf("Load(%q).Name = %q, want %q", name, th.Name, DefaultName)
		}
	}
}

func TestApplyDefaultsFillsBoardColours(t *testing.T) {
	tests := []struct {
		name           string
		in             Theme
		grid, pool, dt string
	}{
		{
			name: "explicit colours kept",
			in:   Theme{Grid: "#000001", Pool: "#000002", DropTarget: "#000003", BgHighlight: "#111111", Accent: "#222222"},
			grid: "#000001", pool: "#000002", dt: "#000003",
		},
		{
			name: "grid from highlight, pool and target from accent",
			in:   Theme{BgHighlight: "#111111", FgMuted: "#333333", Accent: "#222222"},
			grid: "#111111", pool: "#222222", dt: "#222222",
		},
		{
			name: "grid from muted text without highlight",
			in:   Theme{FgMuted: "#333333", Accent: "#222222"},
			grid: "#333333", pool: "#222222", dt: "#222222",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := tt.in
			th.applyDefaults()
			if th.Grid != tt.grid || th.Pool != tt.pool || th.DropTarget != tt.dt {
				t.Errorf("Grid/Pool/DropTarget = %s/%s/%s, want %s/%s/%s",
					th.Grid, th.Pool, th.DropTarget, tt.grid, tt.pool, tt.dt)
			}
		})
	}
}

func TestModalFallsBackToBaseColours(t *testing.T) {
	th := Theme{
		Bg:          "#000000",
		BgSelection: "#444444",
		Fg:          "#ffffff",
		FgMuted:     "#888888",
		Accent:      "#0000ff",
	}
	got := th.Modal()
	want := ModalPalette{
		BaseBg:      "#000000",
		ModalBorder: "#0000ff",
		TextPrimary: "#ffffff",
		TextMuted:   "#888888",
		Highlight:   "#444444",
	}
	if got != want {
		t.Errorf("Modal() = %+v, want %+v", got, want)
	}

	th.BgHighlight = "#222222"
	th.BgSelection = ""
	th.ModalBorder = "#ff0000"
	got = th.Modal()
	if got.BaseBg != "#222222" {
		t.Errorf("BaseBg = %q, want the highlight background", got.BaseBg)
	}
	if got.Highlight != "#0000ff" {
		t.Errorf("Highlight = %q, want the accent", got.Highlight)
	}
	if got.ModalBorder != "#ff0000" {
		t.Errorf("ModalBorder = %q, want the override", got.ModalBorder)
	}
}

func TestEmbeddedModalOverrides(t *testing.T) {
	mocha, err := Load("mocha")
	if err != nil {
		t.Fatal(err)
	}
	if mocha.ModalBorder != mocha.Accent {
		t.Errorf("mocha ModalBorder = %q, want accent %q", mocha.ModalBorder, mocha.Accent)
	}
	if mocha.BaseBg != "#313244" {
		t.Errorf("mocha BaseBg = %q, want bg_highlight", mocha.BaseBg)
	}

	light, err := Load("light")
	if err != nil {
		t.Fatal(err)
	}
	if light.ModalBorder != "#0066cc" {
		t.Errorf("light ModalBorder = %q", light.ModalBorder)
	}
}

func TestIsAvailable(t *testing.T) {
	for name, want := range map[string]bool{"mocha": true, "Latte": true, "unknown": false} {
		if got := IsAvailable(name); got != want {
			t.Errorf("IsAvailable(%q) = %t, want %t", name, got, want)
		}
	}
}
