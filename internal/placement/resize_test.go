package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/schedule"
)

func TestResizedEnd(t *testing.T) {
	g := geometry.DefaultGrid()
	se := schedule.Session{Start: 480, End: 540}

	tests := []struct {
		name  string
		delta float64
		scale float64
		want  int
	}{
		{name: "half hour down", delta: 30, scale: 1, want: 570},
		{name: "zoomed in", delta: 60, scale: 2, want: 570},
		{name: "zoomed out", delta: 15, scale: 0.5, want: 570},
		{name: "small wiggle snaps back", delta: 5, scale: 1, want: 540},
		{name: "cannot reach start", delta: -500, scale: 1, want: 495},
		{name: "stops at pool end", delta: 2000, scale: 1, want: 1080},
		{name: "zero scale treated as one", delta: 30, scale: 0, want: 570},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResizedEnd(g, se, 1080, 540, tt.delta, tt.scale)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResizeCommitsOnlyChanges(t *testing.T) {
	store, c := newSeeded(t)
	id := store.CreateSession(bronze, mainPool, schedule.Monday, 480, 540)
	steps := len(store.History())

	out := c.Resize(id, 540, 5, 1)
	assert.Equal(t, ActionNone, out.Action)
	assert.Len(t, store.History(), steps)

	out = c.Resize(id, 540, 60, 1)
	require.Equal(t, ActionResize, out.Action)
	se, err := store.Session(id)
	require.NoError(t, err)
	assert.Equal(t, 480, se.Start)
	assert.Equal(t, 600, se.End)

	out = c.Resize(id, 540, 5000, 1)
	require.Equal(t, ActionResize, out.Action)
	assert.Equal(t, 1080, out.End, "main pool closes at 18:00")

	assert.Equal(t, ActionNone, c.Resize("missing", 540, 60, 1).Action)
}
