package geometry

import "math"

// MiniMapPadding is the margin added around the pools' bounding box.
const MiniMapPadding = 50

// MiniMapLayout is the projection of the board into a square overview of
// side Size. All rectangles are in mini-map units.
type MiniMapLayout struct {
	Size     float64
	Scale    float64
	Bounds   Rect // board area covered, in canvas units
	Pools    []Rect
	Viewport Rect
}

// MiniMap projects pool rectangles and the visible viewport (all in canvas
// units) into a size x size overview. With no pools the overview covers
// [-size, size] on both axes.
func MiniMap(pools []Rect, viewport Rect, size float64) MiniMapLayout {
	bounds := Rect{X: -size, Y: -size, W: 2 * size, H: 2 * size}
	if len(pools) > 0 {
		bounds = pools[0]
		for _, r := range pools[1:] {
			bounds = bounds.Union(r)
		}
		bounds = Rect{
			X: bounds.X - MiniMapPadding,
			Y: bounds.Y - MiniMapPadding,
			W: bounds.W + 2*MiniMapPadding,
			H: bounds.H + 2*MiniMapPadding,
		}
	}

	w := math.Max(1, bounds.W)
	h := math.Max(1, bounds.H)
	scale := math.Min(size/w, size/h)

	project := func(r Rect) Rect {
		return Rect{
			X: (r.X - bounds.X) * scale,
			Y: (r.Y - bounds.Y) * scale,
			W: math.Max(1, r.W*scale),
			H: math.Max(1, r.H*scale),
		}
	}

	layout := MiniMapLayout{
		Size:   size,
		Scale:  scale,
		Bounds: bounds,
		Pools:  make([]Rect, len(pools)),
	}
	for i, r := range pools {
		layout.Pools[i] = project(r)
	}
	layout.Viewport = Rect{
		X: (viewport.X - bounds.X) * scale,
		Y: (viewport.Y - bounds.Y) * scale,
		W: viewport.W * scale,
		H: viewport.H * scale,
	}
	return layout
}
