package schedule

import "github.com/javiermolinar/poolboard/internal/geometry"

// Seed returns the built-in starter board: two pools near the whiteboard
// centre and four courses with no sessions. It is used when nothing has been
// persisted yet or the persisted state cannot be read.
func Seed(g geometry.Grid) State {
	c := g.WhiteboardCenter()
	pool := func(id, title, location string, days []Weekday, start, end int, x, y float64) Pool {
		p := Pool{
			ID:        id,
			Title:     title,
			Location:  location,
			StartHour: &start,
			EndHour:   &end,
			X:         &x,
			Y:         &y,
		}
		for _, d := range days {
			p.Days = append(p.Days, PoolDay{ID: id + "-" + string(d[:3]), PoolID: id, Day: d})
		}
		return p
	}

	return State{
		Pools: []Pool{
			pool("pool-1", "Main Pool", "Building A",
				[]Weekday{Monday, Wednesday, Friday}, 8, 18, c.X-400, c.Y-200),
			pool("pool-2", "Training Pool", "Building B",
				[]Weekday{Tuesday, Thursday, Saturday, Sunday}, 7, 20, c.X+400, c.Y-200),
		},
		Courses: []Course{
			{ID: "course-1", Name: "Bronze", TotalHours: 2, Color: "#ef4444"},
			{ID: "course-2", Name: "Silver", TotalHours: 2, Color: "#6366f1"},
			{ID: "course-3", Name: "Gold", TotalHours: 2, Color: "#f59e0b"},
			{ID: "course-4", Name: "NL", TotalHours: 4, Color: "#10b981"},
		},
		Sessions: []Session{},
	}
}
