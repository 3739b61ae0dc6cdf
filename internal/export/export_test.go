package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/schedule"
	"github.com/javiermolinar/poolboard/internal/summary"
)

func testState() schedule.State {
	st := schedule.Seed(geometry.DefaultGrid())
	st.Sessions = []schedule.Session{
		{ID: "s3", CourseID: "course-4", PoolID: "pool-2", Day: schedule.Tuesday, Start: 420, End: 480},
		{ID: "s2", CourseID: "course-1", PoolID: "pool-1", Day: schedule.Wednesday, Start: 540, End: 600},
		{ID: "s1", CourseID: "course-1", PoolID: "pool-1", Day: schedule.Monday, Start: 600, End: 690},
		{ID: "s0", CourseID: "course-2", PoolID: "pool-1", Day: schedule.Monday, Start: 480, End: 540},
		{ID: "dangling", CourseID: "gone", PoolID: "pool-1", Day: schedule.Monday, Start: 480, End: 540},
	}
	return st
}

func TestTimetableOrder(t *testing.T) {
	data := Timetable(testState())

	require.Len(t, data.Rows, 4)
	got := make([]string, len(data.Rows))
	for i, row := range data.Rows {
		got[i] = row[ColDay] + " " + row[ColStart] + " " + row[ColCourse]
	}
	assert.Equal(t, []string{
		"Monday 08:00 Silver",
		"Monday 10:00 Bronze",
		"Wednesday 09:00 Bronze",
		"Tuesday 07:00 NL",
	}, got)
	assert.Equal(t, "1h30m", data.Rows[1][ColDuration])
	assert.Equal(t, "#6366f1", data.Colors[0])
}

func TestCSV(t *testing.T) {
	out, err := CSV(Timetable(testState()))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"Pool", "Location", "Day", "Start", "End", "Course", "Duration"}, records[0])
	assert.Equal(t, []string{"Main Pool", "Building A", "Monday", "08:00", "09:00", "Silver", "1h"}, records[1])

	_, err = CSV(Dataset{})
	assert.Error(t, err)
}

func TestPDF(t *testing.T) {
	out, err := PDF(Timetable(testState()), "Timetable")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	_, err = PDF(Dataset{}, "")
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	st := testState()
	out, err := JSON(st)
	require.NoError(t, err)

	var back schedule.State
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Len(t, back.Sessions, len(st.Sessions))
	assert.Contains(t, string(out), `"courseId": "course-4"`)
}

func TestBudget(t *testing.T) {
	st := testState()
	data := Budget(summary.Summarize(st, geometry.DefaultGrid()))

	require.Len(t, data.Rows, 4)
	assert.Equal(t, "Bronze", data.Rows[0][ColCourse])
	assert.Equal(t, "2h", data.Rows[0][ColHours])
	assert.Equal(t, "2h30m", data.Rows[0][ColScheduled])
	assert.Equal(t, "-0.5h", data.Rows[0][ColRemaining])
	assert.Equal(t, "2", data.Rows[0][ColSessions])
}

func TestParseFormatAndRender(t *testing.T) {
	for _, name := range []string{"csv", "PDF", " json "} {
		f, err := ParseFormat(name)
		require.NoError(t, err, name)
		out, err := Render(f, testState(), "board")
		require.NoError(t, err, name)
		assert.NotEmpty(t, out)
	}

	_, err := ParseFormat("xlsx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = Render("xlsx", schedule.State{}, "")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
