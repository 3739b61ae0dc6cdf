package ui

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/poolboard/internal/config"
	"github.com/javiermolinar/poolboard/internal/logging"
	"github.com/javiermolinar/poolboard/internal/schedule"
	"github.com/javiermolinar/poolboard/internal/storage"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Storage.Backend = config.BackendMemory
	cfg.Log.Level = "error"
	return cfg
}

// run executes one command line against kv with a fresh App, the way
// separate shell invocations share one database.
func run(t *testing.T, kv storage.KV, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp(testConfig(), WithKV(kv))
	app.SetOutput(&out)
	app.SetArgs(append([]string{"--no-color"}, args...))
	err := app.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, kv storage.KV, args ...string) string {
	t.Helper()
	out, err := run(t, kv, args...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

// loadBoard reads what the commands persisted.
func loadBoard(t *testing.T, kv storage.KV) schedule.State {
	t.Helper()
	app := NewApp(testConfig(), WithKV(kv))
	b, err := app.open(context.Background(), logging.ModeCLI)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return b.store.Snapshot()
}

func TestVersion(t *testing.T) {
	out := mustRun(t, storage.NewMemory(), "version")
	if !strings.HasPrefix(out, "poolboard ") {
		t.Errorf("version output = %q", out)
	}
}

func TestSessionAddSnapsLikeBankDrop(t *testing.T) {
	tests := []struct {
		name  string
		start string
		want  string
	}{
		{"on grid", "09:00", "09:00-10:00"},
		{"snapped", "09:07", "09:00-10:00"},
		{"clamped to closing", "17:45", "17:00-18:00"},
		{"clamped to opening", "06:00", "08:00-09:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemory()
			out := mustRun(t, kv, "session", "add", "Bronze", "Main Pool", "mon", tt.start)
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
			st := loadBoard(t, kv)
			if len(st.Sessions) != 1 {
				t.Fatalf("expected 1 session, got %d", len(st.Sessions))
			}
			if st.Sessions[0].Day != schedule.Monday || st.Sessions[0].PoolID != "pool-1" {
				t.Errorf("unexpected session %+v", st.Sessions[0])
			}
		})
	}
}

func TestSessionAddWithEnd(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantStart  int
		wantEnd    int
	}{
		{"on grid", "10:15", "11:45", 10*60 + 15, 11*60 + 45},
		{"snaps both ends", "09:07", "10:02", 9 * 60, 10 * 60},
		{"shifted inside closing time", "17:30", "19:00", 16*60 + 30, 18 * 60},
		{"shifted inside opening time", "05:00", "06:00", 8 * 60, 9 * 60},
		{"longer than opening hours", "07:00", "20:00", 8 * 60, 18 * 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemory()
			mustRun(t, kv, "session", "add", "2", "1", "wed", tt.start, "--end", tt.end)

			st := loadBoard(t, kv)
			if len(st.Sessions) != 1 {
				t.Fatalf("expected 1 session, got %d", len(st.Sessions))
			}
			se := st.Sessions[0]
			if se.CourseID != "course-2" || se.Day != schedule.Wednesday {
				t.Errorf("unexpected session %+v", se)
			}
			if se.Start != tt.wantStart || se.End != tt.wantEnd {
				t.Errorf("interval = %d-%d, want %d-%d", se.Start, se.End, tt.wantStart, tt.wantEnd)
			}
			if se.Start%15 != 0 || se.End%15 != 0 {
				t.Errorf("interval %d-%d not on the 15 minute grid", se.Start, se.End)
			}
		})
	}

	kv := storage.NewMemory()
	if _, err := run(t, kv, "session", "add", "2", "1", "wed", "17:30", "--end", "17:00"); err == nil {
		t.Error("expected error for end before start")
	}
}

func TestSessionAddRejectsInactiveDay(t *testing.T) {
	kv := storage.NewMemory()
	_, err := run(t, kv, "session", "add", "Bronze", "Main Pool", "tue", "09:00")
	if err == nil || !strings.Contains(err.Error(), "does not run on") {
		t.Fatalf("expected inactive day error, got %v", err)
	}
}

func TestSessionLookupErrors(t *testing.T) {
	kv := storage.NewMemory()
	if _, err := run(t, kv, "session", "add", "Nope", "1", "mon", "09:00"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("expected ErrCourseNotFound, got %v", err)
	}
	if _, err := run(t, kv, "session", "add", "1", "Nope", "mon", "09:00"); !errors.Is(err, ErrPoolNotFound) {
		t.Errorf("expected ErrPoolNotFound, got %v", err)
	}
	if _, err := run(t, kv, "session", "rm", "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionMoveKeepsDuration(t *testing.T) {
	kv := storage.NewMemory()
	mustRun(t, kv, "session", "add", "1", "1", "mon", "09:00", "--end", "10:30")
	id := loadBoard(t, kv).Sessions[0].ID

	out := mustRun(t, kv, "session", "move", id[:8], "--pool", "Training Pool", "--day", "thu", "--start", "12:10")
	if !strings.Contains(out, "12:15-13:45") {
		t.Errorf("unexpected output %q", out)
	}

	se := loadBoard(t, kv).Sessions[0]
	if se.PoolID != "pool-2" || se.Day != schedule.Thursday || se.Start != 12*60+15 || se.End != 13*60+45 {
		t.Errorf("unexpected session after move %+v", se)
	}
}

func TestSessionResize(t *testing.T) {
	kv := storage.NewMemory()
	mustRun(t, kv, "session", "add", "1", "1", "mon", "09:00")
	id := loadBoard(t, kv).Sessions[0].ID

	tests := []struct {
		end  string
		want int
	}{
		{"10:30", 10*60 + 30},
		{"10:40", 10*60 + 45},
		{"20:00", 18 * 60}, // pool closes at 18
	}
	for _, tt := range tests {
		mustRun(t, kv, "session", "resize", id, "--end", tt.end)
		if got := loadBoard(t, kv).Sessions[0].End; got != tt.want {
			t.Errorf("resize to %s: end = %d, want %d", tt.end, got, tt.want)
		}
	}

	if _, err := run(t, kv, "session", "resize", id, "--end", "08:00"); err == nil {
		t.Error("expected error for end before start")
	}
}

func TestSessionListAndRemove(t *testing.T) {
	kv := storage.NewMemory()
	mustRun(t, kv, "session", "add", "Gold", "1", "fri", "11:00")
	mustRun(t, kv, "session", "add", "Silver", "2", "sat", "07:00")

	out := mustRun(t, kv, "session", "list", "--pool", "1")
	if !strings.Contains(out, "Gold") || strings.Contains(out, "Silver") {
		t.Errorf("pool filter output:\n%s", out)
	}
	out = mustRun(t, kv, "session", "list")
	if strings.Index(out, "Main Pool") > strings.Index(out, "Training Pool") {
		t.Errorf("sessions not in pool order:\n%s", out)
	}

	st := loadBoard(t, kv)
	mustRun(t, kv, "session", "rm", st.Sessions[0].ID)
	if n := len(loadBoard(t, kv).Sessions); n != 1 {
		t.Errorf("expected 1 session after rm, got %d", n)
	}
}

func TestCourseCommands(t *testing.T) {
	kv := storage.NewMemory()
	mustRun(t, kv, "course", "add", "Aqua fit", "6.5", "--color", "#06B6D4")

	st := loadBoard(t, kv)
	c := st.Courses[len(st.Courses)-1]
	if c.Name != "Aqua fit" || c.TotalHours != 6.5 || c.Color != "#06b6d4" {
		t.Fatalf("unexpected course %+v", c)
	}

	if _, err := run(t, kv, "course", "add", "Empty", "0"); err == nil {
		t.Error("expected validation error for zero hours")
	}
	if _, err := run(t, kv, "course", "add", "  ", "2"); err == nil {
		t.Error("expected validation error for blank name")
	}
	if _, err := run(t, kv, "course", "edit", "Aqua fit"); err == nil {
		t.Error("expected error when no flag is given")
	}

	mustRun(t, kv, "course", "edit", "aqua FIT", "--hours", "8", "--color", "1")
	c = loadBoard(t, kv).Courses[4]
	if c.TotalHours != 8 || c.Color != "#ef4444" || c.Name != "Aqua fit" {
		t.Errorf("unexpected course after edit %+v", c)
	}

	mustRun(t, kv, "session", "add", "Aqua fit", "1", "mon", "09:00")
	out := mustRun(t, kv, "course", "rm", "Aqua fit")
	if !strings.Contains(out, "1 sessions") {
		t.Errorf("unexpected rm output %q", out)
	}
	st = loadBoard(t, kv)
	if len(st.Courses) != 4 || len(st.Sessions) != 0 {
		t.Errorf("course rm left %d courses and %d sessions", len(st.Courses), len(st.Sessions))
	}
}

func TestCourseListShowsBudget(t *testing.T) {
	kv := storage.NewMemory()
	mustRun(t, kv, "session", "add", "Bronze", "1", "mon", "09:00", "--end", "11:00")
	mustRun(t, kv, "session", "add", "Silver", "1", "mon", "11:00", "--end", "14:00")

	out := mustRun(t, kv, "course", "list")
	for _, want := range []string{"2h/2h", "All hours scheduled", "3h/2h", "over by 1h", "0m/4h", "4 blocks left"} {
		if !strings.Contains(out, want) {
			t.Errorf("course list missing %q:\n%s", want, out)
		}
	}
}

func TestPoolCommands(t *testing.T) {
	kv := storage.NewMemory()
	mustRun(t, kv, "pool", "add", "Lido", "Beach", "--days", "sat,sun", "--hours", "9-13")

	st := loadBoard(t, kv)
	p := st.Pools[2]
	if p.Title != "Lido" || p.Location != "Beach" || len(p.Days) != 2 {
		t.Fatalf("unexpected pool %+v", p)
	}
	if start, end := p.HourRange(testConfig().Geometry()); start != 9 || end != 13 {
		t.Errorf("hours = %d-%d, want 9-13", start, end)
	}

	if _, err := run(t, kv, "pool", "add", "Bad", "--days", "funday"); err == nil {
		t.Error("expected error for invalid day")
	}
	if _, err := run(t, kv, "pool", "hours", "Lido", "14-10"); err == nil {
		t.Error("expected error for reversed hours")
	}

	mustRun(t, kv, "pool", "days", "Lido", "fri,sat")
	mustRun(t, kv, "pool", "hours", "3", "7-21")
	mustRun(t, kv, "pool", "move", "3", "100", "250.5")
	mustRun(t, kv, "pool", "reorder", "Lido", "Main Pool")

	st = loadBoard(t, kv)
	p = st.Pools[0]
	if p.Title != "Lido" {
		t.Fatalf("expected Lido first after reorder, got %q", p.Title)
	}
	if !p.HasDay(schedule.Friday) || p.HasDay(schedule.Sunday) {
		t.Errorf("unexpected days %+v", p.Days)
	}
	if *p.StartHour != 7 || *p.EndHour != 21 || *p.X != 100 || *p.Y != 250.5 {
		t.Errorf("unexpected pool %+v", p)
	}

	out := mustRun(t, kv, "pool", "list")
	if !strings.Contains(out, "07:00-21:00") || !strings.Contains(out, "Fri,Sat") {
		t.Errorf("pool list output:\n%s", out)
	}

	mustRun(t, kv, "session", "add", "1", "Lido", "fri", "09:00")
	mustRun(t, kv, "pool", "rm", "Lido")
	st = loadBoard(t, kv)
	if len(st.Pools) != 2 || len(st.Sessions) != 0 {
		t.Errorf("pool rm left %d pools and %d sessions", len(st.Pools), len(st.Sessions))
	}
}

func TestPoolDaysKeepsHiddenSessions(t *testing.T) {
	kv := storage.NewMemory()
	mustRun(t, kv, "session", "add", "1", "1", "wed", "09:00")
	mustRun(t, kv, "pool", "days", "1", "mon,fri")

	if n := len(loadBoard(t, kv).Sessions); n != 1 {
		t.Fatalf("expected the session to survive, got %d", n)
	}
	out := mustRun(t, kv, "pool", "list")
	if !strings.Contains(out, "1 sessions on days the pool no longer runs") {
		t.Errorf("pool list output:\n%s", out)
	}
}

func TestSummary(t *testing.T) {
	kv := storage.NewMemory()
	mustRun(t, kv, "session", "add", "NL", "2", "tue", "07:00", "--end", "08:30")

	out := mustRun(t, kv, "summary")
	for _, want := range []string{"COURSES", "POOLS", "Training Pool", "1h30m", "Scheduled 1h30m of 10h budgeted"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestExportCSV(t *testing.T) {
	kv := storage.NewMemory()
	mustRun(t, kv, "session", "add", "Bronze", "1", "mon", "09:00")

	out := mustRun(t, kv, "export", "csv")
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parsing csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header and 1 row, got %d records", len(records))
	}
	want := []string{"Main Pool", "Building A", "Monday", "09:00", "10:00", "Bronze", "1h"}
	for i, v := range want {
		if records[1][i] != v {
			t.Errorf("column %d = %q, want %q", i, records[1][i], v)
		}
	}

	out = mustRun(t, kv, "export", "csv", "--budget")
	if !strings.HasPrefix(out, "Course,Hours,Scheduled,Remaining,Sessions") {
		t.Errorf("unexpected budget header:\n%s", out)
	}

	if _, err := run(t, kv, "export", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExportClipboard(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWrite = orig }()

	mustRun(t, storage.NewMemory(), "export", "csv", "--clipboard")
	if !strings.HasPrefix(copied, "Pool,Location,Day") {
		t.Errorf("clipboard content %q", copied)
	}
}

func TestExportPDFToFile(t *testing.T) {
	kv := storage.NewMemory()
	mustRun(t, kv, "session", "add", "Bronze", "1", "mon", "09:00")

	path := filepath.Join(t.TempDir(), "timetable.pdf")
	mustRun(t, kv, "export", "pdf", "--out", path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output is not a pdf")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := storage.NewMemory()
	mustRun(t, src, "course", "add", "Masters", "3")
	mustRun(t, src, "session", "add", "Masters", "2", "sun", "10:00")

	path := filepath.Join(t.TempDir(), "board.json")
	mustRun(t, src, "export", "json", "--out", path)

	dst := storage.NewMemory()
	out := mustRun(t, dst, "import", path)
	if !strings.Contains(out, "Imported 2 pools, 5 courses and 1 sessions") {
		t.Errorf("unexpected import output %q", out)
	}

	want, got := loadBoard(t, src), loadBoard(t, dst)
	if len(got.Sessions) != 1 || got.Sessions[0] != want.Sessions[0] {
		t.Errorf("sessions differ: got %+v, want %+v", got.Sessions, want.Sessions)
	}
	if got.Courses[4] != want.Courses[4] {
		t.Errorf("course differs: got %+v, want %+v", got.Courses[4], want.Courses[4])
	}
}

func TestImportDropsDanglingSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	doc := `{"pools":[{"id":"p","title":"P","location":"","days":[{"id":"d","poolId":"p","day":"Monday"}]}],
"courses":[{"id":"c","name":"C","totalHours":1,"color":"#ef4444"}],
"sessions":[{"id":"s1","courseId":"c","poolId":"p","day":"Monday","start":540,"end":600},
{"id":"s2","courseId":"gone","poolId":"p","day":"Monday","start":600,"end":660}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	kv := storage.NewMemory()
	out := mustRun(t, kv, "import", path)
	if !strings.Contains(out, "Dropped 1 sessions") {
		t.Errorf("unexpected output %q", out)
	}
	st := loadBoard(t, kv)
	if len(st.Sessions) != 1 || st.Sessions[0].ID != "s1" {
		t.Errorf("unexpected sessions %+v", st.Sessions)
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.json")},
		{"directory", dir},
		{"invalid json", bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, storage.NewMemory(), "import", tt.path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestColorsCommands(t *testing.T) {
	kv := storage.NewMemory()
	mustRun(t, kv, "colors", "add", "#123456")

	out := mustRun(t, kv, "colors", "add", "#EF4444")
	if !strings.Contains(out, "already in the palette") {
		t.Errorf("unexpected output %q", out)
	}

	out = mustRun(t, kv, "colors", "list")
	if !strings.Contains(out, " 9 ■ #123456 custom") {
		t.Errorf("colors list output:\n%s", out)
	}

	// custom colours are selectable by number after the built-in ones
	mustRun(t, kv, "course", "edit", "Bronze", "--color", "9")
	if c := loadBoard(t, kv).Courses[0]; c.Color != "#123456" {
		t.Errorf("color = %q", c.Color)
	}

	if _, err := run(t, kv, "colors", "rm", "#ef4444"); err == nil {
		t.Error("expected error removing a built-in colour")
	}
	mustRun(t, kv, "colors", "rm", "#123456")
	if _, err := run(t, kv, "colors", "rm", "#123456"); err == nil {
		t.Error("expected error removing a missing colour")
	}
	if c := loadBoard(t, kv).Courses[0]; c.Color != "#123456" {
		t.Errorf("removing a colour changed the course to %q", c.Color)
	}
}

func TestReset(t *testing.T) {
	kv := storage.NewMemory()
	mustRun(t, kv, "course", "add", "Masters", "3")

	if _, err := run(t, kv, "reset"); err == nil {
		t.Fatal("expected reset without --yes to fail")
	}
	if n := len(loadBoard(t, kv).Courses); n != 5 {
		t.Fatalf("expected 5 courses before reset, got %d", n)
	}

	mustRun(t, kv, "reset", "--yes")
	if n := len(loadBoard(t, kv).Courses); n != 4 {
		t.Errorf("expected seed courses after reset, got %d", n)
	}
}

func TestConfigShow(t *testing.T) {
	out := mustRun(t, storage.NewMemory(), "config", "--show")
	for _, want := range []string{"[grid]", "backend                 = memory", "theme                   = frappe"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestRunConfigInteractive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	input := strings.Join([]string{
		"y",
		"7",      // start hour
		"",       // end hour
		"45",     // session minutes
		"",       // history limit
		"memory", // backend
		"debug",  // log level
		"latte",  // theme
	}, "\n") + "\n"

	var out bytes.Buffer
	if err := runConfigInteractive(strings.NewReader(input), &out, path); err != nil {
		t.Fatalf("runConfigInteractive: %v\n%s", err, out.String())
	}

	cfg, err := config.LoadFiles(path, filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if cfg.Grid.DefaultStartHour != 7 || cfg.Grid.DefaultEndHour != 18 || cfg.Grid.DefaultSessionMinutes != 45 {
		t.Errorf("unexpected grid %+v", cfg.Grid)
	}
	if cfg.Storage.Backend != config.BackendMemory || cfg.Log.Level != "debug" || cfg.UI.Theme != "latte" {
		t.Errorf("unexpected config %+v", cfg)
	}
}
