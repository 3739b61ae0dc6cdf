package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/schedule"
)

type fakeSaver struct {
	saved []string
	err   error
}

func (f *fakeSaver) SaveColors(_ context.Context, colors []string) error {
	f.saved = colors
	return f.err
}

func TestSaveColors(t *testing.T) {
	saver := &fakeSaver{}
	colors := []string{"#123456"}

	msg := SaveColors(saver, colors)()
	saved, ok := msg.(ColorsSavedMsg)
	if !ok {
		t.Fatalf("msg = %T, want ColorsSavedMsg", msg)
	}
	if saved.Count != 1 || len(saver.saved) != 1 || saver.saved[0] != "#123456" {
		t.Fatalf("saved = %+v, saver = %v", saved, saver.saved)
	}
}

func TestSaveColorsError(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}

	msg := SaveColors(saver, nil)()
	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("msg = %T, want ErrMsg", msg)
	}
	if !strings.Contains(errMsg.Err.Error(), "disk full") {
		t.Fatalf("err = %v", errMsg.Err)
	}
}

func TestCopyTimetable(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { clipboardWrite = orig })

	st := schedule.Seed(geometry.DefaultGrid())
	st.Sessions = []schedule.Session{
		{ID: "s1", CourseID: "course-1", PoolID: "pool-1", Day: schedule.Monday, Start: 480, End: 540},
	}

	msg := CopyTimetable(st)()
	status, ok := msg.(StatusMsgCmd)
	if !ok {
		t.Fatalf("msg = %T, want StatusMsgCmd", msg)
	}
	if status.Msg != "Copied 1 sessions to clipboard" {
		t.Fatalf("status = %q", status.Msg)
	}
	if !strings.Contains(copied, "Main Pool,Building A,Monday,08:00,09:00,Bronze,1h") {
		t.Fatalf("clipboard = %q", copied)
	}
}

func TestCopyTimetableClipboardError(t *testing.T) {
	orig := clipboardWrite
	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { clipboardWrite = orig })

	if _, ok := CopyTimetable(schedule.State{})().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg")
	}
}
