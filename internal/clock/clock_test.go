package clock

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  string
	}{
		{name: "midnight", input: 0, want: "00:00"},
		{name: "8am", input: 480, want: "08:00"},
		{name: "with minutes", input: 570, want: "09:30"},
		{name: "end of day", input: 1440, want: "24:00"},
		{name: "negative clamps to zero", input: -10, want: "00:00"},
		{name: "over 24h clamps", input: 1500, want: "24:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "padded", input: "08:00", want: 480},
		{name: "unpadded hour", input: "8:15", want: 495},
		{name: "bare hour", input: "14", want: 840},
		{name: "end of day", input: "24:00", want: 1440},
		{name: "surrounding space", input: " 09:30 ", want: 570},
		{name: "empty", input: "", wantErr: true},
		{name: "bad minutes", input: "08:75", wantErr: true},
		{name: "single digit minutes", input: "08:5", wantErr: true},
		{name: "past end of day", input: "24:30", wantErr: true},
		{name: "letters", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTime) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidTime", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestHourLabel(t *testing.T) {
	cases := map[int]string{0: "12am", 7: "7am", 12: "12pm", 13: "1pm", 23: "11pm", 24: "12am"}
	for in, want := range cases {
		if got := HourLabel(in); got != want {
			t.Errorf("HourLabel(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestDuration(t *testing.T) {
	cases := map[int]string{45: "45m", 60: "1h", 90: "1h30m", -30: "-30m", 0: "0m"}
	for in, want := range cases {
		if got := Duration(in); got != want {
			t.Errorf("Duration(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseHourRange(t *testing.T) {
	tests := []struct {
		input      string
		start, end int
		wantErr    bool
	}{
		{input: "8-18", start: 8, end: 18},
		{input: " 07 - 20 ", start: 7, end: 20},
		{input: "0-24", start: 0, end: 24},
		{input: "18-8", start: 18, end: 8},
		{input: "8", wantErr: true},
		{input: "8-25", wantErr: true},
		{input: "a-b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			start, end, err := ParseHourRange(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidHourRange) {
					t.Fatalf("ParseHourRange(%q) error = %v, want ErrInvalidHourRange", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHourRange(%q) unexpected error: %v", tt.input, err)
			}
			if start != tt.start || end != tt.end {
				t.Errorf("ParseHourRange(%q) = %d, %d, want %d, %d", tt.input, start, end, tt.start, tt.end)
			}
		})
	}
}
