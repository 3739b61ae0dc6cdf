package export

import (
	"fmt"

	"github.com/javiermolinar/poolboard/internal/schedule"
)

// Render exports the timetable of st in format f.
func Render(f Format, st schedule.State, title string) ([]byte, error) {
	switch f {
	case FormatCSV:
		return CSV(Timetable(st))
	case FormatPDF:
		return PDF(Timetable(st), title)
	case FormatJSON:
		return JSON(st)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
