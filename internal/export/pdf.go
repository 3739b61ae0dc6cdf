package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/javiermolinar/poolboard/internal/palette"
)

// PDF renders the dataset as an A4 landscape table. Rows with a colour get a
// filled course cell.
func PDF(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 277.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i, row := range data.Rows {
		fill := setCourseFill(pdf, data.Colors[i])
		for _, header := range data.Headers {
			filled := fill && header == ColCourse
			pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", filled, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// setCourseFill sets fill and text colour for a course cell. It returns false
// when hex is empty or invalid.
func setCourseFill(pdf *gofpdf.Fpdf, hex string) bool {
	if hex == "" {
		return false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return false
	}
	r, g, b := c.RGB255()
	pdf.SetFillColor(int(r), int(g), int(b))
	text, _ := colorful.Hex(palette.ContrastText(hex))
	tr, tg, tb := text.RGB255()
	pdf.SetTextColor(int(tr), int(tg), int(tb))
	return true
}
