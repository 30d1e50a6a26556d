package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Roster is a printable rendition of a 24-hour prayer-clock roster.
type Roster struct {
	Title   string
	Date    string
	Entries []RosterEntry
	Motives []string
}

// RosterEntry pairs an hour label with the volunteer covering it.
type RosterEntry struct {
	Hour      string
	Volunteer string
}

// RenderCSV produces a CSV rendition of the roster.
func RenderCSV(r Roster) ([]byte, error) {
	if len(r.Entries) == 0 {
		return nil, fmt.Errorf("roster has no entries")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write([]string{"hour", "volunteer"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range r.Entries {
		if err := writer.Write([]string{entry.Hour, entry.Volunteer}); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPDF produces a one-page A4 roster suitable for the noticeboard.
func RenderPDF(r Roster) ([]byte, error) {
	if len(r.Entries) == 0 {
		return nil, fmt.Errorf("roster has no entries")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, r.Title, "", 1, "C", false, 0, "")
	if r.Date != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, r.Date, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 8, "Hour", "1", 0, "C", false, 0, "")
	pdf.CellFormat(140, 8, "Volunteer", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, entry := range r.Entries {
		pdf.CellFormat(40, 7, entry.Hour, "1", 0, "C", false, 0, "")
		pdf.CellFormat(140, 7, entry.Volunteer, "1", 1, "", false, 0, "")
	}

	if len(r.Motives) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, "Prayer intentions", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, motive := range r.Motives {
			pdf.MultiCell(0, 6, "- "+motive, "", "", false)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
