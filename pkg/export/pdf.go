package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/creekroadpottery/PotteryCalendarApp/pkg/event"
)

type PdfRendererImpl struct {
}

func NewPdfRenderer() *PdfRendererImpl {
	return &PdfRendererImpl{}
}

// RenderAgenda produces a printable agenda, one section per day.
func (r *PdfRendererImpl) RenderAgenda(title string, days []event.AgendaDay) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, day := range days {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, day.Date.Format("Monday, 2 January 2006"), "B", 1, "", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, e := range day.Events {
			when := "All day"
			if !e.AllDay {
				when = fmt.Sprintf("%s to %s", e.Start.Format("15:04"), e.End.Format("15:04"))
			}
			pdf.CellFormat(40, 7, when, "", 0, "", false, 0, "")
			pdf.CellFormat(80, 7, e.Title, "", 0, "", false, 0, "")
			pdf.CellFormat(0, 7, fmt.Sprintf("%s / %s", e.Category, e.TaskType), "", 1, "", false, 0, "")
			if e.Location != "" {
				pdf.SetFont("Helvetica", "I", 9)
				pdf.CellFormat(40, 5, "", "", 0, "", false, 0, "")
				pdf.CellFormat(0, 5, e.Location, "", 1, "", false, 0, "")
				pdf.SetFont("Helvetica", "", 10)
			}
		}
		pdf.Ln(3)
	}

	if len(days) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 8, "No events to show", "", 1, "C", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
