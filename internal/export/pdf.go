package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const pdfFont = "Helvetica"

// widths in mm for the landscape A4 table, one per column.
var pdfColumnWidths = []float64{24, 28, 16, 22, 20, 16, 18, 18, 15, 15, 16, 16, 16, 18, 19}

type PDFGenerator struct{}

func (g *PDFGenerator) Generate(doc Document) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated on %s", doc.GeneratedOn.String()), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	drawRow(pdf, tr, Columns, true)
	for _, r := range doc.Rentals {
		drawRow(pdf, tr, rowValues(r), false)
	}

	pdf.Ln(6)
	pdf.SetFont(pdfFont, "B", 11)
	pdf.CellFormat(0, 8, "Cost by project", "", 1, "L", false, 0, "")
	pdf.SetFont(pdfFont, "", 9)
	for _, p := range doc.Report.Projects {
		pdf.CellFormat(80, 6, tr(fitText(pdf, p.Project, 80)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, formatMoney(p.Total), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont(pdfFont, "B", 9)
	pdf.CellFormat(80, 6, "Grand Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, formatMoney(doc.Report.GrandTotal), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(pdfFont, style, 7)
	for i, col := range cols {
		align := "L"
		if !header && i >= 10 && i <= 13 {
			align = "R"
		}
		pdf.CellFormat(pdfColumnWidths[i], 6, tr(fitText(pdf, col, pdfColumnWidths[i])), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

// fitText trims s until it fits in a cell of the given width.
func fitText(pdf *gofpdf.Fpdf, s string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
