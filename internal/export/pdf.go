package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfFont     = "Arial"
	pdfMargin   = 15.0
	pdfRowH     = 7.0
	pdfHeaderH  = 8.0
	pdfFontSize = 9.0
)

// WritePDF renders the tables on A4 portrait pages.
func WritePDF(w io.Writer, location, generated string, tables []Table) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, 20, pdfMargin)
	pdf.SetAutoPageBreak(true, 20)
	// Core fonts are cp1252; translate the UTF-8 text.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, tr("Natural Capital Assessment"), "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 8, tr(location), "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 8)
	pdf.CellFormat(0, 6, tr("Generated: "+generated), "", 1, "R", false, 0, "")

	pageW, pageH := pdf.GetPageSize()
	available := pageW - 2*pdfMargin

	for _, t := range tables {
		pdf.Ln(6)
		pdf.SetFont(pdfFont, "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 8, tr(t.Title), "", 1, "L", false, 0, "")

		widths := columnWidths(pdf, t, available)
		header := func() {
			pdf.SetFont(pdfFont, "B", pdfFontSize)
			pdf.SetFillColor(46, 125, 50)
			pdf.SetTextColor(255, 255, 255)
			for i, col := range t.Columns {
				pdf.CellFormat(widths[i], pdfHeaderH, tr(col), "1", 0, "C", true, 0, "")
			}
			pdf.Ln(-1)
			pdf.SetFont(pdfFont, "", pdfFontSize)
			pdf.SetTextColor(0, 0, 0)
		}
		header()

		for r, row := range t.Rows {
			if pdf.GetY()+pdfRowH > pageH-20 {
				pdf.AddPage()
				header()
			}
			if r%2 == 1 {
				pdf.SetFillColor(242, 242, 242)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			for i, v := range row {
				align := "L"
				if _, ok := v.(float64); ok {
					align = "R"
				}
				pdf.CellFormat(widths[i], pdfRowH, tr(pdfCell(v)), "1", 0, align, true, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

// columnWidths sizes columns to their widest cell, scaled down to fit.
func columnWidths(pdf *gofpdf.Fpdf, t Table, available float64) []float64 {
	widths := make([]float64, len(t.Columns))
	pdf.SetFont(pdfFont, "B", pdfFontSize)
	for i, col := range t.Columns {
		widths[i] = pdf.GetStringWidth(col) + 4
	}
	pdf.SetFont(pdfFont, "", pdfFontSize)
	for _, row := range t.Rows {
		for i, v := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], pdf.GetStringWidth(pdfCell(v))+4)
			}
		}
	}

	var total float64
	for _, w := range widths {
		total += w
	}
	if total > available {
		scale := available / total
		for i := range widths {
			widths[i] *= scale
		}
	}
	return widths
}

func pdfCell(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', 2, 64)
	}
	return formatCell(v)
}
