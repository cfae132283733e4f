package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	numberFormat = "#,##0.00"
	minColWidth  = 10
	maxColWidth  = 50
)

// WriteXLSX writes one worksheet per table with a styled, frozen header.
func WriteXLSX(w io.Writer, tables []Table) error {
	file := excelize.NewFile()
	defer file.Close()

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2E7D32"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	numFmt := numberFormat
	numberStyle, err := file.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	for i, t := range tables {
		sheet := t.Title
		if i == 0 {
			if err := file.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := file.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}

		widths := make([]float64, len(t.Columns))
		for col, name := range t.Columns {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := file.SetCellValue(sheet, cell, name); err != nil {
				return err
			}
			widths[col] = cellWidth(name)
		}
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err := file.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}

		for r, row := range t.Rows {
			for col, v := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
				if err := file.SetCellValue(sheet, cell, v); err != nil {
					return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
				}
				if _, ok := v.(float64); ok {
					if err := file.SetCellStyle(sheet, cell, cell, numberStyle); err != nil {
						return err
					}
				}
				if col < len(widths) {
					widths[col] = max(widths[col], cellWidth(formatCell(v)))
				}
			}
		}

		for col, width := range widths {
			name, _ := excelize.ColumnNumberToName(col + 1)
			if err := file.SetColWidth(sheet, name, name, min(max(width, minColWidth), maxColWidth)); err != nil {
				return err
			}
		}

		if err := file.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cellWidth(s string) float64 {
	return float64(len(s)) * 1.2
}
