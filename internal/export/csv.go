package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes each table as a title row, a header row and its data,
// separated by blank rows.
func WriteCSV(w io.Writer, tables []Table) error {
	writer := csv.NewWriter(w)

	for i, t := range tables {
		if i > 0 {
			if err := writer.Write([]string{""}); err != nil {
				return fmt.Errorf("failed to write separator: %w", err)
			}
		}
		if err := writer.Write([]string{t.Title}); err != nil {
			return fmt.Errorf("failed to write title: %w", err)
		}
		if err := writer.Write(t.Columns); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		for _, row := range t.Rows {
			record := make([]string, len(row))
			for j, v := range row {
				record[j] = formatCell(v)
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}
