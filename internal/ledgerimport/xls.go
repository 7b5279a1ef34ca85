package ledgerimport

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
)

// ParseXLS decodes an uploaded .xls workbook and parses its first worksheet.
// Only the first sheet is read; accountants keep the trial balance there and
// later sheets hold supporting schedules.
func ParseXLS(data []byte) ([]ParsedAccount, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, ErrMalformedFile
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol()+1)
		for c := row.FirstCol(); c <= row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		rows = append(rows, cells)
	}

	return Parse(rows)
}
