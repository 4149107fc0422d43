// Package export renders dashboard tables into styled xlsx workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

type Sheet struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Workbook builds an xlsx file with one sheet per spec: bold header
// row, autofilter, heuristic column widths.
func Workbook(sheets []Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}

		for col, h := range s.Header {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		end, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		for r, row := range s.Rows {
			for cIdx, val := range row {
				cell, _ := excelize.CoordinatesToCellName(cIdx+1, r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}

		for col := 1; col <= len(s.Header); col++ {
			width := len(s.Header[col-1])
			for r := 0; r < len(s.Rows) && r < 50; r++ {
				if l := len(s.Rows[r][col-1]); l > width {
					width = l
				}
			}
			colName, _ := excelize.ColumnNumberToName(col)
			w := float64(width)*0.9 + 2
			if w < 12 {
				w = 12
			}
			if w > 60 {
				w = 60
			}
			_ = f.SetColWidth(name, colName, colName, w)
		}
	}
	return f, nil
}

// Write streams the workbook to w.
func Write(w io.Writer, sheets []Sheet) error {
	f, err := Workbook(sheets)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return f.Write(w)
}
