package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jeffrom/logit/model"
)

const SheetName = "Timesheet"

var columnWidths = map[string]float64{
	"date":     12,
	"time":     10,
	"title":    60,
	"duration": 10,
	"author":   20,
	"repo":     20,
	"commit":   42,
}

type XLSX struct{}

func (XLSX) WriteEntries(w io.Writer, f *Formatter, entries []*model.Entry) error {
	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	originalSheet := file.GetSheetName(0)
	if err := file.SetSheetName(originalSheet, SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for idx, col := range f.Header() {
		name, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			return fmt.Errorf("convert column: %w", err)
		}
		if width, ok := columnWidths[col]; ok {
			if err := file.SetColWidth(SheetName, name, name, width); err != nil {
				return fmt.Errorf("set width for %s: %w", name, err)
			}
		}
		if err := setCell(file, idx+1, 1, col); err != nil {
			return err
		}
	}

	for i, e := range entries {
		for idx, val := range f.Values(e) {
			if err := setCell(file, idx+1, i+2, val); err != nil {
				return err
			}
		}
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func setCell(file *excelize.File, col, row int, val interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("convert cell: %w", err)
	}
	if err := file.SetCellValue(SheetName, cell, val); err != nil {
		return fmt.Errorf("write %s: %w", cell, err)
	}
	return nil
}
