package grid

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the current result set (every matching row in display
// order, not just the visible page) to an xlsx file. Numeric cells are
// written as numbers so spreadsheet formulas work on them.
func (g *Grid) ExportXLSX(path string) error {
	matched, _, err := g.Apply()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("[EXPORT] failed to close workbook: %v", cerr)
		}
	}()

	sheet := f.GetSheetName(0)

	for col, name := range g.header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range matched {
		for col := range row.Cells {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			c := row.Cells[col]
			var value any = c.Text
			if c.HasNumeric {
				value = c.Numeric
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	log.Printf("[EXPORT] wrote %d rows to %s", len(matched), path)
	return nil
}
