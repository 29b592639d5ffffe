// Package report exports the stock table to a spreadsheet.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mariopl2020/goods-order-autoreminder-by-email/pkg/types"
)

const sheetName = "Stock"

// columns, in the order they appear in the store.
var headers = []string{
	"id", "sku_description", "sku_id", "current_stock_kg",
	"price", "last_review_date", "responsible_employee",
}

// Export writes every material as one row of an .xlsx workbook at path,
// header row first, preserving store order. The file is overwritten when it
// already exists.
func Export(materials []types.Material, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	if err := writeRow(f, 1, headerCells()); err != nil {
		return err
	}
	for i, m := range materials {
		cells := []any{
			m.ID,
			m.SKUDescription,
			m.SKUID,
			m.CurrentStockKg.String(),
			m.Price.String(),
			m.LastReview.Format(types.DateLayout),
			m.ResponsibleEmployee,
		}
		if err := writeRow(f, i+2, cells); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func headerCells() []any {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}

func writeRow(f *excelize.File, row int, cells []any) error {
	for col, value := range cells {
		name, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name %d,%d: %w", col+1, row, err)
		}
		if err := f.SetCellValue(sheetName, name, value); err != nil {
			return fmt.Errorf("set cell %s: %w", name, err)
		}
	}
	return nil
}
