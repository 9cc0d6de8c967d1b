// Package export renders a ledger view as a spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"sales_ledger/internal/sales"
)

const (
	SalesSheet   = "Sales"
	SummarySheet = "Summary"
)

var salesHeader = []interface{}{"ID", "Date", "Product", "Quantity", "Unit Price", "Total"}

// WriteXLSX writes the view's rows and summary cards as an xlsx workbook.
// Money is rounded to cents here.
func WriteXLSX(w io.Writer, view sales.View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SalesSheet); err != nil {
		return fmt.Errorf("failed to name sales sheet: %w", err)
	}
	if err := f.SetSheetRow(SalesSheet, "A1", &salesHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range view.Records {
		row := []interface{}{
			r.ID,
			string(r.Date),
			r.Product,
			r.Quantity,
			r.UnitPrice.Round(2).InexactFloat64(),
			r.Total.Round(2).InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SalesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write sale %d: %w", r.ID, err)
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	summary := view.Summary.Rounded()
	cards := [][]interface{}{
		{"Total Revenue", summary.TotalRevenue.StringFixed(2)},
		{"Units Sold", summary.TotalUnits},
		{"Average Ticket", summary.AverageTicket.StringFixed(2)},
		{"Showing", fmt.Sprintf("%d of %d", view.FilteredCount, view.TotalCount)},
	}
	for i, card := range cards {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &card); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
