package analytics

import (
	"fmt"
	"io"
	"sort"

	"github.com/JawwadIrshad/Resturant-App/internal/pricing"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders the report as a workbook with a summary sheet, a top
// items sheet and a categories sheet.
func WriteXLSX(r Report, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName(f.GetSheetName(0), summary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	rows := [][]any{
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04")},
		{},
		{"Metric", "Today", "All time"},
		{"Revenue", pricing.Float(r.Today.Revenue), pricing.Float(r.AllTime.Revenue)},
		{"Orders", r.Today.Orders, r.AllTime.Orders},
		{"Average order value", pricing.Float(r.Today.AverageOrderValue), pricing.Float(r.AllTime.AverageOrderValue)},
		{},
		{"Breakdown", "Key", "Orders"},
	}
	rows = append(rows, breakdownRows("Status", r.StatusBreakdown)...)
	rows = append(rows, breakdownRows("Order type", r.TypeBreakdown)...)
	rows = append(rows, breakdownRows("Payment method", r.PaymentBreakdown)...)
	if err := writeRows(f, summary, rows); err != nil {
		return err
	}

	top := [][]any{{"Item ID", "Item", "Category", "Quantity", "Revenue"}}
	for _, it := range r.TopItems {
		top = append(top, []any{it.ItemID, it.ItemName, string(it.Category), it.Quantity, pricing.Float(it.Revenue)})
	}
	if _, err := f.NewSheet("Top Items"); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeRows(f, "Top Items", top); err != nil {
		return err
	}

	cats := [][]any{{"Category", "Quantity", "Revenue"}}
	for _, c := range r.Categories {
		cats = append(cats, []any{string(c.Category), c.Quantity, pricing.Float(c.Revenue)})
	}
	if _, err := f.NewSheet("Categories"); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeRows(f, "Categories", cats); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func breakdownRows[K ~string](label string, m map[K]int) [][]any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	rows := make([][]any, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []any{label, k, m[K(k)]})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
