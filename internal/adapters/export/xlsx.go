package export

import (
	"fmt"
	"io"

	"github.com/bnema/subtrack/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	sheetSubscriptions = "Subscriptions"
	sheetPrices        = "Price History"
	sheetStatuses      = "Status History"
	cellTimeLayout     = "2006-01-02 15:04:05"
	cellDateLayout     = "2006-01-02"
)

func writeWorkbook(w io.Writer, subs domain.Collection) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", closeErr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheetSubscriptions); err != nil {
		return fmt.Errorf("name subscriptions sheet: %w", err)
	}
	for _, name := range []string{sheetPrices, sheetStatuses} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	}

	subRows := [][]any{{"ID", "Name", "Type", "Status", "Amount", "Renewal Date", "Payment Method", "Created At"}}
	priceRows := [][]any{{"Subscription ID", "Name", "Date", "Amount", "Note"}}
	statusRows := [][]any{{"Subscription ID", "Name", "Date", "Status", "Note"}}

	for _, sub := range subs {
		renewal := ""
		if !sub.RenewalDate.IsZero() {
			renewal = sub.RenewalDate.Format(cellDateLayout)
		}
		subRows = append(subRows, []any{
			string(sub.ID), sub.Name, string(sub.Type), string(sub.Status),
			sub.Amount.InexactFloat64(), renewal, sub.PaymentMethod, sub.CreatedAt.UTC().Format(cellTimeLayout),
		})
		for _, p := range sub.PriceHistory {
			priceRows = append(priceRows, []any{string(sub.ID), sub.Name, p.Date.UTC().Format(cellTimeLayout), p.Amount.InexactFloat64(), p.Note})
		}
		for _, s := range sub.StatusHistory {
			statusRows = append(statusRows, []any{string(sub.ID), sub.Name, s.Date.UTC().Format(cellTimeLayout), string(s.Status), s.Note})
		}
	}

	for sheet, rows := range map[string][][]any{
		sheetSubscriptions: subRows,
		sheetPrices:        priceRows,
		sheetStatuses:      statusRows,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("address row %d of %q: %w", i+1, sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d of %q: %w", i+1, sheet, err)
		}
	}

	return nil
}
