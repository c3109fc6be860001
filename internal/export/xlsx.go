// Package export writes match results as an XLSX workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/invoicematch/internal/matching"
)

const (
	MatchesSheet = "Matches"
	SummarySheet = "Summary"
)

var matchHeadings = []interface{}{
	"Invoice Number", "Contractor", "Invoice Amount", "Invoice Date", "Project Code",
	"Status", "Confidence", "Reference", "Vendor", "Entry Amount", "Entry Date",
	"Discrepancies",
}

// Workbook builds a workbook with one row per result and a status summary sheet.
// The caller owns the returned file and must Close it.
func Workbook(results []matching.MatchResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", MatchesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := writeMatches(f, results, bold); err != nil {
		return nil, err
	}
	if err := writeSummary(f, matching.Summarize(results), bold); err != nil {
		return nil, err
	}
	return f, nil
}

// Write streams the workbook for results to w.
func Write(w io.Writer, results []matching.MatchResult) error {
	f, err := Workbook(results)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile saves the workbook for results to path.
func WriteFile(path string, results []matching.MatchResult) error {
	f, err := Workbook(results)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeMatches(f *excelize.File, results []matching.MatchResult, headerStyle int) error {
	if err := f.SetSheetRow(MatchesSheet, "A1", &matchHeadings); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(matchHeadings), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(MatchesSheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, r := range results {
		inv := r.Invoice
		row := []interface{}{
			inv.InvoiceNumber, inv.ContractorName, inv.Amount.InexactFloat64(), inv.InvoiceDate.String(),
			inv.ProjectCode, string(r.Status), r.Confidence,
			"", "", nil, "",
			describe(r.Discrepancies),
		}
		if e := r.BillingEntry; e != nil {
			row[7], row[8], row[9], row[10] = e.ReferenceNumber, e.VendorName, e.Amount.InexactFloat64(), e.Date.String()
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(MatchesSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetPanes(MatchesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeSummary(f *excelize.File, s matching.Summary, headerStyle int) error {
	if err := f.SetSheetRow(SummarySheet, "A1", &[]interface{}{"Status", "Count", "Invoice Amount"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "C1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, status := range matching.Statuses {
		values := []interface{}{string(status), s.ByStatus[status], s.AmountByStatus[status].InexactFloat64()}
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}

	totals := []interface{}{"total", s.Total, nil}
	if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", row), &totals); err != nil {
		return err
	}
	return f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", row+1), &[]interface{}{"average confidence", s.AverageConfidence})
}

// describe renders discrepancies as "amount (high); date (low)".
func describe(ds []matching.Discrepancy) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = fmt.Sprintf("%s (%s)", d.Type, d.Severity)
	}
	return strings.Join(parts, "; ")
}
