package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mmynk/invoicematch/internal/matching"
	"github.com/mmynk/invoicematch/internal/models"
)

func testResults() []matching.MatchResult {
	entry := models.BillingEntry{
		ID:              "e1",
		ReferenceNumber: "QB-10234",
		VendorName:      "Northern Pipeline Svcs",
		Amount:          decimal.NewFromInt(16000),
		Date:            models.MustParseDate("2024-03-06"),
	}
	return []matching.MatchResult{
		{
			Invoice: models.ContractorInvoice{
				InvoiceNumber:  "INV-2024-001",
				ContractorName: "Northern Pipeline Services Ltd.",
				Amount:         decimal.NewFromInt(15750),
				InvoiceDate:    models.MustParseDate("2024-03-05"),
				ProjectCode:    "PIPE-2024-001",
			},
			BillingEntry: &entry,
			Status:       matching.StatusPartial,
			Confidence:   85,
			Discrepancies: []matching.Discrepancy{
				{Type: matching.DiscrepancyContractor, Severity: matching.SeverityMedium},
			},
		},
		{
			Invoice: models.ContractorInvoice{
				InvoiceNumber:  "INV-2024-002",
				ContractorName: "Summit Electrical",
				Amount:         decimal.NewFromInt(4200),
				InvoiceDate:    models.MustParseDate("2024-03-10"),
			},
			Status: matching.StatusNone,
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testResults()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(MatchesSheet)
	if err != nil {
		t.Fatalf("GetRows(%s) failed: %v", MatchesSheet, err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Invoice Number" || rows[0][11] != "Discrepancies" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	first := rows[1]
	wantFirst := map[int]string{0: "INV-2024-001", 2: "15750", 5: "partial", 6: "85", 7: "QB-10234", 9: "16000", 11: "contractor (medium)"}
	for col, want := range wantFirst {
		if first[col] != want {
			t.Errorf("row 1 col %d = %q, want %q", col, first[col], want)
		}
	}

	second := rows[2]
	if second[5] != "none" {
		t.Errorf("row 2 status = %q, want none", second[5])
	}
	if len(second) > 7 && second[7] != "" {
		t.Errorf("row 2 reference = %q, want empty", second[7])
	}

	summary, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("GetRows(%s) failed: %v", SummarySheet, err)
	}
	wantSummary := [][]string{
		{"Status", "Count", "Invoice Amount"},
		{"perfect", "0", "0"},
		{"partial", "1", "15750"},
		{"discrepancy", "0", "0"},
		{"none", "1", "4200"},
	}
	for i, want := range wantSummary {
		for j := range want {
			if summary[i][j] != want[j] {
				t.Errorf("summary[%d][%d] = %q, want %q", i, j, summary[i][j], want[j])
			}
		}
	}
	if summary[5][0] != "total" || summary[5][1] != "2" {
		t.Errorf("total row = %v", summary[5])
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.xlsx")
	if err := WriteFile(path, nil); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != MatchesSheet || got[1] != SummarySheet {
		t.Errorf("sheets = %v", got)
	}
}
