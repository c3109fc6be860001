package matching

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/invoicematch/internal/models"
)

func northernInvoice() models.ContractorInvoice {
	return models.ContractorInvoice{
		ID:             "inv-1",
		InvoiceNumber:  "INV-2024-001",
		ContractorName: "Northern Pipeline Services Ltd.",
		Amount:         decimal.NewFromInt(15750),
		InvoiceDate:    models.MustParseDate("2024-03-05"),
		DueDate:        models.MustParseDate("2024-04-04"),
		ProjectCode:    "PIPE-2024-001",
	}
}

// matchingEntry returns a billing entry identical to inv on every scored field.
func matchingEntry(id string, inv models.ContractorInvoice) models.BillingEntry {
	return models.BillingEntry{
		ID:              id,
		ReferenceNumber: "REF-" + id,
		VendorName:      inv.ContractorName,
		Amount:          inv.Amount,
		Date:            inv.InvoiceDate,
		ProjectCode:     inv.ProjectCode,
		Status:          "approved",
		SourceSystem:    "QuickBooks",
	}
}

func findDiscrepancy(ds []Discrepancy, typ DiscrepancyType) (Discrepancy, bool) {
	for _, d := range ds {
		if d.Type == typ {
			return d, true
		}
	}
	return Discrepancy{}, false
}
