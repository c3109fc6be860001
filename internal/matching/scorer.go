package matching

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/invoicematch/internal/models"
)

// Factor weights (summing to 100) and severity thresholds.
const (
	amountWeight            = 30
	dateWeight              = 25
	contractorStrongWeight  = 25
	contractorPartialWeight = 15
	projectCodeWeight       = 20
	maxConfidence           = 100
	strongNameSimilarity    = 0.8
	partialNameSimilarity   = 0.6
	dateHighSeverityDays    = 30
	dateMediumSeverityDays  = 14
)

var (
	amountHighSeverity   = decimal.NewFromFloat(0.20)
	amountMediumSeverity = decimal.NewFromFloat(0.10)
)

// DiscrepancyType names the compared factor that did not match.
type DiscrepancyType string

const (
	DiscrepancyAmount     DiscrepancyType = "amount"
	DiscrepancyDate       DiscrepancyType = "date"
	DiscrepancyContractor DiscrepancyType = "contractor"
	DiscrepancyReference  DiscrepancyType = "reference"
	// DiscrepancyDescription is reserved; Score never produces it.
	DiscrepancyDescription DiscrepancyType = "description"
)

// Severity grades a discrepancy.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Discrepancy is a field-level mismatch between an invoice and a billing entry.
type Discrepancy struct {
	Type         DiscrepancyType `json:"type"`
	Field        string          `json:"field"`
	InvoiceValue string          `json:"invoiceValue"`
	EntryValue   string          `json:"entryValue"`
	Severity     Severity        `json:"severity"`
}

// Score is the outcome of comparing one invoice with one billing entry.
type Score struct {
	// Confidence is in [0, 100].
	Confidence    float64
	Reasons       []string
	Discrepancies []Discrepancy
}

// HasHighSeverity reports whether any discrepancy is high severity.
func (s Score) HasHighSeverity() bool {
	return hasHighSeverity(s.Discrepancies)
}

func hasHighSeverity(ds []Discrepancy) bool {
	for _, d := range ds {
		if d.Severity == SeverityHigh {
			return true
		}
	}
	return false
}

// ScoreMatch scores inv against entry. All four factors are always evaluated
// and their weights are additive; there is no partial credit except the
// two-tier contractor name factor.
func ScoreMatch(inv models.ContractorInvoice, entry models.BillingEntry, criteria Criteria) Score {
	var (
		confidence    float64
		reasons       []string
		discrepancies []Discrepancy
	)

	// Amount
	relDiff, bounded := relativeDifference(inv.Amount, entry.Amount)
	if bounded && relDiff.LessThanOrEqual(decimal.NewFromFloat(criteria.AmountTolerance)) {
		confidence += amountWeight
		reasons = append(reasons, fmt.Sprintf("Amount matches within %s%% tolerance",
			decimal.NewFromFloat(criteria.AmountTolerance).Shift(2).String()))
	} else {
		discrepancies = append(discrepancies, Discrepancy{
			Type:         DiscrepancyAmount,
			Field:        "amount",
			InvoiceValue: inv.Amount.String(),
			EntryValue:   entry.Amount.String(),
			Severity:     amountSeverity(relDiff, bounded),
		})
	}

	// Date
	days := inv.InvoiceDate.DaysBetween(entry.Date)
	if days <= criteria.DateTolerance {
		confidence += dateWeight
		reasons = append(reasons, fmt.Sprintf("Date within %d days", criteria.DateTolerance))
	} else {
		discrepancies = append(discrepancies, Discrepancy{
			Type:         DiscrepancyDate,
			Field:        "date",
			InvoiceValue: inv.InvoiceDate.String(),
			EntryValue:   entry.Date.String(),
			Severity:     dateSeverity(days),
		})
	}

	// Contractor name
	nameSimilarity := Similarity(strings.ToLower(inv.ContractorName), strings.ToLower(entry.VendorName))
	nameDiscrepancy := Discrepancy{
		Type:         DiscrepancyContractor,
		Field:        "contractorName",
		InvoiceValue: inv.ContractorName,
		EntryValue:   entry.VendorName,
	}
	switch {
	case nameSimilarity > strongNameSimilarity:
		confidence += contractorStrongWeight
		reasons = append(reasons, fmt.Sprintf("Contractor name strong match (%.0f%%)", nameSimilarity*100))
	case nameSimilarity > partialNameSimilarity:
		// Partial credit still records a discrepancy.
		confidence += contractorPartialWeight
		reasons = append(reasons, fmt.Sprintf("Contractor name partial match (%.0f%%)", nameSimilarity*100))
		nameDiscrepancy.Severity = SeverityMedium
		discrepancies = append(discrepancies, nameDiscrepancy)
	default:
		nameDiscrepancy.Severity = SeverityHigh
		discrepancies = append(discrepancies, nameDiscrepancy)
	}

	// Project code. Two empty codes are equal.
	if inv.ProjectCode == entry.ProjectCode {
		confidence += projectCodeWeight
		reasons = append(reasons, "Project code matches")
	} else {
		discrepancies = append(discrepancies, Discrepancy{
			Type:         DiscrepancyReference,
			Field:        "projectCode",
			InvoiceValue: inv.ProjectCode,
			EntryValue:   entry.ProjectCode,
			Severity:     SeverityHigh,
		})
	}

	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return Score{
		Confidence:    confidence,
		Reasons:       reasons,
		Discrepancies: discrepancies,
	}
}

// relativeDifference returns |invoice - entry| / |invoice|. The second return
// value is false when the ratio is unbounded (zero invoice, non-zero entry).
func relativeDifference(invoice, entry decimal.Decimal) (decimal.Decimal, bool) {
	if invoice.IsZero() {
		return decimal.Zero, entry.IsZero()
	}
	return invoice.Sub(entry).Abs().Div(invoice.Abs()), true
}

func amountSeverity(relDiff decimal.Decimal, bounded bool) Severity {
	switch {
	case !bounded || relDiff.GreaterThan(amountHighSeverity):
		return SeverityHigh
	case relDiff.GreaterThan(amountMediumSeverity):
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func dateSeverity(days int) Severity {
	switch {
	case days > dateHighSeverityDays:
		return SeverityHigh
	case days > dateMediumSeverityDays:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
