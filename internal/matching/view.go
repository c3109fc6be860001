package matching

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey selects the ordering of a filtered result list.
type SortKey string

const (
	SortNone       SortKey = ""
	SortConfidence SortKey = "confidence"
	SortAmount     SortKey = "amount"
	SortDate       SortKey = "date"
	SortContractor SortKey = "contractor"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// View describes how the reconciliation console filters and orders results.
type View struct {
	// Search is matched case-insensitively as a substring of the contractor
	// name, invoice number or project code. Empty matches everything.
	Search string `json:"search,omitempty"`

	// Status is "all", "" or one of the Status values.
	Status string `json:"status,omitempty"`

	SortBy     SortKey `json:"sortBy,omitempty"`
	Descending bool    `json:"descending,omitempty"`
}

// Validate rejects unknown status filters and sort keys.
func (v View) Validate() error {
	if v.Status != "" && v.Status != StatusAll && !Status(v.Status).Valid() {
		return fmt.Errorf("unknown status filter %q", v.Status)
	}
	switch v.SortBy {
	case SortNone, SortConfidence, SortAmount, SortDate, SortContractor:
		return nil
	default:
		return fmt.Errorf("unknown sort key %q", v.SortBy)
	}
}

// Filter returns the results selected by v, in v's order. The input is not modified.
// Sorting is stable, so equal keys keep their relative input order.
func Filter(results []MatchResult, v View) []MatchResult {
	search := strings.ToLower(strings.TrimSpace(v.Search))

	filtered := make([]MatchResult, 0, len(results))
	for _, r := range results {
		if v.Status != "" && v.Status != StatusAll && string(r.Status) != v.Status {
			continue
		}
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		filtered = append(filtered, r)
	}

	less := lessFunc(v.SortBy)
	if less == nil {
		return filtered
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if v.Descending {
			return less(filtered[j], filtered[i])
		}
		return less(filtered[i], filtered[j])
	})
	return filtered
}

func matchesSearch(r MatchResult, search string) bool {
	return strings.Contains(strings.ToLower(r.Invoice.ContractorName), search) ||
		strings.Contains(strings.ToLower(r.Invoice.InvoiceNumber), search) ||
		strings.Contains(strings.ToLower(r.Invoice.ProjectCode), search)
}

func lessFunc(key SortKey) func(a, b MatchResult) bool {
	switch key {
	case SortConfidence:
		return func(a, b MatchResult) bool { return a.Confidence < b.Confidence }
	case SortAmount:
		return func(a, b MatchResult) bool { return a.Invoice.Amount.LessThan(b.Invoice.Amount) }
	case SortDate:
		return func(a, b MatchResult) bool { return a.Invoice.InvoiceDate.Before(b.Invoice.InvoiceDate.Time) }
	case SortContractor:
		return func(a, b MatchResult) bool {
			return strings.ToLower(a.Invoice.ContractorName) < strings.ToLower(b.Invoice.ContractorName)
		}
	default:
		return nil
	}
}
