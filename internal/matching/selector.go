package matching

import (
	"sort"

	"github.com/mmynk/invoicematch/internal/models"
)

// maxSuggestions caps MatchResult.SuggestedMatches.
const maxSuggestions = 3

// Status thresholds on the best candidate's confidence.
const (
	perfectConfidence = 95
	partialConfidence = 60
)

// Status is the coarse classification of a MatchResult.
type Status string

const (
	StatusPerfect     Status = "perfect"
	StatusPartial     Status = "partial"
	StatusDiscrepancy Status = "discrepancy"
	StatusNone        Status = "none"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPerfect, StatusPartial, StatusDiscrepancy, StatusNone}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Suggestion is a ranked candidate billing entry for an invoice.
type Suggestion struct {
	Entry      models.BillingEntry `json:"entry"`
	Confidence float64             `json:"confidence"`
	Reasons    []string            `json:"reasons"`
}

// MatchResult is the derived match state of one invoice.
// It is recomputed from scratch whenever the inputs change.
type MatchResult struct {
	Invoice models.ContractorInvoice `json:"invoice"`

	// BillingEntry is the best match, or nil when no candidate cleared
	// the minimum confidence.
	BillingEntry *models.BillingEntry `json:"billingEntry,omitempty"`

	// SuggestedMatches holds at most three candidates, highest confidence first.
	SuggestedMatches []Suggestion `json:"suggestedMatches"`

	Status Status `json:"status"`

	// Confidence is the best candidate's confidence, or 0.
	Confidence float64 `json:"confidence"`

	// Discrepancies are computed against BillingEntry only.
	Discrepancies []Discrepancy `json:"discrepancies"`

	// Selected is console bookkeeping for bulk actions. Always false here.
	Selected bool `json:"selected"`
}

// ComputeMatches matches every invoice against the full set of billing entries.
// It returns one result per invoice, in input order.
func ComputeMatches(invoices []models.ContractorInvoice, entries []models.BillingEntry, criteria Criteria) []MatchResult {
	results := make([]MatchResult, len(invoices))
	for i, inv := range invoices {
		results[i] = MatchForInvoice(inv, entries, criteria)
	}
	return results
}

type candidate struct {
	entry models.BillingEntry
	score Score
}

// MatchForInvoice scores inv against every entry, keeps candidates at or above
// criteria.MinimumConfidenceScore × 100, ranks them and classifies the best one.
// Entries with equal confidence keep their input order.
func MatchForInvoice(inv models.ContractorInvoice, entries []models.BillingEntry, criteria Criteria) MatchResult {
	minConfidence := criteria.MinimumConfidenceScore * 100

	var candidates []candidate
	for _, entry := range entries {
		score := ScoreMatch(inv, entry, criteria)
		if score.Confidence < minConfidence {
			continue
		}
		candidates = append(candidates, candidate{entry: entry, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score.Confidence > candidates[j].score.Confidence
	})

	result := MatchResult{
		Invoice:          inv,
		SuggestedMatches: []Suggestion{},
		Status:           StatusNone,
		Discrepancies:    []Discrepancy{},
	}

	for i, c := range candidates {
		if i == maxSuggestions {
			break
		}
		result.SuggestedMatches = append(result.SuggestedMatches, Suggestion{
			Entry:      c.entry,
			Confidence: c.score.Confidence,
			Reasons:    c.score.Reasons,
		})
	}

	if len(candidates) == 0 {
		return result
	}

	best := candidates[0].entry
	result.BillingEntry = &best
	result.Confidence = candidates[0].score.Confidence

	// Discrepancies come from a fresh comparison against the best match.
	bestScore := ScoreMatch(inv, best, criteria)
	if bestScore.Discrepancies != nil {
		result.Discrepancies = bestScore.Discrepancies
	}

	result.Status = classify(result.Confidence, result.Discrepancies)
	return result
}

// classify applies the confidence tiers, then lets any high-severity
// discrepancy override them. Confidence below the partial tier keeps
// StatusNone unless overridden.
func classify(confidence float64, discrepancies []Discrepancy) Status {
	status := StatusNone
	switch {
	case confidence >= perfectConfidence:
		status = StatusPerfect
	case confidence >= partialConfidence:
		status = StatusPartial
	}
	if hasHighSeverity(discrepancies) {
		status = StatusDiscrepancy
	}
	return status
}
