package matching

import "github.com/shopspring/decimal"

// Summary aggregates a result set for the console's dashboard tiles.
type Summary struct {
	Total             int                        `json:"total"`
	ByStatus          map[Status]int             `json:"byStatus"`
	AmountByStatus    map[Status]decimal.Decimal `json:"amountByStatus"`
	AverageConfidence float64                    `json:"averageConfidence"`
}

// Summarize counts results and invoice amounts per status.
// AverageConfidence is taken over all results, including unmatched ones.
func Summarize(results []MatchResult) Summary {
	s := Summary{
		Total:          len(results),
		ByStatus:       make(map[Status]int, len(Statuses)),
		AmountByStatus: make(map[Status]decimal.Decimal, len(Statuses)),
	}
	for _, status := range Statuses {
		s.ByStatus[status] = 0
		s.AmountByStatus[status] = decimal.Zero
	}

	var confidenceSum float64
	for _, r := range results {
		s.ByStatus[r.Status]++
		s.AmountByStatus[r.Status] = s.AmountByStatus[r.Status].Add(r.Invoice.Amount)
		confidenceSum += r.Confidence
	}
	if len(results) > 0 {
		s.AverageConfidence = confidenceSum / float64(len(results))
	}
	return s
}
