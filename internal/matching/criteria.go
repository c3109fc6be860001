package matching

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCriteria is returned by Criteria.Validate.
var ErrInvalidCriteria = errors.New("invalid match criteria")

// Criteria controls tolerances and the minimum acceptance bar for matching.
//
// ExactContractorMatch, ExactProjectCodeMatch and DescriptionSimilarityThreshold
// are stored and validated but are not read by Score.
type Criteria struct {
	// AmountTolerance is the allowed relative amount difference (0.05 = 5%).
	AmountTolerance float64 `json:"amountTolerance" yaml:"amountTolerance"`

	// DateTolerance is the allowed difference in calendar days.
	DateTolerance int `json:"dateTolerance" yaml:"dateTolerance"`

	ExactContractorMatch           bool    `json:"exactContractorMatch" yaml:"exactContractorMatch"`
	ExactProjectCodeMatch          bool    `json:"exactProjectCodeMatch" yaml:"exactProjectCodeMatch"`
	DescriptionSimilarityThreshold float64 `json:"descriptionSimilarityThreshold" yaml:"descriptionSimilarityThreshold"`

	// MinimumConfidenceScore is a fraction in [0, 1]. Candidates scoring
	// below MinimumConfidenceScore × 100 are discarded.
	MinimumConfidenceScore float64 `json:"minimumConfidenceScore" yaml:"minimumConfidenceScore"`
}

// DefaultCriteria returns the criteria the reconciliation console starts with.
func DefaultCriteria() Criteria {
	return Criteria{
		AmountTolerance:                0.05,
		DateTolerance:                  3,
		ExactContractorMatch:           false,
		ExactProjectCodeMatch:          true,
		DescriptionSimilarityThreshold: 0.7,
		MinimumConfidenceScore:         0.6,
	}
}

// Validate checks that all tolerances and thresholds are finite and non-negative.
// Values above 1 for the fractional fields are allowed.
func (c Criteria) Validate() error {
	fractions := []struct {
		name  string
		value float64
	}{
		{"amount tolerance", c.AmountTolerance},
		{"description similarity threshold", c.DescriptionSimilarityThreshold},
		{"minimum confidence score", c.MinimumConfidenceScore},
	}
	for _, f := range fractions {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s %v is not a finite number", ErrInvalidCriteria, f.name, f.value)
		}
	}

	switch {
	case c.AmountTolerance < 0:
		return fmt.Errorf("%w: amount tolerance %v is negative", ErrInvalidCriteria, c.AmountTolerance)
	case c.DateTolerance < 0:
		return fmt.Errorf("%w: date tolerance %d is negative", ErrInvalidCriteria, c.DateTolerance)
	case c.DescriptionSimilarityThreshold < 0:
		return fmt.Errorf("%w: description similarity threshold %v is negative", ErrInvalidCriteria, c.DescriptionSimilarityThreshold)
	case c.MinimumConfidenceScore < 0:
		return fmt.Errorf("%w: minimum confidence score %v is negative", ErrInvalidCriteria, c.MinimumConfidenceScore)
	}
	return nil
}
