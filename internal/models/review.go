package models

// Decision is a manager's verdict on a match.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Valid reports whether d is a known decision.
func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// ReviewDecision records a bulk approve/reject action for one invoice.
type ReviewDecision struct {
	// ID is the unique identifier for the decision (UUID format).
	ID string `json:"id"`

	InvoiceID string `json:"invoiceId"`

	// BillingEntryID is the invoice's best match at decision time.
	// Empty when the invoice had no match.
	BillingEntryID string `json:"billingEntryId,omitempty"`

	Decision Decision `json:"decision"`

	// Confidence is the best match's confidence at decision time.
	Confidence float64 `json:"confidence"`

	Note string `json:"note,omitempty"`

	// DecidedAt is the Unix timestamp when the decision was recorded.
	DecidedAt int64 `json:"decidedAt"`
}
