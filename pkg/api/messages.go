// Package api defines the invoicematch.v1 wire messages and Connect bindings.
//
// Messages are plain Go structs carried by the JSON codec in codec.go, so
// clients only need to speak the Connect protocol with
// Content-Type: application/json.
package api

import (
	"github.com/mmynk/invoicematch/internal/matching"
	"github.com/mmynk/invoicematch/internal/models"
)

type ImportInvoicesRequest struct {
	Invoices []models.ContractorInvoice `json:"invoices"`
}

type ImportInvoicesResponse struct {
	InvoiceIDs []string `json:"invoiceIds"`
}

type ImportEntriesRequest struct {
	Entries []models.BillingEntry `json:"entries"`
}

type ImportEntriesResponse struct {
	EntryIDs []string `json:"entryIds"`
}

// ComputeMatchesRequest matches inline records when given, stored records otherwise.
// Criteria defaults to the server's profile.
type ComputeMatchesRequest struct {
	Invoices []models.ContractorInvoice `json:"invoices,omitempty"`
	Entries  []models.BillingEntry      `json:"entries,omitempty"`
	Criteria *matching.Criteria         `json:"criteria,omitempty"`
}

type ComputeMatchesResponse struct {
	Results []matching.MatchResult `json:"results"`
	Summary matching.Summary       `json:"summary"`
}

// ListMatchesRequest matches the stored records and applies the console view.
type ListMatchesRequest struct {
	View     matching.View      `json:"view"`
	Criteria *matching.Criteria `json:"criteria,omitempty"`
}

type ListMatchesResponse struct {
	Results []matching.MatchResult `json:"results"`
	Summary matching.Summary       `json:"summary"`
}

// ReviewMatchesRequest applies one decision to every listed invoice.
type ReviewMatchesRequest struct {
	InvoiceIDs []string           `json:"invoiceIds"`
	Decision   models.Decision    `json:"decision"`
	Note       string             `json:"note,omitempty"`
	Criteria   *matching.Criteria `json:"criteria,omitempty"`
}

type ReviewMatchesResponse struct {
	Decisions []models.ReviewDecision `json:"decisions"`
}

type ListDecisionsRequest struct{}

type ListDecisionsResponse struct {
	Decisions []models.ReviewDecision `json:"decisions"`
}

func (r ImportInvoicesRequest) LogAttrs() []any { return []any{"invoices", len(r.Invoices)} }

func (r ImportEntriesRequest) LogAttrs() []any { return []any{"entries", len(r.Entries)} }

func (r ComputeMatchesRequest) LogAttrs() []any {
	return []any{
		"inline_invoices", len(r.Invoices),
		"inline_entries", len(r.Entries),
		"custom_criteria", r.Criteria != nil,
	}
}

func (r ComputeMatchesResponse) LogAttrs() []any { return summaryAttrs(r.Summary) }

func (r ListMatchesRequest) LogAttrs() []any {
	return []any{"search", r.View.Search, "status_filter", r.View.Status, "sort", string(r.View.SortBy)}
}

func (r ListMatchesResponse) LogAttrs() []any {
	return append(summaryAttrs(r.Summary), "shown", len(r.Results))
}

func (r ReviewMatchesRequest) LogAttrs() []any {
	return []any{"decision", string(r.Decision), "invoices", len(r.InvoiceIDs)}
}

func (r ReviewMatchesResponse) LogAttrs() []any { return []any{"recorded", len(r.Decisions)} }

func (r ListDecisionsResponse) LogAttrs() []any { return []any{"decisions", len(r.Decisions)} }

// summaryAttrs logs the result count per status, e.g. perfect=3 none=1.
func summaryAttrs(s matching.Summary) []any {
	attrs := []any{"results", s.Total}
	for _, status := range matching.Statuses {
		attrs = append(attrs, string(status), s.ByStatus[status])
	}
	return attrs
}
