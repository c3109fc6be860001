package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/invoicematch/internal/ingest"
	"github.com/mmynk/invoicematch/internal/matching"
	"github.com/mmynk/invoicematch/internal/metrics"
	"github.com/mmynk/invoicematch/internal/models"
	"github.com/mmynk/invoicematch/internal/storage"
	"github.com/mmynk/invoicematch/pkg/api"
)

// MatchService implements the Connect MatchService.
type MatchService struct {
	store     storage.Store
	validator *ingest.Validator
	criteria  matching.Criteria
	metrics   *metrics.Collector
}

var _ api.MatchServiceHandler = (*MatchService)(nil)

// NewMatchService creates a MatchService. criteria is the profile used when a
// request carries none. collector may be nil.
func NewMatchService(store storage.Store, criteria matching.Criteria, collector *metrics.Collector) *MatchService {
	return &MatchService{
		store:     store,
		validator: ingest.NewValidator(),
		criteria:  criteria,
		metrics:   collector,
	}
}

// ImportInvoices validates and stores a batch of contractor invoices.
func (s *MatchService) ImportInvoices(ctx context.Context, req *connect.Request[api.ImportInvoicesRequest]) (*connect.Response[api.ImportInvoicesResponse], error) {
	invoices := req.Msg.Invoices
	if len(invoices) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("at least one invoice is required"))
	}
	if err := s.validator.Invoices(invoices); err != nil {
		slog.Warn("ImportInvoices: rejected batch", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.CreateInvoices(ctx, invoices); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		}
		slog.Error("ImportInvoices: failed to store invoices", "error", err)
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to save invoices: %w", err))
	}
	s.metrics.RecordsImported("invoice", len(invoices))

	ids := make([]string, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.ID
	}
	slog.Info("Imported invoices", "count", len(ids))

	return connect.NewResponse(&api.ImportInvoicesResponse{InvoiceIDs: ids}), nil
}

// ImportEntries validates and stores a batch of billing entries.
func (s *MatchService) ImportEntries(ctx context.Context, req *connect.Request[api.ImportEntriesRequest]) (*connect.Response[api.ImportEntriesResponse], error) {
	entries := req.Msg.Entries
	if len(entries) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("at least one billing entry is required"))
	}
	if err := s.validator.Entries(entries); err != nil {
		slog.Warn("ImportEntries: rejected batch", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.CreateEntries(ctx, entries); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		}
		slog.Error("ImportEntries: failed to store entries", "error", err)
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to save billing entries: %w", err))
	}
	s.metrics.RecordsImported("entry", len(entries))

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	slog.Info("Imported billing entries", "count", len(ids))

	return connect.NewResponse(&api.ImportEntriesResponse{EntryIDs: ids}), nil
}

// ComputeMatches matches inline records if given, stored records otherwise.
func (s *MatchService) ComputeMatches(ctx context.Context, req *connect.Request[api.ComputeMatchesRequest]) (*connect.Response[api.ComputeMatchesResponse], error) {
	criteria, err := s.resolveCriteria(req.Msg.Criteria)
	if err != nil {
		return nil, err
	}

	invoices := req.Msg.Invoices
	if len(invoices) > 0 {
		if err := s.validator.Invoices(invoices); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	} else if invoices, err = s.store.ListInvoices(ctx); err != nil {
		slog.Error("ComputeMatches: failed to list invoices", "error", err)
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to list invoices: %w", err))
	}

	entries := req.Msg.Entries
	if len(entries) > 0 {
		if err := s.validator.Entries(entries); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	} else if entries, err = s.store.ListEntries(ctx); err != nil {
		slog.Error("ComputeMatches: failed to list billing entries", "error", err)
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to list billing entries: %w", err))
	}

	results := s.match(invoices, entries, criteria)
	return connect.NewResponse(&api.ComputeMatchesResponse{
		Results: results,
		Summary: matching.Summarize(results),
	}), nil
}

// ListMatches matches the stored records and applies the requested view.
// The summary covers all results, before filtering.
func (s *MatchService) ListMatches(ctx context.Context, req *connect.Request[api.ListMatchesRequest]) (*connect.Response[api.ListMatchesResponse], error) {
	if err := req.Msg.View.Validate(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	criteria, err := s.resolveCriteria(req.Msg.Criteria)
	if err != nil {
		return nil, err
	}

	results, err := s.matchStored(ctx, criteria)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.ListMatchesResponse{
		Results: matching.Filter(results, req.Msg.View),
		Summary: matching.Summarize(results),
	}), nil
}

// ReviewMatches records one approve/reject decision per listed invoice,
// pointing at the invoice's current best match.
func (s *MatchService) ReviewMatches(ctx context.Context, req *connect.Request[api.ReviewMatchesRequest]) (*connect.Response[api.ReviewMatchesResponse], error) {
	msg := req.Msg
	if !msg.Decision.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown decision %q", msg.Decision))
	}
	if len(msg.InvoiceIDs) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("at least one invoice ID is required"))
	}
	criteria, err := s.resolveCriteria(msg.Criteria)
	if err != nil {
		return nil, err
	}

	invoices := make([]models.ContractorInvoice, 0, len(msg.InvoiceIDs))
	for _, id := range msg.InvoiceIDs {
		inv, err := s.store.GetInvoice(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		if err != nil {
			slog.Error("ReviewMatches: failed to get invoice", "invoice_id", id, "error", err)
			return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to get invoice: %w", err))
		}
		invoices = append(invoices, *inv)
	}
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		slog.Error("ReviewMatches: failed to list billing entries", "error", err)
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to list billing entries: %w", err))
	}

	now := time.Now().Unix()
	decisions := make([]models.ReviewDecision, 0, len(invoices))
	for _, r := range s.match(invoices, entries, criteria) {
		id := r.Invoice.ID
		d := models.ReviewDecision{
			ID:         uuid.New().String(),
			InvoiceID:  id,
			Decision:   msg.Decision,
			Confidence: r.Confidence,
			Note:       msg.Note,
			DecidedAt:  now,
		}
		if r.BillingEntry != nil {
			d.BillingEntryID = r.BillingEntry.ID
		}
		decisions = append(decisions, d)
	}

	if err := s.store.CreateDecisions(ctx, decisions); err != nil {
		slog.Error("ReviewMatches: failed to store decisions", "error", err)
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to save decisions: %w", err))
	}
	s.metrics.DecisionsRecorded(string(msg.Decision), len(decisions))
	slog.Info("Recorded review decisions", "decision", msg.Decision, "count", len(decisions))

	return connect.NewResponse(&api.ReviewMatchesResponse{Decisions: decisions}), nil
}

// ListDecisions returns the stored review decisions, newest first.
func (s *MatchService) ListDecisions(ctx context.Context, req *connect.Request[api.ListDecisionsRequest]) (*connect.Response[api.ListDecisionsResponse], error) {
	decisions, err := s.store.ListDecisions(ctx)
	if err != nil {
		slog.Error("ListDecisions: failed to list decisions", "error", err)
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to list decisions: %w", err))
	}
	if decisions == nil {
		decisions = []models.ReviewDecision{}
	}
	return connect.NewResponse(&api.ListDecisionsResponse{Decisions: decisions}), nil
}

// resolveCriteria returns the request's criteria, or the server profile when nil.
func (s *MatchService) resolveCriteria(c *matching.Criteria) (matching.Criteria, error) {
	if c == nil {
		return s.criteria, nil
	}
	if err := c.Validate(); err != nil {
		return matching.Criteria{}, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return *c, nil
}

func (s *MatchService) matchStored(ctx context.Context, criteria matching.Criteria) ([]matching.MatchResult, error) {
	invoices, err := s.store.ListInvoices(ctx)
	if err != nil {
		slog.Error("Failed to list invoices", "error", err)
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to list invoices: %w", err))
	}
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		slog.Error("Failed to list billing entries", "error", err)
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to list billing entries: %w", err))
	}
	return s.match(invoices, entries, criteria), nil
}

func (s *MatchService) match(invoices []models.ContractorInvoice, entries []models.BillingEntry, criteria matching.Criteria) []matching.MatchResult {
	start := time.Now()
	results := matching.ComputeMatches(invoices, entries, criteria)
	elapsed := time.Since(start)
	s.metrics.ObserveMatchRun(results, elapsed)

	slog.Debug("Computed matches",
		"invoices", len(invoices),
		"entries", len(entries),
		"duration_ms", elapsed.Milliseconds(),
	)
	return results
}
