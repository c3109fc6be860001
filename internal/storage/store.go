// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/invoicematch/internal/models"
)

var (
	// ErrNotFound is wrapped by lookups that match no record.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is wrapped by creates whose record ID is already taken.
	ErrAlreadyExists = errors.New("already exists")
)

// Store defines the interface for record and review storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateInvoices persists a batch of invoices in one transaction.
	// Empty ID fields are populated by the store. A taken ID fails the
	// whole batch with ErrAlreadyExists.
	CreateInvoices(ctx context.Context, invoices []models.ContractorInvoice) error

	// GetInvoice retrieves an invoice, including its line items.
	GetInvoice(ctx context.Context, invoiceID string) (*models.ContractorInvoice, error)

	// ListInvoices returns all invoices in insertion order.
	ListInvoices(ctx context.Context) ([]models.ContractorInvoice, error)

	// CreateEntries persists a batch of billing entries in one transaction.
	// Empty ID fields are populated by the store. A taken ID fails the
	// whole batch with ErrAlreadyExists.
	CreateEntries(ctx context.Context, entries []models.BillingEntry) error

	// ListEntries returns all billing entries in insertion order.
	ListEntries(ctx context.Context) ([]models.BillingEntry, error)

	// CreateDecisions persists review decisions. A later decision for the
	// same invoice replaces the earlier one.
	CreateDecisions(ctx context.Context, decisions []models.ReviewDecision) error

	// ListDecisions returns the current decision per invoice, newest first.
	ListDecisions(ctx context.Context) ([]models.ReviewDecision, error)

	// Close releases any resources held by the store.
	Close() error
}
