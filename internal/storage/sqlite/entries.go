package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/invoicematch/internal/models"
	"github.com/mmynk/invoicematch/internal/storage"
)

// CreateEntries persists billing entries in one transaction.
func (s *SQLiteStore) CreateEntries(ctx context.Context, entries []models.BillingEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for i := range entries {
		e := &entries[i]
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO billing_entries (id, reference_number, vendor_name, amount, entry_date,
			 description, project_code, status, source_system, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.ReferenceNumber, e.VendorName, e.Amount, e.Date.String(),
			e.Description, e.ProjectCode, e.Status, e.SourceSystem, now,
		)
		if isDuplicateKey(err) {
			return fmt.Errorf("billing entry %s: %w", e.ID, storage.ErrAlreadyExists)
		}
		if err != nil {
			return fmt.Errorf("failed to insert billing entry %s: %w", e.ReferenceNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListEntries returns all billing entries in insertion order.
func (s *SQLiteStore) ListEntries(ctx context.Context) ([]models.BillingEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, reference_number, vendor_name, amount, entry_date,
		 description, project_code, status, source_system
		 FROM billing_entries ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list billing entries: %w", err)
	}
	defer rows.Close()

	var entries []models.BillingEntry
	for rows.Next() {
		var e models.BillingEntry
		var date string
		if err := rows.Scan(&e.ID, &e.ReferenceNumber, &e.VendorName, &e.Amount, &date,
			&e.Description, &e.ProjectCode, &e.Status, &e.SourceSystem); err != nil {
			return nil, fmt.Errorf("failed to scan billing entry: %w", err)
		}
		if e.Date, err = parseDate("entry_date", date); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate billing entries: %w", err)
	}
	return entries, nil
}
