package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/invoicematch/internal/models"
)

// CreateDecisions upserts review decisions, one per invoice.
func (s *SQLiteStore) CreateDecisions(ctx context.Context, decisions []models.ReviewDecision) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range decisions {
		d := &decisions[i]
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		if d.DecidedAt == 0 {
			d.DecidedAt = time.Now().Unix()
		}

		var entryID, note interface{}
		if d.BillingEntryID != "" {
			entryID = d.BillingEntryID
		}
		if d.Note != "" {
			note = d.Note
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO review_decisions (id, invoice_id, billing_entry_id, decision, confidence, note, decided_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (invoice_id) DO UPDATE SET
			   id = excluded.id,
			   billing_entry_id = excluded.billing_entry_id,
			   decision = excluded.decision,
			   confidence = excluded.confidence,
			   note = excluded.note,
			   decided_at = excluded.decided_at`,
			d.ID, d.InvoiceID, entryID, string(d.Decision), d.Confidence, note, d.DecidedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert decision for invoice %s: %w", d.InvoiceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListDecisions returns the current decision per invoice, newest first.
func (s *SQLiteStore) ListDecisions(ctx context.Context) ([]models.ReviewDecision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, invoice_id, billing_entry_id, decision, confidence, note, decided_at
		 FROM review_decisions ORDER BY decided_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list decisions: %w", err)
	}
	defer rows.Close()

	var decisions []models.ReviewDecision
	for rows.Next() {
		var d models.ReviewDecision
		var entryID, note sql.NullString
		var decision string
		if err := rows.Scan(&d.ID, &d.InvoiceID, &entryID, &decision, &d.Confidence, &note, &d.DecidedAt); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		d.Decision = models.Decision(decision)
		if entryID.Valid {
			d.BillingEntryID = entryID.String
		}
		if note.Valid {
			d.Note = note.String
		}
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate decisions: %w", err)
	}
	return decisions, nil
}
