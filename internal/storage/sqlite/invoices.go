package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/invoicematch/internal/models"
	"github.com/mmynk/invoicematch/internal/storage"
)

const invoiceColumns = `id, invoice_number, contractor_name, contractor_contact, amount,
	invoice_date, due_date, description, project_code`

// CreateInvoices persists invoices and their line items in one transaction.
func (s *SQLiteStore) CreateInvoices(ctx context.Context, invoices []models.ContractorInvoice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for i := range invoices {
		inv := &invoices[i]
		if inv.ID == "" {
			inv.ID = uuid.New().String()
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO invoices (`+invoiceColumns+`, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			inv.ID, inv.InvoiceNumber, inv.ContractorName, inv.ContractorContact, inv.Amount,
			inv.InvoiceDate.String(), inv.DueDate.String(), inv.Description, inv.ProjectCode, now,
		)
		if isDuplicateKey(err) {
			return fmt.Errorf("invoice %s: %w", inv.ID, storage.ErrAlreadyExists)
		}
		if err != nil {
			return fmt.Errorf("failed to insert invoice %s: %w", inv.InvoiceNumber, err)
		}

		for pos, item := range inv.LineItems {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO invoice_line_items (invoice_id, position, description, quantity, unit_price, total)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				inv.ID, pos, item.Description, item.Quantity, item.UnitPrice, item.Total,
			)
			if err != nil {
				return fmt.Errorf("failed to insert line item: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetInvoice retrieves an invoice by ID, including its line items.
func (s *SQLiteStore) GetInvoice(ctx context.Context, invoiceID string) (*models.ContractorInvoice, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`,
		invoiceID,
	)
	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	items, err := s.lineItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.LineItems = items[inv.ID]
	return inv, nil
}

// ListInvoices returns all invoices in insertion order.
func (s *SQLiteStore) ListInvoices(ctx context.Context) ([]models.ContractorInvoice, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []models.ContractorInvoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	items, err := s.lineItems(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		invoices[i].LineItems = items[invoices[i].ID]
	}
	return invoices, nil
}

// lineItems loads line items keyed by invoice ID, in position order.
// An empty invoiceID loads the items of every invoice.
func (s *SQLiteStore) lineItems(ctx context.Context, invoiceID string) (map[string][]models.LineItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT invoice_id, description, quantity, unit_price, total
		 FROM invoice_line_items
		 WHERE ? = '' OR invoice_id = ?
		 ORDER BY invoice_id, position`,
		invoiceID, invoiceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get line items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]models.LineItem)
	for rows.Next() {
		var id string
		var item models.LineItem
		if err := rows.Scan(&id, &item.Description, &item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items[id] = append(items[id], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}
	return items, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row scanner) (*models.ContractorInvoice, error) {
	inv := &models.ContractorInvoice{}
	var invoiceDate, dueDate string
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.ContractorName, &inv.ContractorContact, &inv.Amount,
		&invoiceDate, &dueDate, &inv.Description, &inv.ProjectCode)
	if err != nil {
		return nil, err
	}
	if inv.InvoiceDate, err = parseDate("invoice_date", invoiceDate); err != nil {
		return nil, err
	}
	if inv.DueDate, err = parseDate("due_date", dueDate); err != nil {
		return nil, err
	}
	return inv, nil
}
