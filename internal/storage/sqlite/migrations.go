package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Amounts are stored as TEXT to keep decimal precision; dates as YYYY-MM-DD.
const schema = `
CREATE TABLE IF NOT EXISTS invoices (
    id TEXT PRIMARY KEY,
    invoice_number TEXT NOT NULL,
    contractor_name TEXT NOT NULL,
    contractor_contact TEXT NOT NULL DEFAULT '',
    amount TEXT NOT NULL,
    invoice_date TEXT NOT NULL,
    due_date TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    project_code TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS invoice_line_items (
    invoice_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    description TEXT NOT NULL,
    quantity TEXT NOT NULL,
    unit_price TEXT NOT NULL,
    total TEXT NOT NULL,
    PRIMARY KEY (invoice_id, position),
    FOREIGN KEY (invoice_id) REFERENCES invoices(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS billing_entries (
    id TEXT PRIMARY KEY,
    reference_number TEXT NOT NULL,
    vendor_name TEXT NOT NULL,
    amount TEXT NOT NULL,
    entry_date TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    project_code TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    source_system TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS review_decisions (
    id TEXT PRIMARY KEY,
    invoice_id TEXT NOT NULL UNIQUE,
    billing_entry_id TEXT,
    decision TEXT NOT NULL CHECK (decision IN ('approved', 'rejected')),
    confidence REAL NOT NULL,
    note TEXT,
    decided_at INTEGER NOT NULL,
    FOREIGN KEY (invoice_id) REFERENCES invoices(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_invoice_line_items_invoice_id ON invoice_line_items(invoice_id);
CREATE INDEX IF NOT EXISTS idx_invoices_project_code ON invoices(project_code);
CREATE INDEX IF NOT EXISTS idx_billing_entries_project_code ON billing_entries(project_code);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
