package models

import "github.com/shopspring/decimal"

// ContractorInvoice represents a single invoice submitted by a contractor.
type ContractorInvoice struct {
	// ID is the unique identifier for the invoice (UUID format).
	ID string `json:"id" yaml:"id"`

	// InvoiceNumber is the contractor's own invoice number (e.g., "INV-2024-001").
	InvoiceNumber string `json:"invoiceNumber" yaml:"invoiceNumber" validate:"required"`

	// ContractorName is compared against BillingEntry.VendorName.
	ContractorName string `json:"contractorName" yaml:"contractorName" validate:"required"`

	// ContractorContact is an email address or phone number. Informational only.
	ContractorContact string `json:"contractorContact,omitempty" yaml:"contractorContact,omitempty"`

	// Amount is the invoice total in currency units.
	// It is the denominator of the relative amount difference, so it must be non-zero.
	Amount decimal.Decimal `json:"amount" yaml:"amount" validate:"required"`

	// InvoiceDate is the date the invoice was issued.
	InvoiceDate Date `json:"invoiceDate" yaml:"invoiceDate" validate:"required"`

	// DueDate is the payment due date.
	DueDate Date `json:"dueDate" yaml:"dueDate"`

	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// ProjectCode links the invoice to a project (e.g., "PIPE-2024-001").
	// Compared by exact string equality.
	ProjectCode string `json:"projectCode" yaml:"projectCode"`

	// LineItems are the individual billed lines, in document order.
	LineItems []LineItem `json:"lineItems,omitempty" yaml:"lineItems,omitempty" validate:"dive"`
}

// LineItem represents a single line on a contractor invoice.
type LineItem struct {
	Description string          `json:"description" yaml:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" yaml:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice" yaml:"unitPrice"`

	// Total is Quantity × UnitPrice as supplied by the source document.
	// It is not re-validated.
	Total decimal.Decimal `json:"total" yaml:"total"`
}
