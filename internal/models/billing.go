package models

import "github.com/shopspring/decimal"

// BillingEntry represents a single entry from an external accounting, ERP or project system.
type BillingEntry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string `json:"id" yaml:"id"`

	// ReferenceNumber is the originating system's reference (e.g., "QB-10234").
	ReferenceNumber string `json:"referenceNumber" yaml:"referenceNumber" validate:"required"`

	// VendorName is compared against ContractorInvoice.ContractorName.
	VendorName string `json:"vendorName" yaml:"vendorName" validate:"required"`

	Amount decimal.Decimal `json:"amount" yaml:"amount"`

	// Date is the posting date in the originating system.
	Date Date `json:"date" yaml:"date" validate:"required"`

	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	ProjectCode string `json:"projectCode" yaml:"projectCode"`

	// Status is the lifecycle or approval status in the originating system
	// (e.g., "approved", "pending"). Informational only.
	Status string `json:"status,omitempty" yaml:"status,omitempty"`

	// SourceSystem names the originating system (e.g., "QuickBooks", "SAP").
	SourceSystem string `json:"sourceSystem,omitempty" yaml:"sourceSystem,omitempty"`
}
