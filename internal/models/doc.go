// Package models defines the core domain models for Invoicematch.
//
// # Records
//
// Two independent record collections are reconciled against each other:
//   - ContractorInvoice: an invoice submitted by a contractor
//   - BillingEntry: an entry exported from an accounting, ERP or project system
//
// Both are constructed outside the matching core (file import, RPC import,
// OCR pipelines) and are treated as immutable once handed to it.
//
// # Review
//
//   - ReviewDecision: a manager's approve/reject decision on an invoice's
//     current best match. Decisions are the only state the console writes.
//
// # Design Principles
//
//  1. Money is decimal.Decimal, never float64
//  2. Dates are calendar dates (Date), never timestamps
//  3. Relationships use ID strings instead of pointers
package models
