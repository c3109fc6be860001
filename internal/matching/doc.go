// Package matching reconciles contractor invoices against billing-system entries.
//
// Every invoice is scored against every billing entry on four weighted factors:
//
//	amount        30  relative difference within Criteria.AmountTolerance
//	date          25  calendar-day difference within Criteria.DateTolerance
//	contractor    25  Levenshtein similarity > 0.8 (or 15 when > 0.6)
//	project code  20  exact equality
//
// Candidates below Criteria.MinimumConfidenceScore are dropped, the rest are
// ranked, and the top-ranked one becomes the invoice's best match. Any
// high-severity discrepancy against the best match forces StatusDiscrepancy.
//
// All functions in this package are pure and safe for concurrent use.
package matching
