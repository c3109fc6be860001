package matching

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/invoicematch/internal/models"
)

func TestMatchForInvoice_Scenarios(t *testing.T) {
	inv := northernInvoice()

	tests := []struct {
		name            string
		mutate          func(e *models.BillingEntry)
		wantStatus      Status
		wantConfidence  float64
		wantDiscrepancy int
		validateFunc    func(t *testing.T, r MatchResult)
	}{
		{
			name:            "perfect match",
			mutate:          func(e *models.BillingEntry) {},
			wantStatus:      StatusPerfect,
			wantConfidence:  100,
			wantDiscrepancy: 0,
		},
		{
			name:            "high amount discrepancy overrides partial",
			mutate:          func(e *models.BillingEntry) { e.Amount = decimal.NewFromInt(20000) },
			wantStatus:      StatusDiscrepancy,
			wantConfidence:  70,
			wantDiscrepancy: 1,
			validateFunc: func(t *testing.T, r MatchResult) {
				if r.Discrepancies[0].Type != DiscrepancyAmount || r.Discrepancies[0].Severity != SeverityHigh {
					t.Errorf("discrepancy = %+v, want high amount", r.Discrepancies[0])
				}
			},
		},
		{
			name:            "partial vendor name stays partial",
			mutate:          func(e *models.BillingEntry) { e.VendorName = "Northern Pipeline Svcs" },
			wantStatus:      StatusPartial,
			wantConfidence:  90,
			wantDiscrepancy: 1,
			validateFunc: func(t *testing.T, r MatchResult) {
				d := r.Discrepancies[0]
				if d.Type != DiscrepancyContractor || d.Severity != SeverityMedium {
					t.Errorf("discrepancy = %+v, want medium contractor", d)
				}
				if len(r.SuggestedMatches) != 1 || len(r.SuggestedMatches[0].Reasons) != 4 {
					t.Errorf("suggestions = %+v, want one with 4 reasons", r.SuggestedMatches)
				}
			},
		},
		{
			name:            "low date discrepancy keeps partial",
			mutate:          func(e *models.BillingEntry) { e.Date = models.MustParseDate("2024-03-12") },
			wantStatus:      StatusPartial,
			wantConfidence:  75,
			wantDiscrepancy: 1,
		},
		{
			name:            "project mismatch forces discrepancy",
			mutate:          func(e *models.BillingEntry) { e.ProjectCode = "PIPE-2024-009" },
			wantStatus:      StatusDiscrepancy,
			wantConfidence:  80,
			wantDiscrepancy: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := matchingEntry("be-1", inv)
			tt.mutate(&entry)

			r := MatchForInvoice(inv, []models.BillingEntry{entry}, DefaultCriteria())

			if r.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", r.Status, tt.wantStatus)
			}
			if r.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", r.Confidence, tt.wantConfidence)
			}
			if len(r.Discrepancies) != tt.wantDiscrepancy {
				t.Errorf("Discrepancies = %+v, want %d", r.Discrepancies, tt.wantDiscrepancy)
			}
			if r.BillingEntry == nil || r.BillingEntry.ID != "be-1" {
				t.Errorf("BillingEntry = %+v, want be-1", r.BillingEntry)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, r)
			}
		})
	}
}

func TestMatchForInvoice_NoCandidate(t *testing.T) {
	inv := northernInvoice()
	entry := matchingEntry("be-1", inv)
	entry.ProjectCode = "OTHER"
	entry.VendorName = "Prairie Electrical Co."
	entry.Amount = decimal.NewFromInt(99)

	r := MatchForInvoice(inv, []models.BillingEntry{entry}, DefaultCriteria())

	if r.Status != StatusNone {
		t.Errorf("Status = %s, want none", r.Status)
	}
	if r.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", r.Confidence)
	}
	if r.BillingEntry != nil {
		t.Errorf("BillingEntry = %+v, want nil", r.BillingEntry)
	}
	if r.SuggestedMatches == nil || len(r.SuggestedMatches) != 0 {
		t.Errorf("SuggestedMatches = %#v, want empty non-nil", r.SuggestedMatches)
	}
	if r.Discrepancies == nil || len(r.Discrepancies) != 0 {
		t.Errorf("Discrepancies = %#v, want empty non-nil", r.Discrepancies)
	}

	empty := MatchForInvoice(inv, nil, DefaultCriteria())
	if empty.Status != StatusNone || empty.BillingEntry != nil {
		t.Errorf("no entries: got %+v", empty)
	}
}

func TestMatchForInvoice_BelowPartialTier(t *testing.T) {
	inv := northernInvoice()
	entry := matchingEntry("be-1", inv)
	entry.Amount = decimal.NewFromInt(17010)        // 8% over, low
	entry.Date = models.MustParseDate("2024-03-10") // 5 days, low
	criteria := DefaultCriteria()
	criteria.MinimumConfidenceScore = 0.3

	r := MatchForInvoice(inv, []models.BillingEntry{entry}, criteria)

	if r.Confidence != 45 {
		t.Fatalf("Confidence = %v, want 45", r.Confidence)
	}
	if r.BillingEntry == nil {
		t.Fatal("expected a best match below the partial tier")
	}
	if r.Status != StatusNone {
		t.Errorf("Status = %s, want none", r.Status)
	}
}

func TestMatchForInvoice_Ranking(t *testing.T) {
	inv := northernInvoice()

	exact := matchingEntry("exact", inv)
	lateDate := matchingEntry("late-date", inv)
	lateDate.Date = models.MustParseDate("2024-03-20")
	wrongAmount := matchingEntry("wrong-amount", inv)
	wrongAmount.Amount = decimal.NewFromInt(1)
	wrongProject := matchingEntry("wrong-project", inv)
	wrongProject.ProjectCode = "X"
	tiedWithExact := matchingEntry("exact-twin", inv)
	unrelated := matchingEntry("unrelated", inv)
	unrelated.VendorName = "Prairie Electrical Co."
	unrelated.ProjectCode = "ELEC"
	unrelated.Amount = decimal.NewFromInt(3)

	entries := []models.BillingEntry{unrelated, wrongAmount, exact, lateDate, wrongProject, tiedWithExact}
	r := MatchForInvoice(inv, entries, DefaultCriteria())

	if len(r.SuggestedMatches) != 3 {
		t.Fatalf("SuggestedMatches = %d, want 3", len(r.SuggestedMatches))
	}
	wantIDs := []string{"exact", "exact-twin", "wrong-project"}
	for i, s := range r.SuggestedMatches {
		if s.Entry.ID != wantIDs[i] {
			t.Errorf("suggestion %d = %s, want %s", i, s.Entry.ID, wantIDs[i])
		}
		if i > 0 && s.Confidence > r.SuggestedMatches[i-1].Confidence {
			t.Errorf("suggestions not sorted descending: %v", r.SuggestedMatches)
		}
	}
	if r.BillingEntry.ID != "exact" {
		t.Errorf("BillingEntry = %s, want exact", r.BillingEntry.ID)
	}
	if r.Status != StatusPerfect {
		t.Errorf("Status = %s, want perfect", r.Status)
	}
}

func TestComputeMatches_PreservesInvoiceOrder(t *testing.T) {
	a := northernInvoice()
	b := northernInvoice()
	b.ID = "inv-2"
	b.ContractorName = "Prairie Electrical Co."
	b.ProjectCode = "ELEC-2024-014"
	b.Amount = decimal.NewFromInt(4200)
	c := northernInvoice()
	c.ID = "inv-3"
	c.ProjectCode = "NOPE"
	c.Amount = decimal.NewFromInt(1)
	c.ContractorName = "Unknown"

	entries := []models.BillingEntry{matchingEntry("be-b", b), matchingEntry("be-a", a)}
	results := ComputeMatches([]models.ContractorInvoice{a, b, c}, entries, DefaultCriteria())

	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	wantInvoices := []string{"inv-1", "inv-2", "inv-3"}
	wantEntries := []string{"be-a", "be-b", ""}
	for i, r := range results {
		if r.Invoice.ID != wantInvoices[i] {
			t.Errorf("result %d invoice = %s, want %s", i, r.Invoice.ID, wantInvoices[i])
		}
		got := ""
		if r.BillingEntry != nil {
			got = r.BillingEntry.ID
		}
		if got != wantEntries[i] {
			t.Errorf("result %d entry = %q, want %q", i, got, wantEntries[i])
		}
		if len(r.SuggestedMatches) > 3 {
			t.Errorf("result %d has %d suggestions", i, len(r.SuggestedMatches))
		}
		if hasHighSeverity(r.Discrepancies) && r.Status != StatusDiscrepancy {
			t.Errorf("result %d has high severity but status %s", i, r.Status)
		}
	}
	if results[2].Status != StatusNone {
		t.Errorf("unmatched invoice status = %s, want none", results[2].Status)
	}
}
