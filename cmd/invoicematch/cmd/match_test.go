package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const invoicesYAML = `
- invoiceNumber: INV-2024-001
  contractorName: Northern Pipeline Services Ltd.
  amount: 15750
  invoiceDate: 2024-03-05
  projectCode: PIPE-2024-001
- invoiceNumber: INV-2024-002
  contractorName: Summit Electrical
  amount: 4200
  invoiceDate: 2024-03-10
  projectCode: ELEC-2024-007
`

const entriesJSON = `[
  {
    "referenceNumber": "QB-10234",
    "vendorName": "Northern Pipeline Services Ltd.",
    "amount": "15750.00",
    "date": "2024-03-06",
    "projectCode": "PIPE-2024-001"
  }
]`

func writeInputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	invoices := filepath.Join(dir, "invoices.yaml")
	entries := filepath.Join(dir, "entries.json")
	if err := os.WriteFile(invoices, []byte(invoicesYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(entries, []byte(entriesJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return invoices, entries
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMatchCmd(t *testing.T) {
	invoices, entries := writeInputs(t)

	tests := []struct {
		name     string
		args     []string
		want     []string
		notWant  []string
		wantFail bool
	}{
		{
			name: "all results",
			args: []string{"match", "--invoices", invoices, "--entries", entries},
			want: []string{"INV-2024-001", "perfect", "QB-10234", "INV-2024-002", "2 invoices: perfect=1 partial=0 discrepancy=0 none=1"},
		},
		{
			name:    "status filter",
			args:    []string{"match", "--invoices", invoices, "--entries", entries, "--status", "none"},
			want:    []string{"INV-2024-002"},
			notWant: []string{"INV-2024-001"},
		},
		{
			name:    "search",
			args:    []string{"match", "--invoices", invoices, "--entries", entries, "--search", "pipe-2024"},
			want:    []string{"INV-2024-001"},
			notWant: []string{"INV-2024-002"},
		},
		{
			name:     "unknown sort key",
			args:     []string{"match", "--invoices", invoices, "--entries", entries, "--sort", "vendor"},
			wantFail: true,
		},
		{
			name:     "missing entries flag",
			args:     []string{"match", "--invoices", invoices},
			wantFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantFail {
				if err == nil {
					t.Fatalf("expected error, got output %q", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("match failed: %v\n%s", err, out)
			}
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestMatchCmd_InvalidRecord(t *testing.T) {
	dir := t.TempDir()
	invoices := filepath.Join(dir, "invoices.json")
	entries := filepath.Join(dir, "entries.json")
	os.WriteFile(invoices, []byte(`[{"invoiceNumber": "INV-1", "amount": "10", "invoiceDate": "2024-01-01"}]`), 0o644)
	os.WriteFile(entries, []byte(entriesJSON), 0o644)

	_, err := execute(t, "match", "--invoices", invoices, "--entries", entries)
	if err == nil || !strings.Contains(err.Error(), "contractorName") {
		t.Errorf("expected contractorName validation error, got %v", err)
	}
}

func TestMatchCmd_XLSX(t *testing.T) {
	invoices, entries := writeInputs(t)
	report := filepath.Join(t.TempDir(), "report.xlsx")

	out, err := execute(t, "match", "--invoices", invoices, "--entries", entries, "--xlsx", report)
	if err != nil {
		t.Fatalf("match failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(report); err != nil {
		t.Errorf("report not written: %v", err)
	}
	if !strings.Contains(out, "Report written to") {
		t.Errorf("output missing report line:\n%s", out)
	}
}
