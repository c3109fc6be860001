package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/invoicematch/internal/config"
	"github.com/mmynk/invoicematch/internal/export"
	"github.com/mmynk/invoicematch/internal/ingest"
	"github.com/mmynk/invoicematch/internal/matching"
)

type matchOptions struct {
	invoicesPath string
	entriesPath  string
	criteriaPath string
	xlsxPath     string
	view         matching.View
	sortBy       string
}

func newMatchCmd() *cobra.Command {
	opts := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match invoice and billing entry files",
		Long: `Read invoices and billing entries from JSON or YAML files (by extension),
compute matches and print one line per invoice.

Records are validated first; the command fails on the first invalid record.

Example:
  invoicematch match --invoices invoices.yaml --entries entries.yaml --criteria strict.yaml
  invoicematch match --invoices inv.json --entries ent.json --search northern --sort confidence --desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.invoicesPath, "invoices", "", "invoice file (.json, .yaml, .yml)")
	flags.StringVar(&opts.entriesPath, "entries", "", "billing entry file (.json, .yaml, .yml)")
	flags.StringVar(&opts.criteriaPath, "criteria", "", "YAML criteria profile (default criteria if empty)")
	flags.StringVar(&opts.view.Search, "search", "", "filter by contractor name, invoice number or project code")
	flags.StringVar(&opts.view.Status, "status", matching.StatusAll, "filter by status: all, perfect, partial, discrepancy, none")
	flags.StringVar(&opts.sortBy, "sort", "", "sort by confidence, amount, date or contractor")
	flags.BoolVar(&opts.view.Descending, "desc", false, "sort descending")
	flags.StringVar(&opts.xlsxPath, "xlsx", "", "also write an XLSX report to this path")
	_ = cmd.MarkFlagRequired("invoices")
	_ = cmd.MarkFlagRequired("entries")

	return cmd
}

func runMatch(out io.Writer, opts *matchOptions) error {
	opts.view.SortBy = matching.SortKey(opts.sortBy)
	if err := opts.view.Validate(); err != nil {
		return err
	}

	criteria := matching.DefaultCriteria()
	if opts.criteriaPath != "" {
		var err error
		if criteria, err = config.LoadCriteria(opts.criteriaPath); err != nil {
			return err
		}
	}

	v := ingest.NewValidator()
	invoices, err := v.LoadInvoices(opts.invoicesPath)
	if err != nil {
		return err
	}
	entries, err := v.LoadEntries(opts.entriesPath)
	if err != nil {
		return err
	}
	slog.Debug("Loaded records", "invoices", len(invoices), "entries", len(entries))

	results := matching.ComputeMatches(invoices, entries, criteria)
	visible := matching.Filter(results, opts.view)

	if err := printResults(out, visible, matching.Summarize(results)); err != nil {
		return err
	}

	if opts.xlsxPath != "" {
		if err := export.WriteFile(opts.xlsxPath, visible); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nReport written to %s\n", opts.xlsxPath)
	}
	return nil
}

func printResults(out io.Writer, results []matching.MatchResult, summary matching.Summary) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INVOICE\tCONTRACTOR\tAMOUNT\tSTATUS\tCONFIDENCE\tREFERENCE\tDISCREPANCIES")
	for _, r := range results {
		ref := "-"
		if r.BillingEntry != nil {
			ref = r.BillingEntry.ReferenceNumber
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.0f\t%s\t%d\n",
			r.Invoice.InvoiceNumber, r.Invoice.ContractorName, r.Invoice.Amount.StringFixed(2),
			r.Status, r.Confidence, ref, len(r.Discrepancies),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d invoices:", summary.Total)
	for _, status := range matching.Statuses {
		fmt.Fprintf(out, " %s=%d", status, summary.ByStatus[status])
	}
	fmt.Fprintf(out, " (average confidence %.1f)\n", summary.AverageConfidence)
	return nil
}
