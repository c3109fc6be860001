// Package cmd provides CLI commands for invoicematch.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/invoicematch/pkg/logging"
)

// NewRootCmd builds the base command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:   "invoicematch",
		Short: "Match contractor invoices against billing entries",
		Long: `invoicematch reconciles contractor-submitted invoices with entries
exported from an accounting or ERP system.

Each invoice is scored against every billing entry on amount, date,
contractor name and project code. The best candidates are reported with
a status (perfect, partial, discrepancy, none) and the field-level
discrepancies behind it.

Example:
  invoicematch match --invoices invoices.yaml --entries entries.json
  invoicematch match --invoices inv.json --entries ent.json --status discrepancy --xlsx review.xlsx`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if debug {
				level = slog.LevelDebug
			}
			logging.SetupWithLevel(level)
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.AddCommand(newMatchCmd())
	return root
}

// Execute runs the root command.
// This is called by main.main(). It only needs to happen once.
func Execute() error {
	return NewRootCmd().Execute()
}
