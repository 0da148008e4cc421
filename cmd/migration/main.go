// Command migration compares the total supply of each old vault with its
// replacement and shows how far the migration has progressed.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmagro/infrared-report/internal/commands"
	"github.com/dmagro/infrared-report/internal/export"
	"github.com/dmagro/infrared-report/internal/format"
	"github.com/dmagro/infrared-report/internal/report"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var flags commands.Flags

	cmd := &cobra.Command{
		Use:   "migration",
		Short: "Vault migration balance comparison",
		Long: `For every configured vault pair, read the total supply of the old and the
new vault and print the difference and the share already migrated, then a
TOTALS row.

A pair whose supply cannot be read is left out of the table and the totals.

Example:
  migration
  migration --config config/berachain.yaml --xlsx migration.xlsx`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd.Context(), flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags.Register(cmd.PersistentFlags())
	cmd.AddCommand(&cobra.Command{
		Use:   "addresses",
		Short: "List the vault pairs the report queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := commands.LoadConfig(flags)
			if err != nil {
				return err
			}
			format.FormatAddresses(cmd.OutOrStdout(), "Migration vaults", cfg.Migration.Entries())
			return nil
		},
	})
	return cmd
}

func runMigration(ctx context.Context, flags commands.Flags, stdout, stderr io.Writer) error {
	s, err := commands.Open(ctx, flags, stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	rep, err := report.NewMigration(s.Config.Migration, s.Querier, s.ReportOptions()).Run(ctx)
	if err != nil {
		return err
	}

	return s.Emit(stdout, stderr, version, commands.Result{
		Name:        "migration",
		GeneratedAt: rep.GeneratedAt,
		Data:        rep,
		Failures:    rep.Failures,
		Text:        func(w io.Writer) { format.FormatMigration(w, rep) },
		Sheets:      func() []export.Sheet { return export.MigrationSheets(rep) },
	})
}
