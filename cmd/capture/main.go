// Command capture prints the Infrared capture report: for every staking
// token, the share of its BGT rewards vault held by Infrared, the vault's
// BGT emission and the Infrared iBGT emission, followed by the totals.
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
		Use:   "capture",
		Short: "Infrared share of BGT emissions per staking token",
		Long: `Query every configured staking token's BGT rewards vault and report how
much of it the Infrared vault holds, the BGT/sec it emits and the iBGT/sec
Infrared pays out.

Tokens whose vault cannot be read are skipped and logged; the report still
covers the others.

Example:
  capture
  capture --rpc-url https://rpc.berachain.com/ --parallel 4
  capture --output json --save`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapture(cmd.Context(), flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags.Register(cmd.PersistentFlags())
	cmd.AddCommand(addressesCmd(&flags))
	return cmd
}

func addressesCmd(flags *commands.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "addresses",
		Short: "List the contracts and staking tokens the report queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := commands.LoadConfig(*flags)
			if err != nil {
				return err
			}
			format.FormatAddresses(cmd.OutOrStdout(), "Capture addresses", cfg.Capture.Entries())
			return nil
		},
	}
}

func runCapture(ctx context.Context, flags commands.Flags, stdout, stderr io.Writer) error {
	s, err := commands.Open(ctx, flags, stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	rep, err := report.NewCapture(s.Config.Capture, s.Querier, s.ReportOptions()).Run(ctx)
	if err != nil {
		return err
	}

	return s.Emit(stdout, stderr, version, commands.Result{
		Name:        "capture",
		GeneratedAt: rep.GeneratedAt,
		Data:        rep,
		Failures:    rep.Failures,
		Text:        func(w io.Writer) { format.FormatCapture(w, rep) },
		Sheets:      func() []export.Sheet { return export.CaptureSheets(rep) },
	})
}
