package commands

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/pkg/logging"
)

func newSettleCommand() *cobra.Command {
	var file string
	var verify bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Print balances and a settlement plan for a trip sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := logging.New(cmd.ErrOrStderr(), level)

			sheet, err := LoadSheet(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return runSettle(cmd.OutOrStdout(), logger, sheet, verify)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "trip sheet in YAML, or - for stdin (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().BoolVar(&verify, "verify", false, "apply the plan and check every balance ends at zero")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log parsing and planning details to stderr")

	return cmd
}

func runSettle(out io.Writer, logger *slog.Logger, sheet *Sheet, verify bool) error {
	roster := sheet.Roster()
	expenses, err := sheet.CalculatorExpenses()
	if err != nil {
		return err
	}
	logger.Debug("Loaded sheet", "members", roster, "expenses_count", len(expenses))

	balances, err := calculator.ComputeBalances(roster, expenses)
	if err != nil {
		return fmt.Errorf("computing balances: %w", err)
	}
	transfers := calculator.ComputeSettlements(balances)
	logger.Debug("Planned settlement", "transfers_count", len(transfers))

	fmt.Fprintf(out, "Total spent: %s\n\n", calculator.Total(expenses).StringFixed(2))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MEMBER\tPAID\tOWED\tNET\t")
	for _, b := range balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", b.Member, b.Paid.StringFixed(2), b.Owed.StringFixed(2), b.Net.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	if len(transfers) == 0 {
		fmt.Fprintln(out, "Everyone is settled up.")
	} else {
		fmt.Fprintln(out, "Settlement:")
		for _, t := range transfers {
			fmt.Fprintf(out, "  %s pays %s %s\n", t.From, t.To, t.Amount.StringFixed(2))
		}
	}

	if !verify {
		return nil
	}

	bound := calculator.Tolerance.Mul(decimal.NewFromInt(int64(2 * len(balances))))
	for _, r := range calculator.ApplyTransfers(balances, transfers) {
		if r.Net.Abs().GreaterThan(bound) {
			return fmt.Errorf("verification failed: %s is left at %s", r.Member, r.Net.StringFixed(2))
		}
	}
	fmt.Fprintf(out, "\nVerified: every balance is within %s of zero after settlement.\n", bound.StringFixed(2))
	return nil
}
