package caloriescan

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"caloriescan/internal/config"
	"caloriescan/internal/ledger"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track body weight",
}

var (
	weightDate string
	weightJSON bool
)

var weightAddCmd = &cobra.Command{
	Use:   "add <value>",
	Short: "Record a weight measurement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			entry, ok := led.AddWeightEntry(args[0], weightDate)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Ignored %q: weight must be a positive number\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %.1f on %s\n", entry.Weight, entry.Date)
			return nil
		})
	},
}

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded weight entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			entries := led.WeightEntries()
			if weightJSON {
				b, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal weight json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No weight entries recorded")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f\n", e.Date, e.Weight)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightListCmd)

	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Calendar date YYYY-MM-DD (default today)")
	weightListCmd.Flags().BoolVar(&weightJSON, "json", false, "Output as JSON")
}
