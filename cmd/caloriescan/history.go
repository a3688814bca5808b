package caloriescan

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"caloriescan/internal/config"
	"caloriescan/internal/ledger"
	"caloriescan/internal/view"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the trailing daily series from the historical record",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			series := view.TrailingSeries(led.History(), time.Now(), historyDays)
			if historyJSON {
				b, err := json.MarshalIndent(series, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal history json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tCAL\tP\tC\tF")
			for _, p := range series {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%d\t%d\t%d\n", p.Date, p.Calories, p.ProteinG, p.CarbsG, p.FatG)
			}
			return nil
		})
	},
}

var (
	historyDays int
	historyJSON bool
)

var historyDayCmd = &cobra.Command{
	Use:   "day <date>",
	Short: "Show one date's historical record and its drift from the live log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := args[0]
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
		}
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			rec, ok := led.DayRecord(date)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No record for %s\n", date)
				return nil
			}
			if historyJSON {
				b, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal day record json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cal, P:%dg C:%dg F:%dg (%d entries)\n",
				date, rec.Calories, rec.ProteinG, rec.CarbsG, rec.FatG, len(rec.Entries))
			for _, e := range rec.Entries {
				fmt.Fprintln(cmd.OutOrStdout(), formatEntry(e))
			}
			if drift := led.DayDrift(date); drift.Diverged() {
				fmt.Fprintf(cmd.OutOrStdout(), "Note: live log for %s totals %d cal; the record keeps removed entries.\n",
					date, drift.Live.Calories)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyDayCmd)

	historyCmd.Flags().IntVar(&historyDays, "days", 7, "Number of trailing days")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	historyDayCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
}
