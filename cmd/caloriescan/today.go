package caloriescan

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"caloriescan/internal/config"
	"caloriescan/internal/ledger"
	"caloriescan/internal/model"
	"caloriescan/internal/view"
)

var todayJSON bool

type todayStatus struct {
	Date     string              `json:"date"`
	Totals   model.DailyTotals   `json:"totals"`
	Goals    model.Goals         `json:"goals"`
	Progress view.ProgressReport `json:"progress"`
	Macros   view.MacroSplit     `json:"macros"`
	Drift    ledger.Drift        `json:"drift"`
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's totals and goal progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			date := led.Today()
			status := todayStatus{
				Date:     date,
				Totals:   led.Totals(),
				Goals:    led.Goals(),
				Progress: view.Progress(led.Totals(), led.Goals()),
				Macros:   view.Macros(led.Totals()),
				Drift:    led.DayDrift(date),
			}
			if todayJSON {
				b, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal today json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Today (%s)\n", status.Date)
			fmt.Fprintf(out, "Calories: %d / %d (%d%%)\n", status.Totals.Calories, status.Goals.Calories, status.Progress.Calories)
			fmt.Fprintf(out, "Protein:  %dg / %dg (%d%%)\n", status.Totals.ProteinG, status.Goals.ProteinG, status.Progress.ProteinG)
			fmt.Fprintf(out, "Carbs:    %dg / %dg (%d%%)\n", status.Totals.CarbsG, status.Goals.CarbsG, status.Progress.CarbsG)
			fmt.Fprintf(out, "Fat:      %dg / %dg (%d%%)\n", status.Totals.FatG, status.Goals.FatG, status.Progress.FatG)
			if split := status.Macros; split != (view.MacroSplit{}) {
				fmt.Fprintf(out, "Macro split: P %d%% / C %d%% / F %d%%\n", split.ProteinPct, split.CarbsPct, split.FatPct)
			}
			remaining := status.Goals.Calories - status.Totals.Calories
			if remaining > 0 {
				fmt.Fprintf(out, "%d calories remaining\n", remaining)
			} else {
				fmt.Fprintln(out, "Goal reached!")
			}
			if status.Drift.Diverged() {
				fmt.Fprintf(out, "Note: today's historical record (%d cal) differs from the live log (%d cal); entries removed today stay in the day's history.\n",
					status.Drift.Recorded.Calories, status.Drift.Live.Calories)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output as JSON")
}
