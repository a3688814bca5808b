package caloriescan

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"caloriescan/internal/config"
	"caloriescan/internal/ledger"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "View or set the daily macro goals",
}

var (
	goalCalories int
	goalProtein  int
	goalCarbs    int
	goalFat      int
	goalJSON     bool
)

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the daily goal targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			current := led.Goals()
			if !cmd.Flags().Changed("calories") {
				goalCalories = current.Calories
			}
			if !cmd.Flags().Changed("protein") {
				goalProtein = current.ProteinG
			}
			if !cmd.Flags().Changed("carbs") {
				goalCarbs = current.CarbsG
			}
			if !cmd.Flags().Changed("fat") {
				goalFat = current.FatG
			}
			led.SetGoals(goalCalories, goalProtein, goalCarbs, goalFat)
			fmt.Fprintf(cmd.OutOrStdout(), "Goals set: %d cal, %dg protein, %dg carbs, %dg fat\n",
				goalCalories, goalProtein, goalCarbs, goalFat)
			return nil
		})
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current goal targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			goals := led.Goals()
			if goalJSON {
				b, err := json.MarshalIndent(goals, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal goals json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Calories: %d\nProtein: %dg\nCarbs: %dg\nFat: %dg\n",
				goals.Calories, goals.ProteinG, goals.CarbsG, goals.FatG)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalShowCmd)

	goalSetCmd.Flags().IntVar(&goalCalories, "calories", 0, "Daily calorie target")
	goalSetCmd.Flags().IntVar(&goalProtein, "protein", 0, "Daily protein grams")
	goalSetCmd.Flags().IntVar(&goalCarbs, "carbs", 0, "Daily carb grams")
	goalSetCmd.Flags().IntVar(&goalFat, "fat", 0, "Daily fat grams")

	goalShowCmd.Flags().BoolVar(&goalJSON, "json", false, "Output as JSON")
}
