package caloriescan

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"caloriescan/internal/config"
	"caloriescan/internal/ledger"
	"caloriescan/internal/model"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage today's food log",
}

var (
	logBrand    string
	logCalories int
	logProtein  int
	logCarbs    int
	logFat      int
	logServing  int
	logMeal     string
	logJSON     bool
)

var logAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Log a food by per-100g values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meal, err := parseMeal(logMeal)
		if err != nil {
			return err
		}
		product := model.Product{
			Name:     args[0],
			Brand:    logBrand,
			Calories: logCalories,
			ProteinG: logProtein,
			CarbsG:   logCarbs,
			FatG:     logFat,
		}
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			entry, ok := led.AddEntry(product, logServing, meal)
			if !ok {
				return fmt.Errorf("serving must be > 0")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d cal)\n", entry.Name, entry.Calories)
			return nil
		})
	},
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's logged entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			entries := led.Entries()
			if logJSON {
				b, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal entries json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No food logged today")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tBRAND\tMEAL\tSERVING\tCAL\tMACROS\tADDED")
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), formatEntry(e))
			}
			return nil
		})
	},
}

var logRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an entry and subtract it from today's totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("entry id", args[0])
		if err != nil {
			return err
		}
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			if led.RemoveEntry(id) {
				fmt.Fprintln(cmd.OutOrStdout(), "Food item removed")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry with id %d\n", id)
			}
			return nil
		})
	},
}

var logResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear today's log and zero the daily totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			led.ResetDay()
			fmt.Fprintln(cmd.OutOrStdout(), "Daily intake reset")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAddCmd, logListCmd, logRemoveCmd, logResetCmd)

	logAddCmd.Flags().StringVar(&logBrand, "brand", "", "Brand")
	logAddCmd.Flags().IntVar(&logCalories, "calories", 0, "Calories per 100g")
	logAddCmd.Flags().IntVar(&logProtein, "protein", 0, "Protein grams per 100g")
	logAddCmd.Flags().IntVar(&logCarbs, "carbs", 0, "Carb grams per 100g")
	logAddCmd.Flags().IntVar(&logFat, "fat", 0, "Fat grams per 100g")
	logAddCmd.Flags().IntVar(&logServing, "serving", 100, "Serving size in grams")
	logAddCmd.Flags().StringVar(&logMeal, "meal", "snacks", "Meal: breakfast, lunch, dinner or snacks")

	logListCmd.Flags().BoolVar(&logJSON, "json", false, "Output as JSON")
}
