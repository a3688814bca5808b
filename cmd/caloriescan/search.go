package caloriescan

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"caloriescan/internal/config"
	"caloriescan/internal/ledger"
)

var (
	searchJSON     bool
	searchAdd      int
	searchFavorite int
	searchServing  int
	searchMeal     string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search Open Food Facts by text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			client := newLookupClient(cfg)
			products, err := client.SearchByText(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if searchJSON {
				b, err := json.MarshalIndent(products, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal search json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
			} else if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No products found")
			} else {
				for i, p := range products {
					fmt.Fprintln(cmd.OutOrStdout(), formatProduct(i+1, p))
				}
			}

			if searchAdd > 0 {
				if searchAdd > len(products) {
					return fmt.Errorf("--add %d is out of range (%d results)", searchAdd, len(products))
				}
				meal, err := parseMeal(searchMeal)
				if err != nil {
					return err
				}
				entry, ok := led.AddEntry(products[searchAdd-1], searchServing, meal)
				if !ok {
					return fmt.Errorf("serving must be > 0")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d cal)\n", entry.Name, entry.Calories)
			}
			if searchFavorite > 0 {
				if searchFavorite > len(products) {
					return fmt.Errorf("--favorite %d is out of range (%d results)", searchFavorite, len(products))
				}
				fav := led.AddFavorite(products[searchFavorite-1])
				fmt.Fprintf(cmd.OutOrStdout(), "Favorited %s\n", fav.Name)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")
	searchCmd.Flags().IntVar(&searchAdd, "add", 0, "Log result N from the list")
	searchCmd.Flags().IntVar(&searchFavorite, "favorite", 0, "Favorite result N from the list")
	searchCmd.Flags().IntVar(&searchServing, "serving", 100, "Serving size in grams for --add")
	searchCmd.Flags().StringVar(&searchMeal, "meal", "snacks", "Meal category for --add")
}
