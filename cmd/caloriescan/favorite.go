package caloriescan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"caloriescan/internal/config"
	"caloriescan/internal/ledger"
	"caloriescan/internal/provider/openfoodfacts"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Keep products for quick re-logging",
}

var favoriteJSON bool

var favoriteAddCmd = &cobra.Command{
	Use:   "add <barcode>",
	Short: "Look up a barcode and favorite the product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout)
			defer cancel()
			product, err := newLookupClient(cfg).LookupByBarcode(ctx, args[0])
			if err != nil {
				if errors.Is(err, openfoodfacts.ErrProductNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), "Product not found in database")
					return nil
				}
				return err
			}
			fav := led.AddFavorite(product)
			fmt.Fprintf(cmd.OutOrStdout(), "Favorited %s (%s)\n", fav.Name, fav.Brand)
			return nil
		})
	},
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorited products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			favorites := led.Favorites()
			if favoriteJSON {
				b, err := json.MarshalIndent(favorites, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal favorites json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			if len(favorites) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet")
				return nil
			}
			for i, f := range favorites {
				fmt.Fprintln(cmd.OutOrStdout(), formatProduct(i+1, f.Product))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	favoriteCmd.AddCommand(favoriteAddCmd, favoriteListCmd)
	favoriteListCmd.Flags().BoolVar(&favoriteJSON, "json", false, "Output as JSON")
}
