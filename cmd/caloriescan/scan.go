package caloriescan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"caloriescan/internal/config"
	"caloriescan/internal/ledger"
	"caloriescan/internal/model"
	"caloriescan/internal/provider/openfoodfacts"
	"caloriescan/internal/scanner"
	"caloriescan/internal/view"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan product barcodes from image frames",
}

var (
	scanJSON    bool
	scanAdd     bool
	scanServing int
	scanMeal    string
	scanFor     time.Duration
)

var scanImageCmd = &cobra.Command{
	Use:   "image <path>",
	Short: "Decode a barcode from a single image and look it up",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			frames := &scanner.FileFrameSource{Path: args[0]}
			img, err := frames.Frame(cmd.Context())
			if err != nil {
				return err
			}
			code, err := scanner.NewZXingDecoder().Decode(img)
			if err != nil || code == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No barcode found in image")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Barcode: %s\n", code)

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout)
			defer cancel()
			product, err := newLookupClient(cfg).LookupByBarcode(ctx, code)
			if err != nil {
				if errors.Is(err, openfoodfacts.ErrProductNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), "Product not found in database")
					return nil
				}
				return err
			}
			return emitScannedProduct(cmd, led, product)
		})
	},
}

var scanWatchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Poll an image file like a camera feed until a barcode resolves",
	Long:  "Re-reads the image file at the scan interval, decoding each frame. The first decoded barcode is looked up and the scan ends. Ctrl-C cancels.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			client := newLookupClient(cfg)
			sc := scanner.New(
				&scanner.FileFrameSource{Path: args[0]},
				scanner.NewZXingDecoder(),
				func(ctx context.Context, code string) (model.Product, error) {
					return client.LookupByBarcode(ctx, code)
				},
				scanner.Config{Interval: cfg.ScanInterval, Timeout: cfg.HTTPTimeout, Logger: log},
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if scanFor > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, scanFor)
				defer cancel()
			}

			notes := view.NewCenter(0)
			if err := sc.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Scanning... position a barcode in the frame")

			select {
			case res := <-sc.Results():
				sc.Stop()
				if res.Err != nil {
					if errors.Is(res.Err, openfoodfacts.ErrProductNotFound) {
						notes.Show("Product not found in database", view.NotifyError)
					} else {
						notes.Show("Error fetching product data", view.NotifyError)
						log.Warn("barcode lookup failed", zap.String("code", res.Code), zap.Error(res.Err))
					}
					printNotification(cmd, notes)
					return nil
				}
				notes.Show("Product found!", view.NotifySuccess)
				printNotification(cmd, notes)
				fmt.Fprintf(cmd.OutOrStdout(), "Barcode: %s\n", res.Code)
				return emitScannedProduct(cmd, led, res.Product)
			case <-ctx.Done():
				sc.Stop()
				fmt.Fprintln(cmd.OutOrStdout(), "Scan cancelled")
				return nil
			}
		})
	},
}

func emitScannedProduct(cmd *cobra.Command, led *ledger.Ledger, product model.Product) error {
	if scanJSON {
		b, err := json.MarshalIndent(product, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal product json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), formatProduct(1, product))
	}
	if !scanAdd {
		return nil
	}
	meal, err := parseMeal(scanMeal)
	if err != nil {
		return err
	}
	entry, ok := led.AddEntry(product, scanServing, meal)
	if !ok {
		return fmt.Errorf("serving must be > 0")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d cal)\n", entry.Name, entry.Calories)
	return nil
}

func printNotification(cmd *cobra.Command, notes *view.Center) {
	if n, ok := notes.Current(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", n.Kind, n.Message)
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.AddCommand(scanImageCmd, scanWatchCmd)

	for _, c := range []*cobra.Command{scanImageCmd, scanWatchCmd} {
		c.Flags().BoolVar(&scanJSON, "json", false, "Output the product as JSON")
		c.Flags().BoolVar(&scanAdd, "add", false, "Log the resolved product")
		c.Flags().IntVar(&scanServing, "serving", 100, "Serving size in grams for --add")
		c.Flags().StringVar(&scanMeal, "meal", "snacks", "Meal category for --add")
	}
	scanWatchCmd.Flags().DurationVar(&scanFor, "for", 0, "Give up after this duration (0 = wait until Ctrl-C)")
}
