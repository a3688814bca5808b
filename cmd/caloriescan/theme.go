package caloriescan

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"caloriescan/internal/config"
	"caloriescan/internal/ledger"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|show]",
	Short:     "Toggle or show the UI theme flag",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"dark", "light", "show"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(led *ledger.Ledger, cfg *config.Config, log *zap.Logger) error {
			switch args[0] {
			case "dark":
				led.SetDarkMode(true)
				fmt.Fprintln(cmd.OutOrStdout(), "Theme set to dark")
			case "light":
				led.SetDarkMode(false)
				fmt.Fprintln(cmd.OutOrStdout(), "Theme set to light")
			default:
				if led.DarkMode() {
					fmt.Fprintln(cmd.OutOrStdout(), "dark")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "light")
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
