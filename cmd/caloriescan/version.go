package caloriescan

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the caloriescan version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "caloriescan %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
