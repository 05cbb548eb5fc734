package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eco-cli",
	Short: "Eco-friendly product recommendations from the command line",
	Long: `eco-cli ranks products from a self-contained JSON request and loads
product datasets into the catalog database.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}
