package main

import (
	"os"

	"jewelry_store/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jewelry_store",
	Short: "Jewelry store back office and storefront API",
	Long: `Back office for a jewelry store: inventory, sales and repayments in AFN
and USD, daily currency and gold rates, repairs, suppliers, expenses and
reports, plus a public storefront. Running without a subcommand starts the server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			config.GetLogger().Info("No .env file found or error loading, relying on environment variables")
		}
		config.SetLogLevel(os.Getenv("LOG_LEVEL"))
	},
	RunE: runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
