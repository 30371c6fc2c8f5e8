// Package cmd defines the command-line interface for impact.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(orgsCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the reports subcommands to the parent reports command
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	reportsCmd.AddCommand(reportsDeleteCmd)
	reportsCmd.AddCommand(reportsExportCmd)
	reportsCmd.AddCommand(reportsMigrateCmd)
	reportsCmd.AddCommand(reportsStatusCmd)

	// Add the settings subcommands to the parent settings command
	settingsCmd.AddCommand(settingsSetKeyCmd)
	settingsCmd.AddCommand(settingsShowCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("start", "", "Start date (YYYY-MM-DD or RFC3339). Defaults to six months ago")
	rootCmd.PersistentFlags().String("end", "", "End date (YYYY-MM-DD or RFC3339). Defaults to today")
	rootCmd.PersistentFlags().String("org", "", "Restrict analysis to one GitHub organization")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Reports store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().String("save", "", "Persist the generated report under this name")
	reportCmd.Flags().Bool("summarize", false, "Generate an AI summary for the report")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().String("compare-start", "", "Comparison window start date (YYYY-MM-DD)")
	compareCmd.Flags().String("compare-end", "", "Comparison window end date (YYYY-MM-DD)")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Bind all flags of summaryCmd to Viper
	summaryCmd.Flags().String("report", "", "ID of the saved report to summarize")
	if err := viper.BindPFlags(summaryCmd.Flags()); err != nil {
		contract.LogFatal("Error binding summary flags", err)
	}

	// Bind all flags of reportsMigrateCmd to Viper
	reportsMigrateCmd.Flags().Int("version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(reportsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding reports migrate flags", err)
	}
}
