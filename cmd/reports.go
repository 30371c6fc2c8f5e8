package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/internal/outwriter"
	"github.com/myimpact/impact/internal/parquet"
	"github.com/myimpact/impact/internal/reportstore"
)

// reportsCmd focused on saved report management.
//
// Note: Reports subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by the fetching commands. This avoids requiring
// the GitHub CLI for simple store operations.
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Manage saved activity reports",
	Long: `Manage the reports persisted by 'impact report --save'.

Each saved report stores:
- Report metadata (name, creation time, organization, date range)
- The full list of merged pull requests in the window
- An optional AI-generated summary

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show all saved reports
  show    - Display one report with its records
  delete  - Remove a saved report
  export  - Export reports to Parquet for analytics
  migrate - Run database schema migrations
  status  - Show reports store statistics

Examples:
  # List everything you have saved
  impact reports list

  # Export for analysis in pandas/DuckDB
  impact reports export --output-file reports.parquet`,
}

// reportsListCmd lists the saved reports.
var reportsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show all saved reports, newest first",
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		reports, err := reportStore.List()
		if err != nil {
			contract.LogFatal("Failed to list reports", err)
		}
		if err := outwriter.PrintReportList(reports, cfg); err != nil {
			contract.LogFatal("Failed to write report list", err)
		}
	},
}

// reportsShowCmd displays one saved report.
var reportsShowCmd = &cobra.Command{
	Use:     "show <report-id>",
	Short:   "Display one saved report with its pull requests",
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		report, err := reportStore.Get(args[0])
		if err != nil {
			contract.LogFatal("Failed to load report", err)
		}
		if err := outwriter.PrintReport(report, cfg); err != nil {
			contract.LogFatal("Failed to write report", err)
		}
	},
}

// reportsDeleteCmd removes one saved report.
var reportsDeleteCmd = &cobra.Command{
	Use:   "delete <report-id>",
	Short: "Remove a saved report",
	Long: `Delete one saved report by id.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before deleting
  impact reports export --output-file backup.parquet
  impact reports delete 1731664800000-k3j9x2m4q`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := workflow.DeleteReport(args[0]); err != nil {
			contract.LogFatal("Failed to delete report", err)
		}
		fmt.Printf("Deleted report %s\n", args[0])
	},
}

// reportsExportCmd exports saved reports to a Parquet file.
var reportsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved reports to Parquet for BI tools and analytics",
	Long: `Export all saved reports to Parquet format for use with analytics tools.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all reports
  impact reports export --output-file reports.parquet

  # Query with DuckDB
  duckdb -c "SELECT name, pr_count FROM read_parquet('reports.parquet')"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Failed to export reports", fmt.Errorf("--output-file is required"))
		}
		reports, err := reportStore.List()
		if err != nil {
			contract.LogFatal("Failed to list reports", err)
		}
		rows := parquet.ConvertReports(reports)
		if err := parquet.WriteReportRowsParquet(rows, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export reports", err)
		}
		fmt.Printf("Exported %d reports to %s\n", len(rows), cfg.OutputFile)
	},
}

// reportsMigrateCmd runs database migrations for the reports store.
var reportsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the reports store.

By default, migrates to the latest version. Use --version for specific versions.

Examples:
  # Migrate to latest version (default)
  impact reports migrate

  # Migrate to specific version
  impact reports migrate --version 1

  # Rollback to initial state
  impact reports migrate --version 0`,
	PreRunE: migrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("version")
		if err := reportstore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// reportsStatusCmd shows reports store status.
var reportsStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display reports store statistics and connection details",
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := reportStore.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		if err := outwriter.PrintStoreStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write store status", err)
		}
	},
}
