package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/myimpact/impact/core"
	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/internal/outwriter"
)

// reportCmd generates activity analytics for the configured window.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an activity report for your merged and reviewed pull requests.",
	Long: `Fetch your merged and reviewed pull requests for a date window and
compute activity analytics.

Produces:
- Monthly, per-organization, and per-repository merge distributions
- A weekly activity heatmap with intensity levels
- Streaks, average cycle time, and collaborator counts

Examples:
  # Last six months, all organizations
  impact report

  # One organization, explicit window
  impact report --org acme --start 2024-06-01 --end 2024-12-01

  # Persist the report and add an AI summary
  impact report --save november --summarize

  # Export analytics as JSON
  impact report --output json --output-file stats.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		started := time.Now()
		if err := workflow.GenerateReport(rootCtx); err != nil {
			contract.LogFatal("Cannot generate report", err)
		}
		stats := core.BuildStats(workflow.Session.Merged, workflow.Session.Reviewed)

		if cfg.Summarize {
			if err := workflow.GenerateSummary(rootCtx); err != nil {
				contract.LogFatal("Cannot generate summary", err)
			}
		}

		if err := outwriter.PrintStats(stats, cfg, time.Since(started)); err != nil {
			contract.LogFatal("Cannot write report", err)
		}
		if workflow.Session.Summary != "" {
			fmt.Printf("\nSummary\n%s\n", workflow.Session.Summary)
		}

		if cfg.SaveName != "" {
			report, err := workflow.SaveReport(cfg.SaveName)
			if err != nil {
				contract.LogFatal("Cannot save report", err)
			}
			fmt.Printf("Saved report '%s' with id %s\n", report.Name, report.ID)
		}
	},
}
