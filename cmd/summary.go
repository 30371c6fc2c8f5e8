package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/myimpact/impact/internal/contract"
)

// summaryCmd generates an AI summary for a saved report.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate an AI summary for a saved report.",
	Long: `Generate a first-person narrative summary for a saved report using
the OpenAI API and persist it alongside the report.

A report that already carries a summary is never overwritten.

Requires an API key configured via 'impact settings set-key'.

Examples:
  # Summarize a saved report
  impact summary --report 1731664800000-k3j9x2m4q`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.ReportID = strings.TrimSpace(viper.GetString("report"))
		if cfg.ReportID == "" {
			contract.LogFatal("Cannot summarize report", fmt.Errorf("--report is required"))
		}

		report, updated, err := workflow.SummarizeSaved(rootCtx, cfg.ReportID)
		if err != nil {
			contract.LogFatal("Cannot summarize report", err)
		}

		fmt.Printf("Summary\n%s\n", report.Summary)
		if updated {
			fmt.Printf("\nSaved summary to report %s\n", report.ID)
		} else {
			fmt.Printf("\nReport %s already has a stored summary; it was left unchanged\n", report.ID)
		}
	},
}
