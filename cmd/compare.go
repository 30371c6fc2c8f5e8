package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/internal/outwriter"
)

// compareCmd compares activity between two date windows.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare activity between two date windows.",
	Long: `Compare merged, reviewed, and repository counts between the current
window and a comparison window.

When --compare-start and --compare-end are omitted, the comparison window
is the period of equal length immediately preceding the current one.

Each metric gets a change classification:
- NEW when activity appears where there was none
- An increase or decrease percentage otherwise

Examples:
  # This half year against the previous one
  impact compare

  # Explicit windows
  impact compare --start 2024-06-01 --end 2024-12-01 \
    --compare-start 2023-06-01 --compare-end 2023-12-01

  # Machine-readable output
  impact compare --output csv --output-file trend.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		started := time.Now()
		result, err := workflow.Compare(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot compare periods", err)
		}
		if err := outwriter.PrintComparisonResults(result, cfg, time.Since(started)); err != nil {
			contract.LogFatal("Cannot write comparison", err)
		}
	},
}
