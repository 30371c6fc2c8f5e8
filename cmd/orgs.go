package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// orgsCmd lists the organizations seen in the configured window.
var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "List the organizations you contributed to in the window.",
	Long: `List the distinct organizations owning repositories where you merged
pull requests in the configured date window.

Useful for picking a value for --org.

Examples:
  impact orgs
  impact orgs --start 2024-06-01 --end 2024-12-01`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		orgs := workflow.RefreshOrganizations(rootCtx)
		if len(orgs) == 0 {
			fmt.Println("No organizations found in the window.")
			return
		}
		for _, org := range orgs {
			fmt.Println(org)
		}
	},
}
