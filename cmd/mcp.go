package cmd

import (
	"github.com/spf13/cobra"

	"github.com/myimpact/impact/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Impact MCP server",
	Long:  `Launch an MCP server that allows AI agents to generate reports and comparisons via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; all setup output goes to stderr.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, activityClient, reportStore)
	},
}
