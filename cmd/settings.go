package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myimpact/impact/internal/contract"
)

// settingsCmd manages persisted settings.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persisted settings",
	Long: `Manage settings stored in the reports database.

Currently holds the OpenAI API key used by summary generation.

Subcommands:
  set-key - Store the OpenAI API key
  show    - Display the stored settings

Examples:
  impact settings set-key sk-...
  impact settings show`,
}

// settingsSetKeyCmd stores the OpenAI API key.
var settingsSetKeyCmd = &cobra.Command{
	Use:     "set-key <api-key>",
	Short:   "Store the OpenAI API key used for summaries",
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := reportStore.SetAPIKey(args[0]); err != nil {
			contract.LogFatal("Failed to store API key", err)
		}
		fmt.Println("API key stored.")
	},
}

// settingsShowCmd displays the stored settings.
var settingsShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Display the stored settings",
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		key, err := reportStore.GetAPIKey()
		if err != nil {
			contract.LogFatal("Failed to read API key", err)
		}
		fmt.Printf("OpenAI API key: %s\n", maskKey(key))
	},
}

// maskKey hides all but the last four characters of a stored key.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	runes := []rune(key)
	if len(runes) <= 4 {
		return "****"
	}
	return "****" + string(runes[len(runes)-4:])
}
