// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/myimpact/impact/internal/contract"
)

// getTerminalWidth returns the effective terminal width, honoring the
// configured override and falling back to a conservative default.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// maxTitleWidth caps the PR title column so tables stay inside the terminal.
func maxTitleWidth(cfg *contract.Config) int {
	available := getTerminalWidth(cfg) - 45 // fixed columns plus borders
	if available < 20 {
		return 20
	}
	if available > 80 {
		return 80
	}
	return available
}

// truncate shortens a string to maxWidth runes with an ellipsis suffix.
func truncate(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
