// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/huangsam/ensoview/internal/contract"
	"golang.org/x/term"
)

// GetMaxCandidateWidth calculates the maximum width of the source column in the
// indices table based on terminal width.
func GetMaxCandidateWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Index + Title + thresholds + convention + labels, with borders and padding
	baseWidth := 95

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
