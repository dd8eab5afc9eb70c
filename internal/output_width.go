package internal

import (
	"os"

	"github.com/christianmadden/chess.com-utils/internal/contract"
	"golang.org/x/term"
)

// maxOpponentWidth calculates the maximum width for opponent names in the
// detail table based on terminal width and table configuration.
func maxOpponentWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns with table formatting
	baseWidth := 45 // Session + Time + Result + Rating + Δ + Acc with borders/padding
	if cfg.Countries {
		baseWidth += 20
	}

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
