// Package cli provides formatting and styling utilities for the status
// line output.
package cli

import "fmt"

// FormatCost formats a USD cost value. Sub-cent costs keep a third
// decimal so tiny sessions don't all render as $0.00.
func FormatCost(cost float64) string {
	if cost < 0.01 {
		return fmt.Sprintf("$%.3f", cost)
	}
	return fmt.Sprintf("$%.2f", cost)
}

// FormatDurationMs formats a millisecond span as a compact duration.
// e.g., 3725000 -> "1h2m", 125000 -> "2m", 45000 -> "<1m"
func FormatDurationMs(ms int64) string {
	hours := ms / (1000 * 60 * 60)
	mins := (ms % (1000 * 60 * 60)) / (1000 * 60)

	if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return "<1m"
}
