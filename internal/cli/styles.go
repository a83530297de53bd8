package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorTextDim = lipgloss.Color("#575653")
	ColorAccent  = lipgloss.Color("#3AA99F")
	ColorGreen   = lipgloss.Color("#879A39")
	ColorOrange  = lipgloss.Color("#DA702C")
	ColorRed     = lipgloss.Color("#D14D41")
	ColorCyan    = lipgloss.Color("#24837B")
	ColorPurple  = lipgloss.Color("#8B7EC8")
	ColorYellow  = lipgloss.Color("#D0A215")
)

// Styles
var (
	DimStyle    = lipgloss.NewStyle().Foreground(ColorTextDim)
	PathStyle   = lipgloss.NewStyle().Foreground(ColorCyan)
	BranchStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	WorktreeStyle = lipgloss.NewStyle().Foreground(ColorPurple)
	ModelStyle  = lipgloss.NewStyle().Foreground(ColorOrange)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorTextDim)

	FailStyle    = lipgloss.NewStyle().Foreground(ColorRed)
	PendingStyle = lipgloss.NewStyle().Foreground(ColorYellow)
	PassStyle    = lipgloss.NewStyle().Foreground(ColorGreen)
)

// PercentStyle returns the style for a context percentage string, using
// the escalating thresholds from the display design: red at >=90, orange
// at >=70, yellow at >=50, dim below.
func PercentStyle(pct string) lipgloss.Style {
	v, err := strconv.ParseFloat(pct, 64)
	if err != nil {
		v = 0
	}
	switch {
	case v >= 90:
		return FailStyle
	case v >= 70:
		return lipgloss.NewStyle().Foreground(ColorOrange)
	case v >= 50:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return DimStyle
	}
}

// CostStyle returns the style for a cost value: green below $0.10,
// yellow below $1.00, red above.
func CostStyle(cost float64) lipgloss.Style {
	switch {
	case cost < 0.10:
		return PassStyle
	case cost < 1.00:
		return PendingStyle
	default:
		return FailStyle
	}
}
