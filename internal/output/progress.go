package output

import (
	"fmt"
	"strings"
)

// PercentBar renders a visual bar for a 0-100 percentage of problem
// sessions. Example: "███░░░░░░░ 28.6%"
// Higher percentages are worse here (empty/micro share), so the color
// scale runs green → yellow → red as the value climbs.
func PercentBar(percent float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((percent / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(string) string
	switch {
	case percent >= 50:
		style = func(s string) string { return StyleError.Render(s) }
	case percent >= 20:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleSuccess.Render(s) }
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%.1f%%", percent)))
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
