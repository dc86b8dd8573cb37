package session

import "fmt"

// FormatDuration renders a session length for display: seconds under a
// minute, minutes under an hour, hours otherwise, all with one decimal.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1fs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1fm", seconds/60)
	default:
		return fmt.Sprintf("%.1fh", seconds/3600)
	}
}
