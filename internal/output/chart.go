package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
)

// chart dimension floors keep tiny date ranges readable.
const (
	minChartWidth  = 20
	minChartHeight = 3
)

// DailyChart renders an ASCII line plot of one daily percentage series.
// Dates and values are parallel slices sorted ascending by date.
func DailyChart(dates []time.Time, values []float64, width, height int, caption string) string {
	if len(values) == 0 {
		return StyleMuted.Render(" No data to chart")
	}
	if width < minChartWidth {
		width = minChartWidth
	}
	if height < minChartHeight {
		height = minChartHeight
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)

	return graph + "\n" + dateAxis(dates, width)
}

// dateAxis renders a first → last date line under a chart.
func dateAxis(dates []time.Time, width int) string {
	if len(dates) == 0 {
		return ""
	}
	first := dates[0].Format("2006-01-02")
	last := dates[len(dates)-1].Format("2006-01-02")
	if first == last {
		return StyleMuted.Render(" " + first)
	}

	gap := width - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	return StyleMuted.Render(fmt.Sprintf(" %s%s%s", first, strings.Repeat(" ", gap), last))
}
