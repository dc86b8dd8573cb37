package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a simple styled table renderer. Columns can be right-aligned
// for numeric data.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
	right   map[int]bool
}

// NewTable creates a new table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
		right:   make(map[int]bool),
	}
}

// AlignRight marks columns (by index) as right-aligned, for counts and
// percentages.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// AddRow adds a row of values to the table. The number of values should
// match the number of headers.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(values) {
			row[i] = values[i]
		}
		if len(row[i]) > t.widths[i] {
			t.widths[i] = len(row[i])
		}
	}
	t.rows = append(t.rows, row)
}

// Render returns the formatted table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	var sb strings.Builder

	// Header row.
	for i, h := range t.headers {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(headerStyle.Render(t.pad(h, i)))
	}
	sb.WriteString("\n")

	// Separator.
	for i, w := range t.widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleMuted.Render(strings.Repeat("─", w)))
	}
	sb.WriteString("\n")

	// Data rows.
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(t.pad(cell, i))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Print writes the table to stdout.
func (t *Table) Print() {
	fmt.Print(t.Render())
}

// pad fits a cell to its column width, honoring the column alignment.
func (t *Table) pad(s string, col int) string {
	width := t.widths[col]
	if len(s) >= width {
		return s
	}
	fill := strings.Repeat(" ", width-len(s))
	if t.right[col] {
		return fill + s
	}
	return s + fill
}
