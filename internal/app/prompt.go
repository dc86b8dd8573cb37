package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// prompter reads interactive answers line by line. Commands construct one
// over stdin only when running at a terminal without --no-prompt.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// readLine returns the next trimmed input line; EOF yields "".
func (p *prompter) readLine() string {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// stringVal prompts for a string, returning def on empty input.
func (p *prompter) stringVal(label, def string) string {
	fmt.Fprintf(p.out, "%s (default: %s): ", label, def)
	if answer := p.readLine(); answer != "" {
		return answer
	}
	return def
}

// boolVal prompts for true/false, returning def on empty or unrecognized
// input.
func (p *prompter) boolVal(label string, def bool) bool {
	fmt.Fprintf(p.out, "%s (true/false, default: %t): ", label, def)
	switch strings.ToLower(p.readLine()) {
	case "true", "t", "yes", "y":
		return true
	case "false", "f", "no", "n":
		return false
	default:
		return def
	}
}

// intVal prompts for an integer, returning def on empty or invalid input.
func (p *prompter) intVal(label string, def int) int {
	fmt.Fprintf(p.out, "%s (default: %d): ", label, def)
	answer := p.readLine()
	if answer == "" {
		return def
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintf(p.out, "Not a number, using %d\n", def)
		return def
	}
	return n
}

// threshold prompts for the microsession threshold until a valid positive
// value is entered. Exhausted input (EOF) is an error so a broken pipe
// cannot loop forever.
func (p *prompter) threshold() (float64, error) {
	for {
		fmt.Fprint(p.out, "Enter microsession threshold (kWh, e.g., 1.0): ")
		line, err := p.in.ReadString('\n')
		answer := strings.TrimSpace(line)
		if err != nil && answer == "" {
			return 0, fmt.Errorf("no threshold provided")
		}

		value, parseErr := ParseThreshold(answer)
		if parseErr != nil {
			fmt.Fprintln(p.out, parseErr.Error())
			if err != nil {
				return 0, fmt.Errorf("no valid threshold provided")
			}
			continue
		}
		return value, nil
	}
}

// ParseThreshold validates a microsession threshold: it must parse as a
// number and be strictly positive. Invalid input is an error, never a
// silent zero.
func ParseThreshold(s string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("please enter a valid number")
	}
	if value <= 0 {
		return 0, fmt.Errorf("threshold must be greater than 0")
	}
	return value, nil
}

// dateRange prompts for one of the preset ranges or a custom pair of
// dates, returning the inclusive bounds.
func (p *prompter) dateRange(now time.Time) (time.Time, time.Time, error) {
	fmt.Fprintln(p.out, "\nDate range options:")
	fmt.Fprintln(p.out, "1. Today")
	fmt.Fprintln(p.out, "2. Last week")
	fmt.Fprintln(p.out, "3. Last month")
	fmt.Fprintln(p.out, "4. Custom (enter dates manually)")
	fmt.Fprint(p.out, "Choose date range (1-4, default: 1): ")

	switch p.readLine() {
	case "", "1":
		return rangeBounds("today", now)
	case "2":
		return rangeBounds("week", now)
	case "3":
		return rangeBounds("month", now)
	case "4":
		fmt.Fprint(p.out, "Enter start date (YYYY-MM-DD): ")
		from, err := time.ParseInLocation("2006-01-02", p.readLine(), now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
		}
		fmt.Fprint(p.out, "Enter end date (YYYY-MM-DD): ")
		to, err := time.ParseInLocation("2006-01-02", p.readLine(), now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
		}
		return from, to, nil
	default:
		return rangeBounds("today", now)
	}
}

// rangeBounds resolves a named preset range to [from, to].
func rangeBounds(name string, now time.Time) (time.Time, time.Time, error) {
	switch name {
	case "today", "":
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return midnight, now, nil
	case "week":
		return now.AddDate(0, 0, -7), now, nil
	case "month":
		return now.AddDate(0, 0, -30), now, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown date range %q (use today, week, month, or custom)", name)
	}
}
