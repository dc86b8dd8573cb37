package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/chargewatch/internal/analyzer"
	"github.com/blackwell-systems/chargewatch/internal/config"
	"github.com/blackwell-systems/chargewatch/internal/export"
	"github.com/blackwell-systems/chargewatch/internal/output"
	"github.com/blackwell-systems/chargewatch/internal/session"
)

var (
	analyzeQuery         queryFlags
	analyzeEmpty         bool
	analyzeMicro         bool
	analyzeThreshold     float64
	analyzeGraph         bool
	analyzeCSV           bool
	analyzePDF           bool
	analyzePrintSessions bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Empty/microsession analysis with daily breakdown",
	Long: `Fetch charging sessions and analyze empty sessions (0 kWh delivered),
microsessions (0 < kWh < threshold), or both. Results include per-day
counts and percentages, optional line charts, and CSV/PDF export.

Examples:
  chargewatch analyze --empty --range week
  chargewatch analyze --micro --threshold 1.0 --graph
  chargewatch analyze --empty --micro --threshold 0.5 --csv
  chargewatch analyze --empty --input payload.json --no-prompt`,
	RunE: runAnalyze,
}

func init() {
	analyzeQuery.register(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeEmpty, "empty", false, "Analyze empty sessions (0 kWh)")
	analyzeCmd.Flags().BoolVar(&analyzeMicro, "micro", false, "Analyze microsessions (0 < kWh < threshold)")
	analyzeCmd.Flags().Float64Var(&analyzeThreshold, "threshold", 0, "Microsession threshold in kWh (prompted if omitted)")
	analyzeCmd.Flags().BoolVar(&analyzeGraph, "graph", false, "Render daily percentage line charts")
	analyzeCmd.Flags().BoolVar(&analyzeCSV, "csv", false, "Export matching sessions to CSV")
	analyzeCmd.Flags().BoolVar(&analyzePDF, "pdf", false, "Export matching sessions to PDF")
	analyzeCmd.Flags().BoolVar(&analyzePrintSessions, "print-sessions", false, "Print matching session details")
	rootCmd.AddCommand(analyzeCmd)
}

// analyzeModes captures the analysis/output mode selection for
// precondition checks.
type analyzeModes struct {
	empty, micro    bool
	graph, csv, pdf bool
}

// validateAnalyzeModes enforces the mode preconditions before any fetch:
// an analysis must be selected, and chart/export modes must not conflict.
func validateAnalyzeModes(m analyzeModes) error {
	if !m.empty && !m.micro {
		return fmt.Errorf("select at least one analysis: --empty and/or --micro")
	}
	if m.csv && m.pdf {
		return fmt.Errorf("--csv and --pdf are mutually exclusive; pick one export format")
	}
	if m.graph && (m.csv || m.pdf) {
		return fmt.Errorf("--graph cannot be combined with --csv or --pdf")
	}
	return nil
}

// analyzeOutput is the JSON-serializable output for the analyze command.
type analyzeOutput struct {
	ThresholdKWh float64                `json:"threshold_kwh,omitempty"`
	TotalRaw     int                    `json:"total_raw"`
	Filtered     int                    `json:"filtered"`
	Malformed    int                    `json:"malformed"`
	Summary      analyzer.Summary       `json:"summary"`
	Daily        []analyzer.DailyBucket `json:"daily"`
	ExportFile   string                 `json:"export_file,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := validateAnalyzeModes(analyzeModes{
		empty: analyzeEmpty,
		micro: analyzeMicro,
		graph: analyzeGraph,
		csv:   analyzeCSV,
		pdf:   analyzePDF,
	}); err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor(cfg)

	// The microsession threshold must be positive before anything runs.
	threshold := analyzeThreshold
	if analyzeMicro {
		switch {
		case threshold > 0:
		case analyzeQuery.interactive():
			p := newPrompter(os.Stdin, os.Stdout)
			if threshold, err = p.threshold(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("--micro requires a positive --threshold (kWh)")
		}
	}

	q, err := analyzeQuery.resolve(cfg, time.Now())
	if err != nil {
		return err
	}

	payload, err := analyzeQuery.loadPayload(cmd.Context(), cfg, q)
	if err != nil {
		return err
	}

	microForClassify := 0.0
	if analyzeMicro {
		microForClassify = threshold
	}
	normalized, classified := pipeline(payload, cfg.ClassifyOptions(microForClassify))

	summary := analyzer.Summarize(classified, microForClassify)
	daily := analyzer.AnalyzeDaily(classified)

	out := analyzeOutput{
		ThresholdKWh: microForClassify,
		TotalRaw:     normalized.TotalRaw,
		Filtered:     len(normalized.Records),
		Malformed:    normalized.Malformed,
		Summary:      summary,
		Daily:        daily,
	}

	// Exports run before rendering so the filename can be reported.
	if analyzeCSV || analyzePDF {
		path, exportErr := exportAnalysis(cfg, classified)
		if exportErr != nil {
			return exportErr
		}
		out.ExportFile = path
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	renderFilteredCount(normalized)

	if analyzeEmpty {
		renderEmptyAnalysis(summary, daily, cfg)
	}
	if analyzeMicro {
		renderMicroAnalysis(summary, daily, threshold, cfg)
	}
	if analyzeEmpty && analyzeMicro {
		renderCombinedSummary(summary, threshold)
	}
	if analyzePrintSessions {
		renderMatchingSessions(classified)
	}
	if out.ExportFile != "" {
		fmt.Printf("\n Exported to %s\n", output.StyleBold.Render(out.ExportFile))
	}

	return nil
}

// setupColor applies the color preferences: config default, --no-color
// override, and TTY auto-detection.
func setupColor(cfg *config.Config) {
	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
		return
	}
	output.AutoColor()
}

// analysisMatches filters classified sessions to those the selected
// analyses target (empty and/or micro).
func analysisMatches(classified []session.Classified) []session.Classified {
	var matches []session.Classified
	for _, c := range classified {
		if (analyzeEmpty && c.Category == session.CategoryEmpty) ||
			(analyzeMicro && c.Category == session.CategoryMicro) {
			matches = append(matches, c)
		}
	}
	return matches
}

// exportAnalysis writes the matching sessions to the requested format.
func exportAnalysis(cfg *config.Config, classified []session.Classified) (string, error) {
	rows := export.FlatRows(analysisMatches(classified))

	if analyzeCSV {
		path := export.Filename(cfg.ExportDir, "analyze", "csv", time.Now())
		return path, export.WriteCSV(path, rows)
	}
	path := export.Filename(cfg.ExportDir, "analyze", "pdf", time.Now())
	return path, export.WritePDF(path, "Charging Session Analysis", rows)
}

func renderFilteredCount(normalized session.NormalizeResult) {
	fmt.Printf("\n %s %s\n",
		output.StyleLabel.Render("Sessions returned"),
		output.StyleValue.Render(fmt.Sprintf("%d", len(normalized.Records))))
	if normalized.Malformed > 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf(
			"(filtered from %d; %d malformed rows skipped)",
			normalized.TotalRaw, normalized.Malformed)))
	}
}

func renderEmptyAnalysis(s analyzer.Summary, daily []analyzer.DailyBucket, cfg *config.Config) {
	fmt.Println(output.Section("Empty Sessions (0 kWh)"))

	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Empty sessions"),
		output.StyleValue.Render(fmt.Sprintf("%d", s.EmptyCount)),
		output.PercentBar(s.EmptyPct, 20))

	renderDailyBreakdown(daily, func(b analyzer.DailyBucket) (int, float64) {
		return b.EmptyCount, b.EmptyPct
	}, "empty")

	if analyzeGraph {
		renderDailyChart(daily, func(b analyzer.DailyBucket) float64 { return b.EmptyPct },
			"Daily empty session percentage", cfg)
	}
	fmt.Println()
}

func renderMicroAnalysis(s analyzer.Summary, daily []analyzer.DailyBucket, threshold float64, cfg *config.Config) {
	fmt.Println(output.Section(fmt.Sprintf("Microsessions (0 < kWh < %g)", threshold)))

	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Microsessions"),
		output.StyleValue.Render(fmt.Sprintf("%d", s.MicroCount)),
		output.PercentBar(s.MicroPct, 20))

	renderDailyBreakdown(daily, func(b analyzer.DailyBucket) (int, float64) {
		return b.MicroCount, b.MicroPct
	}, "micro")

	if analyzeGraph {
		renderDailyChart(daily, func(b analyzer.DailyBucket) float64 { return b.MicroPct },
			fmt.Sprintf("Daily microsession percentage (< %g kWh)", threshold), cfg)
	}
	fmt.Println()
}

// renderDailyBreakdown prints one line per observed day.
func renderDailyBreakdown(daily []analyzer.DailyBucket, pick func(analyzer.DailyBucket) (int, float64), kind string) {
	if len(daily) == 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render("No sessions in range"))
		return
	}

	fmt.Printf("\n %s\n", output.StyleMuted.Render("Daily breakdown:"))
	for _, b := range daily {
		count, percent := pick(b)
		fmt.Printf(" - %s: %d %s / %d total (%.1f%%)\n",
			b.Date.Format("2006-01-02"), count, kind, b.Total, percent)
	}
}

func renderDailyChart(daily []analyzer.DailyBucket, pick func(analyzer.DailyBucket) float64, caption string, cfg *config.Config) {
	dates := make([]time.Time, 0, len(daily))
	values := make([]float64, 0, len(daily))
	for _, b := range daily {
		dates = append(dates, b.Date)
		values = append(values, pick(b))
	}

	fmt.Println()
	fmt.Println(output.DailyChart(dates, values, cfg.Output.Width-10, cfg.Output.ChartHeight, caption))
}

func renderCombinedSummary(s analyzer.Summary, threshold float64) {
	fmt.Println(output.Section("Combined Summary"))

	line := func(label string, count int, percent float64) {
		fmt.Printf(" %s %s %s\n",
			output.StyleLabel.Render(label),
			output.StyleValue.Render(fmt.Sprintf("%d", count)),
			output.StyleMuted.Render(fmt.Sprintf("(%.1f%%)", percent)))
	}

	line("Total analyzed", s.Total, 100)
	line("Empty (0 kWh)", s.EmptyCount, s.EmptyPct)
	line(fmt.Sprintf("Micro (< %g kWh)", threshold), s.MicroCount, s.MicroPct)
	line("Combined", s.CombinedCount, s.CombinedPct)
	line("Normal", s.NormalCount, s.NormalPct)
	fmt.Println()
}

// renderMatchingSessions prints a detail line per matching session.
func renderMatchingSessions(classified []session.Classified) {
	matches := analysisMatches(classified)

	fmt.Println(output.Section(fmt.Sprintf("Session Details (%d sessions)", len(matches))))
	if len(matches) == 0 {
		fmt.Printf(" %s\n\n", output.StyleMuted.Render("No matching sessions"))
		return
	}

	for _, c := range matches {
		renderSessionLine(c)
	}
	fmt.Println()
}

// renderSessionLine prints one session with its classification label and
// formatted duration.
func renderSessionLine(c session.Classified) {
	label := c.Label()
	switch c.Category {
	case session.CategoryEmpty:
		label = output.StyleError.Render(label)
	case session.CategoryMicro:
		label = output.StyleWarning.Render(label)
	default:
		label = output.StyleSuccess.Render(label)
	}

	id := c.SessionID
	if id == "" {
		id = "(no id)"
	}

	fmt.Printf(" %s  %s  %7.3f kWh  %8s  %s\n",
		time.UnixMilli(c.StartTimeMs).Local().Format("2006-01-02 15:04"),
		label,
		c.EnergyKWh,
		session.FormatDuration(c.DurationSeconds()),
		output.StyleMuted.Render(id))
}
