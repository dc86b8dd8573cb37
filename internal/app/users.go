package app

import (
	"encoding/json"
	"errors"
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
	usersQuery     queryFlags
	usersFlagUser  string
	usersFlagAll   bool
	usersFlagSort  string
	usersThreshold float64
	usersCSV       bool
	usersPDF       bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Per-user session grouping (including unclaimed)",
	Long: `Group charging sessions by user. Sessions without an authenticated
user land in the unclaimed group, which is always shown and always last.

Examples:
  chargewatch users --range week
  chargewatch users --user alice@example.com
  chargewatch users --all --sort energy --pdf`,
	RunE: runUsers,
}

func init() {
	usersQuery.register(usersCmd)
	usersCmd.Flags().StringVar(&usersFlagUser, "user", "", "Show only this user's sessions")
	usersCmd.Flags().BoolVar(&usersFlagAll, "all", false, "Show every user group (default when --user is absent)")
	usersCmd.Flags().StringVar(&usersFlagSort, "sort", "", "Sort sessions within each group: start or energy")
	usersCmd.Flags().Float64Var(&usersThreshold, "threshold", 0, "Microsession threshold in kWh (optional)")
	usersCmd.Flags().BoolVar(&usersCSV, "csv", false, "Export grouped sessions to CSV")
	usersCmd.Flags().BoolVar(&usersPDF, "pdf", false, "Export grouped sessions to PDF")
	rootCmd.AddCommand(usersCmd)
}

// usersOutput is the JSON-serializable output for the users command.
type usersOutput struct {
	TotalRaw   int                  `json:"total_raw"`
	Filtered   int                  `json:"filtered"`
	Malformed  int                  `json:"malformed"`
	Groups     []analyzer.UserGroup `json:"groups"`
	ExportFile string               `json:"export_file,omitempty"`
}

func runUsers(cmd *cobra.Command, args []string) error {
	if usersCSV && usersPDF {
		return fmt.Errorf("--csv and --pdf are mutually exclusive; pick one export format")
	}
	if usersFlagUser != "" && usersFlagAll {
		return fmt.Errorf("--user and --all are mutually exclusive")
	}

	sortBy := analyzer.GroupSort(usersFlagSort)
	switch sortBy {
	case analyzer.SortNone, analyzer.SortStart, analyzer.SortEnergy:
	default:
		return fmt.Errorf("unknown --sort %q (use start or energy)", usersFlagSort)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor(cfg)

	q, err := usersQuery.resolve(cfg, time.Now())
	if err != nil {
		return err
	}

	payload, err := usersQuery.loadPayload(cmd.Context(), cfg, q)
	if err != nil {
		return err
	}

	normalized, classified := pipeline(payload, cfg.ClassifyOptions(usersThreshold))
	groups := analyzer.GroupByUser(classified, sortBy)

	// Single-user filter. An unknown user is reported, not fatal: the
	// known keys are the remediation.
	if usersFlagUser != "" {
		group, findErr := analyzer.FindGroup(groups, usersFlagUser)
		if findErr != nil {
			var notFound *analyzer.UserNotFoundError
			if errors.As(findErr, &notFound) {
				renderUserNotFound(notFound)
				return nil
			}
			return findErr
		}
		groups = []analyzer.UserGroup{*group}
	}

	out := usersOutput{
		TotalRaw:  normalized.TotalRaw,
		Filtered:  len(normalized.Records),
		Malformed: normalized.Malformed,
		Groups:    groups,
	}

	if usersCSV || usersPDF {
		path, exportErr := exportGroups(cfg, groups)
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
	for _, g := range groups {
		renderUserGroup(g)
	}
	if out.ExportFile != "" {
		fmt.Printf("\n Exported to %s\n", output.StyleBold.Render(out.ExportFile))
	}

	return nil
}

// renderUserNotFound reports an unmatched --user filter with the known
// group keys.
func renderUserNotFound(e *analyzer.UserNotFoundError) {
	fmt.Printf("\n %s %s\n",
		output.StyleError.Render("User not found:"),
		output.StyleBold.Render(e.User))

	if len(e.Known) == 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render("No users in result set"))
		return
	}

	fmt.Printf(" %s\n", output.StyleMuted.Render("Known users:"))
	for _, key := range e.Known {
		fmt.Printf("   - %s\n", key)
	}
}

func renderUserGroup(g analyzer.UserGroup) {
	title := g.Key
	if g.Unclaimed() {
		title = export.UnclaimedLabel
	}
	fmt.Println(output.Section(title))

	if g.Total == 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render("No sessions"))
		return
	}

	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Sessions"),
		output.StyleValue.Render(fmt.Sprintf("%d", g.Total)),
		output.StyleMuted.Render(fmt.Sprintf("%.3f kWh total", g.TotalEnergyKWh)))
	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Empty"),
		output.StyleValue.Render(fmt.Sprintf("%d", g.EmptyCount)),
		output.PercentBar(g.EmptyPct, 20))
	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Normal"),
		output.StyleValue.Render(fmt.Sprintf("%d", g.NormalCount)),
		output.StyleMuted.Render(fmt.Sprintf("(%.1f%%)", g.NormalPct)))

	tbl := output.NewTable("Date", "Session", "Energy (kWh)", "Duration", "Class").AlignRight(2)
	for _, c := range g.Sessions {
		tbl.AddRow(
			time.UnixMilli(c.StartTimeMs).Local().Format("Jan 02 15:04"),
			c.SessionID,
			fmt.Sprintf("%.3f", c.EnergyKWh),
			session.FormatDuration(c.DurationSeconds()),
			c.Label(),
		)
	}
	fmt.Println()
	tbl.Print()
}

// exportGroups writes the grouped sessions to the requested format.
func exportGroups(cfg *config.Config, groups []analyzer.UserGroup) (string, error) {
	rows := export.GroupRows(groups)

	if usersCSV {
		path := export.Filename(cfg.ExportDir, "users", "csv", time.Now())
		return path, export.WriteCSV(path, rows)
	}
	path := export.Filename(cfg.ExportDir, "users", "pdf", time.Now())
	return path, export.WritePDF(path, "Charging Sessions by User", rows)
}
