package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/chargewatch/internal/config"
	"github.com/blackwell-systems/chargewatch/internal/output"
	"github.com/blackwell-systems/chargewatch/internal/session"
)

var sessionsQuery queryFlags

var sessionsCmd = &cobra.Command{
	Use:   "sessions [session-id]",
	Short: "List raw sessions or inspect one by ID",
	Long: `List the sessions a query returns, or inspect a single session by
full ID or unique prefix. With --json the raw API rows are printed
unmodified, matching what the API delivered.

Examples:
  chargewatch sessions --range week
  chargewatch sessions --json > sessions.json
  chargewatch sessions 5f3a91`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessions,
}

func init() {
	sessionsQuery.register(sessionsCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor(cfg)

	q, err := sessionsQuery.resolve(cfg, time.Now())
	if err != nil {
		return err
	}

	payload, err := sessionsQuery.loadPayload(cmd.Context(), cfg, q)
	if err != nil {
		return err
	}

	normalized, classified := pipeline(payload, cfg.ClassifyOptions(0))

	// Inspect mode: a positional session-id argument was provided.
	if len(args) == 1 {
		return runSessionInspect(args[0], classified)
	}

	// Raw JSON dump preserves the original rows untouched.
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload.Rows)
	}

	renderFilteredCount(normalized)

	if len(classified) == 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render("No sessions in range"))
		return nil
	}

	fmt.Println()
	for _, c := range classified {
		renderSessionLine(c)
	}
	return nil
}

// runSessionInspect finds one session by ID or unique prefix and renders
// a detailed view including the raw payload row.
func runSessionInspect(prefix string, classified []session.Classified) error {
	var matched *session.Classified
	for i := range classified {
		c := &classified[i]
		if c.SessionID == prefix || strings.HasPrefix(c.SessionID, prefix) {
			if matched != nil {
				return fmt.Errorf("ambiguous session prefix %q matches multiple sessions; use more characters", prefix)
			}
			matched = c
		}
	}
	if matched == nil {
		return fmt.Errorf("no session found matching %q", prefix)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matched)
	}

	fmt.Println(output.Section("Session Inspect"))
	fmt.Println()

	label := func(l, v string) {
		fmt.Printf(" %s  %s\n", output.StyleLabel.Render(l), output.StyleBold.Render(v))
	}

	label("Session ID", matched.SessionID)
	user := matched.User
	if !matched.Claimed() {
		user = "(unclaimed)"
	}
	label("User", user)
	if matched.Site != "" {
		label("Site", matched.Site)
	}
	label("Start", time.UnixMilli(matched.StartTimeMs).Local().Format("2006-01-02 15:04:05"))
	label("Duration", session.FormatDuration(matched.DurationSeconds()))
	label("Energy", fmt.Sprintf("%.3f kWh", matched.EnergyKWh))
	label("Classification", matched.Label())
	if matched.Category == session.CategoryNormal {
		label("Avg power", fmt.Sprintf("%.0f W", matched.PowerWatts))
		label("Amperage", fmt.Sprintf("%.1f A", matched.Amperage))
	}

	if len(matched.Raw) > 0 {
		fmt.Println(output.Section("Raw Payload"))
		fmt.Println()
		var pretty map[string]any
		if err := json.Unmarshal(matched.Raw, &pretty); err == nil {
			formatted, _ := json.MarshalIndent(pretty, " ", "  ")
			fmt.Printf(" %s\n", formatted)
		}
	}

	fmt.Println()
	return nil
}
