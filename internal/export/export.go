// Package export serializes classified sessions to CSV and PDF files.
// Exports are terminal side effects: they run after aggregation completes
// and never feed back into the pipeline.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/blackwell-systems/chargewatch/internal/analyzer"
	"github.com/blackwell-systems/chargewatch/internal/session"
)

// UnclaimedLabel is the group label used in exports for sessions without
// an authenticated user.
const UnclaimedLabel = "UNCLAIMED SESSIONS"

// Row is one exported session line.
type Row struct {
	Group     string
	SessionID string
	User      string
	Site      string
	Date      string
	Duration  string
	EnergyKWh float64
	Category  string
	Tier      string
}

// rowFrom builds an export row from a classified session.
func rowFrom(c session.Classified, group string) Row {
	user := c.User
	if !c.Claimed() {
		user = UnclaimedLabel
	}
	return Row{
		Group:     group,
		SessionID: c.SessionID,
		User:      user,
		Site:      c.Site,
		Date:      time.UnixMilli(c.StartTimeMs).Local().Format("2006-01-02 15:04"),
		Duration:  session.FormatDuration(c.DurationSeconds()),
		EnergyKWh: c.EnergyKWh,
		Category:  string(c.Category),
		Tier:      string(c.Tier),
	}
}

// FlatRows converts classified sessions to export rows in input order.
func FlatRows(sessions []session.Classified) []Row {
	rows := make([]Row, 0, len(sessions))
	for _, c := range sessions {
		rows = append(rows, rowFrom(c, c.UserKey()))
	}
	return rows
}

// GroupRows flattens user groups to export rows, preserving group order
// and labelling the unclaimed group explicitly. Empty groups contribute
// no rows.
func GroupRows(groups []analyzer.UserGroup) []Row {
	var rows []Row
	for _, g := range groups {
		label := g.Key
		if g.Unclaimed() {
			label = UnclaimedLabel
		}
		for _, c := range g.Sessions {
			rows = append(rows, rowFrom(c, label))
		}
	}
	return rows
}

// Filename derives an export filename from the report kind and a
// timestamp, e.g. chargewatch_users_20260823_153000.csv.
func Filename(dir, kind, ext string, now time.Time) string {
	name := fmt.Sprintf("chargewatch_%s_%s.%s", kind, now.Format("20060102_150405"), ext)
	return filepath.Join(dir, name)
}
