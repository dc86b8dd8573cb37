// Package analyzer computes daily and per-user aggregates over classified
// charging sessions. Every function here is pure: it folds a slice of
// sessions into a result struct and touches nothing else.
package analyzer

import (
	"time"

	"github.com/blackwell-systems/chargewatch/internal/session"
)

// DailyBucket holds per-calendar-day session counts and the percentages
// derived from them.
type DailyBucket struct {
	Date       time.Time `json:"date"`
	Total      int       `json:"total"`
	EmptyCount int       `json:"empty_count"`
	MicroCount int       `json:"micro_count"`
	EmptyPct   float64   `json:"empty_pct"`
	MicroPct   float64   `json:"micro_pct"`
}

// UserGroup holds one user's sessions (input order preserved) and the
// counts derived from them. The unclaimed pseudo-user uses
// session.Unclaimed as its key.
type UserGroup struct {
	Key            string               `json:"user"`
	Sessions       []session.Classified `json:"sessions"`
	Total          int                  `json:"total"`
	EmptyCount     int                  `json:"empty_count"`
	MicroCount     int                  `json:"micro_count"`
	NormalCount    int                  `json:"normal_count"`
	EmptyPct       float64              `json:"empty_pct"`
	NormalPct      float64              `json:"normal_pct"`
	TotalEnergyKWh float64              `json:"total_energy_kwh"`
}

// Unclaimed reports whether this is the unclaimed pseudo-user group.
func (g UserGroup) Unclaimed() bool {
	return g.Key == session.Unclaimed
}

// Summary is the combined empty/micro breakdown over a whole result set.
// All percentages are computed from the raw counts in one place so the
// numbers always reconcile (combined is never the sum of two
// independently-rounded percentages).
type Summary struct {
	Total         int     `json:"total"`
	EmptyCount    int     `json:"empty_count"`
	MicroCount    int     `json:"micro_count"`
	CombinedCount int     `json:"combined_count"`
	NormalCount   int     `json:"normal_count"`
	EmptyPct      float64 `json:"empty_pct"`
	MicroPct      float64 `json:"micro_pct"`
	CombinedPct   float64 `json:"combined_pct"`
	NormalPct     float64 `json:"normal_pct"`
	ThresholdKWh  float64 `json:"threshold_kwh,omitempty"`
}

// pct returns count/total as a percentage, 0 when total is 0.
func pct(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
