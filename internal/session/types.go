// Package session defines the normalized charging-session record and the
// pure classification rules applied to it.
package session

import "encoding/json"

// Unclaimed is the reserved user key for sessions that were never claimed
// by an authenticated user. Grouping and rendering code must use this
// sentinel instead of threading empty strings around.
const Unclaimed = "unclaimed"

// Category buckets a session by delivered energy.
type Category string

const (
	// CategoryEmpty marks a session that delivered exactly 0 kWh.
	CategoryEmpty Category = "EMPTY"

	// CategoryMicro marks a session that delivered more than zero but less
	// than the configured microsession threshold.
	CategoryMicro Category = "MICRO"

	// CategoryNormal marks every other session.
	CategoryNormal Category = "NORMAL"
)

// Tier is a coarse charging-performance bucket derived from amperage.
type Tier string

const (
	TierHigh Tier = "HIGH"
	TierMed  Tier = "MED"
	TierLow  Tier = "LOW"
)

// Record is a charging session normalized from the raw API payload.
// Numeric fields default to zero and the user to the unclaimed sentinel
// when the source row omits them.
type Record struct {
	SessionID   string  `json:"session_id"`
	User        string  `json:"user"`
	EnergyKWh   float64 `json:"energy_kwh"`
	StartTimeMs int64   `json:"start_time_ms"`
	EndTimeMs   int64   `json:"end_time_ms"`
	Site        string  `json:"site,omitempty"`

	// Raw preserves the original row for printing and export. The core
	// never interprets it.
	Raw json.RawMessage `json:"-"`
}

// Claimed reports whether the session belongs to an authenticated user.
func (r Record) Claimed() bool {
	return r.User != "" && r.User != Unclaimed
}

// UserKey returns the grouping key for the session: the user identity, or
// the unclaimed sentinel.
func (r Record) UserKey() string {
	if !r.Claimed() {
		return Unclaimed
	}
	return r.User
}

// DurationSeconds returns the session length in seconds. A negative span
// (end before start) is treated as zero rather than an error.
func (r Record) DurationSeconds() float64 {
	if r.EndTimeMs <= r.StartTimeMs {
		return 0
	}
	return float64(r.EndTimeMs-r.StartTimeMs) / 1000.0
}

// Classified is a record plus its classification and the intermediate
// values the tier was derived from.
type Classified struct {
	Record
	Category      Category `json:"category"`
	Tier          Tier     `json:"tier"`
	DurationHours float64  `json:"duration_hours"`
	PowerWatts    float64  `json:"power_watts"`
	Amperage      float64  `json:"amperage"`
}

// Label returns the display label for a session line: the category for
// empty and micro sessions, category/tier for normal ones.
func (c Classified) Label() string {
	if c.Category == CategoryNormal {
		return string(c.Category) + "/" + string(c.Tier)
	}
	return string(c.Category)
}
