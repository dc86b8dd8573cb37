package session

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NormalizeResult carries the normalized records along with the raw and
// malformed counts, so callers can report "N sessions (filtered from M)".
type NormalizeResult struct {
	Records   []Record `json:"records"`
	TotalRaw  int      `json:"total_raw"`
	Malformed int      `json:"malformed"`
}

// Normalize extracts uniform Records from raw payload rows. A row that is
// not a JSON object is dropped and counted as malformed; a row with missing
// or oddly-typed fields gets safe defaults instead of failing the batch.
func Normalize(rows []json.RawMessage) NormalizeResult {
	result := NormalizeResult{TotalRaw: len(rows)}

	for _, raw := range rows {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			result.Malformed++
			continue
		}

		rec := Record{
			SessionID:   stringField(fields, "session_id", "id"),
			User:        stringField(fields, "user_email", "user"),
			EnergyKWh:   numberField(fields, "session_kwh", "energy_kwh"),
			StartTimeMs: int64(numberField(fields, "session_start_time", "start_time")),
			EndTimeMs:   int64(numberField(fields, "session_end_time", "end_time")),
			Site:        stringField(fields, "site_name", "site"),
			Raw:         raw,
		}
		if rec.EnergyKWh < 0 {
			rec.EnergyKWh = 0
		}

		result.Records = append(result.Records, rec)
	}

	return result
}

// stringField returns the first present key as a trimmed string, or "".
func stringField(fields map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := fields[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			return strings.TrimSpace(s)
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		}
	}
	return ""
}

// numberField returns the first present key coerced to float64. Charger
// backends are inconsistent about numeric typing, so string-wrapped numbers
// are parsed too. Anything else counts as 0.
func numberField(fields map[string]any, keys ...string) float64 {
	for _, k := range keys {
		v, ok := fields[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f
			}
		}
	}
	return 0
}
