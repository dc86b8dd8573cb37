package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// csvHeader is the column order for CSV exports.
var csvHeader = []string{
	"group", "session_id", "user", "site", "date",
	"duration", "energy_kwh", "category", "tier",
}

// WriteCSV writes export rows to a CSV file at path.
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.Group,
			r.SessionID,
			r.User,
			r.Site,
			r.Date,
			r.Duration,
			strconv.FormatFloat(r.EnergyKWh, 'f', 3, 64),
			r.Category,
			r.Tier,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv export: %w", err)
	}
	return f.Close()
}
