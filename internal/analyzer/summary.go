package analyzer

import "github.com/blackwell-systems/chargewatch/internal/session"

// Summarize folds classified sessions into the combined empty/micro
// summary. Counts partition exactly: empty + micro + normal == total.
func Summarize(sessions []session.Classified, thresholdKWh float64) Summary {
	s := Summary{
		Total:        len(sessions),
		ThresholdKWh: thresholdKWh,
	}

	for _, c := range sessions {
		switch c.Category {
		case session.CategoryEmpty:
			s.EmptyCount++
		case session.CategoryMicro:
			s.MicroCount++
		default:
			s.NormalCount++
		}
	}

	s.CombinedCount = s.EmptyCount + s.MicroCount
	s.EmptyPct = pct(s.EmptyCount, s.Total)
	s.MicroPct = pct(s.MicroCount, s.Total)
	s.CombinedPct = pct(s.CombinedCount, s.Total)
	s.NormalPct = pct(s.NormalCount, s.Total)

	return s
}
