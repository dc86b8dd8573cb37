package analyzer

import (
	"sort"
	"time"

	"github.com/blackwell-systems/chargewatch/internal/session"
)

// AnalyzeDaily buckets classified sessions by the local calendar day of
// their start time and computes per-day counts and percentages. Only days
// with at least one session appear, sorted ascending for display and
// charting.
func AnalyzeDaily(sessions []session.Classified) []DailyBucket {
	byDay := make(map[time.Time]*DailyBucket)

	for _, s := range sessions {
		day := DayOf(s.StartTimeMs)
		bucket, ok := byDay[day]
		if !ok {
			bucket = &DailyBucket{Date: day}
			byDay[day] = bucket
		}
		bucket.Total++
		switch s.Category {
		case session.CategoryEmpty:
			bucket.EmptyCount++
		case session.CategoryMicro:
			bucket.MicroCount++
		}
	}

	buckets := make([]DailyBucket, 0, len(byDay))
	for _, b := range byDay {
		b.EmptyPct = pct(b.EmptyCount, b.Total)
		b.MicroPct = pct(b.MicroCount, b.Total)
		buckets = append(buckets, *b)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date.Before(buckets[j].Date)
	})

	return buckets
}

// DayOf truncates a millisecond epoch timestamp to local midnight.
func DayOf(ms int64) time.Time {
	t := time.UnixMilli(ms).Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
