package analyzer

import (
	"math"
	"testing"
	"time"

	"github.com/blackwell-systems/chargewatch/internal/session"
)

// ms returns a local timestamp in epoch milliseconds.
func ms(year int, month time.Month, day, hour int) int64 {
	return time.Date(year, month, day, hour, 0, 0, 0, time.Local).UnixMilli()
}

func classified(startMs int64, cat session.Category) session.Classified {
	return session.Classified{
		Record:   session.Record{StartTimeMs: startMs},
		Category: cat,
	}
}

func TestAnalyzeDailyBuckets(t *testing.T) {
	sessions := []session.Classified{
		classified(ms(2026, time.August, 2, 9), session.CategoryEmpty),
		classified(ms(2026, time.August, 1, 10), session.CategoryNormal),
		classified(ms(2026, time.August, 1, 14), session.CategoryEmpty),
		classified(ms(2026, time.August, 1, 22), session.CategoryMicro),
		classified(ms(2026, time.August, 2, 18), session.CategoryNormal),
	}

	buckets := AnalyzeDaily(sessions)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}

	// Ascending dates regardless of input order.
	if !buckets[0].Date.Before(buckets[1].Date) {
		t.Errorf("buckets not ascending: %v then %v", buckets[0].Date, buckets[1].Date)
	}

	day1 := buckets[0]
	if day1.Total != 3 || day1.EmptyCount != 1 || day1.MicroCount != 1 {
		t.Errorf("day1 counts: total=%d empty=%d micro=%d", day1.Total, day1.EmptyCount, day1.MicroCount)
	}
	if math.Abs(day1.EmptyPct-33.333) > 0.01 {
		t.Errorf("day1 empty pct = %v", day1.EmptyPct)
	}

	day2 := buckets[1]
	if day2.Total != 2 || day2.EmptyCount != 1 {
		t.Errorf("day2 counts: total=%d empty=%d", day2.Total, day2.EmptyCount)
	}
	if day2.EmptyPct != 50 {
		t.Errorf("day2 empty pct = %v", day2.EmptyPct)
	}
}

func TestAnalyzeDailyPercentagesRecompute(t *testing.T) {
	sessions := []session.Classified{
		classified(ms(2026, time.July, 15, 8), session.CategoryEmpty),
		classified(ms(2026, time.July, 15, 9), session.CategoryEmpty),
		classified(ms(2026, time.July, 15, 10), session.CategoryNormal),
	}

	for _, b := range AnalyzeDaily(sessions) {
		recomputed := float64(b.EmptyCount) / float64(b.Total) * 100
		if b.EmptyPct != recomputed {
			t.Errorf("stored pct %v != recomputed %v", b.EmptyPct, recomputed)
		}
	}
}

func TestAnalyzeDailyNoEmptyDays(t *testing.T) {
	buckets := AnalyzeDaily(nil)
	if len(buckets) != 0 {
		t.Errorf("expected no buckets for no sessions, got %d", len(buckets))
	}
}

func TestDayOfTruncation(t *testing.T) {
	late := time.Date(2026, time.August, 3, 23, 59, 59, 0, time.Local)
	early := time.Date(2026, time.August, 3, 0, 0, 1, 0, time.Local)

	if DayOf(late.UnixMilli()) != DayOf(early.UnixMilli()) {
		t.Error("same calendar day truncated to different dates")
	}
	got := DayOf(late.UnixMilli())
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("not truncated to midnight: %v", got)
	}
}
