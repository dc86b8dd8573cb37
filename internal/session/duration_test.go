package session

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0.0s"},
		{45, "45.0s"},
		{59.9, "59.9s"},
		{60, "1.0m"},
		{125, "2.1m"},
		{3599, "60.0m"},
		{3600, "1.0h"},
		{7500, "2.1h"},
		{-10, "0.0s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestRecordDurationSeconds(t *testing.T) {
	tests := []struct {
		name  string
		start int64
		end   int64
		want  float64
	}{
		{"one minute", 0, 60_000, 60},
		{"negative span is zero", 60_000, 0, 0},
		{"equal timestamps", 1000, 1000, 0},
	}
	for _, tt := range tests {
		rec := Record{StartTimeMs: tt.start, EndTimeMs: tt.end}
		if got := rec.DurationSeconds(); got != tt.want {
			t.Errorf("%s: DurationSeconds() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
