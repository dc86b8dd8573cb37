package app

import (
	"testing"
	"time"
)

func TestResolveRangePresets(t *testing.T) {
	now := time.Date(2026, time.August, 23, 10, 0, 0, 0, time.Local)

	f := queryFlags{rangeName: "today"}
	from, to, err := f.resolveRange(now)
	if err != nil {
		t.Fatal(err)
	}
	if from.Hour() != 0 || from.Day() != 23 {
		t.Errorf("today should start at local midnight, got %v", from)
	}
	if !to.Equal(now) {
		t.Errorf("today should end now, got %v", to)
	}

	f = queryFlags{rangeName: "month"}
	from, _, err = f.resolveRange(now)
	if err != nil {
		t.Fatal(err)
	}
	if want := now.AddDate(0, 0, -30); !from.Equal(want) {
		t.Errorf("month start = %v, want %v", from, want)
	}
}

func TestResolveRangeCustom(t *testing.T) {
	now := time.Date(2026, time.August, 23, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		flags   queryFlags
		wantErr bool
	}{
		{"explicit custom", queryFlags{rangeName: "custom", from: "2026-08-01", to: "2026-08-15"}, false},
		{"from and to imply custom", queryFlags{rangeName: "today", from: "2026-08-01", to: "2026-08-15"}, false},
		{"missing to", queryFlags{rangeName: "custom", from: "2026-08-01"}, true},
		{"missing from", queryFlags{rangeName: "custom", to: "2026-08-15"}, true},
		{"to before from", queryFlags{rangeName: "custom", from: "2026-08-15", to: "2026-08-01"}, true},
		{"bad from date", queryFlags{rangeName: "custom", from: "08/01/2026", to: "2026-08-15"}, true},
		{"unknown preset", queryFlags{rangeName: "fortnight"}, true},
	}
	for _, tt := range tests {
		from, to, err := tt.flags.resolveRange(now)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: resolveRange error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr {
			if from.Day() != 1 || to.Day() != 15 {
				t.Errorf("%s: range = %v .. %v", tt.name, from, to)
			}
		}
	}
}
