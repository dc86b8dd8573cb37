package app

import (
	"io"
	"strings"
	"testing"
	"time"
)

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"1.0", 1.0, false},
		{"0.25", 0.25, false},
		{" 2 ", 2, false},
		{"0", 0, true},
		{"-1.5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseThreshold(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseThreshold(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseThreshold(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPrompterThresholdRetries(t *testing.T) {
	// Two invalid answers, then a valid one.
	p := newPrompter(strings.NewReader("abc\n-2\n1.5\n"), io.Discard)

	got, err := p.threshold()
	if err != nil {
		t.Fatalf("threshold() error: %v", err)
	}
	if got != 1.5 {
		t.Errorf("threshold() = %v, want 1.5", got)
	}
}

func TestPrompterThresholdEOF(t *testing.T) {
	p := newPrompter(strings.NewReader("nope\n"), io.Discard)
	if _, err := p.threshold(); err == nil {
		t.Error("expected error when input runs out without a valid threshold")
	}
}

func TestPrompterDefaults(t *testing.T) {
	p := newPrompter(strings.NewReader("\n\n\n"), io.Discard)

	if got := p.stringVal("ACN", "0021"); got != "0021" {
		t.Errorf("empty input should take default, got %q", got)
	}
	if got := p.boolVal("Anonymize?", false); got {
		t.Error("empty input should take bool default false")
	}
	if got := p.intVal("Limit", 25); got != 25 {
		t.Errorf("empty input should take int default, got %d", got)
	}
}

func TestPrompterOverrides(t *testing.T) {
	p := newPrompter(strings.NewReader("0042\ntrue\n100\n"), io.Discard)

	if got := p.stringVal("ACN", "0021"); got != "0042" {
		t.Errorf("stringVal = %q", got)
	}
	if got := p.boolVal("Anonymize?", false); !got {
		t.Error("boolVal should parse true")
	}
	if got := p.intVal("Limit", 25); got != 100 {
		t.Errorf("intVal = %d", got)
	}
}

func TestRangeBounds(t *testing.T) {
	now := time.Date(2026, time.August, 23, 14, 30, 0, 0, time.Local)

	from, to, err := rangeBounds("today", now)
	if err != nil {
		t.Fatal(err)
	}
	if from.Hour() != 0 || from.Day() != 23 {
		t.Errorf("today range should start at local midnight, got %v", from)
	}
	if !to.Equal(now) {
		t.Errorf("today range should end now, got %v", to)
	}

	from, _, err = rangeBounds("week", now)
	if err != nil {
		t.Fatal(err)
	}
	if now.Sub(from) != 7*24*time.Hour {
		t.Errorf("week range start = %v", from)
	}

	if _, _, err := rangeBounds("fortnight", now); err == nil {
		t.Error("unknown range name should error")
	}
}

func TestPrompterDateRangeCustom(t *testing.T) {
	now := time.Date(2026, time.August, 23, 14, 30, 0, 0, time.Local)
	p := newPrompter(strings.NewReader("4\n2026-08-01\n2026-08-15\n"), io.Discard)

	from, to, err := p.dateRange(now)
	if err != nil {
		t.Fatal(err)
	}
	if from.Day() != 1 || to.Day() != 15 {
		t.Errorf("custom range = %v .. %v", from, to)
	}
}
