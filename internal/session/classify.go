package session

// ClassifyOptions carries the caller-supplied classification parameters.
// The zero threshold disables microsession detection entirely.
type ClassifyOptions struct {
	// MicroThresholdKWh is the exclusive upper bound for microsessions.
	// Must be positive to take effect.
	MicroThresholdKWh float64

	// VoltageBasis is the single-phase voltage assumed when deriving
	// amperage from average power. Site-dependent; 208 V by default.
	VoltageBasis float64

	// TierHighAmps and TierMedAmps are the inclusive lower bounds for the
	// HIGH and MED performance tiers.
	TierHighAmps float64
	TierMedAmps  float64
}

// DefaultClassifyOptions returns classification parameters matching a
// 208 V single-phase site.
func DefaultClassifyOptions() ClassifyOptions {
	return ClassifyOptions{
		VoltageBasis: 208,
		TierHighAmps: 16,
		TierMedAmps:  8,
	}
}

// Classify assigns a record its energy category and performance tier.
// Pure and deterministic: the same record and options always produce the
// same result, and malformed numeric input degrades to zero rather than
// failing.
func Classify(rec Record, opts ClassifyOptions) Classified {
	c := Classified{Record: rec}

	switch {
	case rec.EnergyKWh == 0:
		c.Category = CategoryEmpty
	case opts.MicroThresholdKWh > 0 && rec.EnergyKWh < opts.MicroThresholdKWh:
		c.Category = CategoryMicro
	default:
		c.Category = CategoryNormal
	}

	c.DurationHours = float64(rec.EndTimeMs-rec.StartTimeMs) / 3_600_000.0

	// A zero or negative span means average power is undefined; the
	// session lands in LOW with zero amperage instead of dividing by zero.
	if c.DurationHours > 0 {
		c.PowerWatts = (rec.EnergyKWh * 1000) / c.DurationHours
		voltage := opts.VoltageBasis
		if voltage <= 0 {
			voltage = DefaultClassifyOptions().VoltageBasis
		}
		c.Amperage = c.PowerWatts / voltage
	} else {
		c.DurationHours = 0
	}

	high, med := opts.TierHighAmps, opts.TierMedAmps
	if high <= 0 {
		high = DefaultClassifyOptions().TierHighAmps
	}
	if med <= 0 {
		med = DefaultClassifyOptions().TierMedAmps
	}

	switch {
	case c.Amperage >= high:
		c.Tier = TierHigh
	case c.Amperage >= med:
		c.Tier = TierMed
	default:
		c.Tier = TierLow
	}

	return c
}

// ClassifyAll classifies every record, preserving input order.
func ClassifyAll(records []Record, opts ClassifyOptions) []Classified {
	classified := make([]Classified, 0, len(records))
	for _, rec := range records {
		classified = append(classified, Classify(rec, opts))
	}
	return classified
}
