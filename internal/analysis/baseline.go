package analysis

// MetricRow is the subset of a persisted ride's durability metrics the
// baseline tracks, keyed by the same snake_case names in storage.
type MetricRow struct {
	PwHrDrift     *float64 // pw_hr_drift
	Rolling5Diff  *float64 // rolling5_diff
	Power150Delta *float64 // power_150_delta
	Z2Early       *float64 // z2_early
	Z2Late        *float64 // z2_late
	CadenceDrop   *float64 // cadence_drop
	HRCreep       *float64 // hr_creep
}

// Baseline holds the per-field historical averages over a caller-supplied
// window of past rides. A field with zero contributing rows is nil.
type Baseline struct {
	PwHrDrift     *float64
	Rolling5Diff  *float64
	Power150Delta *float64
	Z2Early       *float64
	Z2Late        *float64
	CadenceDrop   *float64
	HRCreep       *float64
}

// AggregateBaseline averages each tracked field across the rows where it is
// present. Row order does not affect the result. Returns nil for an empty
// row set.
func AggregateBaseline(rows []MetricRow) *Baseline {
	if len(rows) == 0 {
		return nil
	}

	var acc [7]struct {
		sum   float64
		count int
	}

	for _, row := range rows {
		for i, v := range rowFields(row) {
			if v != nil {
				acc[i].sum += *v
				acc[i].count++
			}
		}
	}

	avg := func(i int) *float64 {
		if acc[i].count == 0 {
			return nil
		}
		a := acc[i].sum / float64(acc[i].count)
		return &a
	}

	return &Baseline{
		PwHrDrift:     avg(0),
		Rolling5Diff:  avg(1),
		Power150Delta: avg(2),
		Z2Early:       avg(3),
		Z2Late:        avg(4),
		CadenceDrop:   avg(5),
		HRCreep:       avg(6),
	}
}

func rowFields(r MetricRow) [7]*float64 {
	return [7]*float64{
		r.PwHrDrift,
		r.Rolling5Diff,
		r.Power150Delta,
		r.Z2Early,
		r.Z2Late,
		r.CadenceDrop,
		r.HRCreep,
	}
}
