package analysis

import "errors"

// ErrInsufficientData is returned when the stream has too few aligned
// time/power/heart-rate samples to analyze.
var ErrInsufficientData = errors.New("insufficient data")

// MinAlignedSamples is the floor of aligned time/watts/HR samples below which
// the engine refuses to produce a record.
const MinAlignedSamples = 10

// Compute runs the full durability pipeline over a raw ride stream: sanitize,
// plan segments, then derive drift, zone, fatigue-curve, and score metrics.
// It is pure and side-effect free; concurrent calls need no coordination.
//
// The only hard failures are ErrInsufficientData and ErrUnableToSplit; every
// other missing prerequisite degrades to a nil field in the returned record.
func Compute(raw SampleStream, athlete Athlete) (*DurabilityMetrics, error) {
	s := Sanitize(raw)

	if alignedSamples(s) < MinAlignedSamples {
		return nil, ErrInsufficientData
	}

	plan, err := PlanSegments(s.Time)
	if err != nil {
		return nil, err
	}

	m := &DurabilityMetrics{
		PwHrDrift:     pwHrDrift(s, plan),
		Power150Delta: powerAtFixedHRDelta(s, plan),
		CadenceDrop:   lateEarlyDelta(s, s.Cadence, plan),
		HRCreep:       lateEarlyDelta(s, s.Heartrate, plan),
		WattsPerBeat:  wattsPerBeatTrend(s),
		FatigueCurve:  fatigueCurve(s),
	}

	r5 := rolling5Diff(s, plan)
	m.Rolling5Diff = &r5

	zEarly := zoneShare(s, plan.Early, athlete) * 100
	zLate := zoneShare(s, plan.Late, athlete) * 100
	m.Z2Early = &zEarly
	m.Z2Late = &zLate

	m.Quartiles = make([]QuartileSummary, 4)
	for i, q := range plan.Quartiles {
		m.Quartiles[i] = summarizeSegment(s, q)
	}
	m.PowerFade = powerFade(m.Quartiles[0], m.Quartiles[3])
	m.EFDecline = efDecline(m.Quartiles[0], m.Quartiles[3])
	m.EFEarly = m.Quartiles[0].EfficiencyFactor
	m.EFLate = m.Quartiles[3].EfficiencyFactor

	m.DurabilityScore = durabilityScore(m)

	return m, nil
}

// alignedSamples counts indexes where time, watts, and heart rate all have a
// value
func alignedSamples(s SampleStream) int {
	count := 0
	for i := range s.Time {
		if at(s.Watts, i) != nil && at(s.Heartrate, i) != nil {
			count++
		}
	}
	return count
}
