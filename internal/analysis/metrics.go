package analysis

// QuartileSummary describes one elapsed-time quartile of the ride
type QuartileSummary struct {
	AvgPower         *float64
	NormalizedPower  *float64
	AvgHeartrate     *float64
	EfficiencyFactor *float64 // (NP or avg power) / avg HR
}

// WattsPerBeatTrend is the least-squares trend of the power-per-heartbeat
// ratio over the ride
type WattsPerBeatTrend struct {
	SlopePerHour   *float64 // watts/beat change per hour
	PercentPerHour *float64 // slope as a percent of the ride's mean ratio
}

// FatigueEntry reports best sustained power by duration, for windows starting
// at or after OffsetSeconds into the ride
type FatigueEntry struct {
	OffsetSeconds int
	BestPower     map[int]float64 // duration seconds -> best average watts
}

// DurabilityMetrics is the engine's output record: how performance decays as
// fatigue accumulates over a single ride. Constructed fresh per invocation;
// fields whose prerequisite data is missing are nil, never NaN.
type DurabilityMetrics struct {
	PwHrDrift     *float64 // % decline of power:HR ratio, first half to second
	Rolling5Diff  *float64 // best 5-min power, second half minus first half
	Power150Delta *float64 // avg power near 150 bpm, late minus early
	Z2Early       *float64 // zone share % in the first quartile
	Z2Late        *float64 // zone share % in the last quartile
	CadenceDrop   *float64 // mean cadence, late minus early
	HRCreep       *float64 // mean HR, late minus early

	Quartiles []QuartileSummary // four entries when a plan was produced

	PowerFade    *float64 // % drop in avg power, Q1 to Q4
	EFDecline    *float64 // % drop in efficiency factor, Q1 to Q4
	EFEarly      *float64
	EFLate       *float64
	WattsPerBeat WattsPerBeatTrend

	FatigueCurve []FatigueEntry // ordered by offset

	DurabilityScore *float64 // 0-100 composite, nil when no component defined
}

// summarizeSegment computes the per-quartile summary for one segment
func summarizeSegment(s SampleStream, seg Segment) QuartileSummary {
	sum := QuartileSummary{
		AvgPower:        meanOver(s.Time, s.Watts, seg),
		NormalizedPower: normalizedPower(pairSamples(s.Time, s.Watts, seg)),
		AvgHeartrate:    meanOver(s.Time, s.Heartrate, seg),
	}

	power := sum.NormalizedPower
	if power == nil {
		power = sum.AvgPower
	}
	if power != nil && sum.AvgHeartrate != nil && *sum.AvgHeartrate > 0 {
		ef := *power / *sum.AvgHeartrate
		sum.EfficiencyFactor = &ef
	}
	return sum
}
