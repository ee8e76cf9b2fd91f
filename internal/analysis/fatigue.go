package analysis

// FatigueOffsets are the elapsed-time anchors of the fatigue-resistance curve
var FatigueOffsets = []int{0, 3600, 7200, 10800}

// FatigueDurations are the sustained-power window lengths evaluated per offset
var FatigueDurations = []int{300, 600, 1200, 3600}

// fatigueCurve computes the best sustained power for several durations at
// several elapsed-time offsets. An offset is included only when the ride
// covers offset+300s; a duration only when offset+duration fits in the ride;
// an offset with no qualifying duration is omitted. Output is ordered by
// offset.
func fatigueCurve(s SampleStream) []FatigueEntry {
	n := len(s.Time)
	if n == 0 {
		return nil
	}
	total := s.Time[n-1]
	samples := pairSamples(s.Time, s.Watts, Segment{Start: 0, End: n - 1})

	var curve []FatigueEntry
	for _, offset := range FatigueOffsets {
		if total < float64(offset)+300 {
			continue
		}

		best := make(map[int]float64)
		for _, dur := range FatigueDurations {
			if float64(offset+dur) > total {
				continue
			}
			if power := bestWindowMean(samples, float64(dur), float64(offset)); power != nil {
				best[dur] = *power
			}
		}

		if len(best) > 0 {
			curve = append(curve, FatigueEntry{OffsetSeconds: offset, BestPower: best})
		}
	}
	return curve
}
