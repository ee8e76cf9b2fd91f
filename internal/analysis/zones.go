package analysis

// Fixed-band and HRR-band zone bounds
const (
	FixedBandLowHR  = 120.0
	FixedBandHighHR = 150.0
	HRRBandLowPct   = 60.0
	HRRBandHighPct  = 70.0
)

// Athlete carries the optional heart-rate context for a ride. Zero values
// mean not configured, which selects the fixed-band zone classifier.
type Athlete struct {
	RestingHR float64
	MaxHR     float64
}

// usesReserve reports whether the HRR classifier applies
func (a Athlete) usesReserve() bool {
	return a.RestingHR > 0 && a.MaxHR > 0
}

// zoneShare returns the fraction of a segment's elapsed time spent inside the
// athlete's aerobic band, in [0,1]. With resting/max HR configured the band
// is [60,70]% of heart-rate reserve, otherwise the fixed [120,150] bpm range.
// Each sample contributes the duration to its successor, so the final sample
// carries no weight; a non-positive reserve always yields 0.
func zoneShare(s SampleStream, seg Segment, athlete Athlete) float64 {
	var inBand, total float64

	for i := seg.Start; i < seg.End && i+1 < len(s.Time); i++ {
		dur := s.Time[i+1] - s.Time[i]
		if dur <= 0 {
			continue
		}
		total += dur

		hr := at(s.Heartrate, i)
		if hr == nil {
			continue
		}
		if inZone(*hr, athlete) {
			inBand += dur
		}
	}

	if total == 0 {
		return 0
	}
	return inBand / total
}

func inZone(hr float64, athlete Athlete) bool {
	if athlete.usesReserve() {
		reserve := athlete.MaxHR - athlete.RestingHR
		if reserve <= 0 {
			return false
		}
		pct := (hr - athlete.RestingHR) / reserve * 100
		return pct >= HRRBandLowPct && pct <= HRRBandHighPct
	}
	return hr >= FixedBandLowHR && hr <= FixedBandHighHR
}
