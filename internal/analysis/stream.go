package analysis

import "math"

// Physiological plausibility bounds applied by Sanitize
const (
	MinPlausibleWatts = 0
	MaxPlausibleWatts = 2000
	MinPlausibleHR    = 40
	MaxPlausibleHR    = 220
)

// SampleStream holds a ride's per-channel telemetry, index-aligned to Time.
// Time is seconds from start, monotonic non-decreasing. Absent channels are
// empty slices; absent samples within a channel are nil.
type SampleStream struct {
	Time      []float64
	Watts     []*float64
	Heartrate []*float64
	Distance  []*float64
	Altitude  []*float64
	Velocity  []*float64
	Cadence   []*float64
}

// Len returns the number of time samples
func (s SampleStream) Len() int {
	return len(s.Time)
}

// Sanitize returns a copy of the stream with watts and heart rate clamped to
// plausible ranges. A nil or NaN entry stays nil; no input is ever an error.
func Sanitize(s SampleStream) SampleStream {
	out := SampleStream{
		Time:      s.Time,
		Watts:     make([]*float64, len(s.Watts)),
		Heartrate: make([]*float64, len(s.Heartrate)),
		Distance:  s.Distance,
		Altitude:  s.Altitude,
		Velocity:  s.Velocity,
		Cadence:   s.Cadence,
	}
	for i, w := range s.Watts {
		out.Watts[i] = clamp(w, MinPlausibleWatts, MaxPlausibleWatts)
	}
	for i, hr := range s.Heartrate {
		out.Heartrate[i] = clamp(hr, MinPlausibleHR, MaxPlausibleHR)
	}
	return out
}

// clamp bounds v to [lo, hi]. Nil and NaN inputs yield nil.
func clamp(v *float64, lo, hi float64) *float64 {
	if v == nil || math.IsNaN(*v) {
		return nil
	}
	c := *v
	if c < lo {
		c = lo
	}
	if c > hi {
		c = hi
	}
	return &c
}

// at returns the channel value at index i, or nil when the channel is shorter
// than the time channel (tolerated per the input contract).
func at(ch []*float64, i int) *float64 {
	if i < len(ch) {
		return ch[i]
	}
	return nil
}
