package analysis

import "math"

const (
	// NPWindowSeconds is the rolling window for Normalized Power
	NPWindowSeconds = 30
	// MinNPSamples is the sample floor below which NP is unavailable
	MinNPSamples = 30
)

// timedValue pairs a timestamp with a present channel value
type timedValue struct {
	t float64
	v float64
}

// pairSamples collects the (time, value) pairs of a segment where the channel
// has a value, rebasing nothing. Nil entries are skipped.
func pairSamples(times []float64, ch []*float64, seg Segment) []timedValue {
	var out []timedValue
	for i := seg.Start; i <= seg.End && i < len(times); i++ {
		if v := at(ch, i); v != nil {
			out = append(out, timedValue{t: times[i], v: *v})
		}
	}
	return out
}

// slidingWindowMeans computes one mean per right endpoint whose window spans
// at least windowSeconds-1 (windows slightly under the nominal width are
// accepted so the final partial window of a short stream is not discarded).
// The left pointer only moves forward, so the pass is linear.
func slidingWindowMeans(samples []timedValue, windowSeconds float64) []float64 {
	var means []float64
	var sum float64
	left := 0

	for right := range samples {
		sum += samples[right].v
		for samples[right].t-samples[left].t > windowSeconds {
			sum -= samples[left].v
			left++
		}
		if samples[right].t-samples[left].t >= windowSeconds-1 {
			means = append(means, sum/float64(right-left+1))
		}
	}
	return means
}

// bestWindowMean finds the maximum sliding-window mean of the given width
// starting no earlier than minStart elapsed seconds. Returns nil when no
// window of sufficient span exists from that offset.
func bestWindowMean(samples []timedValue, windowSeconds, minStart float64) *float64 {
	var eligible []timedValue
	for _, s := range samples {
		if s.t >= minStart {
			eligible = append(eligible, s)
		}
	}

	means := slidingWindowMeans(eligible, windowSeconds)
	if len(means) == 0 {
		return nil
	}

	best := means[0]
	for _, m := range means[1:] {
		if m > best {
			best = m
		}
	}
	return &best
}

// normalizedPower computes the quartic mean of 30-second rolling power
// averages, which weights high-intensity surges more than a simple mean.
// Returns nil below the sample floor or when no window qualifies.
func normalizedPower(samples []timedValue) *float64 {
	if len(samples) < MinNPSamples {
		return nil
	}

	// Rebase time to start at zero
	rebased := make([]timedValue, len(samples))
	t0 := samples[0].t
	for i, s := range samples {
		rebased[i] = timedValue{t: s.t - t0, v: s.v}
	}

	means := slidingWindowMeans(rebased, NPWindowSeconds)
	if len(means) == 0 {
		return nil
	}

	var quartic float64
	for _, m := range means {
		quartic += math.Pow(m, 4)
	}
	np := math.Pow(quartic/float64(len(means)), 0.25)
	return &np
}

// NormalizedPowerOf computes Normalized Power over the whole stream.
// Returns nil when the stream is empty or too short.
func NormalizedPowerOf(s SampleStream) *float64 {
	if s.Len() == 0 {
		return nil
	}
	samples := pairSamples(s.Time, s.Watts, Segment{Start: 0, End: s.Len() - 1})
	return normalizedPower(samples)
}

// meanOver averages the present values of a channel across a segment
func meanOver(times []float64, ch []*float64, seg Segment) *float64 {
	var sum float64
	var count int
	for i := seg.Start; i <= seg.End && i < len(times); i++ {
		if v := at(ch, i); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return nil
	}
	m := sum / float64(count)
	return &m
}
