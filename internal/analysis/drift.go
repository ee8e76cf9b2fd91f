package analysis

const (
	// Power150Center and Power150Tolerance select the fixed-HR band for the
	// power-at-150-bpm comparison
	Power150Center    = 150.0
	Power150Tolerance = 2.5

	// Rolling5WindowSeconds is the window for the best-5-minute comparison
	Rolling5WindowSeconds = 300.0
)

// pwHrDrift computes the percent decline of the power:heart-rate ratio from
// the first half to the second half. Positive drift means the second half was
// less efficient, a proxy for cardiovascular fatigue. Returns nil when either
// half's mean HR is non-positive or a mean is unavailable.
func pwHrDrift(s SampleStream, plan *SegmentPlan) *float64 {
	r1 := powerHRRatio(s, plan.FirstHalf)
	r2 := powerHRRatio(s, plan.SecondHalf)
	if r1 == nil || r2 == nil || *r1 == 0 {
		return nil
	}
	drift := (*r1 - *r2) / *r1 * 100
	return &drift
}

func powerHRRatio(s SampleStream, seg Segment) *float64 {
	power := meanOver(s.Time, s.Watts, seg)
	hr := meanOver(s.Time, s.Heartrate, seg)
	if power == nil || hr == nil || *hr <= 0 {
		return nil
	}
	r := *power / *hr
	return &r
}

// powerAtFixedHRDelta averages power over samples whose HR is within the
// fixed tolerance of the 150 bpm center, per half, and takes late minus
// early. Nil unless both halves have at least one qualifying sample.
func powerAtFixedHRDelta(s SampleStream, plan *SegmentPlan) *float64 {
	early := powerNearHR(s, plan.FirstHalf, Power150Center, Power150Tolerance)
	late := powerNearHR(s, plan.SecondHalf, Power150Center, Power150Tolerance)
	if early == nil || late == nil {
		return nil
	}
	delta := *late - *early
	return &delta
}

func powerNearHR(s SampleStream, seg Segment, center, tolerance float64) *float64 {
	var sum float64
	var count int
	for i := seg.Start; i <= seg.End && i < len(s.Time); i++ {
		hr := at(s.Heartrate, i)
		w := at(s.Watts, i)
		if hr == nil || w == nil {
			continue
		}
		if *hr >= center-tolerance && *hr <= center+tolerance {
			sum += *w
			count++
		}
	}
	if count == 0 {
		return nil
	}
	m := sum / float64(count)
	return &m
}

// rolling5Diff compares the best 300-second power window of each half, late
// minus early, with a 0 fallback for a half with no qualifying window.
func rolling5Diff(s SampleStream, plan *SegmentPlan) float64 {
	early := bestSegmentWindow(s, plan.FirstHalf)
	late := bestSegmentWindow(s, plan.SecondHalf)
	return late - early
}

func bestSegmentWindow(s SampleStream, seg Segment) float64 {
	samples := pairSamples(s.Time, s.Watts, seg)
	if best := bestWindowMean(samples, Rolling5WindowSeconds, 0); best != nil {
		return *best
	}
	return 0
}

// powerFade is the percent drop from quartile-1 average power to quartile-4
// average power
func powerFade(q1, q4 QuartileSummary) *float64 {
	if q1.AvgPower == nil || q4.AvgPower == nil || *q1.AvgPower == 0 {
		return nil
	}
	fade := (*q1.AvgPower - *q4.AvgPower) / *q1.AvgPower * 100
	return &fade
}

// efDecline is the percent drop from quartile-1 efficiency factor to
// quartile-4 efficiency factor
func efDecline(q1, q4 QuartileSummary) *float64 {
	if q1.EfficiencyFactor == nil || q4.EfficiencyFactor == nil || *q1.EfficiencyFactor == 0 {
		return nil
	}
	decline := (*q1.EfficiencyFactor - *q4.EfficiencyFactor) / *q1.EfficiencyFactor * 100
	return &decline
}

// wattsPerBeatTrend fits an ordinary least-squares line to the power/HR ratio
// of every sample with positive HR, against elapsed time rebased to zero.
// The slope is reported per hour and as a percent of the overall mean ratio;
// the percent is undefined when the mean ratio is zero, and the slope needs
// at least two points.
func wattsPerBeatTrend(s SampleStream) WattsPerBeatTrend {
	var xs, ys []float64
	for i := range s.Time {
		hr := at(s.Heartrate, i)
		w := at(s.Watts, i)
		if hr == nil || w == nil || *hr <= 0 {
			continue
		}
		xs = append(xs, s.Time[i])
		ys = append(ys, *w / *hr)
	}

	var trend WattsPerBeatTrend
	if len(xs) < 2 {
		return trend
	}

	x0 := xs[0]
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		x := xs[i] - x0
		sumX += x
		sumY += ys[i]
		sumXY += x * ys[i]
		sumXX += x * x
	}

	n := float64(len(xs))
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return trend
	}

	slopePerSecond := (n*sumXY - sumX*sumY) / denom
	slopePerHour := slopePerSecond * 3600
	trend.SlopePerHour = &slopePerHour

	meanRatio := sumY / n
	if meanRatio != 0 {
		pct := slopePerHour / meanRatio * 100
		trend.PercentPerHour = &pct
	}
	return trend
}

// lateEarlyDelta takes late-minus-early mean of a channel over the plan's
// early and late quartiles; nil when either side has no data.
func lateEarlyDelta(s SampleStream, ch []*float64, plan *SegmentPlan) *float64 {
	early := meanOver(s.Time, ch, plan.Early)
	late := meanOver(s.Time, ch, plan.Late)
	if early == nil || late == nil {
		return nil
	}
	delta := *late - *early
	return &delta
}
