package analysis

// durabilityScore blends the available penalty components into a single
// 0-100 score. Each component is a penalty clamped to [0,100] and inverted;
// the score is the equal-weight mean of whichever components are defined,
// or nil when none are.
func durabilityScore(m *DurabilityMetrics) *float64 {
	var healths []float64

	if m.PowerFade != nil {
		healths = append(healths, 100-clampPenalty(*m.PowerFade))
	}
	if m.PwHrDrift != nil {
		healths = append(healths, 100-clampPenalty(*m.PwHrDrift))
	}
	if m.EFDecline != nil {
		healths = append(healths, 100-clampPenalty(*m.EFDecline))
	}
	if pct := m.WattsPerBeat.PercentPerHour; pct != nil {
		// A declining watts-per-beat ratio is the penalty; a rising one
		// contributes none.
		healths = append(healths, 100-clampPenalty(-*pct))
	}

	if len(healths) == 0 {
		return nil
	}

	var sum float64
	for _, h := range healths {
		sum += h
	}
	score := sum / float64(len(healths))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return &score
}

// clampPenalty bounds a raw penalty to [0,100]
func clampPenalty(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
